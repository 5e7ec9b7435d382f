package database

import (
	"context"
	"fmt"
	"time"

	"github.com/blogzone/core/internal/config"
	"github.com/blogzone/core/internal/models"
	"github.com/blogzone/core/internal/pkg/password"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin creates the configured default admin when no admin account
// exists, so a fresh deployment is never locked out of the admin surface.
// Returns true when an account was created.
func SeedAdmin(ctx context.Context, db *mongo.Database, seed config.AdminSeed) (bool, error) {
	users := db.Collection(CollUsers)

	n, err := users.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	hash, err := password.Hash(seed.Password)
	if err != nil {
		return false, err
	}

	now := time.Now()
	_, err = users.InsertOne(ctx, models.User{
		Username:  seed.Username,
		Email:     seed.Email,
		Password:  hash,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}
