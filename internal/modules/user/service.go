package user

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/blogzone/core/internal/models"
	"github.com/blogzone/core/internal/pkg/apperrors"
	"github.com/blogzone/core/internal/pkg/imageurl"
	"github.com/blogzone/core/internal/pkg/password"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const recentUserCount = 5

// Store is the user persistence surface.
type Store interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	List(ctx context.Context, skip, limit int64) ([]models.User, int64, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	Recent(ctx context.Context, n int64) ([]models.User, error)
}

// Service implements the admin-facing account management.
type Service struct {
	store      Store
	resolver   imageurl.Resolver
	uploadsDir string
}

func NewService(store Store, resolver imageurl.Resolver, uploadsDir string) *Service {
	return &Service{store: store, resolver: resolver, uploadsDir: uploadsDir}
}

// List returns users newest first with the total count.
func (s *Service) List(ctx context.Context, skip, limit int64) ([]models.User, int64, error) {
	users, total, err := s.store.List(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	return s.resolveAll(users), total, nil
}

// Get returns a single user.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := s.require(ctx, id)
	if err != nil {
		return nil, err
	}
	out := s.resolver.User(*u)
	return &out, nil
}

// Create stores a new account on behalf of an admin. Unlike self-service
// registration, the role may be set directly.
func (s *Service) Create(ctx context.Context, dto *CreateUserDTO) (*models.User, error) {
	role := models.RoleUser
	if dto.Role != "" {
		role = models.Role(dto.Role)
		if !role.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Invalid role")
		}
	}

	existing, err := s.store.FindByUsernameOrEmail(ctx, dto.Username, dto.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.WithMessage(apperrors.ErrConflict, "User already exists")
	}

	hash, err := password.Hash(dto.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &models.User{
		Username: dto.Username,
		Email:    dto.Email,
		Password: hash,
		Role:     role,
		Profile: models.Profile{
			FirstName: dto.FirstName,
			LastName:  dto.LastName,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, u); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.WithMessage(apperrors.ErrConflict, "User already exists")
		}
		return nil, err
	}

	out := s.resolver.User(*u)
	return &out, nil
}

// Update applies a partial update to an account. A new password is re-hashed;
// the role must stay within the recognized set.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, dto *UpdateUserDTO) (*models.User, error) {
	u, err := s.require(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Username != nil {
		u.Username = *dto.Username
	}
	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.Password != nil {
		hash, err := password.Hash(*dto.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if dto.Role != nil {
		role := models.Role(*dto.Role)
		if !role.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Invalid role")
		}
		u.Role = role
	}
	if dto.FirstName != nil {
		u.Profile.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		u.Profile.LastName = *dto.LastName
	}
	if dto.Bio != nil {
		u.Profile.Bio = *dto.Bio
	}
	if dto.Avatar != nil {
		u.Profile.Avatar = dto.Avatar
	}
	u.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, u); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.WithMessage(apperrors.ErrConflict, "User already exists")
		}
		return nil, err
	}

	out := s.resolver.User(*u)
	return &out, nil
}

// UpdateRole changes just the role of an account.
func (s *Service) UpdateRole(ctx context.Context, id primitive.ObjectID, dto *UpdateRoleDTO) (*models.User, error) {
	role := models.Role(dto.Role)
	if !role.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Invalid role")
	}

	u, err := s.require(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}

	out := s.resolver.User(*u)
	return &out, nil
}

// Delete removes an account. Callers may not delete themselves; that check
// lives in the handler. A stored avatar file is removed best effort.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	u, err := s.require(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if av := u.Profile.Avatar; av != nil && av.Filename != "" {
		_ = os.Remove(filepath.Join(s.uploadsDir, imageurl.CategoryAvatars, av.Filename))
	}
	return nil
}

// Overview aggregates the admin dashboard counters.
func (s *Service) Overview(ctx context.Context) (*Stats, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.store.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	recent, err := s.store.Recent(ctx, recentUserCount)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Total:       total,
		Admins:      admins,
		Regular:     total - admins,
		RecentUsers: s.resolveAll(recent),
	}, nil
}

func (s *Service) require(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "User not found")
	}
	return u, nil
}

func (s *Service) resolveAll(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = s.resolver.User(u)
	}
	return out
}
