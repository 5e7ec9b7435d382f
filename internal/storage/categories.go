package storage

import (
	"context"
	"errors"

	"github.com/blogzone/core/internal/database"
	"github.com/blogzone/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryRepo persists categories.
type CategoryRepo struct {
	coll *mongo.Collection
}

func NewCategoryRepo(db *mongo.Database) *CategoryRepo {
	return &CategoryRepo{coll: db.Collection(database.CollCategories)}
}

func (r *CategoryRepo) Insert(ctx context.Context, cat *models.Category) error {
	res, err := r.coll.InsertOne(ctx, cat)
	if err != nil {
		return translate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		cat.ID = id
	}
	return nil
}

func (r *CategoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *CategoryRepo) findOne(ctx context.Context, filter bson.M) (*models.Category, error) {
	var cat models.Category
	err := r.coll.FindOne(ctx, filter).Decode(&cat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// List returns all categories sorted by name.
func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	cats := []models.Category{}
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Update rewrites the mutable fields of the category document.
func (r *CategoryRepo) Update(ctx context.Context, cat *models.Category) error {
	set := bson.M{
		"name":        cat.Name,
		"slug":        cat.Slug,
		"description": cat.Description,
		"color":       cat.Color,
		"icon":        cat.Icon,
		"image":       cat.Image,
		"updatedAt":   cat.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if cat.ParentID != nil {
		set["parent"] = *cat.ParentID
	} else {
		update["$unset"] = bson.M{"parent": ""}
	}
	_, err := r.coll.UpdateByID(ctx, cat.ID, update)
	return translate(err)
}

func (r *CategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// AdjustBlogCount moves the denormalized blog counter by delta.
func (r *CategoryRepo) AdjustBlogCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"blogsCount": delta}})
	return err
}
