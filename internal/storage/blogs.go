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

// BlogListFilter narrows a blog listing. An empty Status means every
// lifecycle state.
type BlogListFilter struct {
	Status   models.BlogStatus
	Category *primitive.ObjectID
	Skip     int64
	Limit    int64
}

// BlogRepo persists blogs.
type BlogRepo struct {
	coll *mongo.Collection
}

func NewBlogRepo(db *mongo.Database) *BlogRepo {
	return &BlogRepo{coll: db.Collection(database.CollBlogs)}
}

func (r *BlogRepo) Insert(ctx context.Context, b *models.Blog) error {
	res, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		return translate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = id
	}
	return nil
}

func (r *BlogRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindBySlug looks a blog up by slug, optionally restricted to published.
func (r *BlogRepo) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Blog, error) {
	filter := bson.M{"slug": slug}
	if publishedOnly {
		filter["status"] = models.StatusPublished
	}
	return r.findOne(ctx, filter)
}

func (r *BlogRepo) findOne(ctx context.Context, filter bson.M) (*models.Blog, error) {
	var b models.Blog
	err := r.coll.FindOne(ctx, filter).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns blogs newest first with the total matching count.
func (r *BlogRepo) List(ctx context.Context, f BlogListFilter) ([]models.Blog, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != nil {
		filter["category"] = *f.Category
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	blogs := []models.Blog{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// ListByAuthor returns every blog of the author regardless of status.
func (r *BlogRepo) ListByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Blog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"author": author}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	blogs := []models.Blog{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// Update rewrites the mutable fields. Author, slug, views, likes, and
// comments are deliberately absent: they change only through their dedicated
// operations, which keeps the author immutable at the storage boundary.
func (r *BlogRepo) Update(ctx context.Context, b *models.Blog) error {
	set := bson.M{
		"title":         b.Title,
		"content":       b.Content,
		"excerpt":       b.Excerpt,
		"tags":          b.Tags,
		"featuredImage": b.FeaturedImage,
		"images":        b.Images,
		"status":        b.Status,
		"updatedAt":     b.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if b.CategoryID != nil {
		set["category"] = *b.CategoryID
	} else {
		update["$unset"] = bson.M{"category": ""}
	}
	_, err := r.coll.UpdateByID(ctx, b.ID, update)
	return translate(err)
}

func (r *BlogRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// IncrementViews bumps the view counter. $inc keeps the counter monotone
// under concurrent reads; exact atomicity across racing requests is not a
// guarantee callers rely on.
func (r *BlogRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// ReplaceLikes stores the like set computed by the service's toggle.
func (r *BlogRepo) ReplaceLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"likes": likes}})
	return err
}

// PushComment appends a comment to the blog document.
func (r *BlogRepo) PushComment(ctx context.Context, id primitive.ObjectID, cm *models.Comment) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$push": bson.M{"comments": cm}})
	return err
}

// ClearCategory detaches every blog from a deleted category.
func (r *BlogRepo) ClearCategory(ctx context.Context, categoryID primitive.ObjectID) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"category": categoryID},
		bson.M{"$unset": bson.M{"category": ""}})
	return err
}

// ListByCategory returns published blogs in a category, newest first.
func (r *BlogRepo) ListByCategory(ctx context.Context, categoryID primitive.ObjectID, skip, limit int64) ([]models.Blog, int64, error) {
	return r.List(ctx, BlogListFilter{
		Status:   models.StatusPublished,
		Category: &categoryID,
		Skip:     skip,
		Limit:    limit,
	})
}
