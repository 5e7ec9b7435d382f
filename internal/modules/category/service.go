package category

import (
	"context"
	"errors"
	"time"

	"github.com/blogzone/core/internal/models"
	"github.com/blogzone/core/internal/pkg/apperrors"
	"github.com/blogzone/core/internal/pkg/imageurl"
	"github.com/blogzone/core/internal/pkg/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the category persistence surface.
type Store interface {
	Insert(ctx context.Context, cat *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, cat *models.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BlogStore lets the category module list and detach the blogs of a category.
type BlogStore interface {
	ListByCategory(ctx context.Context, category primitive.ObjectID, skip, limit int64) ([]models.Blog, int64, error)
	ClearCategory(ctx context.Context, category primitive.ObjectID) error
}

type Service struct {
	store    Store
	blogs    BlogStore
	resolver imageurl.Resolver
}

func NewService(store Store, blogs BlogStore, resolver imageurl.Resolver) *Service {
	return &Service{store: store, blogs: blogs, resolver: resolver}
}

// List returns every category sorted by name.
func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	cats, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, len(cats))
	for i, cat := range cats {
		out[i] = s.resolver.Category(cat)
	}
	return out, nil
}

// GetBySlug returns a single category.
func (s *Service) GetBySlug(ctx context.Context, slugStr string) (*models.Category, error) {
	cat, err := s.store.FindBySlug(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Category not found")
	}
	out := s.resolver.Category(*cat)
	return &out, nil
}

// Blogs returns one page of the published blogs filed under the category.
func (s *Service) Blogs(ctx context.Context, slugStr string, skip, limit int64) (*models.Category, []models.Blog, int64, error) {
	cat, err := s.GetBySlug(ctx, slugStr)
	if err != nil {
		return nil, nil, 0, err
	}
	blogs, total, err := s.blogs.ListByCategory(ctx, cat.ID, skip, limit)
	if err != nil {
		return nil, nil, 0, err
	}
	out := make([]models.Blog, len(blogs))
	for i, b := range blogs {
		b.Category = cat.Ref()
		out[i] = s.resolver.Blog(b)
	}
	return cat, out, total, nil
}

// Create stores a new category. The slug is derived from the name.
func (s *Service) Create(ctx context.Context, dto *CreateCategoryDTO) (*models.Category, error) {
	slugStr := slug.Make(dto.Name)
	if slugStr == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Name must contain letters or digits")
	}

	color := dto.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}

	parentID, err := s.resolveParent(ctx, dto.Parent, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cat := &models.Category{
		Name:        dto.Name,
		Slug:        slugStr,
		Description: dto.Description,
		Color:       color,
		Icon:        dto.Icon,
		Image:       dto.Image,
		ParentID:    parentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Insert(ctx, cat); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.WithMessage(apperrors.ErrConflict, "Category with this name already exists")
		}
		return nil, err
	}

	out := s.resolver.Category(*cat)
	return &out, nil
}

// Update applies a partial update. Renaming re-derives the slug.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, dto *UpdateCategoryDTO) (*models.Category, error) {
	cat, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Category not found")
	}

	if dto.Name != nil {
		slugStr := slug.Make(*dto.Name)
		if slugStr == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Name must contain letters or digits")
		}
		cat.Name = *dto.Name
		cat.Slug = slugStr
	}
	if dto.Description != nil {
		cat.Description = *dto.Description
	}
	if dto.Color != nil {
		cat.Color = *dto.Color
	}
	if dto.Icon != nil {
		cat.Icon = *dto.Icon
	}
	if dto.Image != nil {
		cat.Image = *dto.Image
	}
	if dto.Parent != nil {
		parentID, err := s.resolveParent(ctx, *dto.Parent, id)
		if err != nil {
			return nil, err
		}
		cat.ParentID = parentID
	}
	cat.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, cat); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.WithMessage(apperrors.ErrConflict, "Category with this name already exists")
		}
		return nil, err
	}

	out := s.resolver.Category(*cat)
	return &out, nil
}

// Delete removes the category and detaches its blogs; they survive without a
// category rather than cascading away.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	cat, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperrors.WithMessage(apperrors.ErrNotFound, "Category not found")
	}
	if err := s.blogs.ClearCategory(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// resolveParent validates a parent reference. An empty value means no parent.
// The walk up the parent chain rejects assignments that would close a cycle,
// self included.
func (s *Service) resolveParent(ctx context.Context, raw string, self primitive.ObjectID) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Invalid parent category")
	}
	if id == self {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Category cannot be its own parent")
	}

	cur := id
	for {
		cat, err := s.store.FindByID(ctx, cur)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Parent category not found")
		}
		if cat.ParentID == nil {
			break
		}
		cur = *cat.ParentID
		if cur == self || cur == id {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Category parent would form a cycle")
		}
	}
	return &id, nil
}
