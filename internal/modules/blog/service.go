package blog

import (
	"context"
	"errors"
	"time"

	"github.com/blogzone/core/internal/models"
	"github.com/blogzone/core/internal/pkg/apperrors"
	"github.com/blogzone/core/internal/pkg/imageurl"
	"github.com/blogzone/core/internal/pkg/markdown"
	"github.com/blogzone/core/internal/pkg/slug"
	"github.com/blogzone/core/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const excerptLength = 200

// Store is the blog persistence surface.
type Store interface {
	Insert(ctx context.Context, b *models.Blog) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Blog, error)
	List(ctx context.Context, f storage.BlogListFilter) ([]models.Blog, int64, error)
	ListByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Blog, error)
	Update(ctx context.Context, b *models.Blog) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	ReplaceLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error
	PushComment(ctx context.Context, id primitive.ObjectID, cm *models.Comment) error
}

// CategoryStore resolves category references and keeps the denormalized blog
// counter in step.
type CategoryStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	AdjustBlogCount(ctx context.Context, id primitive.ObjectID, delta int) error
}

// UserStore resolves author and commenter references.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type Service struct {
	store      Store
	categories CategoryStore
	users      UserStore
	resolver   imageurl.Resolver
}

func NewService(store Store, categories CategoryStore, users UserStore, resolver imageurl.Resolver) *Service {
	return &Service{store: store, categories: categories, users: users, resolver: resolver}
}

// List serves the public listing. Admin callers get the requested status
// filter verbatim (absent status means every lifecycle state); everyone
// else, including callers with a bad token, is forced to published.
func (s *Service) List(ctx context.Context, caller *models.User, q ListQuery) ([]models.Blog, int64, error) {
	status := models.StatusPublished
	if caller.IsAdmin() {
		status = models.BlogStatus(q.Status)
		if status != "" && !status.Valid() {
			return nil, 0, apperrors.WithMessage(apperrors.ErrValidation, "Invalid status")
		}
	}

	filter := storage.BlogListFilter{
		Status: status,
		Skip:   int64(q.Page-1) * int64(q.Limit),
		Limit:  int64(q.Limit),
	}
	if q.Category != "" {
		id, err := primitive.ObjectIDFromHex(q.Category)
		if err != nil {
			return nil, 0, apperrors.WithMessage(apperrors.ErrValidation, "Invalid category")
		}
		filter.Category = &id
	}

	blogs, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return s.decorateAll(ctx, blogs), total, nil
}

// GetBySlug serves a single published blog and bumps its view counter. The
// increment is a side effect of the read; the returned view count already
// includes it.
func (s *Service) GetBySlug(ctx context.Context, slugStr string) (*models.Blog, error) {
	b, err := s.store.FindBySlug(ctx, slugStr, true)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Blog not found")
	}

	if err := s.store.IncrementViews(ctx, b.ID); err != nil {
		return nil, err
	}
	b.Views++

	out := s.decorate(ctx, *b, true)
	out.ContentHTML = markdown.Render(out.Content)
	return &out, nil
}

// Create stores a new blog owned by the caller. The slug is derived from the
// title once, here; it never changes afterwards.
func (s *Service) Create(ctx context.Context, caller *models.User, dto *CreateBlogDTO) (*models.Blog, error) {
	slugStr := slug.Make(dto.Title)
	if slugStr == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Title must contain letters or digits")
	}

	status := models.StatusDraft
	if dto.Status != "" {
		status = models.BlogStatus(dto.Status)
		if !status.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Invalid status")
		}
	}

	categoryID, err := s.resolveCategory(ctx, dto.Category)
	if err != nil {
		return nil, err
	}

	excerpt := dto.Excerpt
	if excerpt == "" {
		excerpt = markdown.Excerpt(dto.Content, excerptLength)
	}

	tags := dto.Tags
	if tags == nil {
		tags = []string{}
	}
	images := dto.Images
	if images == nil {
		images = []models.Image{}
	}

	now := time.Now()
	b := &models.Blog{
		Title:         dto.Title,
		Slug:          slugStr,
		Content:       dto.Content,
		Excerpt:       excerpt,
		AuthorID:      caller.ID,
		CategoryID:    categoryID,
		Tags:          tags,
		FeaturedImage: dto.FeaturedImage,
		Images:        images,
		Status:        status,
		Likes:         []primitive.ObjectID{},
		Comments:      []models.Comment{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Insert(ctx, b); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.WithMessage(apperrors.ErrConflict, "Blog with this title already exists")
		}
		return nil, err
	}

	if categoryID != nil {
		_ = s.categories.AdjustBlogCount(ctx, *categoryID, 1)
	}

	out := s.decorate(ctx, *b, false)
	return &out, nil
}

// Update applies a partial update. Only the author or an admin may proceed;
// the author reference itself is immutable.
func (s *Service) Update(ctx context.Context, caller *models.User, id primitive.ObjectID, dto *UpdateBlogDTO) (*models.Blog, error) {
	b, err := s.requireOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	prevCategory := b.CategoryID
	if dto.Title != nil {
		b.Title = *dto.Title
	}
	if dto.Content != nil {
		b.Content = *dto.Content
	}
	if dto.Excerpt != nil {
		b.Excerpt = *dto.Excerpt
	}
	if dto.Tags != nil {
		b.Tags = *dto.Tags
	}
	if dto.FeaturedImage != nil {
		b.FeaturedImage = *dto.FeaturedImage
	}
	if dto.Images != nil {
		b.Images = *dto.Images
	}
	if dto.Status != nil {
		status := models.BlogStatus(*dto.Status)
		if !status.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Invalid status")
		}
		b.Status = status
	}
	if dto.Category != nil {
		categoryID, err := s.resolveCategory(ctx, *dto.Category)
		if err != nil {
			return nil, err
		}
		b.CategoryID = categoryID
	}
	b.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, b); err != nil {
		return nil, err
	}

	if !sameCategory(prevCategory, b.CategoryID) {
		if prevCategory != nil {
			_ = s.categories.AdjustBlogCount(ctx, *prevCategory, -1)
		}
		if b.CategoryID != nil {
			_ = s.categories.AdjustBlogCount(ctx, *b.CategoryID, 1)
		}
	}

	out := s.decorate(ctx, *b, false)
	return &out, nil
}

// Delete removes a blog. Only the author or an admin may proceed.
func (s *Service) Delete(ctx context.Context, caller *models.User, id primitive.ObjectID) error {
	b, err := s.requireOwned(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if b.CategoryID != nil {
		_ = s.categories.AdjustBlogCount(ctx, *b.CategoryID, -1)
	}
	return nil
}

// ToggleLike flips the caller's membership in the like set and returns the
// resulting count. Two calls in a row restore the original state.
func (s *Service) ToggleLike(ctx context.Context, caller *models.User, id primitive.ObjectID) (int, error) {
	b, err := s.store.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, apperrors.WithMessage(apperrors.ErrNotFound, "Blog not found")
	}

	likes := make([]primitive.ObjectID, 0, len(b.Likes)+1)
	found := false
	for _, uid := range b.Likes {
		if uid == caller.ID {
			found = true
			continue
		}
		likes = append(likes, uid)
	}
	if !found {
		likes = append(likes, caller.ID)
	}

	if err := s.store.ReplaceLikes(ctx, id, likes); err != nil {
		return 0, err
	}
	return len(likes), nil
}

// AddComment appends a comment by the caller and returns it with the
// commenter attached.
func (s *Service) AddComment(ctx context.Context, caller *models.User, id primitive.ObjectID, dto *CommentDTO) (*models.Comment, error) {
	b, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Blog not found")
	}

	cm := &models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    caller.ID,
		Content:   dto.Content,
		CreatedAt: time.Now(),
	}
	if err := s.store.PushComment(ctx, id, cm); err != nil {
		return nil, err
	}
	cm.User = s.resolver.Author(caller.Author())
	return cm, nil
}

// ListByAuthor returns the author's blogs in every lifecycle state.
func (s *Service) ListByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Blog, error) {
	blogs, err := s.store.ListByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(ctx, blogs), nil
}

// requireOwned loads the blog and enforces the owner-or-admin policy.
func (s *Service) requireOwned(ctx context.Context, caller *models.User, id primitive.ObjectID) (*models.Blog, error) {
	b, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Blog not found")
	}
	if b.AuthorID != caller.ID && !caller.IsAdmin() {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "Not authorized")
	}
	return b, nil
}

func (s *Service) resolveCategory(ctx context.Context, raw string) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Invalid category")
	}
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Category not found")
	}
	return &id, nil
}

// decorate returns an outward copy: author and category attached, image
// references resolved, and optionally comment authors populated.
func (s *Service) decorate(ctx context.Context, b models.Blog, withComments bool) models.Blog {
	if author, err := s.users.FindByID(ctx, b.AuthorID); err == nil && author != nil {
		b.Author = s.resolver.Author(author.Author())
	}
	if b.CategoryID != nil {
		if cat, err := s.categories.FindByID(ctx, *b.CategoryID); err == nil && cat != nil {
			b.Category = cat.Ref()
		}
	}
	if withComments && len(b.Comments) > 0 {
		comments := make([]models.Comment, len(b.Comments))
		cache := map[primitive.ObjectID]*models.AuthorInfo{}
		for i, cm := range b.Comments {
			if info, ok := cache[cm.UserID]; ok {
				cm.User = info
			} else if u, err := s.users.FindByID(ctx, cm.UserID); err == nil && u != nil {
				cm.User = s.resolver.Author(u.Author())
				cache[cm.UserID] = cm.User
			}
			comments[i] = cm
		}
		b.Comments = comments
	}
	return s.resolver.Blog(b)
}

func (s *Service) decorateAll(ctx context.Context, blogs []models.Blog) []models.Blog {
	out := make([]models.Blog, len(blogs))
	for i, b := range blogs {
		out[i] = s.decorate(ctx, b, false)
	}
	return out
}

func sameCategory(a, b *primitive.ObjectID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
