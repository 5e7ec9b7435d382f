package auth

import (
	"context"
	"time"

	"github.com/blogzone/core/internal/models"
	"github.com/blogzone/core/internal/pkg/apperrors"
	"github.com/blogzone/core/internal/pkg/imageurl"
	"github.com/blogzone/core/internal/pkg/jwt"
	"github.com/blogzone/core/internal/pkg/password"
)

// UserStore is the slice of user persistence the auth flows need.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
}

type Service struct {
	users    UserStore
	issuer   *jwt.Issuer
	resolver imageurl.Resolver
}

func NewService(users UserStore, issuer *jwt.Issuer, resolver imageurl.Resolver) *Service {
	return &Service{users: users, issuer: issuer, resolver: resolver}
}

// Register creates an account with the user role and issues a token.
func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (string, *models.User, error) {
	existing, err := s.users.FindByUsernameOrEmail(ctx, dto.Username, dto.Email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, apperrors.WithMessage(apperrors.ErrConflict, "User already exists")
	}

	hash, err := password.Hash(dto.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	u := &models.User{
		Username: dto.Username,
		Email:    dto.Email,
		Password: hash,
		Role:     models.RoleUser,
		Profile: models.Profile{
			FirstName: dto.FirstName,
			LastName:  dto.LastName,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return "", nil, err
	}

	token, err := s.issuer.Sign(u.ID.Hex())
	if err != nil {
		return "", nil, err
	}
	sanitized := s.resolver.User(*u)
	return token, &sanitized, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same message so the response does not disclose which
// part failed.
func (s *Service) Login(ctx context.Context, dto *LoginDTO) (string, *models.User, error) {
	invalid := apperrors.WithMessage(apperrors.ErrValidation, "Invalid credentials")

	u, err := s.users.FindByEmail(ctx, dto.Email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !password.Verify(dto.Password, u.Password) {
		return "", nil, invalid
	}

	token, err := s.issuer.Sign(u.ID.Hex())
	if err != nil {
		return "", nil, err
	}
	sanitized := s.resolver.User(*u)
	return token, &sanitized, nil
}

// Profile returns the caller's own normalized profile.
func (s *Service) Profile(caller *models.User) models.User {
	return s.resolver.User(*caller)
}

// UpdateProfile applies the self-editable fields. Only the owning user
// reaches this path; role and identity fields are untouchable here.
func (s *Service) UpdateProfile(ctx context.Context, caller *models.User, dto *UpdateProfileDTO) (*models.User, error) {
	u := *caller
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
		u.Profile.Avatar = s.resolver.Avatar(dto.Avatar)
	}
	u.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, &u); err != nil {
		return nil, err
	}
	sanitized := s.resolver.User(u)
	return &sanitized, nil
}
