package user

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/blogzone/core/internal/models"
	"github.com/blogzone/core/internal/pkg/apperrors"
	"github.com/blogzone/core/internal/pkg/imageurl"
	"github.com/blogzone/core/internal/pkg/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memStore struct {
	users []*models.User
}

func (m *memStore) Insert(_ context.Context, u *models.User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return apperrors.WithMessage(apperrors.ErrConflict, "duplicate key")
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindByUsernameOrEmail(_ context.Context, username, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) List(_ context.Context, skip, limit int64) ([]models.User, int64, error) {
	total := int64(len(m.users))
	out := []models.User{}
	for i := len(m.users) - 1; i >= 0; i-- {
		out = append(out, *m.users[i])
	}
	if skip > 0 {
		if skip >= total {
			return []models.User{}, total, nil
		}
		out = out[skip:]
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *memStore) Update(_ context.Context, u *models.User) error {
	for _, existing := range m.users {
		if existing.ID != u.ID && (existing.Username == u.Username || existing.Email == u.Email) {
			return apperrors.WithMessage(apperrors.ErrConflict, "duplicate key")
		}
	}
	for i, existing := range m.users {
		if existing.ID == u.ID {
			cp := *u
			m.users[i] = &cp
			return nil
		}
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *memStore) CountByRole(_ context.Context, role models.Role) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *memStore) Recent(_ context.Context, n int64) ([]models.User, error) {
	out := []models.User{}
	for i := len(m.users) - 1; i >= 0 && int64(len(out)) < n; i-- {
		out = append(out, *m.users[i])
	}
	return out, nil
}

func newService(t *testing.T) (*Service, *memStore, string) {
	t.Helper()
	dir := t.TempDir()
	store := &memStore{}
	return NewService(store, imageurl.New("http://localhost:5000"), dir), store, dir
}

func seed(t *testing.T, svc *Service, username, role string) *models.User {
	t.Helper()
	u, err := svc.Create(context.Background(), &CreateUserDTO{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret1",
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func TestCreate(t *testing.T) {
	svc, store, _ := newService(t)

	u := seed(t, svc, "alice", "")
	assert.Equal(t, models.RoleUser, u.Role, "role defaults to user")

	a := seed(t, svc, "root", "admin")
	assert.Equal(t, models.RoleAdmin, a.Role)

	require.Len(t, store.users, 2)
	assert.True(t, password.Verify("secret1", store.users[0].Password))
}

func TestCreateInvalidRole(t *testing.T) {
	svc, store, _ := newService(t)

	_, err := svc.Create(context.Background(), &CreateUserDTO{
		Username: "eve", Email: "eve@example.com", Password: "secret1", Role: "superadmin",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.EqualError(t, err, "Invalid role")
	assert.Empty(t, store.users, "nothing stored")
}

func TestCreateDuplicate(t *testing.T) {
	svc, _, _ := newService(t)
	seed(t, svc, "alice", "")

	_, err := svc.Create(context.Background(), &CreateUserDTO{
		Username: "alice", Email: "other@example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.EqualError(t, err, "User already exists")
}

func TestGet(t *testing.T) {
	svc, _, _ := newService(t)
	created := seed(t, svc, "alice", "")

	u, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.Get(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestList(t *testing.T) {
	svc, _, _ := newService(t)
	seed(t, svc, "alice", "")
	seed(t, svc, "bob", "")
	seed(t, svc, "carol", "")

	users, total, err := svc.List(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, "carol", users[0].Username, "newest first")
}

func TestUpdate(t *testing.T) {
	svc, store, _ := newService(t)
	created := seed(t, svc, "alice", "")

	email := "new@example.com"
	pw := "changed1"
	role := "admin"
	bio := "gopher"
	u, err := svc.Update(context.Background(), created.ID, &UpdateUserDTO{
		Email: &email, Password: &pw, Role: &role, Bio: &bio,
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.Equal(t, "gopher", u.Profile.Bio)
	assert.True(t, password.Verify("changed1", store.users[0].Password), "password re-hashed")
}

func TestUpdateInvalidRole(t *testing.T) {
	svc, _, _ := newService(t)
	created := seed(t, svc, "alice", "")

	role := "owner"
	_, err := svc.Update(context.Background(), created.ID, &UpdateUserDTO{Role: &role})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	u, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role, "role never silently stored")
}

func TestUpdateRole(t *testing.T) {
	svc, _, _ := newService(t)
	created := seed(t, svc, "alice", "")

	u, err := svc.UpdateRole(context.Background(), created.ID, &UpdateRoleDTO{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	_, err = svc.UpdateRole(context.Background(), created.ID, &UpdateRoleDTO{Role: "god"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDelete(t *testing.T) {
	svc, store, _ := newService(t)
	created := seed(t, svc, "alice", "")

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, store.users)

	err := svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteRemovesAvatarFile(t *testing.T) {
	svc, _, dir := newService(t)
	created := seed(t, svc, "alice", "")

	avatarDir := filepath.Join(dir, "avatars")
	require.NoError(t, os.MkdirAll(avatarDir, 0o755))
	avatarPath := filepath.Join(avatarDir, "me.png")
	require.NoError(t, os.WriteFile(avatarPath, []byte("img"), 0o644))

	_, err := svc.Update(context.Background(), created.ID, &UpdateUserDTO{
		Avatar: &models.Avatar{Filename: "me.png"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = os.Stat(avatarPath)
	assert.True(t, os.IsNotExist(err))
}

func TestOverview(t *testing.T) {
	svc, _, _ := newService(t)
	seed(t, svc, "root", "admin")
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5", "u6"} {
		seed(t, svc, name, "")
	}

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(7), stats.Total)
	assert.Equal(t, int64(1), stats.Admins)
	assert.Equal(t, int64(6), stats.Regular)
	require.Len(t, stats.RecentUsers, 5)
	assert.Equal(t, "u6", stats.RecentUsers[0].Username)
}
