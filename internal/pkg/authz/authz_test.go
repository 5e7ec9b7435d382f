package authz

import (
	"testing"

	"github.com/blogzone/core/internal/models"
	"github.com/blogzone/core/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func admin() *models.User {
	return &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
}

func regular() *models.User {
	return &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
}

func TestAuthenticate(t *testing.T) {
	assert.ErrorIs(t, Authenticate(nil), apperrors.ErrUnauthenticated)
	assert.NoError(t, Authenticate(regular()))
}

func TestRequireAdmin(t *testing.T) {
	assert.ErrorIs(t, RequireAdmin(nil), apperrors.ErrUnauthenticated)
	assert.ErrorIs(t, RequireAdmin(regular()), apperrors.ErrForbidden)
	assert.NoError(t, RequireAdmin(admin()))
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	owner := regular()
	other := regular()

	assert.NoError(t, RequireOwnerOrAdmin(owner, owner.ID))
	assert.NoError(t, RequireOwnerOrAdmin(admin(), owner.ID))
	assert.ErrorIs(t, RequireOwnerOrAdmin(other, owner.ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, RequireOwnerOrAdmin(nil, owner.ID), apperrors.ErrUnauthenticated)
}

func TestRequireNotSelf(t *testing.T) {
	a := admin()
	other := regular()

	assert.NoError(t, RequireNotSelf(a, other.ID))
	assert.ErrorIs(t, RequireNotSelf(a, a.ID), apperrors.ErrInvalidOperation)
	assert.ErrorIs(t, RequireNotSelf(nil, other.ID), apperrors.ErrUnauthenticated)
}
