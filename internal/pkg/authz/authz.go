// Package authz holds the pure authorization decisions applied at handler
// boundaries. Every function takes the caller (nil for anonymous) and returns
// nil or a sentinel-wrapped error; nothing here touches storage.
package authz

import (
	"github.com/blogzone/core/internal/models"
	"github.com/blogzone/core/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Authenticate fails unless the request carries a valid session.
func Authenticate(caller *models.User) error {
	if caller == nil {
		return apperrors.ErrUnauthenticated
	}
	return nil
}

// RequireAdmin fails unless the caller holds the admin role.
func RequireAdmin(caller *models.User) error {
	if err := Authenticate(caller); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return apperrors.WithMessage(apperrors.ErrForbidden, "Admin access required")
	}
	return nil
}

// RequireOwnerOrAdmin succeeds iff the caller owns the resource or is admin.
func RequireOwnerOrAdmin(caller *models.User, ownerID primitive.ObjectID) error {
	if err := Authenticate(caller); err != nil {
		return err
	}
	if caller.ID != ownerID && !caller.IsAdmin() {
		return apperrors.WithMessage(apperrors.ErrForbidden, "Not authorized")
	}
	return nil
}

// RequireNotSelf blocks operations a caller may not apply to their own
// account, such as an admin deleting themselves.
func RequireNotSelf(caller *models.User, targetID primitive.ObjectID) error {
	if err := Authenticate(caller); err != nil {
		return err
	}
	if caller.ID == targetID {
		return apperrors.WithMessage(apperrors.ErrInvalidOperation, "Cannot delete your own account")
	}
	return nil
}
