package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blogzone/core/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func run(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, err)
	return w
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", apperrors.WithMessage(apperrors.ErrNotFound, "Blog not found"), http.StatusNotFound, "Blog not found"},
		{"unauthenticated", apperrors.ErrUnauthenticated, http.StatusUnauthorized, "Authentication required"},
		{"forbidden", apperrors.WithMessage(apperrors.ErrForbidden, "Admin access required"), http.StatusForbidden, "Admin access required"},
		{"conflict maps to 400", apperrors.WithMessage(apperrors.ErrConflict, "User already exists"), http.StatusBadRequest, "User already exists"},
		{"invalid operation maps to 400", apperrors.WithMessage(apperrors.ErrInvalidOperation, "Cannot delete your own account"), http.StatusBadRequest, "Cannot delete your own account"},
		{"validation maps to 400", apperrors.WithMessage(apperrors.ErrValidation, "Invalid role"), http.StatusBadRequest, "Invalid role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := run(tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestErrorHidesInternalDetail(t *testing.T) {
	w := run(errors.New("dial tcp 127.0.0.1:27017: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Server error")
	assert.NotContains(t, w.Body.String(), "27017")
}

func TestIsClientSafe(t *testing.T) {
	assert.True(t, apperrors.IsClientSafe(apperrors.WithMessage(apperrors.ErrConflict, "dup")))
	assert.False(t, apperrors.IsClientSafe(errors.New("disk on fire")))
}
