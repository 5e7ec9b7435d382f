package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blogzone/core/internal/middleware"
	"github.com/blogzone/core/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asUser injects a fixed caller the way the auth middleware would.
func asUser(u *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u != nil {
			c.Set(middleware.ContextKeyUser, u)
		}
		c.Next()
	}
}

func newRouter(t *testing.T, caller *models.User) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _, _ := newService(t)

	r := gin.New()
	api := r.Group("/api")
	NewHandler(svc).RegisterRoutes(api, asUser(caller))
	return r, svc
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesRequireAdmin(t *testing.T) {
	caller := &models.User{Username: "bob", Role: models.RoleUser}
	r, _ := newRouter(t, caller)

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/api/users"},
		{"GET", "/api/users/stats/overview"},
		{"POST", "/api/users"},
	}
	for _, tt := range tests {
		w := do(r, tt.method, tt.path, `{}`)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tt.method, tt.path)
		assert.Contains(t, w.Body.String(), "Admin access required")
	}
}

func TestStatsOverviewRoute(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin, Username: "root"}
	r, svc := newRouter(t, admin)
	seed(t, svc, "alice", "")

	w := do(r, "GET", "/api/users/stats/overview", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "totalUsers")
	assert.Contains(t, w.Body.String(), "recentUsers")
}

func TestGetRejectsMalformedID(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	r, _ := newRouter(t, admin)

	w := do(r, "GET", "/api/users/not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid user id")
}

func TestDeleteSelfBlocked(t *testing.T) {
	svc, store, _ := newService(t)
	admin := seed(t, svc, "root", "admin")
	stored, err := store.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	NewHandler(svc).RegisterRoutes(api, asUser(stored))

	w := do(r, "DELETE", "/api/users/"+admin.ID.Hex(), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot delete your own account")

	remaining, err := store.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.NotNil(t, remaining, "account still present")
}

func TestDeleteOtherUser(t *testing.T) {
	svc, store, _ := newService(t)
	admin := seed(t, svc, "root", "admin")
	victim := seed(t, svc, "alice", "")

	adminRec, err := store.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	NewHandler(svc).RegisterRoutes(api, asUser(adminRec))

	w := do(r, "DELETE", "/api/users/"+victim.ID.Hex(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, "GET", "/api/users/"+victim.ID.Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRejectsUnknownRoleOverHTTP(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	r, _ := newRouter(t, admin)

	w := do(r, "POST", "/api/users", `{"username":"eve","email":"eve@example.com","password":"secret1","role":"superadmin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid role")
}
