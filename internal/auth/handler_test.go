// AngelaMos | 2026
// handler_test.go

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/dwellingly-api/internal/middleware"
)

func testAuthRouter(t *testing.T, svc *Service, userID string) http.Handler {
	t.Helper()

	r := chi.NewRouter()
	authn := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(
				req.Context(),
				middleware.UserIDKey,
				userID,
			)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
	NewHandler(svc).RegisterRoutes(r, authn)
	return r
}

func TestHandlerLogoutAll_RevokesCallersSessions(t *testing.T) {
	var revokedUser string
	repo := &mockTokenRepo{
		revokeAllForUserFn: func(_ context.Context, userID string) error {
			revokedUser = userID
			return nil
		},
	}
	svc := testService(t, repo, &mockUserProvider{})
	router := testAuthRouter(t, svc, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/logout-all", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-1", revokedUser)
}

func TestHandlerLogoutAll_NoIdentity(t *testing.T) {
	var revoked bool
	repo := &mockTokenRepo{
		revokeAllForUserFn: func(_ context.Context, _ string) error {
			revoked = true
			return nil
		},
	}
	svc := testService(t, repo, &mockUserProvider{})
	router := testAuthRouter(t, svc, "")

	req := httptest.NewRequest(http.MethodPost, "/logout-all", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, revoked)
}
