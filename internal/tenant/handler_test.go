// AngelaMos | 2026
// handler_test.go

package tenant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/dwellingly-api/internal/middleware"
	"github.com/carterperez-dev/dwellingly-api/internal/policy"
)

func testRouter(svc *Service, role policy.NullRole) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(
				req.Context(),
				middleware.UserRoleKey,
				role,
			)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func TestHandlerGet_NotFoundBody(t *testing.T) {
	svc := NewService(nil, &mockTenantRepo{}, &mockLeaseRepo{})
	router := testRouter(svc, policy.SomeRole(policy.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/tenants/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message": "Tenant not found"}`, rec.Body.String())
}

func TestHandlerList_Envelope(t *testing.T) {
	svc := NewService(nil, &mockTenantRepo{}, &mockLeaseRepo{})
	router := testRouter(svc, policy.SomeRole(policy.RoleStaff))

	req := httptest.NewRequest(http.MethodGet, "/tenants", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tenants": []}`, rec.Body.String())
}

func TestHandlerToggleArchive_MessageBody(t *testing.T) {
	existing := sampleTenant()
	repo := &mockTenantRepo{
		getByIDFn: func(_ context.Context, _ string) (*Tenant, error) {
			return existing, nil
		},
		setArchivedFn: func(_ context.Context, _ string, archived bool) error {
			existing.Archived = archived
			return nil
		},
	}
	svc := NewService(nil, repo, &mockLeaseRepo{})
	router := testRouter(svc, policy.SomeRole(policy.RoleAdmin))

	req := httptest.NewRequest(http.MethodDelete, "/tenants/tenant-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Tenant archived"}`, rec.Body.String())
}

// Staff can read tenants but not archive them; property managers can
// create and update but not archive either.
func TestHandler_ArchiveRequiresAdmin(t *testing.T) {
	svc := NewService(nil, &mockTenantRepo{}, &mockLeaseRepo{})

	for _, role := range []policy.Role{
		policy.RoleStaff,
		policy.RolePropertyManager,
	} {
		router := testRouter(svc, policy.SomeRole(role))

		req := httptest.NewRequest(http.MethodDelete, "/tenants/tenant-1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, role.String())
	}
}

func TestHandler_StaffCannotCreate(t *testing.T) {
	svc := NewService(nil, &mockTenantRepo{}, &mockLeaseRepo{})
	router := testRouter(svc, policy.SomeRole(policy.RoleStaff))

	req := httptest.NewRequest(http.MethodPost, "/tenants", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
