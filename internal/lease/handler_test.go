// AngelaMos | 2026
// handler_test.go

package lease

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
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

func TestHandlerList_Envelope(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockTenantDir{}, &mockPropertyDir{})
	router := testRouter(svc, policy.SomeRole(policy.RoleStaff))

	req := httptest.NewRequest(http.MethodGet, "/lease", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Leases": []}`, rec.Body.String())
}

func TestHandlerCreate_SuccessMessage(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockTenantDir{}, &mockPropertyDir{})
	router := testRouter(svc, policy.SomeRole(policy.RoleStaff))

	body := `{
		"tenantID": "7b9d1c68-4f34-4a0e-9a2d-0f6a1f0b3c5e",
		"dateTimeStart": "2026-01-01",
		"dateTimeEnd": "2027-01-01"
	}`
	req := httptest.NewRequest(
		http.MethodPost,
		"/lease",
		strings.NewReader(body),
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(
		t,
		`{"message": "Lease created successfully"}`,
		rec.Body.String(),
	)
}

func TestHandlerCreate_MissingDates(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockTenantDir{}, &mockPropertyDir{})
	router := testRouter(svc, policy.SomeRole(policy.RoleStaff))

	body := `{"tenantID": "7b9d1c68-4f34-4a0e-9a2d-0f6a1f0b3c5e"}`
	req := httptest.NewRequest(
		http.MethodPost,
		"/lease",
		strings.NewReader(body),
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerGet_NotFoundBody(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockTenantDir{}, &mockPropertyDir{})
	router := testRouter(svc, policy.SomeRole(policy.RoleStaff))

	req := httptest.NewRequest(http.MethodGet, "/lease/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message": "Lease not found"}`, rec.Body.String())
}

func TestHandlerDelete_MessageBody(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockTenantDir{}, &mockPropertyDir{})
	router := testRouter(svc, policy.SomeRole(policy.RoleStaff))

	req := httptest.NewRequest(http.MethodDelete, "/lease/lease-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Lease deleted"}`, rec.Body.String())
}

// Users no admin has assigned a role yet cannot touch leases.
func TestHandler_UnassignedRoleDenied(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockTenantDir{}, &mockPropertyDir{})
	router := testRouter(svc, policy.NullRole{})

	req := httptest.NewRequest(http.MethodGet, "/lease", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
