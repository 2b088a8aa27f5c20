// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/middleware"
	"github.com/carterperez-dev/dwellingly-api/internal/policy"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.With(middleware.RequirePermission(
			policy.OpRead, policy.ResourceUser,
		)).Get("/", h.List)

		r.With(middleware.RequireAdmin).Post("/", h.Create)
		r.With(middleware.RequireAdmin).Get("/unassigned", h.ListUnassigned)

		r.Route("/{id}", func(r chi.Router) {
			r.With(middleware.RequirePermission(
				policy.OpRead, policy.ResourceUser,
			)).Get("/", h.Get)

			r.With(middleware.RequirePermission(
				policy.OpUpdate, policy.ResourceUser,
			)).Put("/", h.Update)

			r.With(middleware.RequirePermission(
				policy.OpArchive, policy.ResourceUser,
			)).Delete("/", h.ToggleArchive)

			r.With(middleware.RequireAdmin).Patch("/role", h.AssignRole)
		})
	})
}

// List serves plain listing plus the role/search filter queries used by
// the staff assignment pickers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	roleParam := r.URL.Query().Get("role")
	searchParam := r.URL.Query().Get("search")

	if roleParam != "" {
		roleValue, err := strconv.ParseInt(roleParam, 10, 16)
		if err != nil {
			core.BadRequest(w, "invalid role value")
			return
		}

		role, err := policy.ParseRole(int16(roleValue))
		if err != nil {
			core.BadRequest(w, "invalid role value")
			return
		}

		var users []User
		if searchParam != "" {
			users, err = h.service.SearchByRoleAndName(
				r.Context(), role, searchParam,
			)
		} else {
			users, err = h.service.FindByRole(r.Context(), role)
		}
		if err != nil {
			core.InternalServerError(w, err)
			return
		}

		core.OK(w, UserListResponse{Users: ToUserResponseList(users)})
		return
	}

	users, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UserListResponse{Users: ToUserResponseList(users)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("email"))
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid role value")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToUserResponse(u))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponse(u))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User")
			return
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("email"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponse(u))
}

// ToggleArchive is the DELETE verb: users are never removed, the
// archived flag flips and the response names the direction.
func (h *Handler) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, message, err := h.service.ToggleArchive(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, http.StatusOK, message)
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.AssignRole(r.Context(), id, req.Role)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid role value")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponse(u))
}

func (h *Handler) ListUnassigned(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.FindUnassigned(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UserListResponse{Users: ToUserResponseList(users)})
}
