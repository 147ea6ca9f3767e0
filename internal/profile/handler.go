// AngelaMos | 2026
// handler.go

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/listview"
	"github.com/carterperez-dev/foodhall/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/profiles", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/me", h.GetMe)
		r.Put("/me", h.UpdateMe)
		r.Delete("/me", h.DeleteMe)
	})
}

// RegisterAdminRoutes mounts profile management under an admin-only router.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{profileID}", h.Get)
		r.Put("/{profileID}", h.Update)
		r.Put("/{profileID}/role", h.UpdateRole)
		r.Put("/{profileID}/active", h.UpdateActive)
		r.Delete("/{profileID}", h.Delete)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.WriteError(w, err, "profile")
		return
	}

	core.OK(w, ToProfileResponse(p))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.Update(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.WriteError(w, err, "profile")
		return
	}

	core.OK(w, ToProfileResponse(p))
}

func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		core.WriteError(w, err, "profile")
		return
	}

	core.NoContent(w)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := listview.ParseQuery(r.URL.Query(), listSpec)

	result, err := h.service.List(r.Context(), q)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Listed(w, ToProfileResponseList(result.Items), result.Total, result.Matched)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "profileID"))
	if err != nil {
		core.WriteError(w, err, "profile")
		return
	}

	core.OK(w, ToProfileResponse(p))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.Update(r.Context(), chi.URLParam(r, "profileID"), req)
	if err != nil {
		core.WriteError(w, err, "profile")
		return
	}

	core.OK(w, ToProfileResponse(p))
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.SetRole(r.Context(), chi.URLParam(r, "profileID"), req.Role)
	if err != nil {
		core.WriteError(w, err, "profile")
		return
	}

	core.OK(w, ToProfileResponse(p))
}

func (h *Handler) UpdateActive(w http.ResponseWriter, r *http.Request) {
	var req UpdateActiveRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.SetActive(r.Context(), chi.URLParam(r, "profileID"), *req.IsActive)
	if err != nil {
		core.WriteError(w, err, "profile")
		return
	}

	core.OK(w, ToProfileResponse(p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetUserID(r.Context())
	targetID := chi.URLParam(r, "profileID")

	if err := h.service.CanDelete(r.Context(), requesterID, targetID); err != nil {
		core.WriteError(w, err, "profile")
		return
	}

	if err := h.service.Delete(r.Context(), targetID); err != nil {
		core.WriteError(w, err, "profile")
		return
	}

	core.NoContent(w)
}
