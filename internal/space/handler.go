// AngelaMos | 2026
// handler.go

package space

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
	v := core.NewValidator()
	RegisterValidations(v)

	return &Handler{
		service:   service,
		validator: v,
	}
}

// RegisterTenantRoutes mounts the applicant's own view under a tenant router.
func (h *Handler) RegisterTenantRoutes(r chi.Router) {
	r.Route("/applications", func(r chi.Router) {
		r.Post("/", h.Submit)
		r.Get("/", h.ListMine)
		r.Get("/{applicationID}", h.GetMine)
	})
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/applications", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{applicationID}", h.Get)
		r.Put("/{applicationID}/status", h.UpdateStatus)
		r.Post("/{applicationID}/comments", h.AddComment)
		r.Delete("/{applicationID}", h.Delete)
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	a, err := h.service.Submit(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.WriteError(w, err, "application")
		return
	}

	core.Created(w, ToApplicationResponse(a))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.WriteError(w, err, "application")
		return
	}

	core.Listed(w, ToApplicationResponseList(items), len(items), len(items))
}

func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.GetOwned(
		r.Context(),
		chi.URLParam(r, "applicationID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		core.WriteError(w, err, "application")
		return
	}

	core.OK(w, ToDetailResponse(d))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := listview.ParseQuery(r.URL.Query(), ListSpec())

	result, err := h.service.List(r.Context(), q)
	if err != nil {
		core.WriteError(w, err, "application")
		return
	}

	core.Listed(w, ToApplicationResponseList(result.Items), result.Total, result.Matched)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(r.Context(), chi.URLParam(r, "applicationID"))
	if err != nil {
		core.WriteError(w, err, "application")
		return
	}

	core.OK(w, ToDetailResponse(d))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	a, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "applicationID"), req)
	if err != nil {
		core.WriteError(w, err, "application")
		return
	}

	core.OK(w, ToApplicationResponse(a))
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	c, err := h.service.AddComment(
		r.Context(),
		chi.URLParam(r, "applicationID"),
		middleware.GetUserID(r.Context()),
		req.Body,
	)
	if err != nil {
		core.WriteError(w, err, "application")
		return
	}

	core.Created(w, ToCommentResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "applicationID")); err != nil {
		core.WriteError(w, err, "application")
		return
	}

	core.NoContent(w)
}
