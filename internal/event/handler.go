// AngelaMos | 2026
// handler.go

package event

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/listview"
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

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListPublic)
		r.Get("/{eventID}", h.GetPublic)
		r.Post("/{eventID}/reserve", h.Reserve)
	})
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{eventID}", h.Get)
		r.Put("/{eventID}", h.Update)
		r.Put("/{eventID}/published", h.UpdatePublished)
		r.Delete("/{eventID}", h.Delete)
	})
}

func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	q := listview.ParseQuery(r.URL.Query(), ListSpec())

	result, err := h.service.List(r.Context(), q, publishedOnly)
	if err != nil {
		core.WriteError(w, err, "event")
		return
	}

	core.Listed(w, ToEventResponseList(result.Items), result.Total, result.Matched)
}

func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, true)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, false)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	e, err := h.service.Get(r.Context(), chi.URLParam(r, "eventID"), publishedOnly)
	if err != nil {
		core.WriteError(w, err, "event")
		return
	}

	core.OK(w, ToEventResponse(e))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	e, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.WriteError(w, err, "event")
		return
	}

	core.Created(w, ToEventResponse(e))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	e, err := h.service.Update(r.Context(), chi.URLParam(r, "eventID"), req)
	if err != nil {
		core.WriteError(w, err, "event")
		return
	}

	core.OK(w, ToEventResponse(e))
}

func (h *Handler) UpdatePublished(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	e, err := h.service.SetPublished(r.Context(), chi.URLParam(r, "eventID"), *req.IsPublished)
	if err != nil {
		core.WriteError(w, err, "event")
		return
	}

	core.OK(w, ToEventResponse(e))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "eventID")); err != nil {
		core.WriteError(w, err, "event")
		return
	}

	core.NoContent(w)
}

func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	e, err := h.service.Reserve(r.Context(), chi.URLParam(r, "eventID"), req.Seats.Int())
	if err != nil {
		core.WriteError(w, err, "event")
		return
	}

	core.OK(w, ToEventResponse(e))
}
