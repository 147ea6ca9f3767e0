// AngelaMos | 2026
// handler.go

package booking

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
	r.Post("/bookings", h.Create)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{bookingID}", h.Get)
		r.Put("/{bookingID}/status", h.UpdateStatus)
		r.Delete("/{bookingID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	b, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.WriteError(w, err, "booking")
		return
	}

	core.Created(w, ToBookingResponse(b))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := listview.ParseQuery(r.URL.Query(), ListSpec())

	result, err := h.service.List(r.Context(), q)
	if err != nil {
		core.WriteError(w, err, "booking")
		return
	}

	core.Listed(w, ToBookingResponseList(result.Items), result.Total, result.Matched)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		core.WriteError(w, err, "booking")
		return
	}

	core.OK(w, ToBookingResponse(b))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	b, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "bookingID"), req.Status)
	if err != nil {
		core.WriteError(w, err, "booking")
		return
	}

	core.OK(w, ToBookingResponse(b))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "bookingID")); err != nil {
		core.WriteError(w, err, "booking")
		return
	}

	core.NoContent(w)
}
