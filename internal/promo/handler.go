// AngelaMos | 2026
// handler.go

package promo

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
	v := core.NewValidator()
	RegisterValidations(v)

	return &Handler{
		service:   service,
		validator: v,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/promos/validate", h.Validate)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/promos", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{promoID}", h.Get)
		r.Put("/{promoID}", h.Update)
		r.Put("/{promoID}/active", h.UpdateActive)
		r.Delete("/{promoID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := listview.ParseQuery(r.URL.Query(), h.service.ListSpec())

	result, err := h.service.List(r.Context(), q)
	if err != nil {
		core.WriteError(w, err, "promo code")
		return
	}

	core.Listed(w, ToPromoResponseList(result.Items, h.service.Now()), result.Total, result.Matched)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "promoID"))
	if err != nil {
		core.WriteError(w, err, "promo code")
		return
	}

	core.OK(w, ToPromoResponse(p, h.service.Now()))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePromoRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.WriteError(w, err, "promo code")
		return
	}

	core.Created(w, ToPromoResponse(p, h.service.Now()))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePromoRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.Update(r.Context(), chi.URLParam(r, "promoID"), req)
	if err != nil {
		core.WriteError(w, err, "promo code")
		return
	}

	core.OK(w, ToPromoResponse(p, h.service.Now()))
}

func (h *Handler) UpdateActive(w http.ResponseWriter, r *http.Request) {
	var req UpdateActiveRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	p, err := h.service.SetActive(r.Context(), chi.URLParam(r, "promoID"), *req.IsActive)
	if err != nil {
		core.WriteError(w, err, "promo code")
		return
	}

	core.OK(w, ToPromoResponse(p, h.service.Now()))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "promoID")); err != nil {
		core.WriteError(w, err, "promo code")
		return
	}

	core.NoContent(w)
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	quote, err := h.service.Validate(r.Context(), req.Code, req.Amount.Float64())
	if err != nil {
		core.WriteError(w, err, "promo code")
		return
	}

	core.OK(w, quote)
}
