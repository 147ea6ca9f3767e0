// AngelaMos | 2026
// handler.go

package menu

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
	r.Route("/menu", func(r chi.Router) {
		r.Get("/", h.ListPublic)
		r.Get("/{itemID}", h.GetPublic)
	})
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/menu", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{itemID}", h.Get)
		r.Put("/{itemID}", h.Update)
		r.Put("/{itemID}/availability", h.UpdateAvailability)
		r.Delete("/{itemID}", h.Delete)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Post("/", h.CreateRecipe)
		r.Get("/{recipeID}", h.GetRecipe)
	})
}

func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, onlyAvailable bool) {
	q := listview.ParseQuery(r.URL.Query(), ListSpec())

	result, err := h.service.List(r.Context(), q, onlyAvailable)
	if err != nil {
		core.WriteError(w, err, "menu item")
		return
	}

	core.Listed(w, ToItemResponseList(result.Items), result.Total, result.Matched)
}

func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, true)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, false)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, onlyAvailable bool) {
	d, err := h.service.Get(r.Context(), chi.URLParam(r, "itemID"), onlyAvailable)
	if err != nil {
		core.WriteError(w, err, "menu item")
		return
	}

	core.OK(w, ToDetailResponse(d))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	i, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.WriteError(w, err, "menu item")
		return
	}

	core.Created(w, ToItemResponse(i))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	i, err := h.service.Update(r.Context(), chi.URLParam(r, "itemID"), req)
	if err != nil {
		core.WriteError(w, err, "menu item")
		return
	}

	core.OK(w, ToItemResponse(i))
}

func (h *Handler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	i, err := h.service.SetAvailable(r.Context(), chi.URLParam(r, "itemID"), *req.IsAvailable)
	if err != nil {
		core.WriteError(w, err, "menu item")
		return
	}

	core.OK(w, ToItemResponse(i))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		core.WriteError(w, err, "menu item")
		return
	}

	core.NoContent(w)
}

func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req CreateRecipeRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	rec, err := h.service.CreateRecipe(r.Context(), req)
	if err != nil {
		core.WriteError(w, err, "recipe")
		return
	}

	core.Created(w, ToRecipeResponse(rec))
}

func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.GetRecipe(r.Context(), chi.URLParam(r, "recipeID"))
	if err != nil {
		core.WriteError(w, err, "recipe")
		return
	}

	core.OK(w, ToRecipeResponse(rec))
}
