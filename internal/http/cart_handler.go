package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/naturescrunch/storefront/internal/cart"
	"github.com/naturescrunch/storefront/internal/domain"
	"github.com/naturescrunch/storefront/internal/menu"
	"github.com/naturescrunch/storefront/pkg/money"
)

type CartHandler struct {
	carts   *cart.Service
	catalog *menu.Catalog
}

func NewCartHandler(carts *cart.Service, catalog *menu.Catalog) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
	}
}

type AddItemRequestDTO struct {
	ItemID string `json:"item_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartLineDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	UnitPrice        int64  `json:"unit_price"`
	UnitPriceDisplay string `json:"unit_price_display"`
	Quantity         int    `json:"quantity"`
	LineTotal        int64  `json:"line_total"`
}

type CartResponseDTO struct {
	Lines        []CartLineDTO `json:"lines"`
	Total        int64         `json:"total"`
	TotalDisplay string        `json:"total_display"`
	Count        int           `json:"count"`
}

func toCartResponse(c *cart.Cart) CartResponseDTO {
	lines := make([]CartLineDTO, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, CartLineDTO{
			ID:               l.ID,
			Name:             l.Name,
			UnitPrice:        l.UnitPrice,
			UnitPriceDisplay: money.Format(l.UnitPrice),
			Quantity:         l.Quantity,
			LineTotal:        l.LineTotal(),
		})
	}
	return CartResponseDTO{
		Lines:        lines,
		Total:        c.Total(),
		TotalDisplay: money.Format(c.Total()),
		Count:        c.Count(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	c, err := h.carts.Get(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	item, ok := h.catalog.Find(req.ItemID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "menu item not found")
		return
	}

	c, err := h.carts.AddItem(r.Context(), sessionID, domain.CartLine{
		ID:          item.ID,
		Name:        item.Name,
		UnitPrice:   item.Price,
		Description: item.Description,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add item")
		return
	}

	respondJSON(w, http.StatusCreated, toCartResponse(c))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	itemID := chi.URLParam(r, "item_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be 99 or less")
		return
	}

	// Quantity zero or below removes the line
	c, err := h.carts.SetQuantity(r.Context(), sessionID, itemID, req.Quantity)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update quantity")
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	itemID := chi.URLParam(r, "item_id")

	c, err := h.carts.RemoveItem(r.Context(), sessionID, itemID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove item")
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	if err := h.carts.Clear(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart.New(sessionID)))
}
