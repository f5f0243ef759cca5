package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/egorv/homebook/internal/catalog"
	"github.com/egorv/homebook/internal/domain"
	"github.com/egorv/homebook/internal/pricing"
	"github.com/egorv/homebook/internal/store"
)

type CartHandler struct {
	cart    *store.CartStore
	catalog CatalogProvider
	timeout time.Duration
}

func NewCartHandler(cart *store.CartStore, catalog CatalogProvider, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cart,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ServiceID string `json:"service_id"`
}

type CartResponseDTO struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total string            `json:"total"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ServiceID == "" {
		respondError(w, http.StatusBadRequest, "invalid_service_id", "service_id is required")
		return
	}

	service, err := h.catalog.GetService(ctx, req.ServiceID)
	if errors.Is(err, catalog.ErrServiceNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "service not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load service")
		return
	}

	h.cart.Add(domain.CartItem{
		ID:    service.ID,
		Name:  service.Name,
		Price: domain.PriceFromString(service.Price),
	})

	respondJSON(w, http.StatusCreated, h.cartResponse())
}

// DELETE /api/v1/cart/items/{index}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	indexStr := chi.URLParam(r, "index")
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_index", "index must be an integer")
		return
	}

	if err := h.cart.RemoveAt(index); err != nil {
		if errors.Is(err, store.ErrOutOfRange) {
			respondError(w, http.StatusBadRequest, "index_out_of_range", "no cart item at that position")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove item")
		return
	}

	respondJSON(w, http.StatusOK, h.cartResponse())
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) cartResponse() CartResponseDTO {
	items := h.cart.Snapshot()
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponseDTO{
		Items: items,
		Count: len(items),
		Total: pricing.FormatAmount(h.cart.Total()),
	}
}
