package httpapi

import (
	"net/http"
	"time"

	"github.com/egorv/homebook/internal/domain"
	"github.com/egorv/homebook/internal/store"
)

type OrdersHandler struct {
	history *store.OrderHistory
}

func NewOrdersHandler(history *store.OrderHistory) *OrdersHandler {
	return &OrdersHandler{history: history}
}

type OrderResponseDTO struct {
	ID            string            `json:"id"`
	OrderDate     string            `json:"order_date"`
	PaymentMethod string            `json:"payment_method"`
	TotalAmount   string            `json:"total_amount"`
	TransactionID string            `json:"transaction_id"`
	Services      []domain.CartItem `json:"services"`
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	dtos := make([]OrderResponseDTO, 0, h.history.Len())
	for order := range h.history.All() {
		dtos = append(dtos, convertOrder(order))
	}

	respondJSON(w, http.StatusOK, dtos)
}

func convertOrder(o domain.Order) OrderResponseDTO {
	services := o.Services
	if services == nil {
		services = []domain.CartItem{}
	}
	return OrderResponseDTO{
		ID:            o.ID.String(),
		OrderDate:     o.OrderDate.Format(time.DateOnly),
		PaymentMethod: o.PaymentMethod.String(),
		TotalAmount:   o.TotalAmount,
		TransactionID: o.TransactionID,
		Services:      services,
	}
}
