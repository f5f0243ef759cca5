package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/egorv/homebook/internal/checkout"
	"github.com/egorv/homebook/internal/domain"
)

type CheckoutHandler struct {
	pipeline *checkout.Pipeline
}

func NewCheckoutHandler(pipeline *checkout.Pipeline) *CheckoutHandler {
	return &CheckoutHandler{pipeline: pipeline}
}

type PaymentMethodRequestDTO struct {
	Method string `json:"method"`
}

type CheckoutStateDTO struct {
	State         string                `json:"state"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	Details       domain.BookingDetails `json:"details"`
}

// GET /api/v1/checkout
func (h *CheckoutHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.stateResponse())
}

// PUT /api/v1/checkout/details
func (h *CheckoutHandler) SetDetails(w http.ResponseWriter, r *http.Request) {
	var details domain.BookingDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.pipeline.SetDetails(details); err != nil {
		respondError(w, http.StatusConflict, "illegal_state", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.stateResponse())
}

// PUT /api/v1/checkout/payment-method
func (h *CheckoutHandler) SelectPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentMethodRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	method, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown_payment_method", err.Error())
		return
	}

	if err := h.pipeline.SelectPayment(method); err != nil {
		respondError(w, http.StatusConflict, "illegal_state", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.stateResponse())
}

// POST /api/v1/checkout/validate
func (h *CheckoutHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if err := h.pipeline.Validate(); err != nil {
		if reason, ok := checkout.ReasonForError(err); ok {
			respondError(w, http.StatusUnprocessableEntity, string(reason), err.Error())
			return
		}
		respondError(w, http.StatusConflict, "illegal_state", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.stateResponse())
}

// POST /api/v1/checkout/commit
func (h *CheckoutHandler) Commit(w http.ResponseWriter, r *http.Request) {
	if _, err := h.pipeline.Commit(); err != nil {
		if errors.Is(err, checkout.ErrIllegalState) {
			respondError(w, http.StatusConflict, "illegal_state", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	// Processing is asynchronous; the committed order shows up in the
	// order history once the payment delay elapses.
	respondJSON(w, http.StatusAccepted, h.stateResponse())
}

// POST /api/v1/checkout/abort
func (h *CheckoutHandler) Abort(w http.ResponseWriter, r *http.Request) {
	if err := h.pipeline.Abort(); err != nil {
		respondError(w, http.StatusConflict, "illegal_state", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.stateResponse())
}

func (h *CheckoutHandler) stateResponse() CheckoutStateDTO {
	return CheckoutStateDTO{
		State:         h.pipeline.State().String(),
		PaymentMethod: h.pipeline.Method().String(),
		Details:       h.pipeline.Details(),
	}
}
