package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/naturescrunch/storefront/internal/checkout"
	"github.com/naturescrunch/storefront/internal/domain"
)

type CheckoutHandler struct {
	orch *checkout.Orchestrator
}

func NewCheckoutHandler(orch *checkout.Orchestrator) *CheckoutHandler {
	return &CheckoutHandler{orch: orch}
}

type CheckoutRequestDTO struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	PartySize       int    `json:"party_size,omitempty"`
	ReservationDate string `json:"reservation_date,omitempty"`
	ReservationTime string `json:"reservation_time,omitempty"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
}

type CompleteRequestDTO struct {
	Reference string `json:"reference"`
}

// Begin validates the cart and form and returns the widget setup
// parameters for the client to open the payment iframe with.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	details := domain.CustomerDetails{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		PartySize:       req.PartySize,
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		DeliveryAddress: req.DeliveryAddress,
	}

	params, err := h.orch.Begin(r.Context(), sessionID, details)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, params)
}

// Complete is the widget success callback.
func (h *CheckoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	var req CompleteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	conf, err := h.orch.Complete(r.Context(), ref, req.Reference)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, conf)
}

// Cancel is the widget onClose callback.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	if err := h.orch.Cancel(ref); err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled", "message": "payment cancelled"})
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	var belowMin *checkout.BelowMinimumError
	var validation *checkout.ValidationError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.As(err, &belowMin):
		respondError(w, http.StatusBadRequest, "minimum_spend_not_met", err.Error())
	case errors.As(err, &validation):
		respondError(w, http.StatusBadRequest, "missing_fields", err.Error())
	case errors.Is(err, checkout.ErrPaymentNotReady):
		respondError(w, http.StatusServiceUnavailable, "payment_not_ready", err.Error())
	case errors.Is(err, checkout.ErrPaymentNotConfigured):
		respondError(w, http.StatusServiceUnavailable, "payment_not_configured", err.Error())
	case errors.Is(err, checkout.ErrUnknownSession):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "an error occurred, please try again")
	}
}
