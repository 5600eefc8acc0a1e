package v1

import (
	"errors"
	"net/http"

	"dzstorefront-backend/internal/domain"
	"dzstorefront-backend/internal/usecase"
	"dzstorefront-backend/pkg/logger"
	"dzstorefront-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type OrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: uc}
}

// POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderUC.PlaceOrder(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrOrderUpstream) {
			logger.WithContext(r.Context()).Error().Err(err).Msg("Order forwarding failed")
			utils.WriteError(w, http.StatusBadGateway, "Failed to submit order")
			return
		}
		logger.WithContext(r.Context()).Warn().Err(err).Msg("Checkout rejected")
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}
