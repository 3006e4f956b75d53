package handler

import (
	"net/http"
	"strings"

	"cryptoexchange/internal/domain"
	"cryptoexchange/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UpdateOrderStatus godoc
// @Summary Move an order to the next status
// @Description Admin endpoint. Allowed moves: awaiting_deposit → confirmed → processing → completed, and any non-terminal status → failed or refunded.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param request body updateStatusRequest true "New status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /orders/{id}/status [patch]
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusRequest
	if err = decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, order.StatusInput{
		Status:        domain.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status))),
		DepositTxHash: req.DepositTxHash,
		PayoutTxHash:  req.PayoutTxHash,
	})
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			msg := "ups, couldn't update order status"
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "UpdateOrderStatus", "order_id": id}).Error(msg)
			writeError(w, code, msg)
			return
		}
		writeError(w, code, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
