package handler

import (
	"net/http"

	"cryptoexchange/internal/order"

	"github.com/sirupsen/logrus"
)

// CreateOrder godoc
// @Summary Create an order
// @Description Price and persist an exchange order. The order starts in awaiting_deposit with the exchange deposit address for the source asset.
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body createOrderRequest true "Order request"
// @Success 201 {object} domain.Order
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /orders [post]
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), order.CreateInput{
		QuoteInput:   req.input(),
		PayoutTarget: req.PayoutTarget,
	})
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			msg := "ups, couldn't create order this time"
			logrus.WithError(err).WithField("handler", "CreateOrder").Error(msg)
			writeError(w, code, msg)
			return
		}
		writeError(w, code, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
