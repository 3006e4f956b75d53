package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// QuoteOrder godoc
// @Summary Quote an order
// @Description Price an exchange without creating it: fees, net amount, payout amount and rate lock for fixed-rate quotes.
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body quoteRequest true "Quote request"
// @Success 200 {object} domain.OrderPricing
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /orders/quote [post]
func (h *Handler) QuoteOrder(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := req.input()
	pricing, err := h.service.Quote(r.Context(), in)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			msg := "ups, couldn't quote this order"
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "QuoteOrder", "from": in.FromCurrency, "to": in.ToCurrency}).Error(msg)
			writeError(w, code, msg)
			return
		}
		writeError(w, code, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pricing)
}
