package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// GetOrder godoc
// @Summary Get order by ID
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID (UUID)" example(7c3f3f1e-2a59-4b8e-9e21-6f9f1b0a8d11)
// @Success 200 {object} domain.Order
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /orders/{id} [get]
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusNotFound {
			writeError(w, code, "order not found")
			return
		}
		msg := "ups, couldn't get order this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetOrder", "order_id": id}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, found)
}
