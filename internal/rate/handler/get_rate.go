package handler

import (
	"errors"
	"net/http"
	"strings"

	"cryptoexchange/internal/currency"
	"cryptoexchange/internal/domain"
	"cryptoexchange/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// GetRate godoc
// @Summary Get exchange rate
// @Description Resolve the current rate for an ordered currency pair. Identity pairs such as BTC/BTC resolve to 1. A "source" of "unknown" means no live or configured rate was available and the value is a placeholder.
// @Tags Rates
// @Produce json
// @Param from path string true "Source currency code" example(BTC)
// @Param to path string true "Destination currency code" example(RUB)
// @Success 200 {object} rate.View
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/{from}/{to} [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	from := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "from")))
	to := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "to")))

	// identity pairs are served by the resolver
	if err := h.validator.ValidatePair(from, to); err != nil && !errors.Is(err, currency.ErrSameCodes) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resolved, err := h.resolver.Resolve(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrCurrencyNotFound) {
			writeError(w, http.StatusNotFound, "currency not found")
			return
		}
		msg := "ups, couldn't get rate this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetRate", "from": from, "to": to}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, rate.NewView(resolved))
}
