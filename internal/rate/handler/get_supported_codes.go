package handler

import (
	"net/http"
)

type GetSupportedCodesResponse struct {
	Codes []string `json:"codes" example:"BTC,RUB,USDT"`
	Total int      `json:"total" example:"3"`
}

// GetSupportedCodes godoc
// @Summary List supported currencies
// @Description Currency codes known to the catalog, sorted. Inactive currencies are listed too: they can be quoted for rates but not ordered.
// @Tags Rates
// @Produce json
// @Success 200 {object} GetSupportedCodesResponse
// @Failure 503 {object} errorResponse
// @Router /rates/supported-currencies [get]
func (h *Handler) GetSupportedCodes(w http.ResponseWriter, _ *http.Request) {
	codes := h.validator.SupportedCodes()
	if len(codes) == 0 {
		writeError(w, http.StatusServiceUnavailable, "currency catalog is empty")
		return
	}
	writeJSON(w, http.StatusOK, GetSupportedCodesResponse{Codes: codes, Total: len(codes)})
}
