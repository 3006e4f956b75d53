package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"cryptoexchange/internal/domain"
)

type PairValidator interface {
	ValidatePair(from, to string) error
	SupportedCodes() []string
}

type RateResolver interface {
	Resolve(ctx context.Context, from, to string) (domain.ResolvedRate, error)
}

type Handler struct {
	validator PairValidator
	resolver  RateResolver
}

func NewRateHandler(validator PairValidator, resolver RateResolver) *Handler {
	return &Handler{validator: validator, resolver: resolver}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}
