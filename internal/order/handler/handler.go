package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cryptoexchange/internal/domain"
	"cryptoexchange/internal/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	Quote(ctx context.Context, in order.QuoteInput) (domain.OrderPricing, error)
	Create(ctx context.Context, in order.CreateInput) (domain.Order, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, in order.StatusInput) (domain.Order, error)
}

type Handler struct {
	service OrderService
}

func NewOrderHandler(service OrderService) *Handler {
	return &Handler{service: service}
}

type quoteRequest struct {
	FromCurrency string          `json:"fromCurrency" example:"USDT"`
	ToCurrency   string          `json:"toCurrency" example:"RUB"`
	FromAmount   decimal.Decimal `json:"fromAmount" swaggertype:"string" example:"1000"`
	RateType     string          `json:"rateType" example:"fixed"`
}

func (q quoteRequest) input() order.QuoteInput {
	return order.QuoteInput{
		FromCurrency: strings.ToUpper(strings.TrimSpace(q.FromCurrency)),
		ToCurrency:   strings.ToUpper(strings.TrimSpace(q.ToCurrency)),
		FromAmount:   q.FromAmount,
		RateType:     domain.RateType(strings.ToLower(strings.TrimSpace(q.RateType))),
	}
}

type createOrderRequest struct {
	quoteRequest
	PayoutTarget string `json:"payoutTarget" example:"4111111111111111"`
}

type updateStatusRequest struct {
	Status        string  `json:"status" example:"confirmed"`
	DepositTxHash *string `json:"depositTxHash,omitempty"`
	PayoutTxHash  *string `json:"payoutTxHash,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// statusFor maps service errors to HTTP codes. Anything unknown is an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCurrencyNotFound), errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientAmount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidStatusTransition), errors.Is(err, domain.ErrOrderStatusConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCurrencyInactive),
		errors.Is(err, domain.ErrSameCurrency),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountOutOfRange),
		errors.Is(err, domain.ErrInvalidRateType),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrPayoutTargetRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
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
