package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RateType string

const (
	RateFixed RateType = "fixed"
	RateFloat RateType = "float"
)

func (t RateType) Valid() bool {
	return t == RateFixed || t == RateFloat
}

type OrderStatus string

const (
	StatusAwaitingDeposit OrderStatus = "awaiting_deposit"
	StatusConfirmed       OrderStatus = "confirmed"
	StatusProcessing      OrderStatus = "processing"
	StatusCompleted       OrderStatus = "completed"
	StatusFailed          OrderStatus = "failed"
	StatusRefunded        OrderStatus = "refunded"
)

// next holds the forward step of the happy path; failed and refunded are reachable from any non-terminal state.
var next = map[OrderStatus]OrderStatus{
	StatusAwaitingDeposit: StatusConfirmed,
	StatusConfirmed:       StatusProcessing,
	StatusProcessing:      StatusCompleted,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusAwaitingDeposit, StatusConfirmed, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusRefunded
}

// CanTransitionTo reports whether the state machine allows moving from s to to.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if !s.Valid() || !to.Valid() || s.Terminal() {
		return false
	}
	if to == StatusFailed || to == StatusRefunded {
		return true
	}
	return next[s] == to
}

// OrderPricing is the priced snapshot an order is created from.
type OrderPricing struct {
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	FromAmount     decimal.Decimal `json:"fromAmount"`
	PlatformFee    decimal.Decimal `json:"platformFee"`
	NetworkFee     decimal.Decimal `json:"networkFee"`
	NetAmount      decimal.Decimal `json:"netAmount"`
	ToAmount       decimal.Decimal `json:"toAmount"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	RateSource     RateSource      `json:"rateSource"`
	RateType       RateType        `json:"rateType"`
	RateLockExpiry *time.Time      `json:"rateLockExpiry"`
	PricedAt       time.Time       `json:"pricedAt"`
}

type Order struct {
	ID             uuid.UUID       `json:"id"`
	Reference      string          `json:"reference"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	FromAmount     decimal.Decimal `json:"fromAmount"`
	ToAmount       decimal.Decimal `json:"toAmount"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	RateSource     RateSource      `json:"rateSource"`
	RateType       RateType        `json:"rateType"`
	PlatformFee    decimal.Decimal `json:"platformFee"`
	NetworkFee     decimal.Decimal `json:"networkFee"`
	RateLockExpiry *time.Time      `json:"rateLockExpiry"`
	Status         OrderStatus     `json:"status"`
	DepositAddress string          `json:"depositAddress"`
	PayoutTarget   string          `json:"payoutTarget"`
	DepositTxHash  *string         `json:"depositTxHash"`
	PayoutTxHash   *string         `json:"payoutTxHash"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// RateLockExpired is true for fixed-rate orders whose lock has passed at now.
func (o Order) RateLockExpired(now time.Time) bool {
	return o.RateType == RateFixed && o.RateLockExpiry != nil && now.After(*o.RateLockExpiry)
}

// StatusUpdate moves an order from From to To, optionally recording transaction hashes.
type StatusUpdate struct {
	OrderID       uuid.UUID
	From          OrderStatus
	To            OrderStatus
	DepositTxHash *string
	PayoutTxHash  *string
	UpdatedAt     time.Time
}

type OrderEventType string

const (
	EventOrderCreated       OrderEventType = "order.created"
	EventOrderStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent is published for notification consumers.
type OrderEvent struct {
	Type           OrderEventType  `json:"type"`
	OrderID        uuid.UUID       `json:"orderId"`
	Reference      string          `json:"reference"`
	Status         OrderStatus     `json:"status"`
	PreviousStatus OrderStatus     `json:"previousStatus,omitempty"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	FromAmount     decimal.Decimal `json:"fromAmount"`
	ToAmount       decimal.Decimal `json:"toAmount"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

func NewOrderEvent(eventType OrderEventType, o Order, previous OrderStatus, at time.Time) OrderEvent {
	return OrderEvent{
		Type:           eventType,
		OrderID:        o.ID,
		Reference:      o.Reference,
		Status:         o.Status,
		PreviousStatus: previous,
		FromCurrency:   o.FromCurrency,
		ToCurrency:     o.ToCurrency,
		FromAmount:     o.FromAmount,
		ToAmount:       o.ToAmount,
		OccurredAt:     at,
	}
}
