package adapters

import (
	"context"

	"cryptoexchange/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceSource wraps one upstream market-data provider.
type PriceSource interface {
	Name() string
	FetchUSDPrice(ctx context.Context, currency domain.Currency) (decimal.Decimal, error)
}

type RateCache interface {
	Get(ctx context.Context, pair domain.CurrencyPair) (domain.ResolvedRate, bool)
	Set(ctx context.Context, rate domain.ResolvedRate)
}

type CurrencyRepository interface {
	ListAll(ctx context.Context) ([]domain.Currency, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error)
	UpdateStatus(ctx context.Context, update domain.StatusUpdate) (domain.Order, error)
}

type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type RateBroadcaster interface {
	Broadcast(ctx context.Context, payload any) int
}
