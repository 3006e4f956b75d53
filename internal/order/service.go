package order

import (
	"context"
	"fmt"
	"strings"

	"cryptoexchange/internal/adapters"
	"cryptoexchange/internal/domain"
	"cryptoexchange/internal/metrics"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type OrderPricer interface {
	PriceOrder(ctx context.Context, from, to string, fromAmount decimal.Decimal, rateType domain.RateType) (domain.OrderPricing, error)
}

type QuoteInput struct {
	FromCurrency string
	ToCurrency   string
	FromAmount   decimal.Decimal
	RateType     domain.RateType
}

type CreateInput struct {
	QuoteInput
	PayoutTarget string
}

type StatusInput struct {
	Status        domain.OrderStatus
	DepositTxHash *string
	PayoutTxHash  *string
}

type Service struct {
	catalog    CurrencyCatalog
	pricer     OrderPricer
	repo       adapters.OrderRepository
	publisher  adapters.OrderEventPublisher
	deposits   DepositAddresses
	references func() string
	clock      clockwork.Clock
	metrics    *metrics.Metrics
}

// Quote prices an order for active currencies without persisting it.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (domain.OrderPricing, error) {
	if err := s.checkCurrencies(in.FromCurrency, in.ToCurrency, in.FromAmount); err != nil {
		return domain.OrderPricing{}, err
	}
	return s.pricer.PriceOrder(ctx, in.FromCurrency, in.ToCurrency, in.FromAmount, in.RateType)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Order, error) {
	payoutTarget := maskPayoutTarget(in.PayoutTarget)
	if payoutTarget == "" {
		return domain.Order{}, domain.ErrPayoutTargetRequired
	}

	pricing, err := s.Quote(ctx, in.QuoteInput)
	if err != nil {
		return domain.Order{}, err
	}

	depositAddress, err := s.deposits.AddressFor(pricing.FromCurrency)
	if err != nil {
		return domain.Order{}, err
	}

	now := s.clock.Now()
	order := domain.Order{
		ID:             uuid.New(),
		Reference:      s.references(),
		FromCurrency:   pricing.FromCurrency,
		ToCurrency:     pricing.ToCurrency,
		FromAmount:     pricing.FromAmount,
		ToAmount:       pricing.ToAmount,
		ExchangeRate:   pricing.ExchangeRate,
		RateSource:     pricing.RateSource,
		RateType:       pricing.RateType,
		PlatformFee:    pricing.PlatformFee,
		NetworkFee:     pricing.NetworkFee,
		RateLockExpiry: pricing.RateLockExpiry,
		Status:         domain.StatusAwaitingDeposit,
		DepositAddress: depositAddress,
		PayoutTarget:   payoutTarget,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err = s.repo.Create(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("failed to save order: %w", err)
	}
	s.metrics.OrdersCreatedTotal.WithLabelValues(string(order.RateType)).Inc()
	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"reference": order.Reference,
		"pair":      order.FromCurrency + "/" + order.ToCurrency,
		"source":    order.RateSource,
	}).Info("Order created")

	s.publish(ctx, domain.NewOrderEvent(domain.EventOrderCreated, order, "", now))
	return order, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus applies an admin-driven transition. Only forward moves of the state machine are accepted.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, in StatusInput) (domain.Order, error) {
	if !in.Status.Valid() {
		return domain.Order{}, domain.ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !current.Status.CanTransitionTo(in.Status) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, current.Status, in.Status)
	}

	now := s.clock.Now()
	if in.Status == domain.StatusConfirmed && current.RateLockExpired(now) {
		logrus.WithFields(logrus.Fields{
			"order_id":         current.ID,
			"rate_lock_expiry": current.RateLockExpiry,
		}).Warn("Confirming fixed-rate order after its rate lock expired")
	}

	updated, err := s.repo.UpdateStatus(ctx, domain.StatusUpdate{
		OrderID:       id,
		From:          current.Status,
		To:            in.Status,
		DepositTxHash: trimmedOrNil(in.DepositTxHash),
		PayoutTxHash:  trimmedOrNil(in.PayoutTxHash),
		UpdatedAt:     now,
	})
	if err != nil {
		return domain.Order{}, err
	}
	s.metrics.OrderTransitionsTotal.WithLabelValues(string(updated.Status)).Inc()

	s.publish(ctx, domain.NewOrderEvent(domain.EventOrderStatusChanged, updated, current.Status, now))
	return updated, nil
}

func (s *Service) checkCurrencies(from, to string, amount decimal.Decimal) error {
	fromCur, err := s.catalog.GetCurrency(from)
	if err != nil {
		return err
	}
	toCur, err := s.catalog.GetCurrency(to)
	if err != nil {
		return err
	}
	if fromCur.Code == toCur.Code {
		return fmt.Errorf("%w: %s", domain.ErrSameCurrency, fromCur.Code)
	}
	if !fromCur.IsActive {
		return fmt.Errorf("%w: %s", domain.ErrCurrencyInactive, fromCur.Code)
	}
	if !toCur.IsActive {
		return fmt.Errorf("%w: %s", domain.ErrCurrencyInactive, toCur.Code)
	}
	if amount.IsPositive() && !fromCur.AmountInRange(amount) {
		return fmt.Errorf("%w: %s must be between %s and %s", domain.ErrAmountOutOfRange, fromCur.Code, fromCur.MinAmount, fromCur.MaxAmount)
	}
	return nil
}

// publish never fails the caller: notifications are best effort.
func (s *Service) publish(ctx context.Context, event domain.OrderEvent) {
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.metrics.OrderEventsFailedTotal.Inc()
		logrus.WithError(err).WithFields(logrus.Fields{"order_id": event.OrderID, "event": event.Type}).Error("Failed to publish order event")
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

type logEventPublisher struct{}

func (logEventPublisher) PublishOrderEvent(_ context.Context, event domain.OrderEvent) error {
	logrus.WithFields(logrus.Fields{"order_id": event.OrderID, "event": event.Type, "status": event.Status}).Debug("Order event (no broker configured)")
	return nil
}

// NewService wires the order service. A nil publisher logs events instead of sending them.
func NewService(
	catalog CurrencyCatalog,
	pricer OrderPricer,
	repo adapters.OrderRepository,
	publisher adapters.OrderEventPublisher,
	deposits DepositAddresses,
	references func() string,
	clock clockwork.Clock,
	m *metrics.Metrics,
) *Service {
	if publisher == nil {
		publisher = logEventPublisher{}
	}
	return &Service{
		catalog:    catalog,
		pricer:     pricer,
		repo:       repo,
		publisher:  publisher,
		deposits:   deposits,
		references: references,
		clock:      clock,
		metrics:    m,
	}
}
