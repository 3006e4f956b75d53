package postgres

import (
	"context"
	"errors"
	"fmt"

	"cryptoexchange/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `
    id, reference, from_currency, to_currency, from_amount, to_amount, exchange_rate, rate_source,
    rate_type, platform_fee, network_fee, rate_lock_expiry, status, deposit_address, payout_target,
    deposit_tx_hash, payout_tx_hash, created_at, updated_at`

type OrderRepository struct {
	pool *pgxpool.Pool
}

func (r *OrderRepository) Create(ctx context.Context, o domain.Order) error {
	const q = `insert into orders (` + orderColumns + `)
        values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`

	if _, err := r.pool.Exec(ctx, q,
		o.ID, o.Reference, o.FromCurrency, o.ToCurrency, o.FromAmount, o.ToAmount, o.ExchangeRate, o.RateSource,
		o.RateType, o.PlatformFee, o.NetworkFee, o.RateLockExpiry, o.Status, o.DepositAddress, o.PayoutTarget,
		o.DepositTxHash, o.PayoutTxHash, o.CreatedAt, o.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert order %s: %w", o.ID, err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	q := `select ` + orderColumns + ` from orders where id = $1;`

	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to select order %s: %w", id, err)
	}
	return o, nil
}

// UpdateStatus is a compare-and-set on the status column: the row only changes if it is still in update.From.
func (r *OrderRepository) UpdateStatus(ctx context.Context, update domain.StatusUpdate) (domain.Order, error) {
	q := `
        update orders
        set status = $3,
            deposit_tx_hash = coalesce($4, deposit_tx_hash),
            payout_tx_hash = coalesce($5, payout_tx_hash),
            updated_at = $6
        where id = $1 and status = $2
        returning ` + orderColumns + `;`

	o, err := scanOrder(r.pool.QueryRow(ctx, q,
		update.OrderID, update.From, update.To, update.DepositTxHash, update.PayoutTxHash, update.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("%w: order %s is no longer %s", domain.ErrOrderStatusConflict, update.OrderID, update.From)
		}
		return domain.Order{}, fmt.Errorf("failed to update order %s status: %w", update.OrderID, err)
	}
	return o, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.Reference, &o.FromCurrency, &o.ToCurrency, &o.FromAmount, &o.ToAmount, &o.ExchangeRate, &o.RateSource,
		&o.RateType, &o.PlatformFee, &o.NetworkFee, &o.RateLockExpiry, &o.Status, &o.DepositAddress, &o.PayoutTarget,
		&o.DepositTxHash, &o.PayoutTxHash, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}
