package postgres

import (
	"context"
	"fmt"

	"cryptoexchange/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CurrencyRepository struct {
	pool *pgxpool.Pool
}

func (r *CurrencyRepository) ListAll(ctx context.Context) ([]domain.Currency, error) {
	const q = `
        select code, name, type, usd_pegged, is_active, min_amount, max_amount
        from currencies
        order by code;
    `

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to select currencies: %w", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		var c domain.Currency
		if err = rows.Scan(&c.Code, &c.Name, &c.Type, &c.USDPegged, &c.IsActive, &c.MinAmount, &c.MaxAmount); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate currencies: %w", err)
	}

	return currencies, nil
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}
