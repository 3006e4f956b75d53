package currency

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"cryptoexchange/internal/adapters"
	"cryptoexchange/internal/domain"
)

var (
	ErrFromRequired    = errors.New("from currency is required")
	ErrToRequired      = errors.New("to currency is required")
	ErrSameCodes       = errors.New("from and to must be different")
	ErrFromUnsupported = errors.New("from currency not supported")
	ErrToUnsupported   = errors.New("to currency not supported")
	ErrNoCurrencies    = errors.New("no supported currencies available")
)

// Catalog is an in-memory snapshot of the currencies table. Reload swaps the whole snapshot.
type Catalog struct {
	repo adapters.CurrencyRepository

	mu    sync.RWMutex
	byKey map[string]domain.Currency
	codes []string
}

func (c *Catalog) GetCurrency(code string) (domain.Currency, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cur, ok := c.byKey[code]
	if !ok {
		return domain.Currency{}, fmt.Errorf("%w: %s", domain.ErrCurrencyNotFound, code)
	}
	return cur, nil
}

func (c *Catalog) ValidatePair(from, to string) error {
	if from == "" {
		return ErrFromRequired
	}
	if to == "" {
		return ErrToRequired
	}
	if from == to {
		return ErrSameCodes
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.byKey[from]; !ok {
		return ErrFromUnsupported
	}
	if _, ok := c.byKey[to]; !ok {
		return ErrToUnsupported
	}
	return nil
}

func (c *Catalog) SupportedCodes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.codes)
}

// Reload replaces the snapshot with the repository contents. An empty result keeps the old snapshot.
func (c *Catalog) Reload(ctx context.Context) error {
	if c.repo == nil {
		return nil
	}
	currencies, err := c.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load currencies: %w", err)
	}
	if len(currencies) == 0 {
		return ErrNoCurrencies
	}
	c.replace(currencies)
	return nil
}

func (c *Catalog) replace(currencies []domain.Currency) {
	byKey := make(map[string]domain.Currency, len(currencies))
	for _, cur := range currencies {
		byKey[cur.Code] = cur
	}
	codes := slices.Collect(maps.Keys(byKey))
	slices.Sort(codes)

	c.mu.Lock()
	c.byKey = byKey
	c.codes = codes
	c.mu.Unlock()
}

// NewCatalog builds a catalog from a fixed list. Reload is a no-op for such catalogs.
func NewCatalog(currencies []domain.Currency) *Catalog {
	c := &Catalog{}
	c.replace(currencies)
	return c
}

// LoadCatalog builds a catalog backed by repo and loads it once.
func LoadCatalog(ctx context.Context, repo adapters.CurrencyRepository) (*Catalog, error) {
	c := &Catalog{repo: repo}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
