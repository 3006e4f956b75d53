package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCurrencyNotFound = errors.New("currency not found")
	ErrCurrencyInactive = errors.New("currency is not active")

	ErrFetchFailure = errors.New("rate source fetch failed")

	ErrSameCurrency       = errors.New("from and to currencies must differ")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrAmountOutOfRange   = errors.New("amount is out of allowed range")
	ErrInsufficientAmount = errors.New("amount does not cover fees")
	ErrInvalidRateType    = errors.New("rate type must be fixed or float")

	ErrOrderNotFound            = errors.New("order not found")
	ErrInvalidStatus            = errors.New("unknown order status")
	ErrInvalidStatusTransition  = errors.New("order status transition not allowed")
	ErrOrderStatusConflict      = errors.New("order status was changed concurrently")
	ErrPayoutTargetRequired     = errors.New("payout target is required")
	ErrDepositAddressNotDefined = errors.New("no deposit address configured for currency")
)

// FetchError is the single failure signal of a rate source: bad status, malformed body or timeout.
type FetchError struct {
	Source string
	Asset  string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: failed to fetch %s usd price: %v", e.Source, e.Asset, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailure }
