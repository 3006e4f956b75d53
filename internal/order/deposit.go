package order

import (
	"fmt"

	"cryptoexchange/internal/domain"
)

type DepositAddresses interface {
	AddressFor(code string) (string, error)
}

// StaticDepositAddresses maps a currency code to the exchange wallet receiving deposits.
type StaticDepositAddresses map[string]string

func (d StaticDepositAddresses) AddressFor(code string) (string, error) {
	addr, ok := d[code]
	if !ok || addr == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrDepositAddressNotDefined, code)
	}
	return addr, nil
}
