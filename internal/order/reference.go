package order

import (
	"fmt"

	nanoid "github.com/jaevor/go-nanoid"
)

// referenceAlphabet skips look-alike characters (0/O, 1/I) so references can be read over the phone.
const (
	referenceAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	referenceLength   = 10
)

// NewReferenceGenerator returns a generator of short human-facing order references.
func NewReferenceGenerator() (func() string, error) {
	gen, err := nanoid.CustomASCII(referenceAlphabet, referenceLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create reference generator: %w", err)
	}
	return gen, nil
}
