package order

import (
	"strings"
	"unicode"
)

// maskPayoutTarget keeps wallet addresses as is and masks card numbers down to
// the first and last four digits.
func maskPayoutTarget(target string) string {
	target = strings.TrimSpace(target)

	digits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, target)
	if len(digits) < 13 || len(digits) > 19 || strings.IndexFunc(digits, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		return target
	}

	return digits[:4] + strings.Repeat("*", len(digits)-8) + digits[len(digits)-4:]
}
