// Package money parses user-typed monetary amounts into whole units of the
// smallest currency denomination. Input arrives decorated ("RWF 85,000",
// "85 000 Frw") and must be rejected, never coerced, when it does not reduce
// to a positive whole number.
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// ParseAmount strips currency symbols, spaces and thousands separators, then
// validates the remainder as a positive whole amount. Fractional values are
// rejected: the deployment currency has no sub-unit.
func ParseAmount(raw string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-':
			return r
		default:
			// currency symbols, letters, commas, whitespace
			return -1
		}
	}, raw)

	if cleaned == "" {
		return 0, models.ErrInvalidAmount
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, models.ErrInvalidAmount
	}
	if v <= 0 || v != math.Trunc(v) || v > math.MaxInt64 {
		return 0, models.ErrInvalidAmount
	}
	return int64(v), nil
}
