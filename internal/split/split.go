// Package split computes the revenue breakdown of a settled payment: the
// platform commission, the seller's net amount, and the denormalized total.
// This is the authoritative computation; any client-side arithmetic is
// display-only.
package split

import (
	"github.com/shopspring/decimal"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// Rounding selects how gross × ratio is rounded to the smallest currency
// unit. The business has not mandated a rule, so it is a deployment choice.
type Rounding string

const (
	RoundHalfUp  Rounding = "half_up"
	RoundBankers Rounding = "bankers"
)

// ParseRounding maps a config value to a Rounding, defaulting to half-up.
func ParseRounding(s string) Rounding {
	if Rounding(s) == RoundBankers {
		return RoundBankers
	}
	return RoundHalfUp
}

// Calculation is the computed breakdown. Total always equals Net + Commission.
type Calculation struct {
	Gross      int64
	Net        int64
	Commission int64
	Total      int64
}

// Calculate derives the commission from a gross amount and a ratio in [0,1].
// The multiplication runs on decimals so the result never drifts through
// binary floating point before rounding.
func Calculate(gross int64, ratio float64, mode Rounding) (Calculation, error) {
	if gross <= 0 {
		return Calculation{}, models.ErrInvalidAmount
	}
	if ratio < 0 || ratio > 1 {
		return Calculation{}, models.ErrInvalidRatio
	}

	product := decimal.NewFromInt(gross).Mul(decimal.NewFromFloat(ratio))

	var commission int64
	switch mode {
	case RoundBankers:
		commission = product.RoundBank(0).IntPart()
	default:
		commission = product.Round(0).IntPart()
	}

	net := gross - commission
	return Calculation{
		Gross:      gross,
		Net:        net,
		Commission: commission,
		Total:      net + commission,
	}, nil
}
