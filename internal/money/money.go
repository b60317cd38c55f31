// Package money rounds currency figures for presentation.
package money

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Cents is the number of decimal places currency figures are shown with.
const Cents = 2

// Round rounds v to whole cents, halves away from zero.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(Cents).InexactFloat64()
}

// Sum adds amounts in decimal arithmetic and returns the total rounded to
// cents, so that 0.1 + 0.2 yields 0.3.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.Round(Cents).InexactFloat64()
}

// RoundShares rounds each share to cents so that the rounded shares add up
// to the rounded total of the inputs. Cents lost to truncation go to the
// shares with the largest remainders, earliest first on ties.
func RoundShares(shares ...float64) []float64 {
	type part struct {
		index int
		cents decimal.Decimal
		rest  decimal.Decimal
	}

	total := decimal.Zero
	parts := make([]part, len(shares))
	allotted := decimal.Zero
	for i, v := range shares {
		d := decimal.NewFromFloat(v)
		total = total.Add(d)
		scaled := d.Shift(Cents)
		floor := scaled.Floor()
		parts[i] = part{index: i, cents: floor, rest: scaled.Sub(floor)}
		allotted = allotted.Add(floor)
	}

	missing := total.Round(Cents).Shift(Cents).Sub(allotted).IntPart()
	order := make([]int, len(parts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return parts[order[a]].rest.GreaterThan(parts[order[b]].rest)
	})
	for i := 0; i < len(order) && int64(i) < missing; i++ {
		p := &parts[order[i]]
		p.cents = p.cents.Add(decimal.NewFromInt(1))
	}

	out := make([]float64, len(parts))
	for _, p := range parts {
		out[p.index] = p.cents.Shift(-Cents).InexactFloat64()
	}
	return out
}
