// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/save-smarter/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to whole cents, half away from zero. The value is
// rounded from its shortest decimal form, so 1.005 becomes 1.01. Infinities
// and NaN are returned unchanged.
func Round(val float64) float64 {
	if !IsFinite(val) {
		return val
	}
	return decimal.NewFromFloat(val).Round(constants.CurrencyDecimalPlaces).InexactFloat64()
}

// IsFinite reports whether val is neither infinite nor NaN.
func IsFinite(val float64) bool {
	return !math.IsInf(val, 0) && !math.IsNaN(val)
}

// PercentToDecimal converts a percentage such as 5 into 0.05.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// PeriodicRate splits an annual percentage rate evenly across the given number
// of periods per year. Zero periods yields a zero rate.
func PeriodicRate(annualPercent float64, periodsPerYear int) float64 {
	if periodsPerYear <= 0 {
		return 0
	}
	return PercentToDecimal(annualPercent) / float64(periodsPerYear)
}
