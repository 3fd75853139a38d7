package domain

import "github.com/shopspring/decimal"

// Round rounds v to the given number of decimal places, half away from zero
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Percent returns part/whole*100, or 0 when whole is 0
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
