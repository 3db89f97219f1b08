package kernel

import "math"

// RoundMoney rounds a cedi amount to two decimal places, half away from zero.
// Item prices, order totals and rider commissions go through it before they are
// stored, so the numeric(12,2) columns hold exactly what the domain computed.
//
// Example:
//
//	kernel.RoundMoney(12.345)  // 12.35
//	kernel.RoundMoney(-0.005)  // -0.01
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
