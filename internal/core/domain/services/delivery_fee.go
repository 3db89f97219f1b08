package services

import (
	"math"

	"gasfill/internal/core/domain/model/kernel"
)

const (
	BaseDeliveryFee     = 10.0
	BaseFeeRadiusMeters = 500.0
	FeeStepMeters       = 500.0
	FeePerStep          = 2.0
	MaxFeeShareOfTotal  = 0.5

	defaultStationLat = 5.6037
	defaultStationLng = -0.1870
)

// DeliveryFee prices a delivery by straight-line distance from the station.
// The first 500 m cost the base fee, every started 500 m after that adds
// FeePerStep, and a positive orderTotal caps the fee at half the total.
func DeliveryFee(distanceMeters, orderTotal float64) float64 {
	fee := BaseDeliveryFee
	if distanceMeters > BaseFeeRadiusMeters {
		steps := math.Ceil((distanceMeters - BaseFeeRadiusMeters) / FeeStepMeters)
		fee += steps * FeePerStep
	}
	if orderTotal > 0 {
		fee = math.Min(fee, orderTotal*MaxFeeShareOfTotal)
	}
	return kernel.RoundMoney(fee)
}

// FeeCalculator binds DeliveryFee to a station location.
type FeeCalculator struct {
	station kernel.Location
}

func NewFeeCalculator(station kernel.Location) FeeCalculator {
	return FeeCalculator{station: station}
}

// DefaultStation is the Accra filling station orders are dispatched from.
func DefaultStation() kernel.Location {
	loc, _ := kernel.NewLocation(defaultStationLat, defaultStationLng)
	return loc
}

// Fee returns the base fee (capped by orderTotal) when the customer location is unknown.
func (c FeeCalculator) Fee(customer *kernel.Location, orderTotal float64) float64 {
	if customer == nil {
		return DeliveryFee(0, orderTotal)
	}
	return DeliveryFee(c.station.DistanceMeters(*customer), orderTotal)
}
