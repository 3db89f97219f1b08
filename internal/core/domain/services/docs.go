// Package services holds domain logic that spans aggregates.
//
// The package includes:
//   - RiderDispatcher: selects an eligible rider for a pending order and reserves both
//   - DeliveryFee / FeeCalculator: distance-tiered delivery pricing from the station
//   - EstimateMinutes: travel time by vehicle type
package services
