package services_test

import (
	"testing"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryFee(t *testing.T) {
	testCases := []struct {
		name       string
		distance   float64
		orderTotal float64
		expected   float64
	}{
		{name: "within_base_radius", distance: 300, orderTotal: 0, expected: 10},
		{name: "exactly_base_radius", distance: 500, orderTotal: 0, expected: 10},
		{name: "one_metre_over_starts_a_step", distance: 501, orderTotal: 0, expected: 12},
		{name: "two_full_steps", distance: 1500, orderTotal: 0, expected: 14},
		{name: "partial_third_step", distance: 1700, orderTotal: 0, expected: 16},
		{name: "capped_at_half_total", distance: 10000, orderTotal: 40, expected: 20},
		{name: "cap_not_binding", distance: 1000, orderTotal: 300, expected: 12},
		{name: "cap_below_base", distance: 100, orderTotal: 15, expected: 7.5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, services.DeliveryFee(tc.distance, tc.orderTotal), 1e-9)
		})
	}
}

func TestFeeCalculator_Fee(t *testing.T) {
	calc := services.NewFeeCalculator(services.DefaultStation())

	t.Run("unknown_location_pays_base_fee", func(t *testing.T) {
		assert.InDelta(t, services.BaseDeliveryFee, calc.Fee(nil, 0), 1e-9)
	})

	t.Run("customer_at_station", func(t *testing.T) {
		station := services.DefaultStation()
		assert.InDelta(t, services.BaseDeliveryFee, calc.Fee(&station, 200), 1e-9)
	})

	t.Run("customer_about_two_km_away", func(t *testing.T) {
		// 0.017 degrees of latitude is roughly 1.89 km: 3 started steps after the base radius.
		customer, _ := kernel.NewLocation(5.6037+0.017, -0.1870)
		assert.InDelta(t, 16.0, calc.Fee(&customer, 500), 1e-9)
	})
}
