package rider

import (
	"fmt"

	"gasfill/internal/pkg/errs"
)

// Status is a rider's availability.
type Status string

const (
	Offline   Status = "offline"
	Available Status = "available"
	Busy      Status = "busy"
	Suspended Status = "suspended"
)

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	switch s {
	case Offline, Available, Busy, Suspended:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("rider status", fmt.Errorf("%q is not a valid rider status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// IsSelfService reports whether a rider may switch itself into s.
func (s Status) IsSelfService() bool {
	return s == Offline || s == Available
}

// VehicleType determines travel speed for ETAs.
type VehicleType string

const (
	Motorcycle VehicleType = "motorcycle"
	Bicycle    VehicleType = "bicycle"
	Car        VehicleType = "car"
)

func ParseVehicleType(s string) (VehicleType, error) {
	v := VehicleType(s)
	switch v {
	case Motorcycle, Bicycle, Car:
		return v, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%q is not a supported vehicle", s))
	}
}

// SpeedKmh is the average urban speed used for ETA estimates.
func (v VehicleType) SpeedKmh() float64 {
	if v == Bicycle {
		return 15
	}
	return 30
}
