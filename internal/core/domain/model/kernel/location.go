package kernel

import (
	"errors"
	"fmt"
	"math"

	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is an immutable WGS84 point. The zero value is invalid; use NewLocation.
//
// Example:
//
//	station, _ := kernel.NewLocation(5.6037, -0.1870)
//	km := station.DistanceKm(customer)
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation builds a WGS84 point for a customer address, a rider position or
// the filling station.
//
// Parameters:
//   - latitude: degrees in [-90, 90]
//   - longitude: degrees in [-180, 180]
//
// Returns:
//   - the Location, which passes Validate
//   - errs.ErrValueIsOutOfRange for NaN or out-of-range input; when both
//     coordinates are bad the two errors are joined, so a client sees every
//     problem in one response
//
// Example:
//
//	loc, err := kernel.NewLocation(req.Latitude, req.Longitude)
//	if err != nil {
//	    return err
//	}
func NewLocation(latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate returns ErrLocationIsNotConstructed for the zero value. A Location
// that came out of NewLocation is always valid.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Latitude() float64 {
	return l.latitude
}

func (l Location) Longitude() float64 {
	return l.longitude
}

func (l Location) IsEqual(other Location) bool {
	return l.latitude == other.latitude && l.longitude == other.longitude
}

// DistanceKm returns the great-circle (haversine) distance to target in
// kilometres on a sphere of radius 6371 km. The dispatcher ranks riders by it
// and the ETA estimate divides it by vehicle speed.
//
// Example:
//
//	station, _ := kernel.NewLocation(5.6037, -0.1870)
//	tema, _ := kernel.NewLocation(5.6698, -0.0166)
//	station.DistanceKm(tema) // about 20.2
func (l Location) DistanceKm(target Location) float64 {
	lat1 := toRadians(l.latitude)
	lat2 := toRadians(target.latitude)
	dLat := toRadians(target.latitude - l.latitude)
	dLon := toRadians(target.longitude - l.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceMeters is DistanceKm scaled to metres, used by fee tiers.
func (l Location) DistanceMeters(target Location) float64 {
	return l.DistanceKm(target) * 1000
}

func (l Location) String() string {
	return fmt.Sprintf("%.6f,%.6f", l.latitude, l.longitude)
}

func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	l.longitude = longitude
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
