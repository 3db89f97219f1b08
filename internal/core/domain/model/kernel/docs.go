// Package kernel provides the value objects shared by every aggregate:
// UUID identifiers and Location, a validated latitude/longitude point with
// haversine distance used for rider selection, ETAs and delivery fees.
package kernel
