// Package rider implements the Rider aggregate: registration details, availability,
// location, rating and the verification and suspension flags that decide whether
// a rider may be offered orders.
//
// A rider is eligible when it is available, active, verified and not suspended.
// The assignment workflow moves an eligible rider to busy and back to available
// when the order is delivered, rejected or its reservation expires.
package rider
