package guard

import "errors"

// ErrNotConstructed is what Validate reports for a zero-value guard when the
// caller passes no error of its own.
var ErrNotConstructed = errors.New("value must be created via its constructor")

// ConstructorGuard records that a value went through its constructor.
//
// Commands, value objects and entities embed a guard and expose it through their
// own Validate method. A value built with a struct literal, or returned as the
// zero value next to a constructor error, carries a zero guard and fails that
// check. Handlers call cmd.Validate() first, so a command that skipped its
// constructor never reaches a unit of work.
//
// Example:
//
//	var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")
//
//	type Location struct {
//	    latitude  float64
//	    longitude float64
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewLocation(latitude, longitude float64) (Location, error) {
//	    // range checks...
//	    return Location{latitude: latitude, longitude: longitude, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (l Location) Validate() error {
//	    return l.guard.Validate(ErrLocationIsNotConstructed)
//	}
type ConstructorGuard struct {
	built bool
}

// NewConstructorGuard returns a guard that passes Validate. Call it only at the
// end of a constructor, after every field check has succeeded.
//
// Returns:
//   - A ConstructorGuard marked as built
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{built: true}
}

// Validate reports whether the owning value was built by its constructor.
//
// Parameters:
//   - notConstructed: the owner's own sentinel, e.g. ErrCreateOrderCommandIsNotConstructed;
//     nil selects ErrNotConstructed
//
// Returns:
//   - nil for a guard made by NewConstructorGuard
//   - notConstructed (or ErrNotConstructed) for the zero guard
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.built {
		return nil
	}
	if notConstructed == nil {
		return ErrNotConstructed
	}
	return notConstructed
}
