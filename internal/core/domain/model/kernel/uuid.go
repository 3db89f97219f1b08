package kernel

import (
	"fmt"

	"gasfill/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID. It wraps
// errs.ErrValueIsRequired, so the HTTP layer answers 400 for a missing id.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies riders and earnings. It wraps github.com/google/uuid so the
// domain never handles the nil UUID: the zero value fails Validate.
//
// Orders are not keyed by UUID; they use the ORD- prefixed order.ID that
// customers see. A UUID is comparable, so it can key maps and be used with ==,
// although IsEqual reads better in domain code.
//
// Example:
//
//	riderID := kernel.NewUUID()
//
//	parsed, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    return errs.NewValueIsInvalidErrorWithCause("rider id", err)
//	}
//	if o.RiderID() != nil && o.RiderID().IsEqual(parsed) {
//	    // the caller holds this order
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses a UUID taken from a URL parameter, a JWT subject or a
// text column.
//
// Accepted forms:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "6ba7b8109dad11d180b400c04fd430c8"
//
// Returns:
//   - the parsed UUID
//   - a wrapped parse error for malformed input
//   - ErrUUIDIsNotConstructed for "00000000-0000-0000-0000-000000000000"
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes restores a UUID from its 16-byte form, as stored in uuid columns.
// Any other length is an error, and so are sixteen zero bytes.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}
	return restored, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google UUID for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate reports ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
