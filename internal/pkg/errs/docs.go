// Package errs provides the typed errors shared by the domain, application and adapter layers.
//
// Every error type pairs a sentinel with a detail struct:
//   - ObjectNotFoundError (ErrObjectNotFound): an order or rider does not exist
//   - PreconditionFailedError (ErrPreconditionFailed): the current state forbids the operation,
//     including ownership mismatches and illegal status transitions
//   - ConflictError (ErrConflict): an optimistic update lost a race with a concurrent writer
//   - ValueIsInvalidError, ValueIsRequiredError, ValueIsOutOfRangeError: input validation
//
// Detail structs unwrap to their sentinel so callers classify failures with errors.Is
// and read details with errors.As.
package errs
