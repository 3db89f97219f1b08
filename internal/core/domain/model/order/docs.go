// Package order implements the Order aggregate and its delivery state machine.
//
// The package includes:
//   - Order: identity, customer details, items, assignment reservation and the tracking journal
//   - Status: the transition table shared by riders and the assignment workflow
//   - ID: the external ORD-<suffix> identifier
//   - Event: state changes recorded on the aggregate for publication after commit
//
// Key business rules:
//   - A pending order is reserved for one rider at a time with a deadline
//   - Only the rider holding the order may accept, reject or advance it
//   - Illegal transitions fail with *InvalidTransitionError and leave the order untouched
//   - Every status change appends exactly one tracking entry; accepting does not
package order
