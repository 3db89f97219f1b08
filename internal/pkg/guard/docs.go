// Package guard provides ConstructorGuard, a small marker that lets commands, queries
// and value objects reject zero-value instances that bypassed their constructor.
package guard
