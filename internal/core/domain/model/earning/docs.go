// Package earning holds the rider commission ledger entry recorded when an order is delivered.
package earning
