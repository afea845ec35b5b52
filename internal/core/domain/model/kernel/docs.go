// Package kernel provides the identity primitive shared by the production domain model.
//
// UUID identifies manufacturing orders, products, stock moves, stock locations and cost
// sheets. The zero value is invalid so that a forgotten identifier is caught when an
// aggregate is constructed or restored from persistence.
package kernel
