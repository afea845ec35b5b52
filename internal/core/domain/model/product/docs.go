// Package product holds the part of the product master the production workflow reads
// and writes: how the last production price is determined, how the cost price follows
// it, and the sale price derived from the cost price.
package product
