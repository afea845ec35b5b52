// Package services provides domain services for the production domain: logic that spans
// a manufacturing order and its operation orders or products, and does not belong to a
// single aggregate.
//
// The package includes:
//   - OperationOrderWorkflowService: schedules and transitions operation orders
//   - ProductPriceService: one-unit production price and sale price rules
package services
