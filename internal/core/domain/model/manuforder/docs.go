// Package manuforder holds the manufacturing order aggregate.
//
// A ManufOrder produces a quantity of one product from a bill of materials following a
// production process. It owns its OperationOrder steps, which are planned one after the
// other by priority, and keeps references to the stock moves that consume components and
// produce the finished product.
//
// Key business rules:
//   - Status follows Draft -> Planned -> InProgress <-> StandBy -> Finished
//   - any non-terminal order can be canceled, and a cancel reason is mandatory
//   - the planned end is the latest planned end of the operation orders, or the planned start
//   - operation orders are sequenced by priority then identifier, missing values first
package manuforder
