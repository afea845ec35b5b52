// Package costsheet models the cost computation snapshots taken when production is declared.
package costsheet

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CalculationMode tells which production declaration a cost sheet was computed for.
type CalculationMode int

const (
	CalculationModeUnknown CalculationMode = iota
	EndOfProduction
	PartialEndOfProduction
)

func (m CalculationMode) String() string {
	switch m {
	case EndOfProduction:
		return "EndOfProduction"
	case PartialEndOfProduction:
		return "PartialEndOfProduction"
	default:
		return "Unknown"
	}
}

func (m CalculationMode) Validate() error {
	if m != EndOfProduction && m != PartialEndOfProduction {
		return errs.NewValueIsInvalidErrorWithCause("calculationMode", fmt.Errorf("%d is not a valid mode", m))
	}
	return nil
}

// CostSheet records the cost of a manufacturing order as of a business date.
type CostSheet struct {
	id           kernel.UUID
	manufOrderID kernel.UUID
	mode         CalculationMode
	asOf         time.Time
	costPrice    decimal.Decimal
}

func NewCostSheet(
	id, manufOrderID kernel.UUID,
	mode CalculationMode,
	asOf time.Time,
	costPrice decimal.Decimal,
) (*CostSheet, error) {
	var errDate error
	if asOf.IsZero() {
		errDate = errs.NewValueIsRequiredError("asOf")
	}
	if err := errors.Join(id.Validate(), manufOrderID.Validate(), mode.Validate(), errDate); err != nil {
		return nil, err
	}
	return &CostSheet{
		id:           id,
		manufOrderID: manufOrderID,
		mode:         mode,
		asOf:         asOf,
		costPrice:    costPrice,
	}, nil
}

func (c *CostSheet) ID() kernel.UUID            { return c.id }
func (c *CostSheet) ManufOrderID() kernel.UUID  { return c.manufOrderID }
func (c *CostSheet) Mode() CalculationMode      { return c.mode }
func (c *CostSheet) AsOf() time.Time            { return c.asOf }
func (c *CostSheet) CostPrice() decimal.Decimal { return c.costPrice }
