package queries

import (
	"context"
	"database/sql"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetManufOrderQueryHandler reads orders straight from the tables without loading the
// aggregate. Operation orders come back in execution order.
type GetManufOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetManufOrderQueryHandler(db *gorm.DB) GetManufOrderQueryHandler {
	return GetManufOrderQueryHandler{db: db}
}

func (h GetManufOrderQueryHandler) Handle(ctx context.Context, query GetManufOrderQuery) (GetManufOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetManufOrderQueryResponse{}, err
	}

	var (
		resp      GetManufOrderQueryResponse
		productID uuid.UUID
		status    int
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			seq,
			status,
			product_id,
			qty,
			unit,
			cost_price,
			planned_start_date_t,
			planned_end_date_t,
			real_start_date_t,
			real_end_date_t,
			end_time_difference,
			cancel_reason_code,
			cancel_reason_str
		FROM manuf_orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()
	err := row.Scan(
		&resp.Seq,
		&status,
		&productID,
		&resp.Qty,
		&resp.Unit,
		&resp.CostPrice,
		&resp.PlannedStartDateT,
		&resp.PlannedEndDateT,
		&resp.RealStartDateT,
		&resp.RealEndDateT,
		&resp.EndTimeDifference,
		&resp.CancelReasonCode,
		&resp.CancelReasonStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetManufOrderQueryResponse{}, errs.NewObjectNotFoundError("manufOrder", query.OrderID().String())
	}
	if err != nil {
		return GetManufOrderQueryResponse{}, err
	}

	resp.ID = query.OrderID()
	resp.Status = manuforder.Status(status).String()
	if resp.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
		return GetManufOrderQueryResponse{}, err
	}

	if resp.OperationOrders, err = h.operationOrders(ctx, query.OrderID()); err != nil {
		return GetManufOrderQueryResponse{}, err
	}
	return resp, nil
}

func (h GetManufOrderQueryHandler) operationOrders(ctx context.Context, orderID kernel.UUID) ([]OperationOrderResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			priority,
			status,
			planned_start_date_t,
			planned_end_date_t,
			real_start_date_t,
			real_end_date_t
		FROM operation_orders
		WHERE manuf_order_id = ?
		ORDER BY priority NULLS FIRST, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ops := make([]OperationOrderResponse, 0)
	for rows.Next() {
		var (
			op     OperationOrderResponse
			status int
		)
		if err = rows.Scan(
			&op.ID,
			&op.Name,
			&op.Priority,
			&status,
			&op.PlannedStartDateT,
			&op.PlannedEndDateT,
			&op.RealStartDateT,
			&op.RealEndDateT,
		); err != nil {
			return nil, err
		}
		op.Status = manuforder.OperationStatus(status).String()
		ops = append(ops, op)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}
