package http

import (
	"context"
	"net/http"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	changeStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeManufOrderStatusCommand) error
	}
	cancelHandler interface {
		Handle(ctx context.Context, cmd commands.CancelManufOrderCommand) error
	}
	updatePlannedDatesHandler interface {
		Handle(ctx context.Context, cmd commands.UpdatePlannedDatesCommand) error
	}
	getManufOrderHandler interface {
		Handle(ctx context.Context, query queries.GetManufOrderQuery) (queries.GetManufOrderQueryResponse, error)
	}
	getStockLocationContentHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetStockLocationContentQuery,
		) (queries.GetStockLocationContentQueryResponse, error)
	}
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	ChangeStatus            changeStatusHandler
	Cancel                  cancelHandler
	UpdatePlannedDates      updatePlannedDatesHandler
	GetManufOrder           getManufOrderHandler
	GetStockLocationContent getStockLocationContentHandler
}

// Server translates HTTP requests into commands and queries. Errors are returned to echo
// and rendered by ErrorHandler.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// GetManufOrder handles GET /api/v1/manuf-orders/{id}.
func (s *Server) GetManufOrder(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetManufOrderQuery(id)
	if err != nil {
		return badRequest(err)
	}

	order, err := s.handlers.GetManufOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, manufOrderFromQuery(order))
}

// ChangeStatus returns the handler of POST /api/v1/manuf-orders/{id}/<transition>.
func (s *Server) ChangeStatus(transition commands.Transition) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindID(ctx)
		if err != nil {
			return err
		}
		cmd, err := commands.NewChangeManufOrderStatusCommand(id, transition)
		if err != nil {
			return badRequest(err)
		}

		if err = s.handlers.ChangeStatus.Handle(ctx.Request().Context(), cmd); err != nil {
			return err
		}
		return ctx.NoContent(http.StatusNoContent)
	}
}

// CancelManufOrder handles POST /api/v1/manuf-orders/{id}/cancel.
func (s *Server) CancelManufOrder(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	var body CancelRequest
	if err = ctx.Bind(&body); err != nil {
		return err
	}
	cmd, err := commands.NewCancelManufOrderCommand(id, body.CancelReasonCode, body.CancelReasonStr)
	if err != nil {
		return badRequest(err)
	}

	if err = s.handlers.Cancel.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdatePlannedDates handles PUT /api/v1/manuf-orders/{id}/planned-dates.
func (s *Server) UpdatePlannedDates(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	var body PlannedDatesRequest
	if err = ctx.Bind(&body); err != nil {
		return err
	}
	cmd, err := commands.NewUpdatePlannedDatesCommand(id, body.PlannedStartDateT)
	if err != nil {
		return badRequest(err)
	}

	if err = s.handlers.UpdatePlannedDates.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetStockLocationContent handles GET /api/v1/stock-locations/{id}/content.
func (s *Server) GetStockLocationContent(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetStockLocationContentQuery(id)
	if err != nil {
		return badRequest(err)
	}

	content, err := s.handlers.GetStockLocationContent.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := StockLocationContent{LocationIDs: make([]openapi_types.UUID, 0, len(content.LocationIDs))}
	for _, locationID := range content.LocationIDs {
		resp.LocationIDs = append(resp.LocationIDs, locationID.Bytes())
	}
	return ctx.JSON(http.StatusOK, resp)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

func bindID(ctx echo.Context) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter id: "+err.Error())
	}
	return kernel.UUIDFromBytes(raw[:])
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
}

type CancelRequest struct {
	CancelReasonCode string `json:"cancelReasonCode"`
	CancelReasonStr  string `json:"cancelReasonStr"`
}

type PlannedDatesRequest struct {
	PlannedStartDateT time.Time `json:"plannedStartDateT"`
}

type OperationOrder struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Priority          *int       `json:"priority"`
	Status            string     `json:"status"`
	PlannedStartDateT *time.Time `json:"plannedStartDateT"`
	PlannedEndDateT   *time.Time `json:"plannedEndDateT"`
	RealStartDateT    *time.Time `json:"realStartDateT"`
	RealEndDateT      *time.Time `json:"realEndDateT"`
}

type ManufOrder struct {
	ID                openapi_types.UUID `json:"id"`
	Seq               string             `json:"seq"`
	Status            string             `json:"status"`
	ProductID         openapi_types.UUID `json:"productId"`
	Qty               string             `json:"qty"`
	Unit              string             `json:"unit"`
	CostPrice         string             `json:"costPrice"`
	PlannedStartDateT *time.Time         `json:"plannedStartDateT"`
	PlannedEndDateT   *time.Time         `json:"plannedEndDateT"`
	RealStartDateT    *time.Time         `json:"realStartDateT"`
	RealEndDateT      *time.Time         `json:"realEndDateT"`
	EndTimeDifference int64              `json:"endTimeDifference"`
	CancelReasonCode  *string            `json:"cancelReasonCode"`
	CancelReasonStr   string             `json:"cancelReasonStr"`
	OperationOrders   []OperationOrder   `json:"operationOrders"`
}

type StockLocationContent struct {
	LocationIDs []openapi_types.UUID `json:"locationIds"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func manufOrderFromQuery(order queries.GetManufOrderQueryResponse) ManufOrder {
	ops := make([]OperationOrder, 0, len(order.OperationOrders))
	for _, op := range order.OperationOrders {
		ops = append(ops, OperationOrder{
			ID:                op.ID,
			Name:              op.Name,
			Priority:          op.Priority,
			Status:            op.Status,
			PlannedStartDateT: op.PlannedStartDateT,
			PlannedEndDateT:   op.PlannedEndDateT,
			RealStartDateT:    op.RealStartDateT,
			RealEndDateT:      op.RealEndDateT,
		})
	}
	return ManufOrder{
		ID:                order.ID.Bytes(),
		Seq:               order.Seq,
		Status:            order.Status,
		ProductID:         order.ProductID.Bytes(),
		Qty:               order.Qty.String(),
		Unit:              order.Unit,
		CostPrice:         order.CostPrice.String(),
		PlannedStartDateT: order.PlannedStartDateT,
		PlannedEndDateT:   order.PlannedEndDateT,
		RealStartDateT:    order.RealStartDateT,
		RealEndDateT:      order.RealEndDateT,
		EndTimeDifference: order.EndTimeDifference,
		CancelReasonCode:  order.CancelReasonCode,
		CancelReasonStr:   order.CancelReasonStr,
		OperationOrders:   ops,
	}
}
