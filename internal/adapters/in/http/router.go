package http

import (
	_ "embed"
	"errors"
	"net/http"
	"sync"

	"production/internal/core/application/usecases/commands"
	"production/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

//go:embed openapi.json
var openAPIDocument []byte

var registerSwagger sync.Once

// NewRouter builds the echo instance: request validation against the embedded OpenAPI
// document, the API routes, /health, /metrics and the swagger UI under /swagger/.
func NewRouter(server *Server, logger *zap.Logger) (*echo.Echo, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	registerSwagger.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			Title:           doc.Info.Title,
			Version:         doc.Info.Version,
			SwaggerTemplate: string(openAPIDocument),
		})
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger.Named("http"))
	e.Use(observeRequests, validateRequests(router))

	e.GET("/health", server.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.GET("/manuf-orders/:id", server.GetManufOrder)
	for _, transition := range []commands.Transition{
		commands.TransitionPlan,
		commands.TransitionStart,
		commands.TransitionPause,
		commands.TransitionResume,
		commands.TransitionFinish,
		commands.TransitionPartialFinish,
	} {
		api.POST("/manuf-orders/:id/"+string(transition), server.ChangeStatus(transition))
	}
	api.POST("/manuf-orders/:id/cancel", server.CancelManufOrder)
	api.PUT("/manuf-orders/:id/planned-dates", server.UpdatePlannedDates)
	api.GET("/stock-locations/:id/content", server.GetStockLocationContent)

	return e, nil
}

// validateRequests checks requests for documented routes. Routes missing from the document
// (health, metrics, swagger) pass through untouched.
func validateRequests(router routers.Router) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc},
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
			}
			return next(c)
		}
	}
}

// ErrorHandler renders errors as Error bodies. Domain errors map to statuses:
// configuration 422, not found 404, invalid state 409, missing or out of range values 400.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		} else {
			logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
		}

		if writeErr := c.JSON(status, Error{Code: status, Message: message}); writeErr != nil {
			logger.Warn("writing error response failed", zap.Error(writeErr))
		}
	}
}

func statusFor(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	case errors.Is(err, errs.ErrConfiguration):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}
