package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "production_http_requests_total",
			Help: "HTTP requests handled, by route, method and status code",
		},
		[]string{"route", "method", "code"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "production_http_request_duration_seconds",
			Help:    "HTTP request latency, by route and method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

// observeRequests records one sample per request. The route label is the echo route
// pattern so that ids do not blow up the label cardinality.
func observeRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		started := time.Now()
		err := next(c)

		code := c.Response().Status
		if err != nil {
			code, _ = statusFor(err)
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(route, c.Request().Method, strconv.Itoa(code)).Inc()
		requestDuration.WithLabelValues(route, c.Request().Method).Observe(time.Since(started).Seconds())
		return err
	}
}
