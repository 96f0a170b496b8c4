package metrics

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetrics records per-route server metrics. Routes are gin patterns
// (":id" stays a placeholder), so label cardinality is the route table, not
// the ID space.
type HTTPMetrics struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func NewHTTPMetrics(cfg Config, provider metric.MeterProvider) (*HTTPMetrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "billfold"
	}
	meter := provider.Meter(name + "/http")

	duration, err := meter.Float64Histogram("http.server.duration_ms")
	if err != nil {
		return nil, err
	}
	requests, err := meter.Int64Counter("http.server.requests")
	if err != nil {
		return nil, err
	}
	inFlight, err := meter.Int64UpDownCounter("http.server.in_flight")
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{duration: duration, requests: requests, inFlight: inFlight}, nil
}

// GinMiddleware times every request against its route pattern.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		route := routeLabel(c.FullPath())
		ctx := c.Request.Context()
		routeOnly := metric.WithAttributes(FilterAttributes(attribute.String("route", route))...)

		m.inFlight.Add(ctx, 1, routeOnly)
		start := time.Now()
		c.Next()
		m.inFlight.Add(ctx, -1, routeOnly)

		m.record(ctx, route, c.Writer.Status(), time.Since(start))
	}
}

// RecordRequest times a named sub-operation of a request, such as the
// export render phase, under its own route label.
func (m *HTTPMetrics) RecordRequest(ctx context.Context, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.record(ctx, routeLabel(route), status, duration)
}

func (m *HTTPMetrics) record(ctx context.Context, route string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(FilterAttributes(
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)...)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

func routeLabel(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return "unmatched"
	}
	return route
}
