package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RenderMetrics tracks document rendering work: preview HTML and PDF export.
type RenderMetrics struct {
	renderDuration *prometheus.HistogramVec
	rendersTotal   *prometheus.CounterVec
	renderedPages  *prometheus.HistogramVec
}

var (
	renderMetricsOnce sync.Once
	renderMetrics     *RenderMetrics
)

func Render() *RenderMetrics {
	return RenderWithConfig(Config{})
}

func RenderWithConfig(cfg Config) *RenderMetrics {
	renderMetricsOnce.Do(func() {
		renderMetrics = newRenderMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return renderMetrics
}

func ResetRenderMetricsForTest() {
	renderMetricsOnce = sync.Once{}
	renderMetrics = nil
}

func newRenderMetrics(registerer prometheus.Registerer, cfg Config) *RenderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "billfold"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "billfold_document_render_duration_seconds",
			Help:        "Time spent rendering invoice documents.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			ConstLabels: constLabels,
		},
		[]string{"renderer"}, // preview | export
	)

	rendersTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "billfold_document_renders_total",
			Help:        "Total invoice document render attempts.",
			ConstLabels: constLabels,
		},
		[]string{"renderer", "result"}, // success | failed
	)

	renderedPages := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "billfold_document_rendered_pages",
			Help:        "Pages produced per rendered document.",
			Buckets:     []float64{1, 2, 3, 5, 8, 13, 21},
			ConstLabels: constLabels,
		},
		[]string{"renderer"},
	)

	registerer.MustRegister(
		renderDuration,
		rendersTotal,
		renderedPages,
	)

	return &RenderMetrics{
		renderDuration: renderDuration,
		rendersTotal:   rendersTotal,
		renderedPages:  renderedPages,
	}
}

func (m *RenderMetrics) ObserveRender(renderer string, duration time.Duration, pages int, err error) {
	if m == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "failed"
	}
	m.rendersTotal.WithLabelValues(renderer, result).Inc()
	if err != nil {
		return
	}
	m.renderDuration.WithLabelValues(renderer).Observe(duration.Seconds())
	m.renderedPages.WithLabelValues(renderer).Observe(float64(pages))
}
