package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PrometheusMetricsHandler struct {
	collectors []prometheus.Collector
}

func NewPrometheusMetricsHandler(collectors ...prometheus.Collector) *PrometheusMetricsHandler {
	return &PrometheusMetricsHandler{collectors: collectors}
}

func (h *PrometheusMetricsHandler) Handler() http.Handler {
	prometheus.MustRegister(h.collectors...)
	return promhttp.Handler()
}
