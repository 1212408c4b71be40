package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// ChatRequestCounter 按语言和最终状态统计导学请求
	ChatRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutor_chat_requests_total",
			Help: "Total number of tutor chat requests by language and status",
		},
		[]string{"language", "status"},
	)

	// FallbackCounter 模型输出解析失败、走兜底响应的次数
	FallbackCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tutor_fallback_total",
			Help: "Total number of tutor responses served from the deterministic fallback",
		},
	)

	// UpstreamDuration 上游模型调用耗时
	UpstreamDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tutor_upstream_duration_seconds",
			Help:    "Duration of upstream model calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ChatRequestCounter)
	prometheus.MustRegister(FallbackCounter)
	prometheus.MustRegister(UpstreamDuration)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
