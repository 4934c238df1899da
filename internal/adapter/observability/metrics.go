package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts requests by route, method and status text.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	// HTTPRequestDuration tracks request latency by route and method.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	// ProfileSavesTotal counts accepted profile updates.
	ProfileSavesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_saves_total",
			Help: "Total number of accepted profile updates",
		},
	)
	// ProfileSaveRejectionsTotal counts rejected updates by reason.
	ProfileSaveRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_save_rejections_total",
			Help: "Total number of rejected profile updates by reason",
		},
		[]string{"reason"},
	)
	// ProfileCompletenessHistogram tracks the completeness score of saved records.
	ProfileCompletenessHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_completeness_percent",
			Help:    "Distribution of profile completeness after a save",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
	// SessionsIssuedTotal counts bearer tokens minted via the token endpoint.
	SessionsIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_issued_total",
			Help: "Total number of bearer tokens issued",
		},
	)
)

// InitMetrics registers all collectors. Call once at startup.
func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(ProfileSavesTotal)
	prometheus.MustRegister(ProfileSaveRejectionsTotal)
	prometheus.MustRegister(ProfileCompletenessHistogram)
	prometheus.MustRegister(SessionsIssuedTotal)
}

// RecordSave records an accepted update and its resulting completeness.
func RecordSave(completeness int) {
	ProfileSavesTotal.Inc()
	ProfileCompletenessHistogram.Observe(float64(completeness))
}

// RecordSaveRejection records a rejected update.
func RecordSaveRejection(reason string) {
	ProfileSaveRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordSessionIssued records a minted bearer token.
func RecordSessionIssued() {
	SessionsIssuedTotal.Inc()
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}
