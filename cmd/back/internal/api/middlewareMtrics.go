package api

import (
	"net/http"
	"strconv"
	"time"

	"tweetql/internal/metrics"
)

const (
	RouteGraphQL = "/graphql"
	RouteHealth  = "/healthz"
	// все остальное (404 от сканеров и т.п.) сворачивается в одну серию
	routeOther = "other"
)

// MetricsMiddleware считает запросы по маршруту, методу и статусу
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := routeLabel(r.URL.Path)
		metrics.HttpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		metrics.HttpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func routeLabel(path string) string {
	switch path {
	case RouteGraphQL, RouteGraphQL + "/":
		return RouteGraphQL
	case RouteHealth:
		return RouteHealth
	default:
		return routeOther
	}
}
