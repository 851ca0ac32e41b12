package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Метрики для gRPC (health)
	GrpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grpc_requests_total",
		Help: "Total number of gRPC requests",
	}, []string{"method", "status"})

	GrpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "grpc_request_duration_seconds",
		Help:    "Duration of gRPC requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	// Метрики для HTTP
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Метрики резолверов GraphQL
	ResolverCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphql_resolver_calls_total",
		Help: "Total number of GraphQL resolver calls",
	}, []string{"field", "outcome"})

	ResolverDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphql_resolver_duration_seconds",
		Help:    "Duration of GraphQL resolver calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"field"})

	// Метрики внешних REST API
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of outbound REST requests",
	}, []string{"upstream", "status"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of outbound REST requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"upstream"})
)
