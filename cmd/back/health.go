package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	grpc_run "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "tweetql"

// healthHandler опрашивает gRPC health-сервис и отдает его статус по HTTP
func healthHandler(client healthpb.HealthClient, timeout time.Duration) grpc_run.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		status := healthpb.HealthCheckResponse_UNKNOWN.String()
		code := http.StatusServiceUnavailable

		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
		if err == nil {
			status = resp.GetStatus().String()
			if resp.GetStatus() == healthpb.HealthCheckResponse_SERVING {
				code = http.StatusOK
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
