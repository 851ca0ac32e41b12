package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tweetql/cmd/back/internal/api"
	"tweetql/cmd/back/internal/catalog"
	"tweetql/cmd/back/internal/producer"
	"tweetql/internal/logger"
	"tweetql/internal/metrics"
	"tweetql/internal/rabbitmq"
	"tweetql/internal/restclient"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_run "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

func main() {
	configPath := pflag.StringP("config", "c", "./config.yaml", "path to the YAML config")
	pflag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.Level(cfg.LogLevel),
	}))

	ctxParent := logger.NewContext(context.Background(), log)

	ctx, cancel := signal.NotifyContext(ctxParent, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGABRT, syscall.SIGTERM)
	defer cancel()
	go forceShutdown(ctx)

	database, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("open store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	resolver := &api.Resolver{
		Database: database,
		Movies:   catalog.NewMovies(restclient.New("movies", cfg.TimeOut), cfg.MoviesURL),
		Books:    catalog.NewBooks(restclient.New("books", cfg.TimeOut), cfg.BooksURL, cfg.BooksList, cfg.BooksAPIKey),
	}
	if cfg.BooksAPIKey == "" {
		log.Warn("books_api_key is empty, allBooks will fail")
	}

	// RabbitMQ необязателен: без host_rbmq события не отправляются
	if cfg.HostRBMQ != "" {
		rabbit, err := rabbitmq.NewRabbitMQClient(
			rabbitmq.URL(cfg.HostRBMQ, cfg.PortRBMQ, cfg.UserNameRBMQ, cfg.PasswordRBMQ, cfg.VHostRBMQ),
			api.TweetsQueue,
		)
		if err != nil {
			log.Error("RabbitMQ - not connected", "error", err)
		} else {
			defer rabbit.Close()
			resolver.Producer = producer.NewProducer(rabbit.Ch, ServiceName)
			log.Warn("RabbitMQ - connected")
		}
	}

	schema, err := api.NewSchema(resolver, cfg.MaxParallelism)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}

	ln, err := net.Listen("tcp", cfg.HostGRPC)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}

	loggingOpts := []logging.Option{
		logging.WithLogOnEvents(
			logging.StartCall,
			logging.FinishCall,
		),
	}

	StartMetricsServer(log, cfg.MetricsAddr)

	healthServer := health.NewServer()
	server := grpc.NewServer(
		grpc.Creds(insecure.NewCredentials()),
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(interceptorLogger(log), loggingOpts...),
			MetricsInterceptor(),
		),
	)
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	log.Warn("GRPC server - started", "addr", cfg.HostGRPC)
	go func() {
		if err := server.Serve(ln); err != nil {
			log.Error(err.Error())
		}
	}()

	conn, err := grpc.NewClient(cfg.HostGRPC,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
	defer conn.Close()

	gw := grpc_run.NewServeMux()
	gqlHandler := api.NewHandler(schema, log)
	serveGraphQL := func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		gqlHandler.ServeHTTP(w, r)
	}
	routes := []struct {
		method, path string
		h            grpc_run.HandlerFunc
	}{
		{http.MethodPost, api.RouteGraphQL, serveGraphQL},
		{http.MethodGet, api.RouteGraphQL, serveGraphQL},
		{http.MethodGet, api.RouteHealth, healthHandler(healthpb.NewHealthClient(conn), 2*time.Second)},
	}
	for _, rt := range routes {
		if err := gw.HandlePath(rt.method, rt.path, rt.h); err != nil {
			log.Error(err.Error(), "method", rt.method, "path", rt.path)
			os.Exit(1)
		}
	}

	wrappedMux := api.MetricsMiddleware(gw)
	gwServer := &http.Server{
		Addr:              cfg.Host,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := gwServer.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown", "error", err)
		}
		server.GracefulStop()
	}()

	log.Warn("GraphQL server - started", "addr", cfg.Host, "store", cfg.Store)
	if err := gwServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(err.Error())
	}
	log.Warn("server stopped")
}

func interceptorLogger(l *slog.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

func MetricsInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		duration := time.Since(start).Seconds()
		statusCode := status.Code(err).String()

		metrics.GrpcRequestsTotal.WithLabelValues(info.FullMethod, statusCode).Inc()
		metrics.GrpcRequestDuration.WithLabelValues(info.FullMethod).Observe(duration)

		return resp, err
	}
}

func StartMetricsServer(log *slog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		log.Info("Starting metrics server", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("metrics server", "error", err)
		}
	}()
}

func forceShutdown(ctx context.Context) {
	log := logger.FromContext(ctx)
	const shutdownDelay = 15 * time.Second

	<-ctx.Done()
	time.Sleep(shutdownDelay)

	log.Error("failed to graceful shutdown")
	os.Exit(1)
}
