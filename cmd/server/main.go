package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blhandler "ninhub/internal/blacklist/handler"
	"ninhub/internal/fraud"
	"ninhub/internal/fraud/cache"
	fraudmetrics "ninhub/internal/fraud/metrics"
	jwttoken "ninhub/internal/jwt_token"
	linkhandler "ninhub/internal/linkage/handler"
	"ninhub/internal/linkage/models"
	linkservice "ninhub/internal/linkage/service"
	"ninhub/internal/platform/config"
	"ninhub/internal/platform/httpserver"
	"ninhub/internal/platform/logger"
	"ninhub/internal/platform/metrics"
	redisclient "ninhub/internal/platform/redis"
	ratelimitmetrics "ninhub/internal/ratelimit/metrics"
	ratelimit "ninhub/internal/ratelimit/middleware"
	ratelimitmodels "ninhub/internal/ratelimit/models"
	"ninhub/internal/ratelimit/store/bucket"
	reghandler "ninhub/internal/registry/handler"
	regservice "ninhub/internal/registry/service"
	httptransport "ninhub/internal/transport/http"
	"ninhub/pkg/platform/audit/publishers/compliance"
)

const shutdownTimeout = 10 * time.Second

// main wires the stores, the fraud engine and the services behind the HTTP
// router. Business logic lives in the internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	be, err := openBackend(ctx, cfg.DatabaseURL, cfg.TxTimeout, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.close(); err != nil {
			log.Warn("failed to close database", "error", err)
		}
	}()

	engineOpts := []fraud.Option{
		fraud.WithLogger(log),
		fraud.WithMetrics(fraudmetrics.New(nil)),
		fraud.WithRules(models.DomainSIM, fraud.Rules{
			Cap:               cfg.Fraud.SIMCap,
			VelocityThreshold: cfg.Fraud.SIMVelocityThreshold,
			VelocityWindow:    cfg.Fraud.AnomalyWindow,
		}),
		fraud.WithRules(models.DomainBank, fraud.Rules{
			Cap:               cfg.Fraud.BankCap,
			VelocityThreshold: cfg.Fraud.BankVelocityThreshold,
			VelocityWindow:    cfg.Fraud.AnomalyWindow,
		}),
	}

	rateLimitOpts := []ratelimit.Option{
		ratelimit.WithLogger(log),
		ratelimit.WithMetrics(ratelimitmetrics.New(nil)),
		ratelimit.WithDisabled(cfg.RateLimit.Disabled),
		ratelimit.WithLimits(map[ratelimitmodels.EndpointClass]ratelimitmodels.Limit{
			ratelimitmodels.ClassRead:  {RequestsPerWindow: cfg.RateLimit.ReadPerMinute, Window: time.Minute},
			ratelimitmodels.ClassWrite: {RequestsPerWindow: cfg.RateLimit.WritePerMinute, Window: time.Minute},
		}),
	}
	var buckets ratelimit.BucketStore = bucket.NewInMemoryBucketStore()

	rdb, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		engineOpts = append(engineOpts, fraud.WithSignalCache(cache.NewRedis(rdb.Client, cache.WithTTL(cfg.Redis.SignalTTL))))
		rateLimitOpts = append(rateLimitOpts, ratelimit.WithFallback(buckets))
		buckets = bucket.NewRedisBucketStore(rdb.Client)
		be.checks["redis"] = rdb.Health
		log.InfoContext(ctx, "redis enabled for fraud signal cache and rate limits", "ttl", cfg.Redis.SignalTTL)
	}

	publisher := compliance.New(be.audit,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics(nil)),
	)
	engine, err := fraud.New(be.citizens, be.blacklist, be.linkages, be.runner, publisher, engineOpts...)
	if err != nil {
		return err
	}
	registry := regservice.New(be.citizens, be.linkages, be.runner, publisher, regservice.WithLogger(log))
	links := linkservice.New(be.linkages, engine, be.runner, publisher,
		linkservice.WithLogger(log), linkservice.WithCitizens(be.citizens))

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:    log,
		Metrics:   metrics.New(nil),
		Tokens:    jwttoken.NewJWTServiceAdapter(tokens),
		Ops:       httptransport.NewOpsHandler(publisher, registry, links, engine, be.checks, log),
		RateLimit: ratelimit.New(buckets, rateLimitOpts...),
		Handlers: []httptransport.RouteRegistrar{
			reghandler.New(registry, log),
			linkhandler.NewTelecom(links, engine, log),
			linkhandler.NewBank(links, engine, log),
			blhandler.New(engine, log),
		},
	})

	srv := httpserver.New(cfg.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting ninhub", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
