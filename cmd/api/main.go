package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell/blogapi/internal/auth"
	"github.com/inkwell/blogapi/internal/cache"
	"github.com/inkwell/blogapi/internal/config"
	"github.com/inkwell/blogapi/internal/db"
	httpx "github.com/inkwell/blogapi/internal/http"
	"github.com/inkwell/blogapi/internal/http/handlers"
	"github.com/inkwell/blogapi/internal/observability"
	"github.com/inkwell/blogapi/internal/repo/memory"
	"github.com/inkwell/blogapi/internal/repo/mongodb"
	"github.com/inkwell/blogapi/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load the config set up
	cfg, err := config.Load()
	if err != nil {
		observability.NewLogger("prod").Error("config invalid", "err", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	shutdownTracer, err := observability.InitTracer(context.Background(), observability.TracerConfig{
		ServiceName: "blogapi",
		Environment: cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRatio: cfg.TraceSampleRatio,
	})
	if err != nil {
		log.Error("tracer init failed, continuing without tracing", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	deps := httpx.Deps{
		Config:   cfg,
		Tokens:   auth.NewManager(cfg.JWTSecret, cfg.JWTTTL()),
		Prom:     prom,
		Gatherer: reg,
		Checks:   map[string]handlers.Check{},
	}

	closeStore := wireStore(log, cfg, prom, &deps)
	defer closeStore()

	if cfg.RedisAddr != "" {
		rdb := cache.NewRedis(cache.RedisConfig{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer func() { _ = rdb.Close() }()

		deps.Cache = cache.NewPostCache(rdb, cfg.CacheTTL(), prom)
		deps.Checks["redis"] = cache.RedisPinger(rdb)
		log.Info("post cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL().String())
	}

	router := httpx.NewRouter(log, deps)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

// wireStore connects the configured store driver and fills the repositories
// on deps. A store that is down at startup is logged, not fatal: the process
// keeps serving and requests fail individually until it comes back.
func wireStore(log *slog.Logger, cfg config.Config, prom *observability.Prom, deps *httpx.Deps) (closeFn func()) {
	ctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.NewPool(cfg.DBURL)
		if pool == nil {
			log.Error("postgres config invalid, falling back to memory store", "err", err)
			wireMemory(deps)
			return func() {}
		}

		if err != nil {
			log.Error("postgres connection error", "err", err)
		} else if err := db.Migrate(ctx, pool); err != nil {
			log.Error("postgres migrations failed", "err", err)
		} else {
			log.Info("Connected to Postgres")
		}

		deps.Users = postgres.NewUsersRepo(pool, prom)
		deps.Posts = postgres.NewPostsRepo(pool, prom)
		deps.Comments = postgres.NewCommentsRepo(pool, prom)
		deps.Checks["postgres"] = pool.Ping

		return pool.Close

	case config.DriverMemory:
		log.Warn("using in-memory store; data is lost on restart")
		wireMemory(deps)
		return func() {}

	default:
		client, database, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if client == nil {
			log.Error("MongoDB config invalid, falling back to memory store", "err", err)
			wireMemory(deps)
			return func() {}
		}

		if err != nil {
			log.Error("MongoDB connection error", "err", err)
		} else if err := mongodb.EnsureIndexes(ctx, database); err != nil {
			log.Error("MongoDB index setup failed", "err", err)
		} else {
			log.Info("Connected to MongoDB")
		}

		deps.Users = mongodb.NewUsersRepo(database, prom)
		deps.Posts = mongodb.NewPostsRepo(database, prom)
		deps.Comments = mongodb.NewCommentsRepo(database, prom)
		deps.Checks["mongodb"] = mongodb.Pinger(client)

		return func() { _ = client.Disconnect(context.Background()) }
	}
}

func wireMemory(deps *httpx.Deps) {
	deps.Users = memory.NewUsersRepo()
	deps.Posts = memory.NewPostsRepo()
	deps.Comments = memory.NewCommentsRepo()
}
