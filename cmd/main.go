package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/honlnm/biztime/internal/api"
	"github.com/honlnm/biztime/internal/repository"
	"github.com/honlnm/biztime/internal/service"
	"github.com/honlnm/biztime/pkg/broker"
	"github.com/honlnm/biztime/pkg/config"
	"github.com/honlnm/biztime/pkg/job"
	"github.com/honlnm/biztime/pkg/logger"
	"github.com/honlnm/biztime/pkg/metrics"
	"github.com/honlnm/biztime/pkg/postgres"
)

const ShutdownTimeout = 10 * time.Second

type producer interface {
	service.Producer
	Close()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	_, err = logger.New(cfg.Logger.Level)
	panicOnErr("create logger", err)

	err = postgres.UpMigrations(cfg.Postgres.DSN)
	panicOnErr("up migrations", err)

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConn)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	repo := repository.New(pool)

	var p producer = broker.NopProducer{}
	if len(cfg.Kafka.Brokers) > 0 {
		p = broker.NewProducer(slog.Default(), cfg.Kafka.Brokers, cfg.Kafka.InvoiceEventsTopic)
	} else {
		slog.WarnContext(ctx, "kafka brokers are not configured, invoice events are disabled")
	}
	defer p.Close()

	s := service.New(repo, p)

	jobs := job.NewService().
		RegisterJob("observe postgres pool", cfg.Metrics.PoolStatsInterval, func(context.Context) error {
			metrics.ObservePool(pool.Stat())
			return nil
		}).
		Start(ctx)

	handler := api.NewHandler(s)
	mw := api.NewMiddleware()

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "service started", "port", cfg.HTTP.Port)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer shutdownCancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}

		cancel()
		jobs.Stop()
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
