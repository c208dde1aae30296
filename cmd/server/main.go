package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "fuelpos/docs" // swagger docs

	"fuelpos/internal/config"
	"fuelpos/internal/infra"
	"fuelpos/internal/router"
	"fuelpos/internal/service"
	"fuelpos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title FuelPOS API
// @version 1.0
// @description Fuel station point of sale: shifts, pump transactions, prices and reports.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty in development, JSON in production
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Mail is optional; without it reports are only written to disk.
	var (
		sender      worker.Sender
		smtpCB      *infra.CircuitBreaker
		reportEmail string
	)
	if cfg.SMTPEnabled() {
		mailer := infra.NewMailer(cfg)
		sender, smtpCB, reportEmail = mailer, mailer.Breaker(), cfg.ReportEmail
	}

	// Shift reports go through the Redis job queue when Redis is configured,
	// otherwise they are rendered in-process.
	var (
		reports service.ReportSink
		pool    *worker.Pool
		inline  *worker.InlineReporter
	)
	if rdb != nil {
		dispatcher := worker.NewDispatcher(rdb)
		pool = worker.NewPool(rdb, map[string]worker.Processor{
			worker.JobShiftReport: worker.NewShiftReportWorker(cfg.StationName, cfg.ReportStoragePath, reportEmail, dispatcher),
			worker.JobEmail:       worker.NewEmailWorker(sender),
		})
		pool.Start(ctx, cfg.WorkerPoolSize)
		worker.StartRetryCron(ctx, worker.RetryCronConfig{RDB: rdb, Dispatcher: dispatcher, CB: smtpCB})
		reports = dispatcher
	} else {
		inline = worker.NewInlineReporter(cfg.StationName, cfg.ReportStoragePath, reportEmail, sender)
		reports = inline
		log.Warn().Msg("REDIS_URL not set: price cache disabled, shift reports rendered in-process")
	}

	app := router.New(cfg, db, rdb, reports, smtpCB)
	app.PurgeLimiters(ctx, 5*time.Minute)

	if err := app.Seeder.SeedReference(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed fuel types and pumps")
	}
	closed, adopted, err := app.Shifts.RecoverStale(ctx, cfg.AutoCloseStaleShifts)
	if err != nil {
		log.Fatal().Err(err).Msg("stale shift recovery failed")
	}
	if closed > 0 || adopted != nil {
		log.Warn().Int("closed", closed).Bool("adopted", adopted != nil).Msg("stale shifts recovered")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      app.Engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("%s backend listening on :%d", cfg.StationName, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown on SIGINT / SIGTERM. The station cannot be closed
	// while a shift is open: the signal is refused until the shift is ended.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	for range quit {
		if err := app.Shifts.CanShutdown(); err != nil {
			log.Warn().Err(err).Msg("shutdown refused")
			continue
		}
		break
	}

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	cancel()
	if pool != nil {
		pool.Wait()
	}
	if inline != nil {
		inline.Wait()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}
