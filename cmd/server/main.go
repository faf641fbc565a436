package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/uptrace/bun/migrate"

	"github.com/wallcal/wallcal.go/db"
	"github.com/wallcal/wallcal.go/db/migrations"
	"github.com/wallcal/wallcal.go/lib/logging"
	"github.com/wallcal/wallcal.go/lib/service"
	"github.com/wallcal/wallcal.go/lib/transport"
)

func main() {

	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := logging.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}
	defer dbConn.Close()

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:          c.SentryDSN,
			IgnoreErrors: []string{"401", "403"},
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	svc := &service.WallcalService{
		Config:      c,
		DB:          dbConn,
		Logger:      logger,
		EventPubSub: service.NewPubsub(),
	}

	// init echo server
	e := transport.InitEcho(c, logger)

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for registrations
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	transport.RegisterEndpoints(svc, e, strictRateLimitMiddleware, logMw)

	// Start Prometheus server if necessary
	if c.EnablePrometheus {
		go transport.StartPrometheusEcho(logger, c, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf("%s:%d", c.Host, c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	shutdownCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	<-shutdownCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	svc.Logger.Info("Wallcal exiting gracefully. Goodbye.")
}
