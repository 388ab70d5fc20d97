//go:build !integration

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"bitbucket.org/crgw/booking-engine/internal/booking"
	bookingMiddleware "bitbucket.org/crgw/booking-engine/internal/booking/middleware"
	"bitbucket.org/crgw/booking-engine/internal/fleet"
	"bitbucket.org/crgw/booking-engine/internal/payments"
	"bitbucket.org/crgw/booking-engine/internal/rules"
	"bitbucket.org/crgw/booking-engine/internal/tools/logger"
	"bitbucket.org/crgw/booking-engine/internal/tools/redisfactory"
	"bitbucket.org/crgw/booking-engine/internal/web"
)

func serverApp(httpServer *http.Server, logger *zerolog.Logger) int {
	shutdown := false
	done := make(chan error, 1)
	stop := make(chan os.Signal, 1)
	go func() {
		logger.
			Info().
			Msg("Listening on address " + httpServer.Addr)
		done <- httpServer.ListenAndServe()
	}()
	go func() {
		// Wait for stop
		<-stop
		shutdown = true
		logger.Info().Msg("Shutting down server...")
		_ = httpServer.Shutdown(context.Background())
	}()

	// Notify stop channel if SIGINT or SIGTERM is received
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	err := <-done
	if err != nil && !shutdown {
		logger.
			Error().
			Err(err).
			Msg("Server failed")
		return 1
	}
	return 0
}

func main() {
	_ = godotenv.Load(".env")
	log := logger.New(os.Getenv("LOG_LEVEL"))

	db, err := pgxpool.New(context.Background(), os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to connect to the database")
	}
	defer db.Close()

	redisFactory := redisfactory.New()

	deps := booking.Deps{
		Fleet: fleet.NewCachedRepository(
			fleet.NewPostgresRepository(db),
			redisFactory.RequirementsCacheClient(),
			log,
		),
		Payments: payments.New(payments.ConfigurationFromEnv()),
		Bookings: booking.NewPostgresStore(db),
		Policy:   rules.PolicyFromEnv(),
		Limiter:  bookingMiddleware.NewClientLimiter(10, 20),
	}

	appRouter := web.SetupRouter(log, deps)

	var host string
	if os.Getenv("TEST") == "true" {
		host = "localhost"
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", host, os.Getenv("PORT")),
		Handler: appRouter,
	}

	os.Exit(serverApp(httpServer, log))
}
