package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/compass/backend/internal/analytics"
	"github.com/compass/backend/internal/config"
	"github.com/compass/backend/internal/handlers"
	"github.com/compass/backend/internal/ledger"
	"github.com/compass/backend/internal/logging"
	"github.com/compass/backend/internal/middleware/loggingmw"
	"github.com/compass/backend/internal/mykafka"
	"github.com/compass/backend/internal/settings"
	httpserver "github.com/compass/backend/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	logger := logging.New(configuration.LOG_LEVEL)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	ledgerSvc := ledger.NewService(db)

	deps := httpserver.Deps{
		DB:               db,
		OrderHandler:     &handlers.OrderHandler{Svc: ledgerSvc, Producer: prod},
		PaymentHandler:   &handlers.PaymentHandler{Svc: ledgerSvc, Producer: prod},
		ExpenseHandler:   &handlers.ExpenseHandler{DB: db},
		LeadHandler:      &handlers.LeadHandler{DB: db},
		ProjectHandler:   &handlers.ProjectHandler{DB: db},
		AnalyticsHandler: &handlers.AnalyticsHandler{DB: db, Agg: analytics.NewAggregator(db)},
		SettingsHandler:  &handlers.SettingsHandler{Svc: settings.NewService(db, configuration.MIN_DEPOSIT_PERCENT)},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.APP_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
