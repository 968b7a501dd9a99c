package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/weedbox/pokerdealer"
	"github.com/weedbox/pokerdealer/broker"
	"github.com/weedbox/pokerdealer/config"
	"github.com/weedbox/pokerdealer/handlers"
	"github.com/weedbox/pokerdealer/store"
)

const SERVICE_NAME = "pokerdealer"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	cfg.SetupLogging()

	// sqlite store
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open store %s: %v", cfg.DBPath, err)
	}
	defer db.Close()

	state, err := db.LoadSnapshot()
	if err != nil && !errors.Is(err, store.ErrSnapshotNotFound) {
		log.Fatalf("failed to load snapshot: %v", err)
	}
	if state != nil {
		log.Infof("state restored at serial %d", state.UpdateSerial)
	}

	var engine *pokerdealer.Engine
	callbacks := pokerdealer.NewEngineCallbacks()

	// nats bridge
	var b *broker.Broker
	if cfg.NatsURL != "" {
		nc, err := broker.Connect(cfg.NatsURL, cfg.NatsToken)
		if err != nil {
			log.Fatalf("unable to connect to NATS server %s: %v", cfg.NatsURL, err)
		}
		defer nc.Close()
		log.Infof("NATS connection established successfully %s", cfg.NatsURL)

		b = broker.NewBroker(nc, broker.DispatcherFunc(func(msg pokerdealer.Message) error {
			return engine.Dispatch(msg)
		}), cfg.ActionSubject, cfg.StateSubject)
		callbacks.OnStateUpdated = b.PublishState
	}

	options := pokerdealer.NewEngineOptions()
	options.ClockInterval = cfg.ClockInterval
	options.ReadyTimeout = cfg.ReadyTimeout

	engine = pokerdealer.NewEngine(options,
		pokerdealer.WithStore(db),
		pokerdealer.WithState(state),
		pokerdealer.WithCallbacks(callbacks),
	)
	defer engine.Close()

	if b != nil {
		if err := b.Subscribe(); err != nil {
			log.Fatalf("unable to subscribe to %s: %v", cfg.ActionSubject, err)
		}
		defer b.Unsubscribe()
	}

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handlers.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	handlers.NewHandler(engine, db).SetRoutes(r)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("%s service shutdown failed: %+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
