package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sysglance/internal/application/status"
	"sysglance/internal/config"
	"sysglance/internal/logger"
	"sysglance/internal/stats"
	"sysglance/internal/storage/snapshot"
	"sysglance/internal/transport/rest"
	"sysglance/internal/transport/ws"
	"sysglance/internal/workers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	log.Info("starting sysglance", "address", cfg.Address, "ttl_seconds", cfg.TTLSeconds)

	sampler := stats.NewProcSampler(log)
	store := snapshot.NewStore(cfg.TTL())
	statusService := status.NewService(sampler, store, log)

	hub := ws.NewHub(ctx, log)
	go hub.Run()
	wsHandler := ws.NewHandler(hub, log, cfg.AllowedOrigins)

	statusHandler := rest.NewStatusHandler(statusService, cfg.TTLSeconds, log)

	router := rest.NewRouter(cfg, log, &rest.RouterDeps{
		Status: statusHandler,
		Ws:     wsHandler,
	})

	srv := rest.NewServer(router, cfg.Address)

	scheduler := workers.NewScheduler(log)
	manager := workers.NewManager(log, scheduler, &workers.ManagerServices{
		Status: statusService,
		Hub:    hub,
	})
	manager.Start(ctx, cfg.TTL())

	errCh := make(chan error, 1)
	go func() {
		log.Info("http: starting server", "address", cfg.Address)
		errCh <- srv.ListenAndServe()
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		hub.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http: server shutdown error", "error", err)
		}

	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("http: server error", "error", err)
			os.Exit(1)
		}
	}

	log.Info("server stopped")
}
