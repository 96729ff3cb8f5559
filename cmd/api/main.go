// @title           Backoffice API
// @version         1.0
// @description     Employee and task administration: REST API plus server-rendered pages.
// @host            localhost:8080
// @BasePath        /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Backoffice/internal/app"
	"Backoffice/internal/config"
	"Backoffice/internal/logging"

	_ "Backoffice/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("prod").Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logging.New(cfg.App.Env)
	log.Info("config loaded, connecting to dependencies")

	application, err := app.New(cfg, log)
	if err != nil {
		log.Error("app init failed", "err", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "err", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	if err := application.Close(ctx); err != nil {
		panic(err)
	}
}
