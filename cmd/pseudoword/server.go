package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CTAG07/Pseudoword/pkg/seedstore"
)

const shutdownTimeout = 10 * time.Second

// Server wires the API handlers to a single mux.
type Server struct {
	config      *Config
	logger      *slog.Logger
	store       *seedstore.Store
	generateAPI *GenerateAPI
	seedsAPI    *SeedsAPI
	streamAPI   *StreamAPI
	serverAPI   *ServerAPI
	apiMux      *http.ServeMux
}

func NewServer(config *Config, logger *slog.Logger, store *seedstore.Store) *Server {
	generateAPI := NewGenerateAPI(store, config, logger)

	server := &Server{
		config:      config,
		logger:      logger,
		store:       store,
		generateAPI: generateAPI,
		seedsAPI:    NewSeedsAPI(store, generateAPI, logger),
		streamAPI:   NewStreamAPI(generateAPI, logger),
		serverAPI:   NewServerAPI(config, logger),
		apiMux:      http.NewServeMux(),
	}

	server.generateAPI.RegisterRoutes(server.apiMux)
	server.seedsAPI.RegisterRoutes(server.apiMux)
	server.streamAPI.RegisterRoutes(server.apiMux)
	server.serverAPI.RegisterRoutes(server.apiMux)

	return server
}

// Handler returns the API handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return withRequestLogging(s.apiMux, s.logger)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// ServeCmd runs the HTTP API until the process is signalled.
type ServeCmd struct {
	Addr string `help:"Address to listen on; overrides the config file."`
}

func (c *ServeCmd) Run(ctx context.Context, app *App) error {
	if c.Addr != "" {
		app.config.Server.ApiAddr = c.Addr
	}

	store, closeStore, err := app.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	server := NewServer(app.config, app.logger, store)
	apiHttpServer := &http.Server{
		Addr:              app.config.Server.ApiAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting pseudoword API server", "address", apiHttpServer.Addr)
		if err := apiHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			app.logger.Error("Api server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info("Stopping API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = apiHttpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Api server shutdown failed", "error", err)
		return err
	}
	app.logger.Info("Pseudoword API server has shut down.")
	return nil
}
