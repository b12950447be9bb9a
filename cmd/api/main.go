package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/transitstats/mta-ridership/internal/app"
	"github.com/transitstats/mta-ridership/internal/appconf"
	"github.com/transitstats/mta-ridership/internal/logging"
	"github.com/transitstats/mta-ridership/internal/restapi"
	"github.com/transitstats/mta-ridership/internal/ridership"
	"github.com/transitstats/mta-ridership/internal/webui"
)

func main() {
	cfg, err := appconf.Load(os.Args[1:], nil)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewLogger(os.Stdout, cfg.LogFormat, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err, slog.String("component", "main"))
		os.Exit(1)
	}
}

// loadDataset fetches and parses the ridership table. Any failure here is fatal: the server
// has nothing to serve without it.
func loadDataset(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*ridership.Dataset, error) {
	ctx, cancel := context.WithTimeout(logging.WithLogger(ctx, logger), cfg.FetchTimeout)
	defer cancel()

	start := time.Now()
	ds, err := ridership.Fetch(ctx, &http.Client{Timeout: cfg.FetchTimeout}, cfg.DataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to load ridership data: %w", err)
	}

	logging.LogOperation(logger, "ridership_data_loaded",
		slog.String("source", cfg.DataSource),
		slog.Int("rows", ds.Len()),
		slog.String("first_date", ds.FirstDate().Format("2006-01-02")),
		slog.String("last_date", ds.LastDate().Format("2006-01-02")),
		slog.Duration("duration", time.Since(start)))
	return ds, nil
}

// routes mounts the JSON API and the web pages on one router behind the API middleware. The
// returned func releases background resources.
func routes(application *app.Application) (http.Handler, func(), error) {
	api := restapi.NewRestAPI(application)
	ui, err := webui.NewWebUI(application)
	if err != nil {
		api.Close()
		return nil, nil, err
	}

	router := httprouter.New()
	api.SetRoutes(router)
	ui.SetRoutes(router)

	return api.WithMiddleware(router), api.Close, nil
}

func run(ctx context.Context, cfg appconf.Config, logger *slog.Logger) error {
	ds, err := loadDataset(ctx, cfg, logger)
	if err != nil {
		return err
	}

	handler, closeAPI, err := routes(app.New(cfg, logger, ds))
	if err != nil {
		return err
	}
	defer closeAPI()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}
