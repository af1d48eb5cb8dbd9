// Screend is the change-request screening daemon.
//
// It classifies free-text engineering change descriptions into one of five
// screening categories, decides whether a formal screening is required,
// extracts structured fields, and scores document quality, over an HTTP
// API.
//
// Usage:
//
//	# Start the daemon with defaults
//	screend
//
//	# Point at a config file
//	screend -config /etc/screend/config.yaml
//
//	# Configure via environment
//	SCREEND_SERVER_HTTP_PORT=8170 SCREEND_REASONER_PROVIDER=anthropic \
//	SCREEND_REASONER_API_KEY=sk-... screend
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/screend/internal/config"
	screendhttp "github.com/fyrsmithlabs/screend/internal/http"
	"github.com/fyrsmithlabs/screend/internal/logging"
	"github.com/fyrsmithlabs/screend/internal/services"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/screend/config.yaml)")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  screend           Start the screening daemon\n")
			fmt.Fprintf(os.Stderr, "  screend version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("screend by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the screend server and blocks until the context is cancelled.
//
//  1. Loads and validates configuration
//  2. Initializes the logger
//  3. Builds the service graph (patterns, reasoner, suggester, screening)
//  4. Starts the HTTP server
//  5. Performs graceful shutdown on context cancellation
func run(ctx context.Context, configPath string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to prepare config directory: %w", err)
	}

	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logging.Sync(logger)
	}()

	logger.Info("Starting screend",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("reasoner_provider", cfg.Reasoner.Provider),
		zap.Bool("suggester_enabled", cfg.Suggester.Enabled),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout.Duration()))

	registry, err := services.Build(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	logger.Info("Services initialized",
		zap.Bool("reasoner_available", registry.Reasoner().Available()))

	srv, err := screendhttp.NewServer(registry.Screening(), registry.Gatherer(), logger.Named("http"), cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	logger.Info("Server configured",
		zap.String("health_endpoint", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port)),
		zap.String("screen_endpoint", "/api/v1/screen"),
		zap.String("score_endpoint", "/api/v1/score"),
		zap.String("metrics_endpoint", "/metrics"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
