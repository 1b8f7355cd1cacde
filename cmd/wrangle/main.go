// wrangle applies Cloud DLP redact/mask directives to tabular rows —
// either one shot over a JSONL file, or as an HTTP service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/codeready-toolchain/wrangle/pkg/api"
	"github.com/codeready-toolchain/wrangle/pkg/config"
	"github.com/codeready-toolchain/wrangle/pkg/directive"
	"github.com/codeready-toolchain/wrangle/pkg/directives"
	"github.com/codeready-toolchain/wrangle/pkg/dlp"
	"github.com/codeready-toolchain/wrangle/pkg/rowio"
	"github.com/codeready-toolchain/wrangle/pkg/version"
)

func main() {
	// Parse command-line flags
	serve := flag.Bool("serve", false, "Run the HTTP API instead of a one-shot transform")
	envFile := flag.String("env", ".env", "Path to .env file")
	input := flag.String("input", "-", "JSONL input path, - for stdin")
	output := flag.String("output", "-", "JSONL output path, - for stdout")
	name := flag.String("directive", directives.RedactName, "Directive to apply: redact or mask")
	column := flag.String("column", "", "Source column to transform")
	infoTypes := flag.String("info-types", "", "Comma-separated DLP info type names")
	maskChar := flag.String("mask-char", "", "Masking character (mask directive)")
	count := flag.Int("count", 0, "Number of characters to mask; 0 masks whole span (mask directive)")
	direction := flag.String("direction", "", "Masking direction: start or end (mask directive)")
	project := flag.String("project", "", "GCP project id override")
	credentials := flag.String("credentials", "", "Service account file path override")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(*envFile); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", *envFile, "error", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	registry := directive.NewRegistry()
	directives.Register(registry, dlp.DefaultProvider())

	if *serve {
		runServer(registry, cfg.HTTPPort)
		return
	}

	opts := runOptions{
		directive:   *name,
		column:      *column,
		infoTypes:   *infoTypes,
		maskChar:    *maskChar,
		count:       *count,
		direction:   *direction,
		project:     firstNonEmpty(*project, cfg.ProjectID),
		credentials: firstNonEmpty(*credentials, cfg.CredentialsFile),
		likelihood:  cfg.MinLikelihood,
	}
	if err := runOnce(context.Background(), registry, opts, *input, *output); err != nil {
		slog.Error("Transform failed", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	directive   string
	column      string
	infoTypes   string
	maskChar    string
	count       int
	direction   string
	project     string
	credentials string
	likelihood  string
}

// arguments assembles the directive argument set from flags and config.
func (o runOptions) arguments() directive.Arguments {
	args := directive.Arguments{
		"column":    o.column,
		"info-type": o.infoTypes,
	}
	if o.maskChar != "" {
		args["mask-char"] = o.maskChar
	}
	if o.count > 0 {
		args["count"] = strconv.Itoa(o.count)
	}
	if o.direction != "" {
		args["direction"] = o.direction
	}
	if o.likelihood != "" {
		args["likelihood"] = o.likelihood
	}
	if o.project != "" {
		args["project-id"] = o.project
	}
	if o.credentials != "" {
		args["service-account-file-path"] = o.credentials
	}
	return args
}

// runOnce reads a JSONL batch, applies the directive, and writes the result.
func runOnce(ctx context.Context, registry *directive.Registry, opts runOptions, input, output string) error {
	if opts.column == "" {
		return fmt.Errorf("-column is required")
	}

	d, err := registry.Create(opts.directive)
	if err != nil {
		return err
	}
	defer d.Destroy()

	if err := d.Initialize(ctx, opts.arguments()); err != nil {
		return err
	}

	in, closeIn, err := openInput(input)
	if err != nil {
		return err
	}
	defer closeIn()

	rows, err := rowio.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	start := time.Now()
	rows, err = d.Execute(ctx, rows)
	if err != nil {
		return err
	}
	slog.Info("Batch transformed",
		"directive", opts.directive,
		"rows", len(rows),
		"duration_ms", time.Since(start).Milliseconds())

	out, closeOut, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeOut()

	return rowio.WriteAll(out, rows)
}

// runServer starts the HTTP API and blocks until a shutdown signal.
func runServer(registry *directive.Registry, port string) {
	server := api.NewServer(registry)
	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", httpServer.Addr, "version", version.Full())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
	slog.Info("Shutdown complete")
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
