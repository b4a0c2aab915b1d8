package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/homebridge-ai/clarity/internal/auth"
	"github.com/homebridge-ai/clarity/internal/config"
	"github.com/homebridge-ai/clarity/internal/server"
	"github.com/homebridge-ai/clarity/internal/telemetry"
)

var serveAddr string

// serveCmd runs the HTTP API until SIGINT/SIGTERM.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Clarity HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authz, err := auth.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	tel, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
		Protocol: cfg.Telemetry.Protocol,
		Service:  cfg.Telemetry.Service,
		Version:  cfg.Telemetry.Version,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	srv, err := server.New(cfg, authz,
		server.WithTelemetry(tel),
		server.WithLogger(logger),
	)
	if err != nil {
		tel.Shutdown(context.Background())
		return err
	}

	logger.Info("starting clarity",
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("auth", authz.Enabled()),
		zap.Bool("telemetry", tel.Enabled),
		zap.String("activation_level", cfg.Logging.ActivationLevel),
	)
	return srv.Start(ctx)
}
