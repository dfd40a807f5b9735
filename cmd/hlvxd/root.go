package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hlvx/hlvx-http-rest/pkg/config"
)

var (
	// configFlag is the CLI --config flag value
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:   "hlvxd",
	Short: "hlvxd - REST HTTP server",
	Long: `hlvxd runs a REST HTTP server assembled from configuration: routing,
OpenAPI document generation, authentication, CORS and request metrics
are wired together from the config file and environment.`,
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"Path to config file (default: "+config.GetDefaultConfigPath()+")")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	server, err := config.BuildServer(cfg, &echoService{})
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.Serve(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
