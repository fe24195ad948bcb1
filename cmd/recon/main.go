// Command recon runs the daily recon job once, for use from a scheduler.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"commandcenter-backend/clients"
	"commandcenter-backend/config"
	"commandcenter-backend/logging"
	"commandcenter-backend/service"
	"commandcenter-backend/telemetry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	dryRun     bool
	targets    []string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "recon",
	Short: "Public-source recon for the recovery case",
	Long: `recon searches the web for recent public mentions of each configured
target and emails a plain-text report.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the recon job once",
	Long: `Run the recon job once and send the report.

Examples:
  # Send the report using RECON_* settings from the environment
  recon run

  # Print the email instead of sending it
  recon run --dry-run

  # Override the targets
  recon run --target "Acme Holdings LLC" --target "Jane Doe"`,
	Args: cobra.NoArgs,
	RunE: runRecon,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "optional YAML config file")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the email to stdout instead of sending it")
	runCmd.Flags().StringArrayVar(&targets, "target", nil, "target to search (repeatable, replaces configured targets)")
	rootCmd.AddCommand(runCmd)
}

func runRecon(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reconCfg := cfg.Recon
	if len(targets) > 0 {
		reconCfg.Targets = targets
	}

	opts := []service.ReconServiceOption{
		service.WithReconConfig(reconCfg),
		service.WithReconLogger(logger),
		service.WithReconMetrics(telemetry.NewMetrics()),
	}
	if dryRun {
		opts = append(opts, service.WithMailer(clients.NewWriterMailer(cmd.OutOrStdout())))
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := service.NewReconService(opts...).Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("recon finished", zap.String("status", result.Status), zap.String("email_id", result.EmailID))
	fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s)\n", result.Status, result.EmailID)
	return nil
}

// contextOrBackground keeps runRecon usable when invoked without Execute
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
