package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jason-s-yu/pdwager/service/internal/config"
	"github.com/jason-s-yu/pdwager/service/internal/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pdwager",
		Short: "Post-decision wagering task simulator",
		Long: `pdwager runs a perceptual decision task with post-decision wagering.

Each trial shows noisy evidence for one of two directions, waits through a
delay and then asks for a choice. On wager trials a sure option pays a
smaller reward for certain.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML task file (default $"+config.EnvTaskFile+")")
	rootCmd.PersistentFlags().String("env", ".env", "dotenv file; ignored when missing")
	rootCmd.PersistentFlags().String("log-level", "", "trace, debug, info, warn or error")
	rootCmd.PersistentFlags().Uint64("seed", 0, "random seed (overrides config)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newScheduleCmd(),
	)
	return rootCmd
}

// loadConfig merges the config sources and then any flags set on cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	taskFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env")
	cfg, err := config.Load(config.Options{TaskFile: taskFile, EnvFile: envFile})
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Lookup("trials") != nil && flags.Changed("trials") {
		cfg.Trials, _ = flags.GetInt("trials")
	}
	if flags.Lookup("abort") != nil && flags.Changed("abort") {
		cfg.Rules.AbortEndsTrial, _ = flags.GetBool("abort")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) *logrus.Logger {
	return logging.New(cfg.LogLevel, cmd.ErrOrStderr())
}
