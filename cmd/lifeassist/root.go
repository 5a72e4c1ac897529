package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MahidharReddy003/aislingshot-sub000/internal/config"
	"github.com/MahidharReddy003/aislingshot-sub000/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lifeassist",
	Short: "LifeAssist is a schema-validated assistant for everyday decisions",
	Long: `LifeAssist turns prompts into typed functions: every flow validates its
input, renders a prompt, asks a reasoning service and validates the answer
before anyone sees it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "Dotenv files to load (default .env)")
	rootCmd.PersistentFlags().String("log-level", "", "Override the log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("flows", "", "Directory with extra flow documents")
}

// loadConfig resolves the configuration from the dotenv files, the config
// file, the environment and finally the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, nil, err
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("flows") {
		cfg.Flows.Dir, _ = cmd.Flags().GetString("flows")
	}

	logger, err := cli.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
