package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kotoba-dev/kotoba/internal/config"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "kotoba",
		Short:         "Japanese text and speech processing toolkit",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "", "path to config file (default: ~/.config/kotoba/config.yaml)")

	rootCmd.AddCommand(
		newTextCmd(),
		newSpeechCmd(),
		newDemoCmd(),
		newConfigCmd(),
		newVoicesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration for a command: an explicit --config path,
// then the default config file if present, then built-in defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	switch {
	case path != "":
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	default:
		defaultPath := config.DefaultConfigPath()
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			cfg, err = config.Load(defaultPath)
			if err != nil {
				return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
			}
		} else {
			cfg = config.Default()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	setLogLevel(cfg.LogLevel)
	return cfg, nil
}

func setLogLevel(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetLogLoggerLevel(l)
	log.SetFlags(log.LstdFlags)
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault()
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Printf("Config already exists at %s\n", config.DefaultConfigPath())
				return nil
			}
			fmt.Printf("Wrote default config to %s\n", path)
			return nil
		},
	})
	return cmd
}
