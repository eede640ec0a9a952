package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"surveypulse/internal/config"
	"surveypulse/internal/logging"
)

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

// rootCmd runs the API server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "surveypulse",
	Short: "Survey platform with response analytics and AI question generation",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogLevel, cfg.IsDevelopment())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("SURVEYPULSE_CONFIG"), "path to YAML config file")

	generateCmd.Flags().StringVarP(&generatePrompt, "prompt", "p", "", "what the survey should ask about")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 5, "number of questions to generate")
	_ = generateCmd.MarkFlagRequired("prompt")

	rootCmd.AddCommand(serveCmd, generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
