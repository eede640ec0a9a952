package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"surveypulse/internal/generation"
	"surveypulse/internal/model"
	"surveypulse/internal/service"
)

var (
	generatePrompt string
	generateCount  int
)

// generateCmd runs the question pipeline once and prints the result as JSON
var generateCmd = &cobra.Command{
	Use:     "generate",
	Short:   "Generate survey questions from a prompt",
	Example: `  surveypulse generate --prompt "customer satisfaction for a coffee shop" --count 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := generation.NewFromConfig(cmd.Context(), &cfg.AI, logger.Named("generation"))
		svc := service.NewGenerationService(gen, nil, &cfg.AI, logger)

		result, err := svc.Generate(cmd.Context(), "cli", &model.GenerateRequest{
			Prompt:        generatePrompt,
			QuestionCount: generateCount,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}
