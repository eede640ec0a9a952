package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"surveypulse/internal/app"
	"surveypulse/internal/config"
	"surveypulse/internal/logging"
	"surveypulse/internal/model"
)

var (
	configPath string
	responses  int
	cfg        *config.Config
	logger     *zap.Logger
)

// seedCmd creates a demo survey and submits random responses to it
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a demo survey with responses",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if responses < 0 {
			return fmt.Errorf("--responses must not be negative, got %d", responses)
		}
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
	PostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("SURVEYPULSE_CONFIG"), "path to YAML config file")
	seedCmd.Flags().IntVarP(&responses, "responses", "n", 25, "number of demo responses to submit")
}

func main() {
	if err := seedCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close(context.Background())

	survey, err := seed(ctx, a, responses)
	if err != nil {
		return err
	}

	logger.Info("Seeded demo survey",
		zap.String("surveyId", survey.ID),
		zap.String("title", survey.Title),
		zap.Int("responses", responses))
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully created survey '%s' (%s) with %d responses\n", survey.Title, survey.ID, responses)
	return nil
}

// seed creates the demo survey and submits n deterministic random responses
func seed(ctx context.Context, a *app.App, n int) (*model.Survey, error) {
	survey, err := a.SurveyService.Create(ctx, demoSurvey())
	if err != nil {
		return nil, fmt.Errorf("create survey: %w", err)
	}

	rng := rand.New(rand.NewPCG(42, uint64(len(survey.Questions))))
	for i := 0; i < n; i++ {
		if _, err := a.ResponseService.Submit(ctx, survey.ID, demoResponse(rng)); err != nil {
			return nil, fmt.Errorf("submit response %d: %w", i, err)
		}
	}
	return survey, nil
}

var (
	models   = []string{"Standard Model", "Pro / Plus Model", "Ultra / Max Model"}
	features = []string{
		"The display is bright and sharp even outdoors",
		"Battery easily lasts a full day",
		"Camera is great in low light",
		"Fast and smooth for everything I do",
		"",
	}
)

func demoSurvey() *model.CreateSurveyRequest {
	return &model.CreateSurveyRequest{
		Title:       "Smartphone Launch Feedback",
		Description: "Understand user perception, satisfaction, and improvement areas for the new device.",
		Questions: []model.Question{
			{Text: "How satisfied are you with this smartphone overall?", Type: model.QuestionTypeRating, Required: true},
			{Text: "Which model did you purchase?", Type: model.QuestionTypeMultipleChoice, Options: models, Required: true},
			{Text: "Would you recommend it to a friend?", Type: model.QuestionTypeYesNo},
			{Text: "How many hours a day do you use it?", Type: model.QuestionTypeNumber},
			{Text: "Which feature do you find the most impressive?", Type: model.QuestionTypeText},
		},
	}
}

func demoResponse(rng *rand.Rand) *model.SubmitResponseRequest {
	rating := 2 + rng.IntN(4)
	answers := map[string]any{
		"How satisfied are you with this smartphone overall?": rating,
		"Which model did you purchase?":                       models[rng.IntN(len(models))],
		"How many hours a day do you use it?":                 1 + rng.IntN(8),
	}
	if rng.IntN(5) > 0 {
		answers["Would you recommend it to a friend?"] = rating >= 4
	}
	if f := features[rng.IntN(len(features))]; f != "" {
		answers["Which feature do you find the most impressive?"] = f
	}
	return &model.SubmitResponseRequest{Responses: answers}
}
