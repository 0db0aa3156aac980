package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ridemate/plateid/internal/model"
	"github.com/ridemate/plateid/internal/pipeline"
	"github.com/ridemate/plateid/pkg/vision"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image>...",
	Short: "Recognize plates in one or more images",
	Long:  "Runs the recognition pipeline for each image (local path or http(s) URL) and prints one JSON outcome per line, in input order. Each image is an independent attempt.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Anthropic.Key == "" {
			return eris.New("recognize: anthropic.key is not configured")
		}

		recognizer := newRecognizer()

		limit := cfg.Recognize.MaxConcurrent
		if limit <= 0 {
			limit = 1
		}

		outcomes := make([]model.Outcome, len(args))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(limit)
		for i, arg := range args {
			i, arg := i, arg
			g.Go(func() error {
				outcomes[i] = recognizer.Process(ctx, model.ImageFromSource(arg))
				return nil
			})
		}
		_ = g.Wait()

		enc := json.NewEncoder(os.Stdout)
		failed := 0
		for _, outcome := range outcomes {
			if err := enc.Encode(outcome); err != nil {
				return eris.Wrap(err, "recognize: encode outcome")
			}
			if outcome.Kind != model.OutcomeAccepted {
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("recognize: %d of %d images not accepted", failed, len(args))
		}
		return nil
	},
}

func newRecognizer() *pipeline.Recognizer {
	client := vision.NewClient(vision.Options{
		APIKey:    cfg.Anthropic.Key,
		Model:     cfg.Anthropic.Model,
		MaxTokens: int64(cfg.Anthropic.MaxTokens),
		Timeout:   cfg.Anthropic.Timeout(),
		RateRPS:   cfg.Anthropic.RateRPS,
		RateBurst: cfg.Anthropic.RateBurst,
	})
	return pipeline.NewRecognizer(client, cfg.Recognize.MaxImageBytes)
}

func init() {
	recognizeCmd.SilenceUsage = true
	rootCmd.AddCommand(recognizeCmd)
}
