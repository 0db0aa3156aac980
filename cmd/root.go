package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridemate/plateid/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "plateid",
	Short: "Vehicle plate recognition pipeline",
	Long:  "Sends vehicle photos to a multimodal recognition service, gates the detection on confidence, and normalizes the plate text into its canonical form.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
