package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hookcut/hookcut/internal/logging"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:          "hookcut",
		Short:        "Cut AI-suggested hook clips from a video URL",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")

	root.AddCommand(
		newSuggestCmd(&configPath),
		newExtractCmd(&configPath),
		newRunCmd(&configPath),
		newServeCmd(&configPath),
		newClearCmd(&configPath),
		newRefreshCmd(&configPath),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
