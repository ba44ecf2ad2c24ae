package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hookcut/hookcut/internal/ports"
	"github.com/hookcut/hookcut/internal/session"
)

func newSuggestCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <url>",
		Short: "Ask the AI service for hook clip suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, true)
			if err != nil {
				return err
			}

			req, err := proposeRequestFromFlags(cmd, args[0])
			if err != nil {
				return err
			}

			sess := session.New(buildDeps(cfg))
			res, err := sess.Propose(cmd.Context(), req)
			if err != nil {
				return err
			}

			for _, d := range res.Dropped {
				log.Warn().Int("element", d.Index).Str("reason", d.Reason).Msg("dropped suggestion")
			}
			log.Info().Msg(res.Summary())

			out, _ := cmd.Flags().GetString("out")
			b, err := json.MarshalIndent(res.Suggestions, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal suggestions: %w", err)
			}
			if out != "" {
				if err := os.WriteFile(out, b, 0o644); err != nil {
					return err
				}
				log.Info().Str("path", out).Msg("suggestions written")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	addProposeFlags(cmd)
	cmd.Flags().String("out", "", "Write suggestions JSON to a file instead of stdout")
	return cmd
}

func addProposeFlags(cmd *cobra.Command) {
	cmd.Flags().Int("clips", 5, "Number of clips to request")
	cmd.Flags().Float64("min", 5, "Min clip duration seconds")
	cmd.Flags().Float64("max", 10, "Max clip duration seconds")
	cmd.Flags().String("prompt", "", "Override the built-in instruction block")
}

func proposeRequestFromFlags(cmd *cobra.Command, url string) (ports.ProposeRequest, error) {
	clips, _ := cmd.Flags().GetInt("clips")
	minDur, _ := cmd.Flags().GetFloat64("min")
	maxDur, _ := cmd.Flags().GetFloat64("max")
	prompt, _ := cmd.Flags().GetString("prompt")

	if clips < 1 {
		return ports.ProposeRequest{}, fmt.Errorf("clips must be >= 1")
	}
	if minDur <= 0 || minDur > maxDur {
		return ports.ProposeRequest{}, fmt.Errorf("invalid duration bounds %v-%v", minDur, maxDur)
	}

	return ports.ProposeRequest{
		SourceURL:      url,
		Count:          clips,
		MinDurationSec: minDur,
		MaxDurationSec: maxDur,
		PromptOverride: prompt,
	}, nil
}
