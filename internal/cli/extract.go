package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hookcut/hookcut/internal/domain/suggest"
	"github.com/hookcut/hookcut/internal/session"
)

func newExtractCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Download the source and cut clips from a saved suggestions file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, false)
			if err != nil {
				return err
			}

			suggestionsPath, _ := cmd.Flags().GetString("suggestions")
			data, err := os.ReadFile(suggestionsPath)
			if err != nil {
				return fmt.Errorf("read suggestions: %w", err)
			}
			parsed, err := suggest.Parse(string(data))
			if err != nil {
				return fmt.Errorf("suggestions file %s holds no valid JSON array", suggestionsPath)
			}
			for _, d := range parsed.Dropped {
				log.Warn().Int("element", d.Index).Str("reason", d.Reason).Msg("dropped suggestion")
			}

			sess := session.New(buildDeps(cfg))
			sess.Seed(args[0], parsed.Suggestions)

			res, err := sess.Extract(cmd.Context())
			if err != nil {
				return err
			}
			return reportExtract(cmd, res)
		},
	}

	cmd.Flags().String("suggestions", "suggestions.json", "Path to a suggestions JSON file")
	return cmd
}

func reportExtract(cmd *cobra.Command, res session.ExtractResult) error {
	for _, e := range res.Errors {
		log.Warn().Int("clip", e.Index).Str("diagnostic", truncate(e.Diagnostic, 300)).Msg("clip failed")
	}
	log.Info().Msg(res.Summary())
	for _, a := range res.Artifacts {
		fmt.Fprintln(cmd.OutOrStdout(), a.Path)
	}
	if len(res.Artifacts) == 0 && len(res.Errors) > 0 {
		return fmt.Errorf("no clips were produced")
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
