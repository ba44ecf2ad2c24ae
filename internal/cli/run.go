package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hookcut/hookcut/internal/session"
)

func newRunCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <url>",
		Short: "Suggest, download and cut in one shot",
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
			proposed, err := sess.Propose(cmd.Context(), req)
			if err != nil {
				return err
			}
			for _, d := range proposed.Dropped {
				log.Warn().Int("element", d.Index).Str("reason", d.Reason).Msg("dropped suggestion")
			}
			log.Info().Msg(proposed.Summary())

			res, err := sess.Extract(cmd.Context())
			if err != nil {
				return err
			}
			return reportExtract(cmd, res)
		},
	}

	addProposeFlags(cmd)
	return cmd
}
