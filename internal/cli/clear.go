package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hookcut/hookcut/internal/session"
)

func newClearCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all produced clips from the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, false)
			if err != nil {
				return err
			}

			sess := session.New(buildDeps(cfg))
			res, err := sess.Clear(cmd.Context())
			if err != nil {
				return err
			}
			for _, f := range res.Failures {
				log.Warn().Str("failure", f).Msg("could not remove")
			}
			log.Info().Msg(res.Summary())
			return nil
		},
	}
}

func newRefreshCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "List the clip files currently on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, false)
			if err != nil {
				return err
			}

			sess := session.New(buildDeps(cfg))
			res, err := sess.Refresh()
			if err != nil {
				return err
			}
			log.Info().Msg(res.Summary())
			for _, a := range res.Artifacts {
				fmt.Fprintln(cmd.OutOrStdout(), a.Path)
			}
			return nil
		},
	}
}
