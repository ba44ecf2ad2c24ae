package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hookcut/hookcut/internal/api"
	"github.com/hookcut/hookcut/internal/session"
)

func newServeCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the session API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, true)
			if err != nil {
				return err
			}

			if port, _ := cmd.Flags().GetInt("port"); port != 0 {
				cfg.Port = port
			}

			srv := api.NewServer(api.ServerConfig{
				Port:       cfg.Port,
				NewSession: func() *session.Session { return session.New(buildDeps(cfg)) },
				Logger:     log.Logger,
				Metrics:    api.NewMetrics(),
				StartTime:  time.Now(),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().Int("port", 0, "Listen port (overrides config)")
	return cmd
}
