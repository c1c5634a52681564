package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"driprun/internal/api"
	"driprun/internal/broadcast"
	"driprun/internal/config"
	"driprun/internal/domain"
	"driprun/internal/infra/ledger"
	"driprun/internal/infra/relay"
	"driprun/internal/infra/termfile"
	"driprun/internal/usecase"
)

func serveCmd() *cobra.Command {
	var port int
	var command = &cobra.Command{
		Use:   "serve",
		Short: "Start the control server",
		Run: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			cfg := config.Load()

			hub := broadcast.NewHub()
			sender := ledger.New(cfg.Ledger.RPCEndpoint, cfg.Ledger.MaxLamports)
			store := termfile.New(cfg.Run.TerminationLogPath)

			defaults := domain.RunConfig{
				BatchSize:   cfg.Run.BatchSize,
				MaxAttempts: cfg.Run.MaxTransactions,
				MaxFailures: cfg.Run.MaxFailures,
			}
			pacing := usecase.Pacing{
				StaggerMin:  time.Duration(cfg.Pacing.StaggerMinMs) * time.Millisecond,
				StaggerSpan: time.Duration(cfg.Pacing.StaggerSpanMs) * time.Millisecond,
				AttemptMin:  time.Duration(cfg.Pacing.AttemptMinMs) * time.Millisecond,
				AttemptSpan: time.Duration(cfg.Pacing.AttemptSpanMs) * time.Millisecond,
			}
			runner := usecase.NewRunner(sender, hub, store, defaults, pacing)

			if cfg.Relay.Addr != "" {
				rel := relay.New(cfg.Relay, hub)
				ctx := context.Background()
				if err := rel.Connect(ctx); err != nil {
					log.Fatal().Msgf("something went wrong: %s", err)
				}
				go func() {
					if err := rel.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
						log.Error().Err(err).Msg("relay stopped with error")
					}
				}()
			}

			server := api.NewServer(runner, hub)
			server.Run(port)
		},
	}

	command.Flags().IntVarP(&port, "port", "p", 3000, "Port to run the server on")
	return command
}
