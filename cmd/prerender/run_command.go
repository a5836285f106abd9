package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prerender/internal/logging"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Sync assets, then render the QR code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, ctx)
		},
	}
}

// runPipeline performs the full pre-render step. Asset problems are logged
// and never fail the run; QR failures do.
func runPipeline(cmd *cobra.Command, ctx *commandContext) error {
	env, err := ctx.newRunEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	return env.withCacheLock(func() error {
		env.logger.Info("checking remote assets", logging.Int("assets", len(env.cfg.Assets.Entries)))
		if err := syncAssets(env); err != nil {
			return err
		}

		if env.cfg.QR.Enabled {
			env.logger.Info("generating QR code")
			if _, err := generateQR(env, env.cfg.Paths.Document, env.cfg.Paths.QROutput); err != nil {
				return fmt.Errorf("qr: %w", err)
			}
		} else {
			env.logger.Info("qr step disabled")
		}

		env.logger.Info("done")
		return nil
	})
}
