package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"prerender/internal/config"
	"prerender/internal/qrcode"
)

func newQRCommand(ctx *commandContext) *cobra.Command {
	var documentFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Render the document's footer-url as an SVG QR code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newRunEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()
			document, err := overridePath(documentFlag, env.cfg.Paths.Document)
			if err != nil {
				return fmt.Errorf("--document: %w", err)
			}
			output, err := overridePath(outputFlag, env.cfg.Paths.QROutput)
			if err != nil {
				return fmt.Errorf("--output: %w", err)
			}
			_, err = generateQR(env, document, output)
			return err
		},
	}

	cmd.Flags().StringVar(&documentFlag, "document", "", "Document to read footer-url from (default paths.document)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "SVG destination (default paths.qr_output)")
	return cmd
}

func generateQR(env *runEnv, document, output string) (qrcode.Result, error) {
	return qrcode.NewGenerator(env.base).Generate(env.ctx, document, output)
}

func overridePath(flag, fallback string) (string, error) {
	value := strings.TrimSpace(flag)
	if value == "" {
		return fallback, nil
	}
	return config.ExpandPath(value)
}
