package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"prerender/internal/config"
	"prerender/internal/preflight"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var pathFlag string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			defaultPath, err := config.DefaultConfigPath()
			if err != nil {
				return fmt.Errorf("determine default config path: %w", err)
			}
			target, err := overridePath(pathFlag, defaultPath)
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}

			if !overwrite {
				_, statErr := os.Stat(target)
				switch {
				case statErr == nil:
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("check config path: %w", statErr)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit [[assets.entries]] to list the files your document needs.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&pathFlag, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	var runPreflight bool
	var probeRemote bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configExists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			printConfigSummary(out, cfg, colorize)

			if runPreflight || probeRemote {
				results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{ProbeRemote: probeRemote})
				if failed := printPreflight(out, results, colorize); failed > 0 {
					return fmt.Errorf("%d preflight check(s) failed", failed)
				}
			}

			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}

	cmd.Flags().BoolVar(&runPreflight, "preflight", false, "Check that configured paths are readable and writable")
	cmd.Flags().BoolVar(&probeRemote, "probe-remote", false, "Also send a HEAD request to every asset URL")
	return cmd
}

func printConfigSummary(out io.Writer, cfg *config.Config, colorize bool) {
	assets := fmt.Sprintf("%d configured (%s metadata)", len(cfg.Assets.Entries), cfg.Assets.MetadataBackend)
	fmt.Fprintln(out, renderStatusLine("Assets", statusInfo, assets, colorize))
	if !cfg.QR.Enabled {
		fmt.Fprintln(out, renderStatusLine("QR", statusWarn, "disabled", colorize))
		return
	}
	qr := fmt.Sprintf("%s -> %s", cfg.Paths.Document, cfg.Paths.QROutput)
	fmt.Fprintln(out, renderStatusLine("QR", statusInfo, qr, colorize))
}

// printPreflight writes one status line per check and returns the failure count.
func printPreflight(out io.Writer, results []preflight.Result, colorize bool) int {
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusError
		}
		fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	return len(preflight.Failed(results))
}
