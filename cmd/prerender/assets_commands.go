package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"prerender/internal/config"
	"prerender/internal/fileutil"
	"prerender/internal/logging"
	"prerender/internal/metastore"
	"prerender/internal/mirror"
)

func newAssetsCommand(ctx *commandContext) *cobra.Command {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Mirror remote assets",
	}
	assetsCmd.AddCommand(newAssetsSyncCommand(ctx))
	assetsCmd.AddCommand(newAssetsStatusCommand(ctx))
	return assetsCmd
}

func newAssetsSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch changed assets, keeping cached copies when offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.newRunEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()
			return env.withCacheLock(func() error {
				return syncAssets(env)
			})
		},
	}
}

// syncAssets mirrors every configured entry. Only setup failures are
// returned; per-asset outcomes are logged by the mirror.
func syncAssets(env *runEnv) error {
	if len(env.cfg.Assets.Entries) == 0 {
		env.logger.Info("no assets configured")
		return nil
	}

	store, err := metastore.Open(env.cfg, env.base)
	if err != nil {
		return fmt.Errorf("open metadata store: %w", err)
	}
	defer store.Close()

	m, err := mirror.New(store, env.base, mirror.OptionsFromConfig(env.cfg))
	if err != nil {
		return err
	}

	results := m.SyncAll(env.ctx, env.cfg.Assets.Entries)
	if err := env.ctx.Err(); err != nil {
		return err
	}
	summary := mirror.Summarize(results)
	env.logger.Info("assets checked",
		logging.Int("downloaded", summary.Downloaded),
		logging.Int("up_to_date", summary.NotModified),
		logging.Int("cached", summary.CachedCopy),
		logging.Int("missing", summary.Missing),
	)
	return nil
}

func newAssetsStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show local copies and cached validators for each asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cfg.Assets.Entries) == 0 {
				fmt.Fprintln(out, "No assets configured")
				return nil
			}

			store, err := metastore.OpenForRead(cfg, nil)
			if err != nil {
				return fmt.Errorf("open metadata store: %w", err)
			}
			defer store.Close()

			rows, present, err := assetStatusRows(cmd, cfg, store, shouldColorize(out))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, renderTable(assetStatusColumns, rows))

			kind := statusOK
			if missing := len(rows) - present; missing > 0 {
				kind = statusWarn
			}
			fmt.Fprintln(out, renderStatusLine("Assets", kind,
				fmt.Sprintf("%d of %d present", present, len(rows)), shouldColorize(out)))
			return nil
		},
	}
}

func assetStatusRows(cmd *cobra.Command, cfg *config.Config, store metastore.Store, colorize bool) ([][]string, int, error) {
	rows := make([][]string, 0, len(cfg.Assets.Entries))
	present := 0
	for _, entry := range cfg.Assets.Entries {
		size, exists, err := fileutil.FileSize(entry.Destination)
		if err != nil {
			return nil, 0, fmt.Errorf("inspect %s: %w", entry.Destination, err)
		}
		rec, _, err := store.Get(cmd.Context(), metastore.Key(entry.Destination))
		if err != nil && !errors.Is(err, metastore.ErrCorruptRecord) {
			return nil, 0, fmt.Errorf("read metadata for %s: %w", entry.Destination, err)
		}

		state := assetStateMissing
		sizeText := "-"
		if exists {
			present++
			state = assetStatePresent
			sizeText = humanize.Bytes(uint64(size))
		}
		if err != nil {
			state = assetStateCorrupt
		}
		rows = append(rows, []string{
			entry.Destination,
			renderAssetState(state, colorize),
			sizeText,
			dashIfEmpty(rec.ETagValue()),
			dashIfEmpty(rec.LastModifiedValue()),
		})
	}
	return rows, present, nil
}

func dashIfEmpty(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
