package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"prerender/internal/config"
	"prerender/internal/logging"
	"prerender/internal/runlock"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			format = strings.ToLower(format)
			if format != "console" && format != "json" {
				c.configErr = fmt.Errorf("--log-format: unsupported value %q", format)
				return
			}
			cfg.Logging.Format = format
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

// runEnv bundles what a command needs to execute one run.
type runEnv struct {
	ctx context.Context
	cfg *config.Config
	// base is handed to internal packages, which add the run id themselves.
	base   *slog.Logger
	logger *slog.Logger
	close  func() error
}

// newRunEnv loads config, builds a logger writing to the command's streams
// and tags the context with a fresh run id.
func (c *commandContext) newRunEnv(cmd *cobra.Command) (*runEnv, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.NewFromConfig(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	ctx := logging.WithRunID(cmd.Context(), uuid.NewString())
	env := &runEnv{
		ctx:    ctx,
		cfg:    cfg,
		base:   logger,
		logger: logging.WithContext(ctx, logger),
		close:  closeLog,
	}
	if !c.configExists {
		env.logger.Warn("no config file found, using built-in defaults",
			logging.String("config", c.configPath),
			logging.String("hint", "run 'prerender config init' to list assets"),
		)
	}
	return env, nil
}

// Close releases the log file, if one was opened.
func (e *runEnv) Close() error {
	if e == nil || e.close == nil {
		return nil
	}
	return e.close()
}

// withCacheLock runs fn while holding the cache directory lock.
func (e *runEnv) withCacheLock(fn func() error) error {
	lock, err := runlock.Acquire(e.cfg.Paths.CacheDir)
	if err != nil {
		return err
	}
	e.logger.Debug("acquired run lock", logging.String("lock", lock.Path()))
	defer func() {
		if err := lock.Release(); err != nil {
			e.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()
	return fn()
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
