package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/bootstrap"
	"github.com/zhouzirui/moodmate/backend/internal/config"
	"github.com/zhouzirui/moodmate/backend/internal/logging"
)

type opener func(ctx context.Context, verbose bool) (*bootstrap.Runtime, *zap.Logger, error)

type cli struct {
	open    opener
	verbose bool
	timeout time.Duration
	rt      *bootstrap.Runtime
	logger  *zap.Logger
}

func openRuntime(ctx context.Context, verbose bool) (*bootstrap.Runtime, *zap.Logger, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logCfg := cfg.Log
	logCfg.Level = "warn"
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, nil, err
	}

	rt, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return rt, logger, nil
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:   "moodmate",
		Short: "MoodMate terminal client",
		Long: `Pick emoji for how you feel, get a short message and an activity suggestion,
and browse the last entries of your mood journal.

Uses the same environment variables as the API server (LLM_*, STORE_*, PALETTE_FILE).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rt, logger, err := c.open(cmd.Context(), c.verbose)
			if err != nil {
				return err
			}
			c.rt = rt
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.rt != nil {
				_ = c.rt.Close()
			}
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "Timeout for storage operations (0 = none); suggest always runs to completion")

	root.AddCommand(
		c.paletteCmd(),
		c.suggestCmd(),
		c.historyCmd(),
		c.shareCmd(),
		c.settingsCmd(),
	)
	return root
}

func (c *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
