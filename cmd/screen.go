package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/internal/screener"
)

var (
	screenTop         int
	screenQueries     []string
	screenQueriesFile string
	screenJSON        bool
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run a one-off screen and print the watch list",
}

var screenNewsCmd = &cobra.Command{
	Use:   "news",
	Short: "Screen stocks from financial news",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScreen(cmd, func(ctx context.Context, s *screener.Screener, topN int) []model.StockSignal {
			return s.ScreenFromNews(ctx, topN, screenQueries...)
		})
	},
}

var screenBoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Screen stocks from the discussion board",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScreen(cmd, func(ctx context.Context, s *screener.Screener, topN int) []model.StockSignal {
			return s.ScreenFromSupplementary(ctx, topN)
		})
	},
}

var screenCombinedCmd = &cobra.Command{
	Use:   "combined",
	Short: "Screen stocks from news and the discussion board",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScreen(cmd, func(ctx context.Context, s *screener.Screener, topN int) []model.StockSignal {
			return s.ScreenCombined(ctx, topN)
		})
	},
}

var screenCodesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Print only the stock codes of a news screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initScreener(ctx, cfg, "screen", screenQueriesFile)
		if err != nil {
			return err
		}
		defer env.Close()

		codes := env.Screener.StockCodes(ctx, resolveTopN(screenTop, cfg.Screen.TopN), screenQueries...)
		return writeCodes(cmd.OutOrStdout(), codes, screenJSON)
	},
}

type screenFunc func(ctx context.Context, s *screener.Screener, topN int) []model.StockSignal

func runScreen(cmd *cobra.Command, fn screenFunc) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := initScreener(ctx, cfg, "screen", screenQueriesFile)
	if err != nil {
		return err
	}
	defer env.Close()

	signals := fn(ctx, env.Screener, resolveTopN(screenTop, cfg.Screen.TopN))
	if screenJSON {
		return writeJSON(cmd.OutOrStdout(), signals)
	}
	return writeTable(cmd.OutOrStdout(), signals)
}

// resolveTopN returns the flag value when set, otherwise the config value.
func resolveTopN(flagVal, cfgVal int) int {
	if flagVal > 0 {
		return flagVal
	}
	return cfgVal
}

func init() {
	screenCmd.PersistentFlags().IntVar(&screenTop, "top", 0, "number of stocks to return (default from config)")
	screenCmd.PersistentFlags().StringArrayVar(&screenQueries, "query", nil, "news query, repeatable (default from config)")
	screenCmd.PersistentFlags().StringVar(&screenQueriesFile, "queries-file", "", "YAML file of the form queries: [...]")
	screenCmd.PersistentFlags().BoolVar(&screenJSON, "json", false, "print JSON instead of a table")

	screenCmd.AddCommand(screenNewsCmd, screenBoardCmd, screenCombinedCmd, screenCodesCmd)
	rootCmd.AddCommand(screenCmd)
}
