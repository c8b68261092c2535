package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/viable-systems/competitor-quick-scan/apimodels"
	"github.com/viable-systems/competitor-quick-scan/internal/analyzer"
	"github.com/viable-systems/competitor-quick-scan/internal/config"
	"github.com/viable-systems/competitor-quick-scan/internal/export"
	"github.com/viable-systems/competitor-quick-scan/internal/lifecycle"
	"github.com/viable-systems/competitor-quick-scan/internal/llm"
	"github.com/viable-systems/competitor-quick-scan/internal/server"
)

var rootCmd = &cobra.Command{
	Use:          "quickscan",
	Short:        "LLM-backed competitive analysis of a business name or URL",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, a, err := buildAnalyzer()
		if err != nil {
			return err
		}
		srv := server.New(*cfg, a)
		slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		return srv.Run()
	},
}

var scanOutputDir string
var scanModel string

var scanCmd = &cobra.Command{
	Use:   "scan <query>",
	Short: "Run one analysis and print or save the markdown report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, a, err := buildAnalyzer()
		if err != nil {
			return err
		}

		lc := lifecycle.New(cfg.Scan.Cooldown)
		if err := lc.Submit(args[0]); err != nil {
			return err
		}
		slog.Debug("scan submitted", "session", lc.ID(), "query", args[0])

		report, err := a.Run(context.Background(), apimodels.AnalysisRequest{
			Query:   args[0],
			Options: apimodels.AnalysisOptions{Model: scanModel},
		})
		if err != nil {
			_ = lc.Fail(err)
			var perr *analyzer.Error
			if errors.As(err, &perr) {
				return errors.New(perr.UserMessage())
			}
			return err
		}
		if err := lc.Succeed(report); err != nil {
			return err
		}

		if scanOutputDir == "" {
			fmt.Fprint(cmd.OutOrStdout(), report.Markdown)
			return nil
		}

		path := filepath.Join(scanOutputDir, export.SuggestedFilename(report.Query))
		if err := os.WriteFile(path, []byte(report.Markdown), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func buildAnalyzer() (*config.Config, *analyzer.Analyzer, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	provider, err := llm.NewOpenAI(&cfg.OpenAI)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	return cfg, analyzer.New(provider), nil
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutputDir, "output-dir", "o", "", "write the report to this directory instead of stdout")
	scanCmd.Flags().StringVarP(&scanModel, "model", "m", "", "override the configured model")
	rootCmd.AddCommand(serveCmd, scanCmd)
}
