package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/viable-systems/competitor-quick-scan/apimodels"
	"github.com/viable-systems/competitor-quick-scan/internal/llm"
)

// Report is the pipeline's terminal success artifact.
type Report struct {
	Query    string
	Analysis *apimodels.CompetitiveAnalysis
	Markdown string
	Metadata apimodels.AnalysisMetadata
}

type Analyzer struct {
	provider llm.Provider
}

func New(provider llm.Provider) *Analyzer {
	return &Analyzer{provider: provider}
}

// Run executes one full analysis cycle: validate, build prompt, call the
// provider, extract, render. It short-circuits on the first failure and
// always returns either a *Report or a *Error; it never retries.
func (a *Analyzer) Run(ctx context.Context, req apimodels.AnalysisRequest) (*Report, error) {
	slog.Info("starting analysis", "query", req.Query)
	startTime := time.Now()

	query, err := ValidateQuery(req.Query)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(query)

	resp, err := a.provider.Complete(ctx, prompt,
		llm.WithModel(req.Options.Model),
		llm.WithMaxTokens(req.Options.MaxTokens),
	)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, providerUnavailable("not_configured", err)
		}
		slog.Error("completion request failed", "error", err)
		return nil, providerUnavailable("completion_failed", err)
	}
	if resp.Content == "" {
		return nil, providerUnavailable("empty_response", nil)
	}

	analysis, err := ExtractAnalysis(resp.Content)
	if err != nil {
		var perr *Error
		if !errors.As(err, &perr) {
			// A stage produced something outside the taxonomy. Classify it
			// as unknown rather than leaking it unlabelled.
			err = unknownError(err)
		}
		slog.Error("analysis extraction failed", "error", err)
		return nil, err
	}

	report := &Report{
		Query:    query,
		Analysis: analysis,
		Markdown: RenderMarkdown(query, analysis),
		Metadata: apimodels.AnalysisMetadata{
			Duration:   time.Since(startTime).String(),
			Model:      resp.Model,
			TokensUsed: resp.Usage.TotalTokens,
		},
	}

	slog.Info("analysis completed", "query", query, "duration", report.Metadata.Duration, "tokens", report.Metadata.TokensUsed)
	return report, nil
}
