package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/viable-systems/competitor-quick-scan/apimodels"
	"github.com/viable-systems/competitor-quick-scan/internal/analyzer"
	"github.com/viable-systems/competitor-quick-scan/internal/export"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req apimodels.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	defer r.Body.Close()

	slog.Debug("received analysis request", "query", req.Query)

	report, err := s.analyzer.Run(r.Context(), req)
	if err != nil {
		status, msg := classify(err)
		// Full detail stays in the logs; clients get the short message.
		slog.Error("analysis request failed", "error", err, "status", status)
		writeError(w, status, msg)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Suggested-Filename", export.SuggestedFilename(report.Query))
	resp := apimodels.AnalysisResponse{
		Success:  true,
		Data:     report.Analysis,
		Markdown: report.Markdown,
		Metadata: &report.Metadata,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// classify maps a pipeline error to an HTTP status and a user-safe message.
func classify(err error) (int, string) {
	var perr *analyzer.Error
	if !errors.As(err, &perr) {
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
	switch perr.Kind {
	case analyzer.KindInvalidQuery:
		return http.StatusBadRequest, perr.UserMessage()
	case analyzer.KindProviderUnavailable, analyzer.KindMalformedOutput:
		return http.StatusBadGateway, perr.UserMessage()
	default:
		return http.StatusInternalServerError, perr.UserMessage()
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apimodels.AnalysisResponse{
		Success: false,
		Error:   msg,
	})
}
