package analyzer

import (
	"strings"

	"github.com/viable-systems/competitor-quick-scan/apimodels"
)

const attributionLine = "*Generated by Competitor Quick Scan*"

// RenderMarkdown serializes an analysis to its canonical markdown form.
// Total and deterministic: the same (query, analysis) pair always yields
// byte-identical output.
func RenderMarkdown(query string, analysis *apimodels.CompetitiveAnalysis) string {
	var sb strings.Builder

	sb.WriteString("# Competitive Analysis: ")
	sb.WriteString(query)
	sb.WriteString("\n\n## Overview\n\n")
	sb.WriteString(analysis.Overview)
	sb.WriteString("\n")

	writeListSection(&sb, "Strengths", analysis.Strengths)

	writeListSection(&sb, "Weaknesses", analysis.Weaknesses)

	sb.WriteString("\n## Market Position\n\n")
	sb.WriteString(analysis.MarketPosition)
	sb.WriteString("\n")

	writeListSection(&sb, "Recommendations", analysis.Recommendations)

	sb.WriteString("\n---\n\n")
	sb.WriteString(attributionLine)
	sb.WriteString("\n")

	return sb.String()
}

func writeListSection(sb *strings.Builder, heading string, items []string) {
	sb.WriteString("\n## ")
	sb.WriteString(heading)
	sb.WriteString("\n\n")
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
}
