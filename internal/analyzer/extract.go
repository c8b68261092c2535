package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viable-systems/competitor-quick-scan/apimodels"
)

// ExtractAnalysis recovers the structured record from raw model output. The
// prompt asks for bare JSON, but models wrap it in prose often enough that we
// scan for the first balanced top-level object instead of parsing the whole
// text.
func ExtractAnalysis(text string) (*apimodels.CompetitiveAnalysis, error) {
	span, ok := firstJSONObject(text)
	if !ok {
		return nil, malformedOutput("no_json", fmt.Sprintf("no balanced JSON object in %d bytes of output", len(text)))
	}

	var raw struct {
		Overview        *string   `json:"overview"`
		Strengths       *[]string `json:"strengths"`
		Weaknesses      *[]string `json:"weaknesses"`
		MarketPosition  *string   `json:"marketPosition"`
		Recommendations *[]string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, malformedOutput("parse_error", err.Error())
	}

	analysis := &apimodels.CompetitiveAnalysis{}

	if err := requireText(&analysis.Overview, raw.Overview, "overview"); err != nil {
		return nil, err
	}
	if err := requireList(&analysis.Strengths, raw.Strengths, "strengths"); err != nil {
		return nil, err
	}
	if err := requireList(&analysis.Weaknesses, raw.Weaknesses, "weaknesses"); err != nil {
		return nil, err
	}
	if err := requireText(&analysis.MarketPosition, raw.MarketPosition, "marketPosition"); err != nil {
		return nil, err
	}
	if err := requireList(&analysis.Recommendations, raw.Recommendations, "recommendations"); err != nil {
		return nil, err
	}

	return analysis, nil
}

func requireText(dst *string, src *string, field string) error {
	if src == nil {
		return malformedOutput("schema_error", fmt.Sprintf("missing field %q", field))
	}
	trimmed := strings.TrimSpace(*src)
	if trimmed == "" {
		return malformedOutput("schema_error", fmt.Sprintf("field %q is empty", field))
	}
	*dst = trimmed
	return nil
}

// requireList validates a sequence field: present, at least one element,
// every element non-empty after trimming. The prompt asks for 3-5 entries but
// no upper bound is enforced; rejecting a sixth valid strength helps no one.
func requireList(dst *[]string, src *[]string, field string) error {
	if src == nil {
		return malformedOutput("schema_error", fmt.Sprintf("missing field %q", field))
	}
	if len(*src) == 0 {
		return malformedOutput("schema_error", fmt.Sprintf("field %q is empty", field))
	}
	items := make([]string, 0, len(*src))
	for i, item := range *src {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			return malformedOutput("schema_error", fmt.Sprintf("field %q has empty entry at index %d", field, i))
		}
		items = append(items, trimmed)
	}
	*dst = items
	return nil
}

// firstJSONObject returns the first balanced top-level {...} span in text.
// Braces inside string literals (and escaped quotes inside those) do not
// count toward nesting.
func firstJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
