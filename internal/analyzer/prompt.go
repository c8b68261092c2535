package analyzer

import (
	"fmt"
	"strings"
)

// The query is inserted between triple-quote delimiters so that query text
// cannot terminate the instruction block and rewrite it. This is best-effort
// containment, not a security boundary; the schema validation in extract.go
// is what actually rejects off-shape output.
const analysisPromptTemplate = `Produce a competitive analysis of the business identified between the triple quotes below. The identifier may be a company name or a website URL.

"""
%s
"""

Cover these five areas:
1. A brief overview of the business and what it does.
2. 3-5 key strengths.
3. 3-5 key weaknesses.
4. Its market position relative to competitors.
5. 3-5 recommendations for a company competing against it.

Respond with ONLY a single JSON object and no other text, in exactly this shape:
{"overview": "...", "strengths": ["..."], "weaknesses": ["..."], "marketPosition": "...", "recommendations": ["..."]}`

// BuildPrompt renders the fixed instruction template for a validated query.
// Deterministic: the same query always yields the same prompt.
func BuildPrompt(query string) string {
	// Triple quotes inside the query would close the delimited block early.
	sanitized := strings.ReplaceAll(query, `"""`, `'''`)
	return fmt.Sprintf(analysisPromptTemplate, sanitized)
}
