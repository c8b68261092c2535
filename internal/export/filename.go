// Package export derives download artifacts from a finished report. The
// markdown itself is passed through verbatim; only the filename is computed
// here.
package export

import "strings"

const filenameSuffix = "-competitive-analysis.md"

// SuggestedFilename derives a safe download filename from the query. Every
// character outside [A-Za-z0-9] becomes a dash, one for one.
func SuggestedFilename(query string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, query)
	return sanitized + filenameSuffix
}
