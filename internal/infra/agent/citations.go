package agent

import "regexp"

// maxCitations caps the citation list per report.
const maxCitations = 20

var urlPattern = regexp.MustCompile(`https?://[^\s)]+`)

// ExtractCitations merges the provider-reported citations with URLs detected
// in the report text, preserving first-seen order, deduplicating, and capping
// the result. Provider citations win the ordering since they carry grounding
// confidence the regex fallback lacks.
func ExtractCitations(report *Report) []string {
	if report == nil {
		return nil
	}

	merged := make([]string, 0, len(report.Citations))
	merged = append(merged, report.Citations...)
	merged = append(merged, urlPattern.FindAllString(report.Text, -1)...)

	seen := make(map[string]struct{}, len(merged))
	out := make([]string, 0, len(merged))
	for _, u := range merged {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
		if len(out) == maxCitations {
			break
		}
	}
	return out
}
