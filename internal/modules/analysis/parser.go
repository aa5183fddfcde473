package analysis

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	fallbackSummaryRunes = 200

	technicalIssuesSummary = "Unable to generate AI analysis due to technical issues"
)

var (
	leadingFence  = regexp.MustCompile("(?i)^\\s*```(?:json)?[ \\t]*\\r?\\n?")
	trailingFence = regexp.MustCompile("\\s*```\\s*$")
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)

	quoteReplacer = strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")
)

type transform struct {
	name  string
	apply func(string) string
}

// sanitizers run in order; quotes are normalized before the brace scan.
var sanitizers = []transform{
	{"strip-fences", func(s string) string {
		return trailingFence.ReplaceAllString(leadingFence.ReplaceAllString(s, ""), "")
	}},
	{"drop-trailing-commas", func(s string) string { return trailingComma.ReplaceAllString(s, "$1") }},
	{"ascii-quotes", quoteReplacer.Replace},
}

func sanitize(raw string) string {
	out := raw
	for _, t := range sanitizers {
		out = t.apply(out)
	}
	return out
}

// Parse recovers a TravelAnalysis from model text. It never fails: anything
// that is not recoverable as a JSON object yields Fallback(raw).
func Parse(raw string) TravelAnalysis {
	a, ok := tryParse(raw)
	if !ok {
		return Fallback(raw)
	}
	return a
}

func tryParse(raw string) (TravelAnalysis, bool) {
	cleaned := sanitize(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end < start {
		return TravelAnalysis{}, false
	}
	var a TravelAnalysis
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &a); err != nil {
		return TravelAnalysis{}, false
	}
	return a, true
}

// Fallback is the fixed degraded analysis. Its summary is the head of raw.
func Fallback(raw string) TravelAnalysis {
	return degraded(truncate(raw, fallbackSummaryRunes))
}

func degraded(summary string) TravelAnalysis {
	return TravelAnalysis{
		Summary:            FlexText(summary),
		Insights:           TextList{"Analysis completed successfully"},
		TravelTips:         TextList{"Review the full analysis for detailed recommendations"},
		BestVisitTime:      "Check weather data for optimal timing",
		SafetyRating:       "3 - Moderate",
		CulturalHighlights: "See country information for cultural context",
		TravelAdvisory: &ModelAdvisory{
			Level:           "Exercise normal precautions",
			Summary:         "No specific advisory could be generated",
			Recommendations: TextList{},
		},
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
