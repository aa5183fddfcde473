package analysis

import (
	"fmt"
	"strings"

	"lambdatrip/internal/modules/enrichment"
)

const (
	coldThreshold = 10.0
	warmThreshold = 25.0

	maxAdvisoryRecommendations = 2
)

var elevatedAdvisoryPhrases = []string{"increased caution", "reconsider travel", "do not travel"}

// Derive evaluates the recommendation rules. It does no I/O and any list may stay empty.
// Safety advice reads the model-generated advisory, not the fetched one.
func Derive(rec *enrichment.Record, a TravelAnalysis) RecommendationSet {
	out := newRecommendationSet()
	if rec != nil {
		out.PackingTips = packingTips(rec.Weather)
		out.CulturalNotes = culturalNotes(rec.CountryInfo)
	}
	out.SafetyAdvice = safetyAdvice(a.TravelAdvisory)
	if best := strings.TrimSpace(string(a.BestVisitTime)); best != "" {
		out.TimingRecommendations = append(out.TimingRecommendations, string(a.BestVisitTime))
	}
	return out
}

func packingTips(w *enrichment.WeatherSnapshot) []string {
	tips := []string{}
	if w == nil {
		return tips
	}
	if t := w.Temperature.Current; t != nil {
		if *t < coldThreshold {
			tips = append(tips, "Pack warm clothing - temperatures are cold")
		} else if *t > warmThreshold {
			tips = append(tips, "Pack light clothing - temperatures are warm")
		}
	}
	if w.Conditions != nil {
		cond := strings.ToLower(*w.Conditions)
		if strings.Contains(cond, "rain") {
			tips = append(tips, "Bring rain gear - precipitation expected")
		} else if strings.Contains(cond, "sunny") {
			tips = append(tips, "Don't forget sunscreen and hat")
		}
	}
	return tips
}

func culturalNotes(c *enrichment.CountryProfile) []string {
	notes := []string{}
	if c == nil {
		return notes
	}
	if len(c.Currencies) > 0 && c.Currencies[0].Name != "" {
		notes = append(notes, fmt.Sprintf("Local currency: %s", c.Currencies[0].Name))
	}
	if len(c.Languages) > 0 {
		// The provider's language key, e.g. "fra".
		lang := c.Languages[0].Code
		if lang == "" {
			lang = c.Languages[0].Name
		}
		notes = append(notes, fmt.Sprintf("Primary language: %s", lang))
	}
	return notes
}

func safetyAdvice(adv *ModelAdvisory) []string {
	advice := []string{}
	if adv == nil {
		return advice
	}
	level := string(adv.Level)
	lower := strings.ToLower(level)
	for _, phrase := range elevatedAdvisoryPhrases {
		if strings.Contains(lower, phrase) {
			advice = append(advice, fmt.Sprintf("Travel advisory level: %s", level))
			break
		}
	}
	for i, r := range adv.Recommendations {
		if i == maxAdvisoryRecommendations {
			break
		}
		advice = append(advice, r)
	}
	return advice
}
