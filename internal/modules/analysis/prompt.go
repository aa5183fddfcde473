package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"lambdatrip/internal/modules/enrichment"
)

// BuildPrompt renders the travel-expert prompt for one enriched record.
func BuildPrompt(rec *enrichment.Record) string {
	var b strings.Builder

	b.WriteString("You are a travel expert analyzing a landmark for a traveler. ")
	b.WriteString("Please provide a comprehensive analysis based on the following data:\n\n")

	b.WriteString("**LANDMARK INFORMATION:**\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(rec.Landmark.Name, "Unknown"))
	fmt.Fprintf(&b, "- Description: %s\n", orDefault(rec.Landmark.Description, "No description available"))
	fmt.Fprintf(&b, "- Confidence: %.2f\n", rec.Landmark.Confidence)
	fmt.Fprintf(&b, "- Location: %s\n\n", locationLine(rec))

	b.WriteString("**WEATHER INFORMATION:**\n")
	if rec.Weather != nil {
		fmt.Fprintf(&b, "Summary: %s\n", enrichment.FormatWeatherSummary(rec.Weather))
	}
	b.WriteString(section(rec.Weather, rec.Weather == nil, "No weather data available"))

	b.WriteString("**COUNTRY INFORMATION:**\n")
	b.WriteString(section(rec.CountryInfo, rec.CountryInfo == nil, "No country data available"))

	b.WriteString("**TRAVEL ADVISORY:**\n")
	b.WriteString(section(rec.TravelAdvisory, rec.TravelAdvisory == nil, "No travel advisory data available"))

	b.WriteString(`Please provide your analysis in the following JSON format:

{
    "summary": "A brief 2-3 sentence summary of the landmark and its significance",
    "insights": [
        "Key insight about the landmark",
        "Cultural or historical significance",
        "Best time to visit based on weather",
        "Travel considerations based on country info"
    ],
    "travel_tips": [
        "Practical travel tip 1",
        "Practical travel tip 2",
        "Safety consideration if applicable",
        "Cultural etiquette tip if applicable"
    ],
    "best_visit_time": "Recommendation for best time to visit",
    "safety_rating": "1-5 rating with brief explanation",
    "cultural_highlights": "Key cultural aspects to know about",
    "travel_advisory": {
        "level": "One of: Exercise normal precautions, Exercise increased caution, Reconsider travel, Do not travel",
        "summary": "One sentence on current safety conditions",
        "recommendations": ["Specific safety recommendation 1", "Specific safety recommendation 2"]
    }
}

Focus on providing actionable, practical advice for travelers. Consider weather conditions, cultural context, and safety information in your recommendations.
Respond with the JSON object only.
`)
	return b.String()
}

func locationLine(rec *enrichment.Record) string {
	var parts []string
	for _, p := range []*string{rec.Location.City, rec.Location.Country} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	if len(parts) == 0 {
		if rec.Location.Description != nil {
			return *rec.Location.Description
		}
		return "Unknown"
	}
	return strings.Join(parts, ", ")
}

func section(v any, absent bool, missing string) string {
	if absent {
		return missing + "\n\n"
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return missing + "\n\n"
	}
	return string(data) + "\n\n"
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
