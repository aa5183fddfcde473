package landmark

import "strings"

type knownLandmark struct {
	pattern string
	city    string
	country string
}

// Order matters: the first pattern contained in the name wins.
var knownLandmarks = []knownLandmark{
	{"eiffel tower", "Paris", "France"},
	{"tower bridge", "London", "United Kingdom"},
	{"big ben", "London", "United Kingdom"},
	{"statue of liberty", "New York", "United States"},
	{"taj mahal", "Agra", "India"},
	{"sydney opera house", "Sydney", "Australia"},
	{"christ the redeemer", "Rio de Janeiro", "Brazil"},
	{"machu picchu", "Cusco", "Peru"},
	{"petra", "Petra", "Jordan"},
	{"great wall", "Beijing", "China"},
	{"colosseum", "Rome", "Italy"},
	{"acropolis", "Athens", "Greece"},
	{"sagrada familia", "Barcelona", "Spain"},
	{"brandenburg gate", "Berlin", "Germany"},
	{"mount fuji", "Tokyo", "Japan"},
	{"angkor wat", "Siem Reap", "Cambodia"},
}

// locationKeywords mark a generic image label as place-like.
var locationKeywords = []string{
	"landmark", "monument", "building", "architecture", "city", "town",
	"mountain", "beach", "forest", "park", "garden", "museum", "temple",
	"church", "mosque", "palace", "castle", "bridge", "tower",
}

func lookupKnown(name string) (knownLandmark, bool) {
	lower := strings.ToLower(name)
	for _, k := range knownLandmarks {
		if strings.Contains(lower, k.pattern) {
			return k, true
		}
	}
	return knownLandmark{}, false
}

func placeLikeLabel(labels []Label) (string, bool) {
	for _, l := range labels {
		desc := strings.ToLower(l.Description)
		for _, kw := range locationKeywords {
			if strings.Contains(desc, kw) {
				return desc, true
			}
		}
	}
	return "", false
}
