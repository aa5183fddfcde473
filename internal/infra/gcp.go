// README: Google Cloud client options from API key or service-account env.
package infra

import (
	"os"
	"strings"

	"google.golang.org/api/option"
)

// GCPClientOptions prefers an explicit API key, then GOOGLE_APPLICATION_CREDENTIALS(_JSON).
// With neither set, the client falls back to application default credentials.
func GCPClientOptions(apiKey string) []option.ClientOption {
	if apiKey = strings.TrimSpace(apiKey); apiKey != "" {
		return []option.ClientOption{option.WithAPIKey(apiKey)}
	}
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	opts := []option.ClientOption{}
	if creds == "" {
		return opts
	}
	if strings.HasPrefix(creds, "{") {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	} else {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	return opts
}
