package file

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
)

// Config file keys for the collection backend.
const (
	KeyBackendURL    = "marqo.url"
	KeyBackendAPIKey = "marqo.api_key"
	KeyBackendRPS    = "marqo.requests_per_second"
)

// Environment variables overriding the config file. Env wins over file
// so deployments can rotate credentials without touching the file.
const (
	EnvBackendURL    = "CORPUS_MARQO_URL"
	EnvBackendAPIKey = "CORPUS_MARQO_API_KEY"
	EnvBackendRPS    = "CORPUS_MARQO_RPS"
)

// DefaultBackendURL is the conventional local backend address.
const DefaultBackendURL = "http://localhost:8882"

// BackendSettings is the resolved backend connection configuration.
type BackendSettings struct {
	URL               string
	APIKey            string
	RequestsPerSecond float64
}

// LoadDotEnv loads a .env file from the working directory into the
// process environment. A missing file is fine.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ResolveBackendSettings merges environment, config file, and defaults,
// in that precedence order.
func ResolveBackendSettings(store driven.ConfigStore) BackendSettings {
	settings := BackendSettings{
		URL:    DefaultBackendURL,
		APIKey: store.GetString(KeyBackendAPIKey),
	}

	if url := store.GetString(KeyBackendURL); url != "" {
		settings.URL = url
	}
	if rps := store.GetInt(KeyBackendRPS); rps > 0 {
		settings.RequestsPerSecond = float64(rps)
	}

	if url := os.Getenv(EnvBackendURL); url != "" {
		settings.URL = url
	}
	if key := os.Getenv(EnvBackendAPIKey); key != "" {
		settings.APIKey = key
	}
	if raw := os.Getenv(EnvBackendRPS); raw != "" {
		if rps, err := strconv.ParseFloat(raw, 64); err == nil && rps > 0 {
			settings.RequestsPerSecond = rps
		}
	}

	return settings
}
