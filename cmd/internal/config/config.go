// Package config is the backend selection gate. main loads .env, calls
// Load exactly once and threads the result through; nothing re-reads the
// environment afterward, so the backend choice holds for the whole
// session.
package config

import "os"

type Config struct {
	// Remote document-store settings. APIKey and ProjectID gate the
	// backend choice; the rest are accepted but not validated.
	APIKey        string
	ProjectID     string
	AuthDomain    string
	StorageBucket string
	SenderID      string
	AppID         string

	// Ambient service settings.
	Addr       string // listen address
	DataPath   string // document-store file path
	LogFile    string // rotated log destination, stderr when empty
	WebhookURL string // system-level notification receiver, optional
}

func Load() Config {
	return Config{
		APIKey:        os.Getenv("FAMCAL_API_KEY"),
		ProjectID:     os.Getenv("FAMCAL_PROJECT_ID"),
		AuthDomain:    os.Getenv("FAMCAL_AUTH_DOMAIN"),
		StorageBucket: os.Getenv("FAMCAL_STORAGE_BUCKET"),
		SenderID:      os.Getenv("FAMCAL_SENDER_ID"),
		AppID:         os.Getenv("FAMCAL_APP_ID"),
		Addr:          getenvDefault("FAMCAL_ADDR", ":6060"),
		DataPath:      getenvDefault("FAMCAL_DATA_PATH", "./famcal.db"),
		LogFile:       os.Getenv("FAMCAL_LOG_FILE"),
		WebhookURL:    os.Getenv("FAMCAL_WEBHOOK_URL"),
	}
}

// Remote reports whether the document-store backend is active. Both the
// API key and the project identifier must be present; anything less runs
// the in-memory demo backend.
func (c Config) Remote() bool {
	return c.APIKey != "" && c.ProjectID != ""
}

// Status exposes which gate settings are present, never their values.
// Serves the demo-mode banner and debugging.
func (c Config) Status() map[string]bool {
	return map[string]bool{
		"apiKey":    c.APIKey != "",
		"projectId": c.ProjectID != "",
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
