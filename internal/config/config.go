package config

import (
	"os"
	"strings"
)

// Config carries everything the server reads from the environment. A .env
// file, if present, is loaded by main before Load is called.
type Config struct {
	MongoURI       string
	MongoDatabase  string
	APIPort        string
	CORSOrigins    []string
	AdminEmail     string
	AdminPassword  string
	TextbeltAPIKey string
}

func Load() Config {
	return Config{
		MongoURI:       getString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getString("MONGO_DATABASE", "medibook"),
		APIPort:        getString("API_PORT", "8080"),
		CORSOrigins:    getList("CORS_ORIGINS", "http://localhost:5173"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		TextbeltAPIKey: os.Getenv("TEXTBELT_API_KEY"),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getList(key, fallback string) []string {
	raw := getString(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
