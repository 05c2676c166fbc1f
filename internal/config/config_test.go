package config

import (
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"MONGO_URI", "MONGO_DATABASE", "API_PORT", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("unexpected default mongo uri: %q", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "medibook" {
		t.Errorf("unexpected default database: %q", cfg.MongoDatabase)
	}
	if cfg.APIPort != "8080" {
		t.Errorf("unexpected default port: %q", cfg.APIPort)
	}
	if len(cfg.CORSOrigins) != 1 {
		t.Errorf("unexpected default cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_CORSList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,,http://c.test")

	cfg := Load()
	want := []string{"http://a.test", "http://b.test", "http://c.test"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("expected %v, got %v", want, cfg.CORSOrigins)
	}
}
