package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/nfrund/fieldnotes/internal/config"
)

// ConfigForTests loads the .env.test file and returns a valid config.Provider.
// Tests calling it are integration tests: they are skipped in short mode and
// when no database URL is configured.
func ConfigForTests(t *testing.T) config.Provider {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	// 1. Find project root by looking for go.mod to reliably locate .env.test
	path, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			break
		}
		if path == filepath.Dir(path) {
			t.Fatalf("could not find project root with go.mod")
		}
		path = filepath.Dir(path)
	}

	// 2. Read .env.test when it exists and set each key for this test only.
	if env, err := godotenv.Read(filepath.Join(path, ".env.test")); err == nil {
		for key, value := range env {
			t.Setenv(key, value)
		}
	}

	if os.Getenv("SURREAL_URL") == "" {
		t.Skip("SURREAL_URL not set; skipping integration test")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("invalid test configuration: %v", err)
	}
	return cfg
}

// StaticConfig returns an in-memory configuration for unit tests.
func StaticConfig() *config.Config {
	return &config.Config{
		DBUrl:            "ws://localhost:8000/rpc",
		DBNs:             "test",
		DBDb:             "test",
		DBUser:           "root",
		DBPass:           "root",
		DBAccess:         "account",
		DBQueryTimeout:   time.Second,
		DBExecuteTimeout: time.Second,
		SessionSecret:    "test-session-secret-32-bytes-long!",
		ServerAddr:       ":0",
		AppBaseURL:       "http://localhost:8080",
	}
}
