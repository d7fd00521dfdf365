// Package testutils holds the fixtures shared by the portal's tests: a
// config built from .env.test, a fake club backend and a cookie-keeping
// test browser.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"

	"github.com/nfrund/clubportal/internal/config"
	"github.com/nfrund/clubportal/internal/logging"
)

// ConfigForTests loads .env.test from the module root into the test's
// environment and parses it. overrides run on the parsed config.
func ConfigForTests(t *testing.T, overrides ...func(*config.Config)) *config.Config {
	t.Helper()

	values, err := godotenv.Read(filepath.Join(moduleRoot(t), ".env.test"))
	if err != nil {
		t.Fatalf("read .env.test: %v", err)
	}
	for key, value := range values {
		t.Setenv(key, value)
	}

	cfg, err := config.Parse()
	if err != nil {
		t.Fatalf("parse test config: %v", err)
	}
	logging.New(cfg.LogFormat, cfg.LogLevel)

	for _, o := range overrides {
		o(cfg)
	}
	return cfg
}

// moduleRoot walks up from the working directory to the directory holding go.mod.
func moduleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("no go.mod above %s", dir)
		}
		dir = parent
	}
}
