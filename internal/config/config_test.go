package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.RoomInactivity() != 30*time.Minute || cfg.SweepInterval() != time.Minute {
		t.Fatalf("durations = %v, %v", cfg.RoomInactivity(), cfg.SweepInterval())
	}
	if cfg.SessionTTL() != 24*time.Hour {
		t.Fatalf("SessionTTL = %v", cfg.SessionTTL())
	}
	if len(cfg.Origins()) != 0 {
		t.Fatalf("expected any origin, got %v", cfg.Origins())
	}
}

func TestLoadEnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	env := "HTTP_ADDR=:9000\nROOM_INACTIVITY_MINUTES=5\nALLOWED_ORIGINS=\"http://a.test, http://b.test\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ROOM_INACTIVITY_MINUTES", "7")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.RoomInactivity() != 7*time.Minute {
		t.Fatalf("env should win over file, got %v", cfg.RoomInactivity())
	}
	origins := cfg.Origins()
	if len(origins) != 2 || origins[1] != "http://b.test" {
		t.Fatalf("origins = %v", origins)
	}
}

func TestReleaseModeRequiresSecret(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	if _, err := LoadFrom(t.TempDir()); !errors.Is(err, ErrDefaultSecret) {
		t.Fatalf("err = %v, want ErrDefaultSecret", err)
	}

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWTSecret != "a-real-secret" {
		t.Fatalf("JWTSecret = %q", cfg.JWTSecret)
	}
}
