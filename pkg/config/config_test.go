package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Slots    int           `default:"4" desc:"slot count"`
	Backing  string        `default:"mmap"`
	Interval time.Duration `default:"33ms"`
	Debug    bool
	Journal  struct {
		Enable bool   `default:"false"`
		DSN    string `default:"frames.db" yaml:"dsn"`
	}
	skipped int
}

func TestDefaults(t *testing.T) {
	var c testConfig
	if err := Load(&c, "capture", ""); err != nil {
		t.Fatal(err)
	}
	if c.Slots != 4 || c.Backing != "mmap" || c.Interval != 33*time.Millisecond || c.Journal.DSN != "frames.db" {
		t.Errorf("defaults not applied: %+v", c)
	}
}

func TestPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("slots: 8\nbacking: heap\njournal:\n  enable: true\n  dsn: file.db\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("CAPTURE_SLOTS", "16")
	t.Setenv("CAPTURE_JOURNAL_DSN", "env.db")
	t.Setenv("CAPTURE_INTERVAL", "1s")
	var c testConfig
	if err = Load(&c, "capture", path); err != nil {
		t.Fatal(err)
	}
	if c.Slots != 16 {
		t.Errorf("env should win over file: slots %d", c.Slots)
	}
	if c.Backing != "heap" || !c.Journal.Enable {
		t.Errorf("file should win over defaults: %+v", c)
	}
	if c.Journal.DSN != "env.db" || c.Interval != time.Second {
		t.Errorf("nested env not applied: %+v", c)
	}
}

func TestInvalid(t *testing.T) {
	var c testConfig
	if err := Load(c, "capture", ""); err == nil {
		t.Error("non-pointer target accepted")
	}
	t.Setenv("CAPTURE_INTERVAL", "100")
	if err := Load(&c, "capture", ""); err == nil {
		t.Error("duration without unit accepted")
	}
	if err := Load(&c, "x", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}
