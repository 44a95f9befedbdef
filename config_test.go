package capture

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	conf, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if conf.Name != "video0" || conf.Slots != 4 || conf.SlotSize != 1<<20 || conf.Backing != "mmap" || conf.Journal.Driver != "sqlite" {
		t.Errorf("defaults %+v", conf)
	}
	path := filepath.Join(t.TempDir(), "capture.yaml")
	os.WriteFile(path, []byte("name: cam1\nslots: 8\nbacking: heap\njournal:\n  enable: true\n  dsn: /tmp/cam1.db\n"), 0o600)
	t.Setenv("CAPTURE_SLOTSIZE", "4096")
	if conf, err = LoadConfig(path); err != nil {
		t.Fatal(err)
	}
	if conf.Name != "cam1" || conf.Slots != 8 || conf.SlotSize != 4096 || !conf.Journal.Enable || conf.Journal.DSN != "/tmp/cam1.db" {
		t.Errorf("loaded %+v", conf)
	}
}
