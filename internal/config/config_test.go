package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("AppData", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timer.Focus != 25*time.Minute || cfg.Timer.ShortBreak != 5*time.Minute || cfg.Timer.LongBreak != 15*time.Minute {
		t.Fatalf("unexpected timer defaults: %+v", cfg.Timer)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
	if want := filepath.Join(dir, "hashira", "hashira.db"); cfg.Data.Path != want {
		t.Fatalf("data path = %q, want %q", cfg.Data.Path, want)
	}
	if !cfg.Audio.Enabled || cfg.Audio.Muted || len(cfg.Audio.Player) != 0 {
		t.Fatalf("unexpected audio defaults: %+v", cfg.Audio)
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `
timer:
  focus: 50m
  short_break: 10m
log:
  level: debug
  format: text
audio:
  muted: true
  player: ["paplay", "--volume={volume}"]
  volume_scale: 65536
  ambient_sound: /tmp/rain.ogg
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timer.Focus != 50*time.Minute || cfg.Timer.ShortBreak != 10*time.Minute {
		t.Fatalf("unexpected timer: %+v", cfg.Timer)
	}
	if cfg.Timer.LongBreak != 15*time.Minute {
		t.Fatalf("long break should keep its default, got %s", cfg.Timer.LongBreak)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log: %+v", cfg.Log)
	}
	if !cfg.Audio.Muted || len(cfg.Audio.Player) != 2 || cfg.Audio.VolumeScale != 65536 {
		t.Fatalf("unexpected audio: %+v", cfg.Audio)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("HASHIRA_TIMER_FOCUS", "45m")
	t.Setenv("HASHIRA_DATA_PATH", "/tmp/hashira-test.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timer.Focus != 45*time.Minute {
		t.Fatalf("focus = %s, want 45m", cfg.Timer.Focus)
	}
	if cfg.Data.Path != "/tmp/hashira-test.db" {
		t.Fatalf("data path = %q", cfg.Data.Path)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)

	t.Setenv("HASHIRA_TIMER_SHORT_BREAK", "0s")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for zero short break")
	}

	t.Setenv("HASHIRA_TIMER_SHORT_BREAK", "5m")
	t.Setenv("HASHIRA_LOG_LEVEL", "chatty")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
