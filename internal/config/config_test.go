package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHOTMETRICS_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FPS != 30 || cfg.FFmpegBin != "ffmpeg" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.DBPath == "" {
		t.Error("db path must have a default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHOTMETRICS_CONFIG", "")
	t.Setenv("SHOTMETRICS_FPS", "60")
	t.Setenv("SHOTMETRICS_FFMPEG_BIN", "/opt/ffmpeg/bin/ffmpeg")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FPS != 60 {
		t.Errorf("fps = %v, want 60", cfg.FPS)
	}
	if cfg.FFmpegBin != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("ffmpeg_bin = %q", cfg.FFmpegBin)
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "fps: 50\nlisten_addr: \"127.0.0.1:9999\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHOTMETRICS_CONFIG", path)
	t.Setenv("SHOTMETRICS_FPS", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Env beats file; file beats defaults.
	if cfg.FPS != 25 {
		t.Errorf("fps = %v, want env override 25", cfg.FPS)
	}
	if cfg.ListenAddr != "127.0.0.1:9999" {
		t.Errorf("listen_addr = %q, want file value", cfg.ListenAddr)
	}
}

func TestLoad_RejectsBadFPS(t *testing.T) {
	t.Setenv("SHOTMETRICS_CONFIG", "")
	t.Setenv("SHOTMETRICS_FPS", "-1")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative fps")
	}
}
