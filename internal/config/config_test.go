package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
	if cfg.MaxLogLines != defaultMaxLogLines {
		t.Fatalf("MaxLogLines = %d, want %d", cfg.MaxLogLines, defaultMaxLogLines)
	}
	if cfg.HistoryChunk != defaultHistoryChunk {
		t.Fatalf("HistoryChunk = %d, want %d", cfg.HistoryChunk, defaultHistoryChunk)
	}
	if cfg.WriterQueue != defaultWriterQueue {
		t.Fatalf("WriterQueue = %d, want %d", cfg.WriterQueue, defaultWriterQueue)
	}
	if cfg.ShutdownTimeout != defaultShutdownSecs*time.Second {
		t.Fatalf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, defaultShutdownSecs*time.Second)
	}
}

func TestLoad_ParsesAndExpandsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
log_dir = "  ~/.warden/logs  "
max_log_lines = 500
history_chunk = 50
writer_queue = 128
shutdown_timeout_seconds = 5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !strings.HasPrefix(cfg.LogDir, home) {
		t.Fatalf("LogDir = %q, want it under HOME %q", cfg.LogDir, home)
	}
	if cfg.MaxLogLines != 500 {
		t.Fatalf("MaxLogLines = %d, want 500", cfg.MaxLogLines)
	}
	if cfg.HistoryChunk != 50 {
		t.Fatalf("HistoryChunk = %d, want 50", cfg.HistoryChunk)
	}
	if cfg.WriterQueue != 128 {
		t.Fatalf("WriterQueue = %d, want 128", cfg.WriterQueue)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_ZeroAndNegativeValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
log_dir = ""
max_log_lines = 0
history_chunk = -10
writer_queue = 0
shutdown_timeout_seconds = -1
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
	if cfg.MaxLogLines != defaultMaxLogLines {
		t.Fatalf("MaxLogLines = %d, want %d", cfg.MaxLogLines, defaultMaxLogLines)
	}
	if cfg.HistoryChunk != defaultHistoryChunk {
		t.Fatalf("HistoryChunk = %d, want %d", cfg.HistoryChunk, defaultHistoryChunk)
	}
	if cfg.WriterQueue != defaultWriterQueue {
		t.Fatalf("WriterQueue = %d, want %d", cfg.WriterQueue, defaultWriterQueue)
	}
	if cfg.ShutdownTimeout != defaultShutdownSecs*time.Second {
		t.Fatalf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, defaultShutdownSecs*time.Second)
	}
}

func TestLoad_MalformedConfigIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("log_dir = [not toml"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}
