package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings the log core consumes from its
// configuration collaborator.
type Config struct {
	LogDir          string
	MaxLogLines     int
	HistoryChunk    int
	WriterQueue     int
	ShutdownTimeout time.Duration
}

const (
	defaultConfigPath   = "~/.config/warden/config.toml"
	defaultLogDir       = "~/.local/share/warden/logs"
	defaultMaxLogLines  = 2000
	defaultHistoryChunk = 500
	defaultWriterQueue  = 10000
	defaultShutdownSecs = 2
)

// Load locates and parses the warden config, falling back to defaults
// when the file or individual fields are missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.LogDir = mustExpand(defaultLogDir)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		LogDir          string `toml:"log_dir"`
		MaxLogLines     int    `toml:"max_log_lines"`
		HistoryChunk    int    `toml:"history_chunk"`
		WriterQueue     int    `toml:"writer_queue"`
		ShutdownSeconds int    `toml:"shutdown_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = dir
	}
	cfg.LogDir = mustExpand(cfg.LogDir)

	if raw.MaxLogLines > 0 {
		cfg.MaxLogLines = raw.MaxLogLines
	}
	if raw.HistoryChunk > 0 {
		cfg.HistoryChunk = raw.HistoryChunk
	}
	if raw.WriterQueue > 0 {
		cfg.WriterQueue = raw.WriterQueue
	}
	if raw.ShutdownSeconds > 0 {
		cfg.ShutdownTimeout = time.Duration(raw.ShutdownSeconds) * time.Second
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		LogDir:          defaultLogDir,
		MaxLogLines:     defaultMaxLogLines,
		HistoryChunk:    defaultHistoryChunk,
		WriterQueue:     defaultWriterQueue,
		ShutdownTimeout: defaultShutdownSecs * time.Second,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
