package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitWithCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	customConfigPath := filepath.Join(tempDir, "custom", "path", "config.toml")

	if err := Init(customConfigPath); err != nil {
		t.Fatalf("failed to initialize with custom path: %v", err)
	}

	expectedDir := filepath.Join(tempDir, "custom", "path")
	if GetConfigDir() != expectedDir {
		t.Errorf("expected config dir %s, got %s", expectedDir, GetConfigDir())
	}
	if _, err := os.Stat(GetConfigDir()); err != nil {
		t.Errorf("config directory should exist: %v", err)
	}
}

func TestInitWithoutPathUsesDefaultDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	if err := Init(""); err != nil {
		t.Fatalf("failed to initialize with default path: %v", err)
	}

	expectedDir := filepath.Join(home, ".config", "sonicindex")
	if GetConfigDir() != expectedDir {
		t.Errorf("expected default config dir %s, got %s", expectedDir, GetConfigDir())
	}
}

func TestDefaults(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "test")); err != nil {
		t.Fatalf("failed to initialize: %v", err)
	}

	if GetInt("server.port") != 3000 {
		t.Errorf("expected default server.port 3000, got %d", GetInt("server.port"))
	}
	if GetString("scan.model_dir") != "assets/models" {
		t.Errorf("expected default scan.model_dir assets/models, got %s", GetString("scan.model_dir"))
	}
	if GetBool("scan.offline") {
		t.Error("expected default scan.offline false")
	}
}
