// Package testhelpers provides common utilities for tests across packages.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// ConfigDirName is the per-project configuration directory.
const ConfigDirName = ".terminus"

// ConfigDir creates a temporary directory with the .terminus structure.
// Returns the temp dir root and the config dir path.
// The temp dir is automatically cleaned up when the test completes.
func ConfigDir(t *testing.T) (tempDir, configDir string) {
	t.Helper()
	tempDir = t.TempDir()
	configDir = filepath.Join(tempDir, ConfigDirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	return tempDir, configDir
}

// ConfigFile creates a temporary project whose .terminus/config.toml holds content.
// Returns the temp dir root.
func ConfigFile(t *testing.T, content string) string {
	t.Helper()
	tempDir, configDir := ConfigDir(t)
	WriteFile(t, filepath.Join(configDir, "config.toml"), content)
	return tempDir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WorkingDir creates a temporary directory and makes it the working directory
// for the rest of the test. The previous directory is restored on cleanup.
func WorkingDir(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	Chdir(t, tempDir)
	return tempDir
}

// Chdir changes the working directory to dir for the rest of the test and
// restores the previous directory on cleanup.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("failed to restore working dir %s: %v", prev, err)
		}
	})
}
