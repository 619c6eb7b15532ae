package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDir_CreatesDirectoryStructure(t *testing.T) {
	tempDir, configDir := ConfigDir(t)

	if !strings.HasPrefix(configDir, tempDir) {
		t.Errorf("configDir %q should be under tempDir %q", configDir, tempDir)
	}
	if filepath.Base(configDir) != ConfigDirName {
		t.Errorf("configDir %q should end with %q", configDir, ConfigDirName)
	}

	info, err := os.Stat(configDir)
	if err != nil {
		t.Fatalf("configDir should exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("configDir should be a directory")
	}
}

func TestConfigFile_WritesContent(t *testing.T) {
	tempDir := ConfigFile(t, `prompt = "> "`)

	content, err := os.ReadFile(filepath.Join(tempDir, ConfigDirName, "config.toml"))
	if err != nil {
		t.Fatalf("config file should exist: %v", err)
	}
	if string(content) != `prompt = "> "` {
		t.Errorf("content = %q", content)
	}
}

func TestWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.yaml")
	WriteFile(t, path, "theme: dark")

	if _, err := os.Stat(path); err != nil {
		t.Errorf("file should exist: %v", err)
	}
}

func TestWorkingDir_ChangesDirectory(t *testing.T) {
	dir := WorkingDir(t)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	// Resolve symlinks such as /tmp -> /private/tmp on macOS
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(wd)
	if got != want {
		t.Errorf("working dir = %q, want %q", got, want)
	}
}
