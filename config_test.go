package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Missing(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	want := defaultConfig()
	if *config != *want {
		t.Errorf("config = %+v, want defaults %+v", config, want)
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	config, err := loadConfig("")
	if err != nil || config == nil {
		t.Fatalf("loadConfig(\"\") = %v, %v", config, err)
	}
	if !config.Confirmations {
		t.Errorf("Confirmations = false, want default true")
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".identicrc")
	data := `
save_directory = "` + filepath.Join(dir, "programs") + `"
confirmations = false
show_all_files = true

[run]
terminal = "xterm -e"
build_command = "cc {source} -o {executable}"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if config.SaveDirectory != filepath.Join(dir, "programs") {
		t.Errorf("SaveDirectory = %q", config.SaveDirectory)
	}
	if config.Confirmations {
		t.Errorf("Confirmations = true, want false")
	}
	if !config.ShowAllFiles {
		t.Errorf("ShowAllFiles = false, want true")
	}
	if config.Run.Terminal != "xterm -e" {
		t.Errorf("Run.Terminal = %q, want %q", config.Run.Terminal, "xterm -e")
	}
	// Keys not in the file keep their defaults.
	if config.Run.SourcePath != defaultConfig().Run.SourcePath {
		t.Errorf("Run.SourcePath = %q, want default", config.Run.SourcePath)
	}
	if config.Verbosity != 1 {
		t.Errorf("Verbosity = %d, want default 1", config.Verbosity)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".identicrc")
	if err := os.WriteFile(path, []byte("confirmations = = yes\n"), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := loadConfig(path)
	if err == nil {
		t.Fatalf("loadConfig() error = nil, want parse error")
	}
	if *config != *defaultConfig() {
		t.Errorf("config after parse error = %+v, want defaults", config)
	}
}

func TestConfig_GetSavePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "saves")
	config := &Config{SaveDirectory: dir}

	if got, want := config.GetSavePath("a.ic"), filepath.Join(dir, "a.ic"); got != want {
		t.Errorf("GetSavePath(a.ic) = %q, want %q", got, want)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("save directory not created: %v", err)
	}
	if got := config.GetSavePath("/abs/a.ic"); got != "/abs/a.ic" {
		t.Errorf("GetSavePath(/abs/a.ic) = %q, want it unchanged", got)
	}
	if got := (&Config{}).GetSavePath("a.ic"); got != "a.ic" {
		t.Errorf("GetSavePath without directory = %q, want %q", got, "a.ic")
	}
}
