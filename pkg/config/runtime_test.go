package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRuntimeDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	opts, err := LoadRuntime(nil)
	if err != nil {
		t.Fatalf("LoadRuntime failed: %v", err)
	}
	if opts.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want %q", opts.LogLevel, "info")
	}
	if opts.BalanceFile != DefaultBalancePath {
		t.Errorf("BalanceFile: got %q, want %q", opts.BalanceFile, DefaultBalancePath)
	}
	if opts.SaveSlot != "default" {
		t.Errorf("SaveSlot: got %q, want %q", opts.SaveSlot, "default")
	}
	if opts.WindowScale != 1.0 {
		t.Errorf("WindowScale: got %v, want 1.0", opts.WindowScale)
	}
}

func TestLoadRuntimePrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	configContent := "logLevel: warn\nsaveSlot: from-file\nseed: 7\n"
	if err := os.WriteFile(filepath.Join(dir, "thunderwings.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("THUNDERWINGS_SAVESLOT", "from-env")

	opts, err := LoadRuntime([]string{"--seed", "42"})
	if err != nil {
		t.Fatalf("LoadRuntime failed: %v", err)
	}

	if opts.LogLevel != "warn" {
		t.Errorf("LogLevel from config file: got %q, want %q", opts.LogLevel, "warn")
	}
	if opts.SaveSlot != "from-env" {
		t.Errorf("SaveSlot from env: got %q, want %q", opts.SaveSlot, "from-env")
	}
	if opts.Seed != 42 {
		t.Errorf("Seed from flag: got %d, want 42", opts.Seed)
	}
}

func TestLoadRuntimeErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{name: "未知参数", args: []string{"--no-such-flag"}},
		{name: "窗口缩放非正", args: []string{"--window-scale", "0"}},
		{name: "指定的配置文件不存在", args: []string{"--config", "missing.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadRuntime(tt.args); err == nil {
				t.Errorf("Expected error for args %v", tt.args)
			}
		})
	}
}

func TestLoadRuntimeVersionFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "默认不打印版本", args: nil, want: false},
		{name: "长参数", args: []string{"--version"}, want: true},
		{name: "短参数", args: []string{"-v"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := LoadRuntime(tt.args)
			if err != nil {
				t.Fatalf("LoadRuntime failed: %v", err)
			}
			if opts.ShowVersion != tt.want {
				t.Errorf("ShowVersion: got %v, want %v", opts.ShowVersion, tt.want)
			}
		})
	}
}

func TestVersionLines(t *testing.T) {
	b := BuildInfo{GoVersion: "go1.24.0", Platform: "linux/amd64", Revision: "0123456789abcdef", Modified: true}

	if got, want := b.Describe(), "go1.24.0 linux/amd64 (0123456-dirty)"; got != want {
		t.Errorf("Describe: got %q, want %q", got, want)
	}
	if got, want := (BuildInfo{GoVersion: "go1.24.0", Platform: "linux/amd64"}).Describe(), "go1.24.0 linux/amd64"; got != want {
		t.Errorf("Describe without revision: got %q, want %q", got, want)
	}

	lines := VersionLines(b)
	if lines[0] != "thunderwings "+Version {
		t.Errorf("first line: got %q, want %q", lines[0], "thunderwings "+Version)
	}
	if lines[len(lines)-1] != "See "+LicenseURL {
		t.Errorf("last line: got %q, want %q", lines[len(lines)-1], "See "+LicenseURL)
	}
}
