package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/balance.yaml":   {Data: []byte("screen:\n  width: 480\n")},
		"data/resources.yaml": {Data: []byte("version: \"1.0\"\n")},
	}
}

// TestInit 测试初始化与重置
func TestInit(t *testing.T) {
	defer func() { initialized = false }()

	Init(testFS())
	if !Exists("data/balance.yaml") {
		t.Error("Expected embedded file to exist after Init()")
	}

	Init(nil)
	if Exists("data/balance.yaml") {
		t.Error("Expected Exists() to return false after Init(nil)")
	}
}

// TestNotInitialized 测试未初始化时的各个入口
func TestNotInitialized(t *testing.T) {
	initialized = false

	if _, err := ReadFile("data/balance.yaml"); err == nil {
		t.Error("Expected error when calling ReadFile() before Init()")
	}
	if Exists("data/balance.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试路径标准化与前缀检查
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	tests := []struct {
		name       string
		path       string
		wantErr    bool
		wantExists bool
	}{
		{"标准路径", "data/balance.yaml", false, true},
		{"带 ./ 前缀", "./data/balance.yaml", false, true},
		{"未知前缀", "assets/images/me1.png", true, false},
		{"文件不存在", "data/missing.yaml", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got := Exists(tt.path); got != tt.wantExists {
				t.Errorf("Exists(%q): got %v, want %v", tt.path, got, tt.wantExists)
			}
		})
	}
}

// TestLoad 测试嵌入数据优先、磁盘兜底
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0755); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}
	for name, content := range map[string]string{
		"data/balance.yaml": "screen:\n  width: 999\n",
		"data/local.yaml":   "screen:\n  width: 640\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	Init(testFS())
	defer func() { initialized = false }()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"嵌入副本优先", "data/balance.yaml", "screen:\n  width: 480\n", false},
		{"未嵌入时读磁盘", "data/local.yaml", "screen:\n  width: 640\n", false},
		{"两处都没有", "data/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Load(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(data) != tt.want {
				t.Errorf("Load(%q): got %q, want %q", tt.path, data, tt.want)
			}
		})
	}
}
