package game

import (
	"path/filepath"
	"testing"
)

// TestBuildFullPath tests base path joining and default extensions.
func TestBuildFullPath(t *testing.T) {
	tests := []struct {
		name       string
		basePath   string
		relative   string
		defaultExt string
		want       string
	}{
		{"带扩展名", "assets", "me1.png", ".png", filepath.Join("assets", "me1.png")},
		{"补全扩展名", "assets", "me1", ".png", filepath.Join("assets", "me1.png")},
		{"子目录", "assets", "fonts/game.ttf", "", filepath.Join("assets", "fonts", "game.ttf")},
		{"无基础路径", "", "bullet.wav", ".wav", "bullet.wav"},
		{"字体不补扩展名", "assets", "fonts/game", "", filepath.Join("assets", "fonts", "game")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildFullPath(tt.basePath, tt.relative, tt.defaultExt); got != tt.want {
				t.Errorf("buildFullPath(%q, %q): got %q, want %q", tt.basePath, tt.relative, got, tt.want)
			}
		})
	}
}
