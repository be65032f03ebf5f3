package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.MusicVolume != 0.08 {
		t.Errorf("MusicVolume: got %v, want 0.08", s.MusicVolume)
	}
	if s.SoundVolume != 1.0 {
		t.Errorf("SoundVolume: got %v, want 1.0", s.SoundVolume)
	}
	if !s.MusicEnabled || !s.SoundEnabled {
		t.Error("music and sound should be enabled by default")
	}
	if s.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestSettingsManager_NilStore 测试无存储时的内存模式
func TestSettingsManager_NilStore(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings().MusicVolume != 0.08 {
		t.Errorf("MusicVolume: got %v, want 0.08", sm.GetSettings().MusicVolume)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save without store: got %v, want nil", err)
	}
}

// TestSettingsManager_Update 测试音量收敛
func TestSettingsManager_Update(t *testing.T) {
	tests := []struct {
		name      string
		music     float64
		sound     float64
		wantMusic float64
		wantSound float64
	}{
		{"正常范围", 0.5, 0.6, 0.5, 0.6},
		{"超过上限", 1.5, 2, 1, 1},
		{"低于下限", -0.2, -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSettingsManager(nil)
			sm.Update(func(s *GameSettings) {
				s.MusicVolume = tt.music
				s.SoundVolume = tt.sound
			})
			got := sm.GetSettings()
			if got.MusicVolume != tt.wantMusic {
				t.Errorf("MusicVolume: got %v, want %v", got.MusicVolume, tt.wantMusic)
			}
			if got.SoundVolume != tt.wantSound {
				t.Errorf("SoundVolume: got %v, want %v", got.SoundVolume, tt.wantSound)
			}
		})
	}
}

// TestSettingsManager_LoadSave 测试持久化往返
func TestSettingsManager_LoadSave(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	store, err := gdata.Open(gdata.Config{AppName: "thunderwings_test_settings"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}

	sm1 := NewSettingsManager(store)
	sm1.Update(func(s *GameSettings) {
		s.MusicVolume = 0.3
		s.SoundEnabled = false
		s.Fullscreen = true
	})
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(store)
	got := sm2.GetSettings()
	if got.MusicVolume != 0.3 {
		t.Errorf("MusicVolume: got %v, want 0.3", got.MusicVolume)
	}
	if got.SoundEnabled {
		t.Error("SoundEnabled: got true, want false")
	}
	if !got.Fullscreen {
		t.Error("Fullscreen: got false, want true")
	}
	if got.SoundVolume != 1.0 {
		t.Errorf("SoundVolume: got %v, want 1.0", got.SoundVolume)
	}
}

// TestSettingsManager_CorruptData 测试损坏数据回退到默认值
func TestSettingsManager_CorruptData(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	store, err := gdata.Open(gdata.Config{AppName: "thunderwings_test_settings_corrupt"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	if err := store.SaveObjectProp(settingsObject, settingsProperty, []byte("musicVolume: [")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	sm := NewSettingsManager(store)
	if err := sm.Load(); err == nil {
		t.Error("Load() on corrupt data: expected error")
	}
	if sm.GetSettings().MusicVolume != 0.08 {
		t.Errorf("MusicVolume after corrupt load: got %v, want default", sm.GetSettings().MusicVolume)
	}
}
