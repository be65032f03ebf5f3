package game

import (
	"testing"
)

// TestAudioManager_PlaySound 测试音效开关与资源解析
func TestAudioManager_PlaySound(t *testing.T) {
	rm, _ := newTestResourceManager(t)
	sm := NewSettingsManager(nil)
	am := NewAudioManager(rm, sm)

	if !am.PlaySound("bullet") {
		t.Error("PlaySound(bullet): got false, want true")
	}
	if am.PlaySound("laser") {
		t.Error("PlaySound(unknown): got true, want false")
	}
	if !am.failed["laser"] {
		t.Error("unknown sound should be remembered as failed")
	}

	sm.Update(func(s *GameSettings) { s.SoundEnabled = false })
	if am.PlaySound("bullet") {
		t.Error("PlaySound with sound disabled: got true, want false")
	}
}

// TestAudioManager_PlayMusic 测试背景音乐播放与停止
func TestAudioManager_PlayMusic(t *testing.T) {
	rm, _ := newTestResourceManager(t)
	am := NewAudioManager(rm, nil)

	if !am.PlayMusic("background") {
		t.Fatal("PlayMusic(background): got false, want true")
	}
	if am.musicID != "background" {
		t.Errorf("musicID: got %q, want background", am.musicID)
	}
	if am.PlayMusic("boss_theme") {
		t.Error("PlayMusic(unknown): got true, want false")
	}

	am.StopMusic()
	if am.currentMusic != nil || am.musicID != "" {
		t.Error("StopMusic should clear the current track")
	}
}

// TestAudioManager_ApplyVolume 测试设置变化后立即作用于播放中的音频
func TestAudioManager_ApplyVolume(t *testing.T) {
	rm, _ := newTestResourceManager(t)
	sm := NewSettingsManager(nil)
	am := NewAudioManager(rm, sm)

	if !am.PlayMusic("background") {
		t.Fatal("PlayMusic(background): got false, want true")
	}
	am.PlaySound("bullet")

	sm.Update(func(s *GameSettings) {
		s.MusicVolume = 0.5
		s.SoundVolume = 0.3
	})
	am.ApplyVolume()
	if got := am.currentMusic.Volume(); got != 0.5 {
		t.Errorf("music volume: got %v, want 0.5", got)
	}
	if got := am.soundPlayers["bullet"].Volume(); got != 0.3 {
		t.Errorf("sound volume: got %v, want 0.3", got)
	}

	sm.Update(func(s *GameSettings) { s.MusicEnabled = false })
	am.ApplyVolume()
	if am.currentMusic.IsPlaying() {
		t.Error("music should pause once disabled")
	}

	sm.Update(func(s *GameSettings) { s.MusicEnabled = true })
	if !am.PlayMusic("background") {
		t.Error("PlayMusic after re-enabling: got false, want true")
	}
}
