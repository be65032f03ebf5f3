package game

import (
	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
)

// AudioManager 音频管理器
//
// 按资源ID播放音效和背景音乐，音量和开关取自 SettingsManager。
// 战斗系统通过 PlaySound 触发音效，未知或加载失败的音效只记录一次警告。
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager // 可为 nil（使用默认设置）

	soundPlayers map[string]*audio.Player // 资源ID -> 播放器
	failed       map[string]bool          // 已报告过的失败ID
	currentMusic *audio.Player
	musicID      string

	log zerolog.Logger
}

// NewAudioManager 创建音频管理器
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
		failed:          make(map[string]bool),
		log:             logger.For("audio"),
	}
}

func (am *AudioManager) settings() *GameSettings {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings()
	}
	return DefaultSettings()
}

// PlaySound 从头播放一次音效
//
// 返回：
//   - bool: 是否成功播放（音效关闭、资源未知或加载失败时为 false）
func (am *AudioManager) PlaySound(soundID string) bool {
	settings := am.settings()
	if !settings.SoundEnabled {
		return false
	}

	player := am.soundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(settings.SoundVolume)
	if err := player.Rewind(); err != nil {
		am.log.Warn().Err(err).Str("id", soundID).Msg("Failed to rewind sound")
	}
	player.Play()
	return true
}

// soundPlayer 获取或加载音效播放器
func (am *AudioManager) soundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}
	if am.failed[soundID] {
		return nil
	}

	path, ok := am.resourceManager.SoundPath(soundID)
	if !ok {
		am.failed[soundID] = true
		am.log.Warn().Str("id", soundID).Msg("Sound not found")
		return nil
	}
	player, err := am.resourceManager.LoadSoundEffect(path)
	if err != nil {
		am.failed[soundID] = true
		am.log.Warn().Err(err).Str("id", soundID).Msg("Failed to load sound")
		return nil
	}
	am.soundPlayers[soundID] = player
	return player
}

// PlayMusic 循环播放背景音乐，同一首已在播放时不重复开始
func (am *AudioManager) PlayMusic(musicID string) bool {
	settings := am.settings()
	if !settings.MusicEnabled {
		return false
	}
	if am.musicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}
	am.StopMusic()

	path, ok := am.resourceManager.MusicPath(musicID)
	if !ok {
		am.log.Warn().Str("id", musicID).Msg("Music not found")
		return false
	}
	player, err := am.resourceManager.LoadAudio(path)
	if err != nil {
		am.log.Warn().Err(err).Str("id", musicID).Msg("Failed to load music")
		return false
	}

	player.SetVolume(settings.MusicVolume)
	if err := player.Rewind(); err != nil {
		am.log.Warn().Err(err).Str("id", musicID).Msg("Failed to rewind music")
	}
	player.Play()

	am.currentMusic = player
	am.musicID = musicID
	am.log.Info().Str("id", musicID).Float64("volume", settings.MusicVolume).Msg("Playing music")
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.musicID = ""
	}
}

// ApplyVolume 把当前设置应用到正在播放的音乐和已缓存的音效
func (am *AudioManager) ApplyVolume() {
	settings := am.settings()
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(settings.MusicVolume)
		if !settings.MusicEnabled {
			am.currentMusic.Pause()
		}
	}
	for _, p := range am.soundPlayers {
		p.SetVolume(settings.SoundVolume)
	}
}
