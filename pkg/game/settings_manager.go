package game

import (
	"fmt"

	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/decker502/thunderwings/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GameSettings 玩家偏好设置（音量与显示）
type GameSettings struct {
	MusicVolume  float64 `yaml:"musicVolume"` // 0.0 ~ 1.0
	SoundVolume  float64 `yaml:"soundVolume"` // 0.0 ~ 1.0
	MusicEnabled bool    `yaml:"musicEnabled"`
	SoundEnabled bool    `yaml:"soundEnabled"`
	Fullscreen   bool    `yaml:"fullscreen"`
}

// DefaultSettings 返回默认设置
// 背景音乐默认很轻，避免盖过射击和爆炸音效
func DefaultSettings() *GameSettings {
	return &GameSettings{
		MusicVolume:  0.08,
		SoundVolume:  1.0,
		MusicEnabled: true,
		SoundEnabled: true,
	}
}

// normalize 把越界的音量收敛到 [0, 1]
func (s *GameSettings) normalize() {
	s.MusicVolume = utils.Clamp(s.MusicVolume, 0, 1)
	s.SoundVolume = utils.Clamp(s.SoundVolume, 0, 1)
}

// 存储位置：gdata 对象 "settings" 的 "global" 属性
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// SettingsManager 设置管理器
// store 为 nil 时只在内存中保存设置
type SettingsManager struct {
	store    *gdata.Manager
	settings *GameSettings
	log      zerolog.Logger
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败只记录警告并使用默认设置
func NewSettingsManager(store *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		store:    store,
		settings: DefaultSettings(),
		log:      logger.For("settings"),
	}
	if err := sm.Load(); err != nil {
		sm.log.Warn().Err(err).Msg("Failed to load settings, using defaults")
	}
	return sm
}

// Load 从 gdata 加载设置
//
// 返回：
//   - error: 读取或解析失败（此时设置被重置为默认值）
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.normalize()
	sm.settings = loaded

	sm.log.Debug().
		Float64("music", loaded.MusicVolume).
		Float64("sound", loaded.SoundVolume).
		Msg("Settings loaded")
	return nil
}

// Save 保存设置到 gdata（无存储时什么也不做）
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// Update 修改设置并收敛音量，需调用 Save() 持久化
func (sm *SettingsManager) Update(fn func(s *GameSettings)) {
	fn(sm.settings)
	sm.settings.normalize()
}
