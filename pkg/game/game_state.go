package game

import (
	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"
)

// DefaultAppName gdata 存储目录名
const DefaultAppName = "thunderwings"

// GameStateConfig 创建共享服务所需的参数
type GameStateConfig struct {
	AppName      string         // gdata 应用名，为空时使用 DefaultAppName
	AssetsDir    string         // 资源目录，为空时使用资源清单中的 base_path
	SaveSlot     string         // 战斗存档槽位
	AudioContext *audio.Context // 可为 nil（无声模式）
}

// GameState 场景之间共享的服务
//
// Store 打开失败时为 nil，此时设置只保存在内存中，存档功能不可用。
type GameState struct {
	Store      *gdata.Manager
	Settings   *SettingsManager
	Resources  *ResourceManager
	Audio      *AudioManager
	Serializer *BattleSerializer
	SaveSlot   string
}

// NewGameState 打开存储并创建各个管理器
// 资源清单在这里读取，资源组由调用方在需要时加载
func NewGameState(cfg GameStateConfig) (*GameState, error) {
	if cfg.AppName == "" {
		cfg.AppName = DefaultAppName
	}
	if cfg.SaveSlot == "" {
		cfg.SaveSlot = "default"
	}

	log := logger.For("state")
	store, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
	if err != nil {
		log.Warn().Err(err).Str("app", cfg.AppName).Msg("Persistent storage unavailable, saving disabled")
		store = nil
	}

	resources := NewResourceManager(cfg.AudioContext, cfg.AssetsDir)
	if err := resources.LoadResourceConfig(DefaultResourceConfigPath); err != nil {
		return nil, err
	}

	settings := NewSettingsManager(store)
	return &GameState{
		Store:      store,
		Settings:   settings,
		Resources:  resources,
		Audio:      NewAudioManager(resources, settings),
		Serializer: NewBattleSerializer(store),
		SaveSlot:   cfg.SaveSlot,
	}, nil
}

// CanSave 是否可以持久化战斗
func (gs *GameState) CanSave() bool {
	return gs.Store != nil
}
