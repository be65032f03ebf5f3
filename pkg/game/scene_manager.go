package game

import (
	"fmt"

	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// SceneManager controls which scene is active.
// Switches requested during an Update take effect before the next Update, so a scene
// never runs after it has replaced itself.
type SceneManager struct {
	currentScene Scene
	currentName  string
	pending      Scene
	pendingName  string
	terminated   bool

	log zerolog.Logger
}

// NewSceneManager creates a manager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{log: logger.For("scenes")}
}

// SwitchTo 切换到新场景（下一帧生效；没有活动场景时立即生效）
func (sm *SceneManager) SwitchTo(name string, scene Scene) {
	if sm.currentScene == nil {
		sm.activate(name, scene)
		return
	}
	sm.pending = scene
	sm.pendingName = name
}

func (sm *SceneManager) activate(name string, scene Scene) {
	sm.currentScene = scene
	sm.currentName = name
	sm.log.Info().Str("scene", name).Msg("Scene switched")
	if e, ok := scene.(Enterable); ok {
		e.OnEnter()
	}
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 当前场景名称
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// PendingName 等待生效的场景名称，没有时为空
func (sm *SceneManager) PendingName() string {
	return sm.pendingName
}

// Terminate 请求结束游戏循环
func (sm *SceneManager) Terminate() {
	sm.terminated = true
}

// Terminated 是否已请求结束
func (sm *SceneManager) Terminated() bool {
	return sm.terminated
}

// Update 应用挂起的切换后更新活动场景
func (sm *SceneManager) Update(deltaTime float64) error {
	if sm.pending != nil {
		sm.activate(sm.pendingName, sm.pending)
		sm.pending = nil
		sm.pendingName = ""
	}
	if sm.currentScene == nil {
		return nil
	}
	if err := sm.currentScene.Update(deltaTime); err != nil {
		return fmt.Errorf("scene %s: %w", sm.currentName, err)
	}
	return nil
}

// Draw renders the active scene; does nothing without one.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
