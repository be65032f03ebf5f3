package systems

import "github.com/decker502/thunderwings/pkg/types"

// SoundPlayer 音效播放接口（由 game.AudioManager 或终端前端实现）
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// FrameProber 查询某个动画帧贴图是否存在
// 死亡动画依赖该查询来判断帧序列何时结束
type FrameProber interface {
	HasImage(imageID string) bool
}

// Keyboard 方向键状态
type Keyboard interface {
	IsKeyPressed(key types.Key) bool
}

// NopSound 不播放任何音效
type NopSound struct{}

// PlaySound 忽略播放请求
func (NopSound) PlaySound(string) bool { return false }

// NopFrames 没有任何动画帧
type NopFrames struct{}

// HasImage 总是返回 false
func (NopFrames) HasImage(string) bool { return false }

// NopKeyboard 没有按键按下
type NopKeyboard struct{}

// IsKeyPressed 总是返回 false
func (NopKeyboard) IsKeyPressed(types.Key) bool { return false }
