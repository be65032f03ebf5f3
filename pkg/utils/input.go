// Package utils 提供通用工具函数
package utils

import (
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyBindings 方向键对应的物理按键（方向键与 WASD）
var keyBindings = map[types.Key][]ebiten.Key{
	types.KeyUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
	types.KeyDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
	types.KeyLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	types.KeyRight: {ebiten.KeyArrowRight, ebiten.KeyD},
}

// EbitenKeyboard 从 ebiten 读取当前帧的方向键状态
type EbitenKeyboard struct{}

// IsKeyPressed 任一绑定按键按下即视为按下
func (EbitenKeyboard) IsKeyPressed(key types.Key) bool {
	for _, k := range keyBindings[key] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// IsAnyKeyJustPressed 检查本帧是否刚按下其中任一按键
func IsAnyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}
