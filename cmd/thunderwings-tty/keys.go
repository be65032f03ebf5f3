package main

import (
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// keyHoldSeconds 终端没有按键抬起事件，按键在最后一次按下（含自动重复）后保持这么久
const keyHoldSeconds = 0.15

// keyState 由终端按键事件模拟的方向键状态
type keyState struct {
	clock   utils.Clock
	pressed map[types.Key]utils.Timer
}

func newKeyState(clock utils.Clock) *keyState {
	return &keyState{clock: clock, pressed: make(map[types.Key]utils.Timer)}
}

// directionOf 把终端按键映射为方向键
func directionOf(ev *tcell.EventKey) (types.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return types.KeyUp, true
	case tcell.KeyDown:
		return types.KeyDown, true
	case tcell.KeyLeft:
		return types.KeyLeft, true
	case tcell.KeyRight:
		return types.KeyRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return types.KeyUp, true
		case 's', 'S':
			return types.KeyDown, true
		case 'a', 'A':
			return types.KeyLeft, true
		case 'd', 'D':
			return types.KeyRight, true
		}
	}
	return 0, false
}

// Press 记录一次按下；按下某个方向时松开相反方向
func (k *keyState) Press(key types.Key) {
	delete(k.pressed, opposite(key))
	k.pressed[key] = utils.NewTimer(k.clock)
}

// IsKeyPressed 实现 systems.Keyboard
func (k *keyState) IsKeyPressed(key types.Key) bool {
	t, ok := k.pressed[key]
	if !ok {
		return false
	}
	if t.HasElapsed(keyHoldSeconds) {
		delete(k.pressed, key)
		return false
	}
	return true
}

// Reset 松开全部按键
func (k *keyState) Reset() {
	clear(k.pressed)
}

func opposite(key types.Key) types.Key {
	switch key {
	case types.KeyUp:
		return types.KeyDown
	case types.KeyDown:
		return types.KeyUp
	case types.KeyLeft:
		return types.KeyRight
	default:
		return types.KeyLeft
	}
}
