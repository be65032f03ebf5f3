package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a top-level screen (main menu, battle).
// Only the active scene is updated and drawn.
type Scene interface {
	// Update advances the scene by one frame.
	// deltaTime is the nominal frame time in seconds; the battle measures its own time.
	// A returned error terminates the game loop.
	Update(deltaTime float64) error

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Enterable 是一个可选接口，场景成为活动场景时被调用一次
type Enterable interface {
	OnEnter()
}
