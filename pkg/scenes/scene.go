// Package scenes 实现顶层场景：主菜单、战斗和文字页面
package scenes

import (
	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/game"
	"github.com/decker502/thunderwings/pkg/systems"
	"github.com/decker502/thunderwings/pkg/utils"
)

// Scene game.Scene 的别名
type Scene = game.Scene

// 场景名称（用于日志和 SceneManager.CurrentName）
const (
	SceneMainMenu = "main_menu"
	SceneBattle   = "battle"
	SceneGuide    = "guide"
	SceneAbout    = "about"
)

// Context 场景之间共享的依赖
type Context struct {
	State    *game.GameState
	Scenes   *game.SceneManager
	Balance  *config.BalanceConfig
	Seed     uint64           // 0 表示以当前时间为种子
	Clock    utils.Clock      // nil 时使用真实时钟
	Keyboard systems.Keyboard // nil 时读取 ebiten 键盘
}

// NewBattle 按共享依赖创建一局新战斗
func (c *Context) NewBattle() (*systems.Battle, error) {
	deps := systems.BattleDeps{
		Balance:  c.Balance,
		Clock:    c.Clock,
		Keyboard: c.Keyboard,
	}
	if c.Seed != 0 {
		deps.Random = utils.NewRandom(c.Seed)
	}
	if deps.Keyboard == nil {
		deps.Keyboard = utils.EbitenKeyboard{}
	}
	if c.State != nil {
		if c.State.Audio != nil {
			deps.Sound = c.State.Audio
		}
		if c.State.Resources != nil {
			deps.Frames = c.State.Resources
		}
	}
	return systems.NewBattle(deps)
}

func (c *Context) playSound(id string) {
	if c.State != nil && c.State.Audio != nil {
		c.State.Audio.PlaySound(id)
	}
}

func (c *Context) images() systems.ImageSource {
	if c.State == nil || c.State.Resources == nil {
		return nil
	}
	return c.State.Resources
}
