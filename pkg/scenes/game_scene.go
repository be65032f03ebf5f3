package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/decker502/thunderwings/pkg/systems"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
)

// GameOverDuration 游戏结束画面停留时间（秒），之后回到主菜单
const GameOverDuration = 3.2

// 暂停菜单提示显示时长（秒）
const pauseMessageDuration = 2.0

var (
	overlayColor  = color.RGBA{A: 150}
	gameOverColor = color.RGBA{R: 255, G: 60, B: 40, A: 255}
	noticeColor   = color.RGBA{R: 180, G: 255, B: 180, A: 255}
)

// GameScene 战斗场景
//
// 每帧驱动 Battle.Tick，Esc 打开暂停菜单（继续 / 保存进度 / 退出）。
// 玩家坠毁后显示 GAME OVER，停留 GameOverDuration 秒后回到主菜单。
type GameScene struct {
	ctx    *Context
	battle *systems.Battle
	render *systems.RenderSystem
	log    zerolog.Logger

	pauseMenu *Menu
	bigFace   *text.GoTextFace
	itemFace  *text.GoTextFace

	gameOver     bool
	outroElapsed float64

	notice      string
	noticeTimer float64
}

// NewGameScene 为一局已创建（或已读档）的战斗创建场景
func NewGameScene(ctx *Context, battle *systems.Battle) *GameScene {
	w, h := ctx.Balance.Screen.Width, ctx.Balance.Screen.Height
	s := &GameScene{
		ctx:       ctx,
		battle:    battle,
		log:       logger.For("battle_scene"),
		pauseMenu: NewMenu(w/2, h*0.4, ItemResume, ItemSave, ItemExit),
	}
	var hud *text.GoTextFace
	if ctx.State != nil && ctx.State.Resources != nil {
		hud = ctx.State.Resources.Font(types.FontGame, 22)
		s.bigFace = ctx.State.Resources.Font(types.FontGame, 96)
		s.itemFace = ctx.State.Resources.Font(types.FontGame, 32)
	}
	s.render = systems.NewRenderSystem(battle, ctx.images(), hud)
	return s
}

// Battle 当前战斗
func (s *GameScene) Battle() *systems.Battle {
	return s.battle
}

// GameOver 是否处于结束画面
func (s *GameScene) GameOver() bool {
	return s.gameOver
}

// Update 处理输入并推进战斗
func (s *GameScene) Update(deltaTime float64) error {
	if !s.gameOver {
		if utils.IsAnyKeyJustPressed(ebiten.KeyEscape, ebiten.KeyP) {
			s.togglePause()
		} else if s.battle.Paused() {
			if item := s.pauseMenu.HandleInput(); item != "" {
				s.activate(item)
			}
		}
	}
	return s.step(deltaTime)
}

// step 推进一帧：结束画面计时，或在未暂停时推进战斗
func (s *GameScene) step(deltaTime float64) error {
	if s.noticeTimer > 0 {
		s.noticeTimer -= deltaTime
		if s.noticeTimer <= 0 {
			s.notice = ""
		}
	}

	if s.gameOver {
		s.outroElapsed += deltaTime
		if s.outroElapsed >= GameOverDuration {
			s.backToMenu()
		}
		return nil
	}

	running, err := s.battle.Tick()
	if err != nil {
		return fmt.Errorf("battle tick failed: %w", err)
	}
	if !running {
		s.gameOver = true
		s.outroElapsed = 0
		state := s.battle.State()
		s.log.Info().
			Str("session", s.battle.SessionID.String()).
			Float64("timeElapsed", state.TimeElapsed).
			Int("killed", state.Killed).
			Msg("Game over")
	}
	return nil
}

// togglePause 打开或关闭暂停菜单
func (s *GameScene) togglePause() {
	if s.battle.Paused() {
		s.battle.Resume()
		return
	}
	s.battle.Pause()
	s.pauseMenu.Selected = 0
}

// activate 执行暂停菜单项
func (s *GameScene) activate(item string) {
	switch item {
	case ItemResume:
		s.battle.Resume()

	case ItemSave:
		if s.ctx.State == nil || !s.ctx.State.CanSave() {
			s.showNotice("Saving is not available")
			return
		}
		if err := s.ctx.State.Serializer.Save(s.battle, s.ctx.State.SaveSlot); err != nil {
			s.log.Error().Err(err).Msg("Save failed")
			s.showNotice("Save failed")
			return
		}
		s.showNotice("Progress saved")

	case ItemExit:
		s.backToMenu()
	}
}

func (s *GameScene) showNotice(msg string) {
	s.notice = msg
	s.noticeTimer = pauseMessageDuration
}

// Notice 暂停菜单中的提示
func (s *GameScene) Notice() string {
	return s.notice
}

func (s *GameScene) backToMenu() {
	s.ctx.Scenes.SwitchTo(SceneMainMenu, NewMainMenuScene(s.ctx))
}

// Draw 绘制战斗画面及覆盖层
func (s *GameScene) Draw(screen *ebiten.Image) {
	s.render.Draw(screen)

	w, h := s.ctx.Balance.Screen.Width, s.ctx.Balance.Screen.Height
	switch {
	case s.GameOver():
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), overlayColor, false)
		drawCenteredText(screen, s.bigFace, "GAME OVER", w/2, h/2, gameOverColor)
	case s.battle.Paused():
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), overlayColor, false)
		drawCenteredText(screen, s.bigFace, "PAUSED", w/2, h*0.22, titleColor)
		s.pauseMenu.Draw(screen, s.itemFace)
		if notice := s.Notice(); notice != "" {
			drawCenteredText(screen, s.itemFace, notice, w/2, h*0.85, noticeColor)
		}
	}
}
