package scenes

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/decker502/thunderwings/pkg/game"
	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
)

// 主菜单提示信息显示时长（秒）
const menuMessageDuration = 3.0

var (
	titleColor   = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	messageColor = color.RGBA{R: 255, G: 120, B: 100, A: 255}
)

// MainMenuScene 标题画面：开始、读档、玩法说明、关于、退出
type MainMenuScene struct {
	ctx  *Context
	menu *Menu
	log  zerolog.Logger

	titleFace *text.GoTextFace
	itemFace  *text.GoTextFace

	message      string
	messageTimer float64
}

// NewMainMenuScene 创建主菜单
func NewMainMenuScene(ctx *Context) *MainMenuScene {
	w, h := ctx.Balance.Screen.Width, ctx.Balance.Screen.Height
	s := &MainMenuScene{
		ctx:  ctx,
		menu: NewMenu(w/2, h*0.45, ItemStart, ItemLoad, ItemGuide, ItemAbout, ItemExit),
		log:  logger.For("menu"),
	}
	if ctx.State != nil && ctx.State.Resources != nil {
		s.titleFace = ctx.State.Resources.Font(types.FontGame, 72)
		s.itemFace = ctx.State.Resources.Font(types.FontGame, 32)
	}
	return s
}

// OnEnter 播放背景音乐
func (s *MainMenuScene) OnEnter() {
	if s.ctx.State != nil && s.ctx.State.Audio != nil {
		s.ctx.State.Audio.PlayMusic(types.MusicBackground)
	}
}

// Update 处理菜单导航
func (s *MainMenuScene) Update(deltaTime float64) error {
	s.tickMessage(deltaTime)
	if item := s.menu.HandleInput(); item != "" {
		return s.activate(item)
	}
	return nil
}

// activate 执行菜单项
// 没有存档或存档不兼容时只提示，不视为错误
func (s *MainMenuScene) activate(item string) error {
	switch item {
	case ItemStart:
		battle, err := s.ctx.NewBattle()
		if err != nil {
			return fmt.Errorf("failed to start battle: %w", err)
		}
		s.ctx.Scenes.SwitchTo(SceneBattle, NewGameScene(s.ctx, battle))

	case ItemLoad:
		battle, err := s.ctx.NewBattle()
		if err != nil {
			return fmt.Errorf("failed to start battle: %w", err)
		}
		if err := s.ctx.State.Serializer.Load(battle, s.ctx.State.SaveSlot); err != nil {
			switch {
			case errors.Is(err, game.ErrNoSavedBattle):
				s.showMessage("No saved battle")
			case errors.Is(err, game.ErrIncompatibleSave):
				s.showMessage("Saved battle is from an incompatible version")
			default:
				s.showMessage("Failed to load saved battle")
			}
			s.log.Warn().Err(err).Str("slot", s.ctx.State.SaveSlot).Msg("Load failed")
			return nil
		}
		s.ctx.Scenes.SwitchTo(SceneBattle, NewGameScene(s.ctx, battle))

	case ItemGuide:
		s.ctx.Scenes.SwitchTo(SceneGuide, NewGuideScene(s.ctx))

	case ItemAbout:
		s.ctx.Scenes.SwitchTo(SceneAbout, NewAboutScene(s.ctx))

	case ItemExit:
		s.ctx.Scenes.Terminate()
	}
	return nil
}

func (s *MainMenuScene) tickMessage(deltaTime float64) {
	if s.messageTimer > 0 {
		s.messageTimer -= deltaTime
		if s.messageTimer <= 0 {
			s.message = ""
		}
	}
}

func (s *MainMenuScene) showMessage(msg string) {
	s.message = msg
	s.messageTimer = menuMessageDuration
}

// Message 当前提示信息
func (s *MainMenuScene) Message() string {
	return s.message
}

// Draw 绘制标题画面
func (s *MainMenuScene) Draw(screen *ebiten.Image) {
	w, h := s.ctx.Balance.Screen.Width, s.ctx.Balance.Screen.Height
	images := s.ctx.images()

	screen.Fill(color.RGBA{R: 12, G: 18, B: 36, A: 255})
	if images != nil {
		if bg := images.Image(types.ImageMenu); bg != nil {
			b := bg.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
			screen.DrawImage(bg, op)
		}
	}

	drawCenteredText(screen, s.titleFace, "THUNDER WINGS", w/2, h*0.28, titleColor)
	s.menu.Draw(screen, s.itemFace)
	if msg := s.Message(); msg != "" {
		drawCenteredText(screen, s.itemFace, msg, w/2, h*0.9, messageColor)
	}
}
