package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ImageSource 按资源ID查找贴图（由 game.ResourceManager 实现）
// 找不到的贴图返回 nil，渲染时跳过
type ImageSource interface {
	Image(imageID string) *ebiten.Image
}

// HUD 颜色
var (
	hudTextColor     = color.RGBA{R: 255, G: 242, B: 0, A: 255}
	hudStrokeColor   = color.RGBA{A: 255}
	giftBarColor     = color.RGBA{R: 80, G: 200, B: 255, A: 220}
	giftBarBackColor = color.RGBA{R: 40, G: 40, B: 40, A: 160}
	missileFlash     = color.RGBA{R: 255, G: 255, B: 255, A: 110}
	rocketFlash      = color.RGBA{R: 255, G: 40, B: 20, A: 110}
)

// HUD 布局
const (
	hudMarginX     = 20.0
	hudMarginY     = 16.0
	hudLineHeight  = 28.0
	giftBarWidth   = 160.0
	giftBarHeight  = 6.0
	giftIconSize   = 40.0
	giftRowSpacing = 56.0
)

// RenderSystem 绘制一局战斗
//
// 绘制顺序：背景 → 子弹 → 敌机 → 玩家（含护盾） → 爆炸闪光 → HUD。
// 渲染只读取实体状态，不修改任何模拟数据。
type RenderSystem struct {
	battle *Battle
	images ImageSource
	face   *text.GoTextFace // nil 时使用调试字体
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(battle *Battle, images ImageSource, face *text.GoTextFace) *RenderSystem {
	return &RenderSystem{battle: battle, images: images, face: face}
}

// Draw 绘制整帧
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	s.drawBackground(screen)
	s.drawBullets(screen)
	s.drawEnemies(screen)
	s.drawPlayer(screen)
	s.drawFlash(screen)
	s.DrawHUD(screen)
}

func (s *RenderSystem) image(id string) *ebiten.Image {
	if s.images == nil {
		return nil
	}
	return s.images.Image(id)
}

func (s *RenderSystem) drawBackground(screen *ebiten.Image) {
	bg := s.image(types.ImageBackground)
	if bg == nil {
		screen.Fill(color.RGBA{R: 12, G: 18, B: 36, A: 255})
		return
	}
	screenCfg := s.battle.Balance().Screen
	b := bg.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(screenCfg.Width/float64(b.Dx()), screenCfg.Height/float64(b.Dy()))
	screen.DrawImage(bg, op)
}

// drawBullets 普通炮弹以中心为锚点；追踪弹以尾部中点为锚点并按朝向旋转
func (s *RenderSystem) drawBullets(screen *ebiten.Image) {
	em := s.battle.EntityManager()
	for _, id := range ecs.GetEntitiesWith2[*components.BulletComponent, *components.PositionComponent](em) {
		b, _ := ecs.GetComponent[*components.BulletComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		if b.Exploding {
			explodeID := types.ImageExplode
			if b.Variant == types.BulletRocket {
				explodeID = types.ImageExplodeRocket
			}
			if img := s.image(explodeID); img != nil {
				drawCentered(screen, img, pos.X, pos.Y)
			}
			continue
		}
		if !b.Available {
			continue
		}

		img := s.image(b.Archetype.ImageID())
		if img == nil {
			continue
		}
		if !b.Variant.IsHoming() {
			drawCentered(screen, img, pos.X, pos.Y)
			continue
		}
		bounds := img.Bounds()
		w, h := float64(bounds.Dx()), float64(bounds.Dy())
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-w/2, -h)
		op.GeoM.Rotate(b.Rotation * math.Pi / 180)
		op.GeoM.Translate(pos.X, pos.Y)
		screen.DrawImage(img, op)
	}
}

// drawEnemies 敌机以左上角为锚点
// 被魅惑的敌机旋转 180° 并叠加青色
func (s *RenderSystem) drawEnemies(screen *ebiten.Image) {
	em := s.battle.EntityManager()
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](em) {
		e, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		if !e.Available {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		imageID := types.EnemyImage(e.Level)
		switch {
		case e.Dying:
			imageID = types.EnemyDownFrame(e.Level, e.DownFrameIdx)
		case e.Hit:
			imageID = types.EnemyHitImage(e.Level)
		}
		img := s.image(imageID)
		if img == nil {
			continue
		}

		bounds := img.Bounds()
		w, h := float64(bounds.Dx()), float64(bounds.Dy())
		op := &ebiten.DrawImageOptions{}
		if e.Charmed {
			op.GeoM.Translate(-w/2, -h/2)
			op.GeoM.Rotate(math.Pi)
			op.GeoM.Translate(w/2, h/2)
			op.ColorScale.Scale(0.4, 1, 1, 1)
		}
		op.GeoM.Translate(pos.X, pos.Y)
		screen.DrawImage(img, op)
	}
}

// drawPlayer 玩家以机身中心为锚点，护盾叠加在机身之上
func (s *RenderSystem) drawPlayer(screen *ebiten.Image) {
	p := s.battle.Player()
	if p == nil || !p.Available {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.battle.EntityManager(), s.battle.PlayerID())
	if !ok {
		return
	}

	imageID := types.PlayerImages[p.AnimFrame%len(types.PlayerImages)]
	if p.Dying {
		imageID = types.PlayerDeathFrame(max(1, p.DeathFrameIdx))
	}
	if img := s.image(imageID); img != nil {
		drawCentered(screen, img, pos.X, pos.Y)
	}

	if p.HasShield && !p.Dying {
		if shield := s.image(types.ImagePlayerShield); shield != nil {
			drawCentered(screen, shield, pos.X, pos.Y)
		}
	}
}

// drawFlash 追踪弹爆炸后的全屏闪光
func (s *RenderSystem) drawFlash(screen *ebiten.Image) {
	variant, ok := s.battle.Bullets.Flash()
	if !ok {
		return
	}
	clr := missileFlash
	if variant == types.BulletRocket {
		clr = rocketFlash
	}
	screenCfg := s.battle.Balance().Screen
	vector.DrawFilledRect(screen, 0, 0, float32(screenCfg.Width), float32(screenCfg.Height), clr, false)
}

// HUDLines 左上角状态栏文本
func (s *RenderSystem) HUDLines() []string {
	state := s.battle.State()
	health := 0.0
	if p := s.battle.Player(); p != nil {
		health = p.Health
	}

	lines := []string{
		fmt.Sprintf("Time: %.1fs", state.TimeElapsed),
		fmt.Sprintf("Health: %.0f", health),
		fmt.Sprintf("Killed: %d", state.Killed),
	}
	if bossHealth, percent, ok := s.battle.BossHealth(); ok {
		lines = append(lines, fmt.Sprintf("Boss: %.0f (%.1f%%)", bossHealth, percent))
	}
	if s.battle.ShowingInstructions() {
		lines = append(lines, "Arrow keys / WASD: move   Esc: pause")
	}
	return lines
}

// DrawHUD 绘制状态栏和生效道具列表（图标、剩余时间、进度条）
func (s *RenderSystem) DrawHUD(screen *ebiten.Image) {
	y := hudMarginY
	for _, line := range s.HUDLines() {
		s.drawText(screen, line, hudMarginX, y)
		y += hudLineHeight
	}

	screenCfg := s.battle.Balance().Screen
	x := screenCfg.Width - hudMarginX - giftBarWidth
	y = hudMarginY
	for _, g := range s.battle.Gifts.Active() {
		if icon := s.image(string(g.Kind)); icon != nil && !(g.Disappearing && blink(g.RemainingTime)) {
			b := icon.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(giftIconSize/float64(b.Dx()), giftIconSize/float64(b.Dy()))
			op.GeoM.Translate(x-giftIconSize-8, y)
			screen.DrawImage(icon, op)
		}
		s.drawText(screen, fmt.Sprintf("%s %.1fs", g.Kind, math.Max(0, g.RemainingTime)), x, y)

		barY := float32(y + giftIconSize - giftBarHeight)
		vector.DrawFilledRect(screen, float32(x), barY, giftBarWidth, giftBarHeight, giftBarBackColor, false)
		vector.DrawFilledRect(screen, float32(x), barY, float32(giftBarWidth*g.Progress()), giftBarHeight, giftBarColor, false)
		y += giftRowSpacing
	}
}

// drawText 描边文本；没有字体时退回调试字体
func (s *RenderSystem) drawText(screen *ebiten.Image, str string, x, y float64) {
	if s.face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(x), int(y))
		return
	}
	for _, offset := range []struct{ dx, dy float64 }{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+offset.dx, y+offset.dy)
		op.ColorScale.ScaleWithColor(hudStrokeColor)
		text.Draw(screen, str, s.face, op)
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(hudTextColor)
	text.Draw(screen, str, s.face, op)
}

// blink 消失阶段的图标闪烁（每 0.25 秒切换一次）
func blink(remaining float64) bool {
	return int(math.Floor(remaining*4))%2 == 0
}

// drawCentered 以 (cx, cy) 为中心绘制贴图
func drawCentered(screen, img *ebiten.Image, cx, cy float64) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Translate(cx, cy)
	screen.DrawImage(img, op)
}
