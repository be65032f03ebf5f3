package main

import (
	"fmt"
	"strings"

	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/systems"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/gdamore/tcell/v2"
)

var (
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePlayer    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleShield    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleEnemy     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCharmed   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleHit       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleDying     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOwnShot   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEnemyShot = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleExplosion = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Bold(true)
	styleOverlay   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
)

// archetypeGlyphs 子弹原型对应的字符
var archetypeGlyphs = map[types.BulletArchetype]rune{
	types.ArchetypePlayerBullet:      '|',
	types.ArchetypePlayerSuperBullet: ':',
	types.ArchetypeEnemyBullet:       '.',
	types.ArchetypeBossBullet:        'o',
	types.ArchetypeEnemyMissile:      '!',
	types.ArchetypeEnemyRocket:       '^',
}

// enemyGlyphs 敌机等级对应的字符串（中心对齐）
var enemyGlyphs = map[int]string{
	1: "v",
	2: "W",
	3: "<M>",
}

// surface 把一局战斗画到终端上
//
// 第一行是状态栏，最后一行是道具栏，中间按比例缩放逻辑屏幕。
type surface struct {
	screen tcell.Screen
	battle *systems.Battle
	hud    *systems.RenderSystem
}

func newSurface(screen tcell.Screen, battle *systems.Battle) *surface {
	return &surface{
		screen: screen,
		battle: battle,
		hud:    systems.NewRenderSystem(battle, nil, nil),
	}
}

// project 逻辑坐标到终端单元格
func (s *surface) project(x, y float64) (int, int) {
	cols, rows := s.screen.Size()
	field := rows - 2
	screenCfg := s.battle.Balance().Screen
	cx := int(x * float64(cols) / screenCfg.Width)
	cy := 1 + int(y*float64(field)/screenCfg.Height)
	return min(max(cx, 0), cols-1), min(max(cy, 1), max(field, 1))
}

// draw 绘制整帧；overlay 非空时居中显示在画面上
func (s *surface) draw(overlay string) {
	s.screen.Clear()
	s.drawBullets()
	s.drawEnemies()
	s.drawPlayer()
	s.drawHUD()
	if overlay != "" {
		cols, rows := s.screen.Size()
		s.text((cols-len(overlay))/2, rows/2, overlay, styleOverlay)
	}
	s.screen.Show()
}

func (s *surface) drawBullets() {
	em := s.battle.EntityManager()
	for _, id := range ecs.GetEntitiesWith2[*components.BulletComponent, *components.PositionComponent](em) {
		b, _ := ecs.GetComponent[*components.BulletComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		x, y := s.project(pos.X, pos.Y)
		switch {
		case b.Exploding:
			s.screen.SetContent(x, y, '#', nil, styleExplosion)
		case b.Available:
			style := styleEnemyShot
			if b.FromPlayer {
				style = styleOwnShot
			}
			s.screen.SetContent(x, y, archetypeGlyphs[b.Archetype], nil, style)
		}
	}
}

// drawEnemies 敌机位置是左上角，按碰撞尺寸换算到中心
func (s *surface) drawEnemies() {
	em := s.battle.EntityManager()
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](em) {
		e, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		if !e.Available {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		cx, cy := pos.X, pos.Y
		if lc := s.battle.Balance().Enemies.Level(e.Level); lc != nil {
			cx += lc.Size.Width / 2
			cy += lc.Size.Height / 2
		}

		glyph := enemyGlyphs[e.Level]
		style := styleEnemy
		switch {
		case e.Dying:
			glyph = strings.Repeat("*", len(glyph))
			style = styleDying
		case e.Hit:
			style = styleHit
		case e.Charmed:
			style = styleCharmed
		}
		x, y := s.project(cx, cy)
		s.text(x-len(glyph)/2, y, glyph, style)
	}
}

func (s *surface) drawPlayer() {
	p := s.battle.Player()
	if p == nil || !p.Available {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.battle.EntityManager(), s.battle.PlayerID())
	if !ok {
		return
	}
	x, y := s.project(pos.X, pos.Y)
	if p.Dying {
		s.screen.SetContent(x, y, 'x', nil, styleDying)
		return
	}
	s.screen.SetContent(x, y, 'A', nil, stylePlayer)
	if p.HasShield {
		s.screen.SetContent(x-1, y, '(', nil, styleShield)
		s.screen.SetContent(x+1, y, ')', nil, styleShield)
	}
}

// drawHUD 状态栏复用图形前端的文本；道具栏显示剩余时间
func (s *surface) drawHUD() {
	_, rows := s.screen.Size()
	s.text(0, 0, strings.Join(s.hud.HUDLines(), "  "), styleHUD)

	var gifts []string
	for _, g := range s.battle.Gifts.Active() {
		gifts = append(gifts, fmt.Sprintf("[%s %.1fs]", g.Kind, max(0, g.RemainingTime)))
	}
	s.text(0, rows-1, strings.Join(gifts, " "), styleHUD)
}

func (s *surface) text(x, y int, str string, style tcell.Style) {
	for i, r := range []rune(str) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}
