package scenes

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 文字页面布局
const (
	infoMarginX       = 50.0
	infoTop           = 8.0
	infoHeaderSize    = 28.0
	infoLineSize      = 24.0
	infoHeaderSpacing = 14.0
	infoLineSpacing   = 10.0
)

var (
	infoHeaderColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	infoLineColor   = color.RGBA{R: 235, G: 235, B: 235, A: 255}
)

// InfoScene 只读的文字页面（玩法说明、关于）
// 以 "--" 开头的行是小节标题；Esc、回车或点击返回主菜单
type InfoScene struct {
	ctx   *Context
	lines []string

	headerFace *text.GoTextFace
	lineFace   *text.GoTextFace
}

// NewGuideScene 玩法说明页，内容由数值表生成
func NewGuideScene(ctx *Context) *InfoScene {
	return newInfoScene(ctx, GuideLines(ctx.Balance))
}

// NewAboutScene 关于页
func NewAboutScene(ctx *Context) *InfoScene {
	return newInfoScene(ctx, AboutLines(config.ReadBuildInfo()))
}

func newInfoScene(ctx *Context, lines []string) *InfoScene {
	s := &InfoScene{ctx: ctx, lines: lines}
	if ctx.State != nil && ctx.State.Resources != nil {
		s.headerFace = ctx.State.Resources.Font(types.FontGame, infoHeaderSize)
		s.lineFace = ctx.State.Resources.Font(types.FontGame, infoLineSize)
	}
	return s
}

// Lines 页面文本
func (s *InfoScene) Lines() []string {
	return s.lines
}

func (s *InfoScene) Update(deltaTime float64) error {
	clicked, _, _ := utils.IsJustTouchedOrClicked()
	if clicked || utils.IsAnyKeyJustPressed(ebiten.KeyEscape, ebiten.KeyEnter, ebiten.KeySpace) {
		s.back()
	}
	return nil
}

func (s *InfoScene) back() {
	s.ctx.Scenes.SwitchTo(SceneMainMenu, NewMainMenuScene(s.ctx))
}

func (s *InfoScene) Draw(screen *ebiten.Image) {
	w, h := s.ctx.Balance.Screen.Width, s.ctx.Balance.Screen.Height
	screen.Fill(color.RGBA{R: 12, G: 18, B: 36, A: 255})
	if images := s.ctx.images(); images != nil {
		if bg := images.Image(types.ImageMenu); bg != nil {
			b := bg.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
			op.ColorScale.Scale(0.35, 0.35, 0.35, 1)
			screen.DrawImage(bg, op)
		}
	}

	y := infoTop
	for _, line := range s.Lines() {
		header := isSectionHeader(line)
		face, clr, size, spacing := s.lineFace, infoLineColor, infoLineSize, infoLineSpacing
		if header {
			face, clr, size, spacing = s.headerFace, infoHeaderColor, infoHeaderSize, infoHeaderSpacing
			y += 4
		}
		if face == nil {
			ebitenutil.DebugPrintAt(screen, line, int(infoMarginX), int(y))
		} else {
			op := &text.DrawOptions{}
			op.GeoM.Translate(infoMarginX, y)
			op.ColorScale.ScaleWithColor(clr)
			text.Draw(screen, line, face, op)
		}
		y += size + spacing
	}
}

func isSectionHeader(line string) bool {
	return strings.HasPrefix(line, "--")
}

// GuideLines 玩法说明：操作方式以及玩家、敌机、道具的关键数值
func GuideLines(b *config.BalanceConfig) []string {
	p := b.Player
	lines := []string{
		"-- CONTROLS --",
		"Move: Arrow Keys / WASD     Pause: P / Esc",
		"Music on/off: M     Fullscreen: F11",
		"",
		"-- PLAYER --",
		fmt.Sprintf("Fire: 2 bullets @ %s dmg every %ss", formatNumber(p.Damage), formatNumber(p.ShotGap)),
		fmt.Sprintf("Heal: +%s HP every %ss", formatNumber(p.RecoverHealth), formatNumber(p.RecoverInterval)),
		fmt.Sprintf("Max HP: %s (start with %.0f%%)", formatNumber(p.MaxHealth), p.InitialHealthRatio*100),
		"",
		"-- ENEMIES --",
	}

	for i := range b.Enemies.Levels {
		lv := &b.Enemies.Levels[i]
		name := "Enemy " + romanLevel(lv.Level)
		if lv.Level >= 3 {
			name = "Boss " + romanLevel(lv.Level)
		}
		line := fmt.Sprintf("%-10s HP %-16s Speed %-9s Dmg %s",
			name, formatRange(lv.Health), formatRange(lv.Speed), formatNumber(lv.Damage))
		if lv.Oscillates() && lv.Level < 3 {
			line += " (sine-wave motion)"
		}
		lines = append(lines, line)

		bonus := "+max HP"
		if lv.KillBonus > 0 {
			bonus = "+" + formatNumber(lv.KillBonus) + " HP"
		}
		lines = append(lines, fmt.Sprintf("%10s Kill bonus: %s", "", bonus))

		if lv.Level >= 3 {
			boss := b.Enemies.Boss
			lines = append(lines,
				fmt.Sprintf("%10s Heal: +%s HP every 1s", "", formatNumber(boss.RecoverRate)),
				fmt.Sprintf("%10s Volley: %d bullets", "", boss.VolleyCount),
				fmt.Sprintf("%10s Missiles: %s dmg each", "", formatNumber(lv.Damage*boss.MissileDamageMul)),
				fmt.Sprintf("%10s Rockets: %s dmg each", "", formatNumber(lv.Damage*boss.RocketDamageMul)),
			)
		}
	}

	lines = append(lines, "",
		fmt.Sprintf("-- GIFTS (every %ss, %.0f%% chance) --", formatNumber(b.Spawn.GiftInterval), b.Spawn.GiftProbability*100))
	for _, kind := range types.AllGiftKinds {
		cfg, ok := b.Gifts.Kinds[kind]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", kind, describeGift(cfg)))
	}

	return append(lines, "", "Press Esc to return to menu")
}

// AboutLines 关于页：版本、构建信息和许可证
func AboutLines(build config.BuildInfo) []string {
	return []string{
		"-- ABOUT --",
		"Thunder Wings " + config.Version,
		"",
		"-- BUILD INFO --",
		"Built on " + config.BuildDate,
		"Build: " + build.Describe(),
		"",
		"-- LEGAL --",
		config.Copyright,
		"Licensed under the " + config.License,
		"",
		"-- ACKNOWLEDGMENTS --",
		"Built with Ebitengine",
		"Terminal frontend built with tcell and beep",
		"",
		"Press Esc to return to menu",
	}
}

func describeGift(cfg config.GiftKindConfig) string {
	var parts []string
	if cfg.AttackSpeedIncrease > 0 {
		parts = append(parts, fmt.Sprintf("+%.0f%% fire rate", cfg.AttackSpeedIncrease*100))
	}
	if cfg.DamageReduction > 0 {
		parts = append(parts, fmt.Sprintf("%.0f%% damage reduction", cfg.DamageReduction*100))
	}
	if cfg.SpeedIncrease > 0 {
		parts = append(parts, fmt.Sprintf("+%.0f%% move speed", cfg.SpeedIncrease*100))
	}
	if cfg.Charming {
		parts = append(parts, "make your enemies fight for you")
	}
	if cfg.LifetimeExtension > 0 {
		parts = append(parts, fmt.Sprintf("lasts %ss longer", formatNumber(cfg.LifetimeExtension)))
	}
	if len(parts) == 0 {
		return "no effect"
	}
	return strings.Join(parts, ", ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRange(r config.Range) string {
	if r.Min == r.Max {
		return formatNumber(r.Min)
	}
	return formatNumber(r.Min) + "-" + formatNumber(r.Max)
}

func romanLevel(level int) string {
	switch level {
	case 1:
		return "I"
	case 2:
		return "II"
	case 3:
		return "III"
	default:
		return strconv.Itoa(level)
	}
}
