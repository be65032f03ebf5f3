package scenes

import (
	"image/color"

	"github.com/decker502/thunderwings/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 菜单项
const (
	ItemStart  = "Start"
	ItemLoad   = "Load"
	ItemGuide  = "Guide"
	ItemAbout  = "About"
	ItemExit   = "Exit"
	ItemResume = "Resume"
	ItemSave   = "Save Progress"
)

var (
	menuTextColor     = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	menuSelectedColor = color.RGBA{R: 255, G: 242, B: 0, A: 255}
	menuRowColor      = color.RGBA{R: 20, G: 30, B: 60, A: 180}
)

// Menu 竖排的文字菜单
// 方向键/WASD 移动选中项，回车或空格确认，鼠标点击直接确认
type Menu struct {
	Items    []string
	Selected int

	CenterX, Top float64 // 第一行中心点
	RowWidth     float64
	RowHeight    float64
	Spacing      float64 // 行间距（含行高）
}

// NewMenu 创建以 (centerX, top) 为首行中心的菜单
func NewMenu(centerX, top float64, items ...string) *Menu {
	return &Menu{
		Items:     items,
		CenterX:   centerX,
		Top:       top,
		RowWidth:  320,
		RowHeight: 48,
		Spacing:   64,
	}
}

// Move 移动选中项，首尾循环
func (m *Menu) Move(delta int) {
	n := len(m.Items)
	if n == 0 {
		return
	}
	m.Selected = ((m.Selected+delta)%n + n) % n
}

// Current 当前选中项
func (m *Menu) Current() string {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return ""
	}
	return m.Items[m.Selected]
}

// RowRect 第 i 行的点击区域
func (m *Menu) RowRect(i int) utils.Rect {
	return utils.CenteredRect(m.CenterX, m.Top+float64(i)*m.Spacing, m.RowWidth, m.RowHeight)
}

// ItemAt 返回坐标所在的菜单项下标，不在任何一行上时返回 -1
func (m *Menu) ItemAt(x, y float64) int {
	for i := range m.Items {
		if m.RowRect(i).Contains(x, y) {
			return i
		}
	}
	return -1
}

// HandleInput 处理本帧输入，返回被确认的菜单项（没有时为空）
func (m *Menu) HandleInput() string {
	if utils.IsAnyKeyJustPressed(ebiten.KeyArrowUp, ebiten.KeyW) {
		m.Move(-1)
	}
	if utils.IsAnyKeyJustPressed(ebiten.KeyArrowDown, ebiten.KeyS) {
		m.Move(1)
	}
	if x, y := utils.GetPointerPosition(); m.ItemAt(float64(x), float64(y)) >= 0 {
		m.Selected = m.ItemAt(float64(x), float64(y))
	}
	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		if i := m.ItemAt(float64(x), float64(y)); i >= 0 {
			m.Selected = i
			return m.Items[i]
		}
	}
	if utils.IsAnyKeyJustPressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace) {
		return m.Current()
	}
	return ""
}

// Draw 绘制菜单
func (m *Menu) Draw(screen *ebiten.Image, face *text.GoTextFace) {
	for i, item := range m.Items {
		r := m.RowRect(i)
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), menuRowColor, false)
		clr := menuTextColor
		if i == m.Selected {
			clr = menuSelectedColor
			vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, clr, false)
		}
		drawCenteredText(screen, face, item, r.Center().X, r.Center().Y, clr)
	}
}

// drawCenteredText 以 (cx, cy) 为中心绘制文本；没有字体时退回调试字体
func drawCenteredText(screen *ebiten.Image, face *text.GoTextFace, str string, cx, cy float64, clr color.Color) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(cx)-len(str)*3, int(cy)-8)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}
