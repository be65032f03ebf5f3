package components

import "github.com/decker502/thunderwings/pkg/utils"

// PositionComponent 实体的屏幕坐标
// 坐标锚点由各实体类型决定：玩家和普通子弹为中心，追踪弹为尾部中点，敌机为左上角
type PositionComponent struct {
	X, Y float64
}

// Vec 以向量形式返回坐标
func (p *PositionComponent) Vec() utils.Vec2 {
	return utils.Vec2{X: p.X, Y: p.Y}
}

// CollisionComponent 定义实体的碰撞检测边界框
// 用于子弹与敌机、子弹与玩家之间的碰撞检测
type CollisionComponent struct {
	Width   float64 // 碰撞盒宽度（像素）
	Height  float64 // 碰撞盒高度（像素）
	OffsetX float64 // 碰撞盒中心相对于实体位置的X偏移量（像素），正值向右偏移
	OffsetY float64 // 碰撞盒中心相对于实体位置的Y偏移量（像素），正值向下偏移
}

// Bounds 计算实体当前的碰撞矩形
func (c *CollisionComponent) Bounds(pos *PositionComponent) utils.Rect {
	return utils.CenteredRect(pos.X+c.OffsetX, pos.Y+c.OffsetY, c.Width, c.Height)
}
