package utils

import "math"

// Vec2 二维向量（屏幕坐标，Y 轴向下）
type Vec2 struct {
	X, Y float64
}

// Add 向量加法
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 向量减法
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 数乘
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Length 向量长度
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize 返回单位向量；零向量原样返回
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l > 0 {
		return Vec2{X: v.X / l, Y: v.Y / l}
	}
	return v
}

// VectorToAngle 向量方向角（弧度）
func VectorToAngle(v Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleToVector 方向角对应的单位向量
func AngleToVector(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// NormalizeAngle 将角度规范到 [-π, π]
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// TurnTowards 将方向 dir 朝 target 方向旋转，单次旋转角不超过 maxTurn
// 返回新的单位方向向量
func TurnTowards(dir, target Vec2, maxTurn float64) Vec2 {
	current := VectorToAngle(dir)
	diff := NormalizeAngle(VectorToAngle(target.Normalize()) - current)
	if math.Abs(diff) > maxTurn {
		if diff > 0 {
			diff = maxTurn
		} else {
			diff = -maxTurn
		}
	}
	return AngleToVector(current + diff)
}

// Rect 轴对齐矩形（左上角 + 宽高）
type Rect struct {
	X, Y, W, H float64
}

// CenteredRect 以 (cx, cy) 为中心构造矩形
func CenteredRect(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Intersects 检查两个矩形是否重叠（边界相接不算重叠）
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains 检查点是否位于矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Center 矩形中心
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Clamp 将数值限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
