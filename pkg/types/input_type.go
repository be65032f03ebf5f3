package types

// Key 玩家移动方向键
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
)

// HitTargetPolicy 敌方追踪弹的目标选择策略
type HitTargetPolicy string

const (
	// HitTargetStrongestCharmed 优先追踪生命值最高的被魅惑敌机，没有时追踪玩家
	HitTargetStrongestCharmed HitTargetPolicy = "strongest_charmed"
	// HitTargetPlayer 始终追踪玩家
	HitTargetPlayer HitTargetPolicy = "player"
)

// Valid 检查策略取值
func (p HitTargetPolicy) Valid() bool {
	return p == HitTargetStrongestCharmed || p == HitTargetPlayer
}
