package components

import "github.com/decker502/thunderwings/pkg/utils"

// EnemyComponent 敌机状态
//
// 生命值降到 0 后进入 Dying：播放一次死亡音效并逐帧播放坠毁动画，动画帧耗尽后变为不可用。
// 等级 1/2 可被魅惑，魅惑后为玩家作战，击杀奖励在魅惑确认时立即结算。
type EnemyComponent struct {
	Level       int
	Health      float64
	MaxHealth   float64
	KillBonus   float64 // 击杀后玩家回复的生命值
	Speed       float64 // 纵向速度，负值表示向上
	BulletSpeed float64
	ShotGap     float64
	Damage      float64
	RecoverRate float64 // Boss 每秒回复量

	Charmed    bool
	BonusTaken bool // 击杀奖励是否已结算，整个生命周期只会由 false 变为 true 一次

	Dying        bool
	DownFrameIdx int
	Hit          bool // 本帧被击中，用于受击贴图

	ShotTimer    utils.Timer
	AnimTimer    utils.Timer
	ShootCounter int // Boss 齐射节奏计数器

	Available bool
}

// IsBoss 是否为 Boss
func (e *EnemyComponent) IsBoss() bool {
	return e.Level >= 3
}

// Alive 可用且生命值大于 0
func (e *EnemyComponent) Alive() bool {
	return e.Available && e.Health > 0
}

// OscillationComponent 横向正弦摆动
// x = Center + sin(Phase × Frequency) × Amplitude
type OscillationComponent struct {
	Amplitude float64
	Frequency float64
	Center    float64
	Phase     utils.Timer
}
