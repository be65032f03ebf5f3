package components

import "github.com/decker502/thunderwings/pkg/utils"

// PlayerComponent 玩家战机状态
type PlayerComponent struct {
	Health        float64
	MaxHealth     float64
	Damage        float64
	ShotGap       float64
	RecoverHealth float64
	Speed         float64

	Available     bool
	Dying         bool
	DeathFrameIdx int

	ShotTimer    utils.Timer
	RecoverTimer utils.Timer
	DeathTimer   utils.Timer
	AnimTimer    utils.Timer
	AnimFrame    int
	SuperShots   int // 散射次数，用于隔次播放音效

	// 以下为每帧根据生效道具重新计算的汇总值
	Charming           bool
	HasShield          bool
	SpeedIncrease      float64 // 速度加成之和
	FireRateMultiplier float64 // ∏(1 + attackSpeedIncrease)
	DamageMultiplier   float64 // ∏(1 − damageReduction)
}
