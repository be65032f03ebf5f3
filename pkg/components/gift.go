package components

import (
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
)

// GiftComponent 生效中的增益道具
// 效果数值在创建时确定，之后只读；玩家的汇总值每帧从这些数值重新计算
type GiftComponent struct {
	Kind types.GiftKind

	DamageReduction     float64
	AttackSpeedIncrease float64
	SpeedIncrease       float64
	Charming            bool

	RemainingTime float64
	MaxTime       float64

	Disappearing        bool
	DisappearTimer      utils.Timer
	FirstWarningPlayed  bool
	SecondWarningPlayed bool

	Available bool
}

// Progress 剩余时间比例（用于进度条）
func (g *GiftComponent) Progress() float64 {
	if g.MaxTime <= 0 {
		return 0
	}
	return utils.Clamp(g.RemainingTime/g.MaxTime, 0, 1)
}
