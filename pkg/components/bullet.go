package components

import (
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
)

// BulletComponent 子弹状态
//
// 状态机：Active（移动、可碰撞）→ Exploding（不可碰撞，仅播放爆炸效果）→ Removed。
// 只有追踪弹命中玩家时才进入 Exploding；普通炮弹命中后直接移除。
type BulletComponent struct {
	Variant   types.BulletVariant
	Archetype types.BulletArchetype

	FromPlayer bool    // 所属阵营：true 为玩家方（包括被魅惑的敌机）
	Damage     float64 // 固定伤害
	DamageRate float64 // 按目标当前生命值比例计算的伤害
	Charming   bool    // 命中时魅惑目标而不是造成伤害

	Direction utils.Vec2 // 单位方向向量
	Speed     float64
	Tracking  float64 // 追踪强度，0 表示不追踪
	Rotation  float64 // 贴图朝向（角度，0 表示朝上）

	Age utils.Timer // 发射后经过的时间

	Available    bool
	Exploding    bool
	ExplodeTimer utils.Timer
}

// Collidable 是否仍参与碰撞
func (b *BulletComponent) Collidable() bool {
	return b.Available && !b.Exploding
}
