package entities

import (
	"math"

	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
)

// BulletRotation 根据飞行方向计算贴图朝向（角度，贴图默认朝上）
func BulletRotation(dir utils.Vec2) float64 {
	return utils.VectorToAngle(dir)*180/math.Pi + 90
}

// NewCannon 创建直线炮弹
//
// 参数：
//   - pos: 出生点（炮弹中心）
//   - dir: 飞行方向，会被归一化
//   - archetype: 外观原型
//   - fromPlayer: 是否属于玩家方
//   - speed, damage: 速度与伤害
//   - charming: 命中时是否魅惑目标
func (f *Factory) NewCannon(pos, dir utils.Vec2, archetype types.BulletArchetype,
	fromPlayer bool, speed, damage float64, charming bool) ecs.EntityID {
	return f.SpawnBullet(&components.BulletComponent{
		Variant:    types.BulletCannon,
		Archetype:  archetype,
		FromPlayer: fromPlayer,
		Damage:     damage,
		Charming:   charming,
		Direction:  dir.Normalize(),
		Speed:      speed,
		Age:        f.NewTimer(),
		Available:  true,
	}, pos)
}

// NewMissile 创建追踪导弹
// 玩家方导弹不追踪，tracking 强制为 0
func (f *Factory) NewMissile(pos, dir utils.Vec2, archetype types.BulletArchetype,
	fromPlayer bool, speed, damage, tracking float64) ecs.EntityID {
	if fromPlayer {
		tracking = 0
	}
	dir = dir.Normalize()
	return f.SpawnBullet(&components.BulletComponent{
		Variant:    types.BulletMissile,
		Archetype:  archetype,
		FromPlayer: fromPlayer,
		Damage:     damage,
		Direction:  dir,
		Speed:      speed,
		Tracking:   tracking,
		Rotation:   BulletRotation(dir),
		Age:        f.NewTimer(),
		Available:  true,
	}, pos)
}

// NewRocket 创建火箭
// 伤害比例从初始值开始，发射后短时间内降到稳定值
func (f *Factory) NewRocket(pos, dir utils.Vec2, archetype types.BulletArchetype,
	fromPlayer bool, speed, damage float64) ecs.EntityID {
	rc := f.cfg.Bullets.Rocket
	tracking := rc.Tracking
	if fromPlayer {
		tracking = 0
	}
	dir = dir.Normalize()
	return f.SpawnBullet(&components.BulletComponent{
		Variant:    types.BulletRocket,
		Archetype:  archetype,
		FromPlayer: fromPlayer,
		Damage:     damage,
		DamageRate: rc.DamageRateInitial,
		Direction:  dir,
		Speed:      speed,
		Tracking:   tracking,
		Rotation:   BulletRotation(dir),
		Age:        f.NewTimer(),
		Available:  true,
	}, pos)
}

// SpawnBullet 将子弹状态挂载到新实体上（也用于读档恢复）
// 追踪弹以尾部中点为锚点，碰撞盒向上偏移半个高度
func (f *Factory) SpawnBullet(b *components.BulletComponent, pos utils.Vec2) ecs.EntityID {
	b.Archetype = types.ClampArchetype(int(b.Archetype))
	b.ExplodeTimer = f.NewTimer()
	size := f.cfg.Bullets.SizeOf(b.Archetype)

	id := f.em.CreateEntity()
	f.em.AddComponent(id, &components.PositionComponent{X: pos.X, Y: pos.Y})

	col := &components.CollisionComponent{Width: size.Width, Height: size.Height}
	if b.Variant.IsHoming() {
		col.OffsetY = -size.Height / 2
	}
	f.em.AddComponent(id, col)
	f.em.AddComponent(id, b)
	return id
}
