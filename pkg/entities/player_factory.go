package entities

import (
	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/utils"
)

// NewPlayer 在出生点创建玩家战机，开局生命值为最大值的固定比例
func (f *Factory) NewPlayer() ecs.EntityID {
	pc := f.cfg.Player
	return f.SpawnPlayer(&components.PlayerComponent{
		Health:             pc.MaxHealth * pc.InitialHealthRatio,
		MaxHealth:          pc.MaxHealth,
		Damage:             pc.Damage,
		ShotGap:            pc.ShotGap,
		RecoverHealth:      pc.RecoverHealth,
		Speed:              pc.Speed,
		Available:          true,
		ShotTimer:          f.NewTimer(),
		RecoverTimer:       f.NewTimer(),
		DeathTimer:         f.NewTimer(),
		AnimTimer:          f.NewTimer(),
		FireRateMultiplier: 1,
		DamageMultiplier:   1,
	}, utils.Vec2{X: pc.StartX, Y: pc.StartY})
}

// SpawnPlayer 将玩家状态挂载到新实体上（也用于读档恢复）
// 玩家以机身中心为锚点
func (f *Factory) SpawnPlayer(p *components.PlayerComponent, pos utils.Vec2) ecs.EntityID {
	size := f.cfg.Player.Size
	id := f.em.CreateEntity()
	f.em.AddComponent(id, &components.PositionComponent{X: pos.X, Y: pos.Y})
	f.em.AddComponent(id, &components.CollisionComponent{Width: size.Width, Height: size.Height})
	f.em.AddComponent(id, p)
	return id
}
