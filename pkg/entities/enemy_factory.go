package entities

import (
	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/utils"
)

// NewEnemy 按等级数值范围创建敌机
//
// 参数：
//   - level: 1（快速/脆弱）、2（摆动）、3（Boss）
//   - x, y: 左上角坐标；摆动中心取 x
//
// 返回：
//   - ecs.EntityID: 敌机实体ID
//   - error: 等级不存在时返回错误
func (f *Factory) NewEnemy(level int, x, y float64) (ecs.EntityID, error) {
	lc, err := f.enemyLevel(level)
	if err != nil {
		return 0, err
	}

	health := utils.GenerateInRange(f.rng, lc.Health.Min, lc.Health.Max)
	speed := utils.GenerateInRange(f.rng, lc.Speed.Min, lc.Speed.Max)
	bulletSpeed := speed * lc.BulletSpeedFactor
	if lc.BulletSpeedFactor <= 0 {
		bulletSpeed = utils.GenerateInRange(f.rng, lc.BulletSpeed.Min, lc.BulletSpeed.Max)
	}
	shotGap := utils.GenerateInRange(f.rng, lc.ShotGap.Min, lc.ShotGap.Max)
	killBonus := lc.KillBonus
	if killBonus <= 0 {
		killBonus = health
	}

	enemy := &components.EnemyComponent{
		Level:       level,
		Health:      health,
		MaxHealth:   health,
		KillBonus:   killBonus,
		Speed:       speed,
		BulletSpeed: bulletSpeed,
		ShotGap:     shotGap,
		Damage:      lc.Damage,
		ShotTimer:   f.NewTimer(),
		AnimTimer:   f.NewTimer(),
		Available:   true,
	}
	if enemy.IsBoss() {
		enemy.RecoverRate = f.cfg.Enemies.Boss.RecoverRate
	}

	var osc *components.OscillationComponent
	if lc.Oscillates() {
		osc = &components.OscillationComponent{
			Amplitude: utils.GenerateInRange(f.rng, lc.Amplitude.Min, lc.Amplitude.Max),
			Frequency: utils.GenerateInRange(f.rng, lc.Frequency.Min, lc.Frequency.Max),
			Center:    x,
			Phase:     f.NewTimer(),
		}
	}

	return f.SpawnEnemy(enemy, utils.Vec2{X: x, Y: y}, osc)
}

// SpawnEnemy 将敌机状态挂载到新实体上（也用于读档恢复）
// 敌机以左上角为锚点
func (f *Factory) SpawnEnemy(e *components.EnemyComponent, pos utils.Vec2, osc *components.OscillationComponent) (ecs.EntityID, error) {
	lc, err := f.enemyLevel(e.Level)
	if err != nil {
		return 0, err
	}

	id := f.em.CreateEntity()
	f.em.AddComponent(id, &components.PositionComponent{X: pos.X, Y: pos.Y})
	f.em.AddComponent(id, &components.CollisionComponent{
		Width:   lc.Size.Width,
		Height:  lc.Size.Height,
		OffsetX: lc.Size.Width / 2,
		OffsetY: lc.Size.Height / 2,
	})
	f.em.AddComponent(id, e)
	if osc != nil {
		f.em.AddComponent(id, osc)
	}
	return id, nil
}
