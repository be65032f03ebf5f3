package systems

import (
	"math"

	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/entities"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
)

// HitTarget 敌方追踪弹的目标点
type HitTarget struct {
	Position utils.Vec2
	Valid    bool
}

// steerFunc 子弹变体的转向/加速逻辑，在位移之前调用
type steerFunc func(s *BulletSystem, b *components.BulletComponent, pos utils.Vec2, target HitTarget, dt float64)

// BulletSystem 推进和清理子弹
type BulletSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.BalanceConfig
	sound         SoundPlayer
	steer         map[types.BulletVariant]steerFunc
}

// NewBulletSystem 创建子弹系统
func NewBulletSystem(em *ecs.EntityManager, cfg *config.BalanceConfig, sound SoundPlayer) *BulletSystem {
	if sound == nil {
		sound = NopSound{}
	}
	return &BulletSystem{
		entityManager: em,
		cfg:           cfg,
		sound:         sound,
		steer: map[types.BulletVariant]steerFunc{
			types.BulletCannon:  steerCannon,
			types.BulletMissile: steerMissile,
			types.BulletRocket:  steerRocket,
		},
	}
}

// Update 推进所有子弹并清理失效子弹
// 爆炸中的子弹保留到爆炸计时结束
func (s *BulletSystem) Update(deltaTime float64, target HitTarget) {
	ids := ecs.GetEntitiesWith2[*components.BulletComponent, *components.PositionComponent](s.entityManager)
	for _, id := range ids {
		b, _ := ecs.GetComponent[*components.BulletComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if b.Exploding {
			if b.ExplodeTimer.HasElapsed(s.cfg.Bullets.ExplodeDuration) {
				b.Exploding = false
				s.entityManager.DestroyEntity(id)
			}
			continue
		}
		if !b.Available {
			s.entityManager.DestroyEntity(id)
			continue
		}
		s.Advance(b, pos, target, deltaTime)
	}
}

// Advance 推进单颗子弹：先转向/加速，再按 direction × speed × dt 位移，最后做出界检查
func (s *BulletSystem) Advance(b *components.BulletComponent, pos *components.PositionComponent, target HitTarget, deltaTime float64) {
	if !b.Available {
		return
	}
	if steer, ok := s.steer[b.Variant]; ok {
		steer(s, b, pos.Vec(), target, deltaTime)
	}

	pos.X += b.Direction.X * b.Speed * deltaTime
	pos.Y += b.Direction.Y * b.Speed * deltaTime

	screen := s.cfg.Screen
	if pos.X < 0 || pos.X > screen.Width || pos.Y < 0 || pos.Y > screen.Height {
		b.Available = false
	}
}

// Explode 子弹命中玩家
// 追踪弹进入爆炸状态并播放音效，普通炮弹直接失效
func (s *BulletSystem) Explode(b *components.BulletComponent) {
	if b.Variant.IsHoming() {
		s.sound.PlaySound(types.SoundExplode)
		b.Exploding = true
		b.ExplodeTimer.Restart()
	}
	b.Available = false
}

// ExplodeSoundOnly 子弹命中敌机：追踪弹只播放爆炸音效
func (s *BulletSystem) ExplodeSoundOnly(b *components.BulletComponent) {
	if b.Variant.IsHoming() {
		s.sound.PlaySound(types.SoundExplode)
	}
}

// Flash 返回当前需要绘制的全屏闪光（爆炸开始后的前一段时间）
// 返回：
//   - variant: 触发闪光的子弹变体（导弹白色，火箭红色）
//   - ok: 是否存在闪光
func (s *BulletSystem) Flash() (variant types.BulletVariant, ok bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.BulletComponent](s.entityManager) {
		b, _ := ecs.GetComponent[*components.BulletComponent](s.entityManager, id)
		if b.Exploding && !b.ExplodeTimer.HasElapsed(s.cfg.Bullets.FlashDuration) {
			return b.Variant, true
		}
	}
	return 0, false
}

func steerCannon(*BulletSystem, *components.BulletComponent, utils.Vec2, HitTarget, float64) {}

// steerMissile 追踪期间缓慢加速并逐渐增强追踪，超过追踪时长后改为巡航加速
func steerMissile(s *BulletSystem, b *components.BulletComponent, pos utils.Vec2, target HitTarget, dt float64) {
	mc := s.cfg.Bullets.Missile
	if b.FromPlayer {
		b.Tracking = 0
	}
	if b.Tracking > 0 {
		b.Speed += dt * mc.TrackingAccel
		b.Tracking += dt * mc.TrackingGrowth
		turnTowards(b, pos, target, dt)
		if b.Age.HasElapsed(mc.TrackingDuration) {
			b.Tracking = 0
		}
	} else {
		b.Speed += dt * mc.CruiseAccel
	}
}

// steerRocket 短时强追踪，伤害比例在发射后阶跃到稳定值，全程加速
func steerRocket(s *BulletSystem, b *components.BulletComponent, pos utils.Vec2, target HitTarget, dt float64) {
	rc := s.cfg.Bullets.Rocket
	if b.FromPlayer || b.Age.HasElapsed(rc.TrackingDuration) {
		b.Tracking = 0
	}
	if b.Age.HasElapsed(rc.DamageRateDelay) {
		b.DamageRate = rc.DamageRate
	}
	if b.Tracking > 0 {
		turnTowards(b, pos, target, dt)
	}
	b.Speed += dt * rc.Accel
}

// turnTowards 按 tracking × π × dt 的最大转角朝目标转向
func turnTowards(b *components.BulletComponent, pos utils.Vec2, target HitTarget, dt float64) {
	if !target.Valid {
		return
	}
	want := target.Position.Sub(pos)
	if want.Length() == 0 {
		return
	}
	b.Direction = utils.TurnTowards(b.Direction, want, b.Tracking*math.Pi*dt)
	b.Rotation = entities.BulletRotation(b.Direction)
}
