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

// 玩家飞行动画的换帧间隔（秒）
const playerAnimInterval = 0.16

// PlayerSystem 玩家移动、射击、受伤、回复和坠毁动画
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	factory       *entities.Factory
	cfg           *config.BalanceConfig
	bullets       *BulletSystem
	sound         SoundPlayer
	keys          Keyboard
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(factory *entities.Factory, bullets *BulletSystem, sound SoundPlayer, keys Keyboard) *PlayerSystem {
	if sound == nil {
		sound = NopSound{}
	}
	if keys == nil {
		keys = NopKeyboard{}
	}
	return &PlayerSystem{
		entityManager: factory.EntityManager(),
		factory:       factory,
		cfg:           factory.Balance(),
		bullets:       bullets,
		sound:         sound,
		keys:          keys,
	}
}

// Update 推进玩家一帧
// 坠毁中只推进坠毁动画；否则先根据生效道具重算汇总值，再移动、换帧、回复并检查死亡
func (s *PlayerSystem) Update(id ecs.EntityID, deltaTime float64) {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	if !ok {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	pc := s.cfg.Player

	if p.Dying {
		p.Health = 0
		if p.DeathTimer.HasElapsed(pc.DeathFrameInterval) {
			if p.DeathFrameIdx < pc.DeathFrames {
				p.DeathFrameIdx++
				p.DeathTimer.Restart()
			} else {
				p.Available = false
				p.Dying = false
				s.sound.PlaySound(types.SoundPlayerDown)
			}
		}
		return
	}
	if !p.Available {
		p.Health = 0
		return
	}

	s.RecomputeAggregates(p)
	s.move(p, pos, deltaTime)

	if p.AnimTimer.HasElapsed(playerAnimInterval) {
		p.AnimFrame = (p.AnimFrame + 1) % len(types.PlayerImages)
		p.AnimTimer.Restart()
	}

	if p.RecoverTimer.HasElapsed(pc.RecoverInterval) {
		p.Health = math.Min(p.MaxHealth, p.Health+p.RecoverHealth)
		p.RecoverTimer.Restart()
	}

	if p.Health <= 0 {
		p.Health = 0
		p.Dying = true
		p.DeathFrameIdx = 0
		p.DeathTimer.Restart()
	}
}

// RecomputeAggregates 扫描生效中的道具，重算玩家的汇总属性
// 道具本身从不直接修改玩家
func (s *PlayerSystem) RecomputeAggregates(p *components.PlayerComponent) {
	p.Charming = false
	p.HasShield = false
	p.SpeedIncrease = 0
	p.FireRateMultiplier = 1
	p.DamageMultiplier = 1

	for _, gid := range ecs.GetEntitiesWith1[*components.GiftComponent](s.entityManager) {
		g, _ := ecs.GetComponent[*components.GiftComponent](s.entityManager, gid)
		if !g.Available {
			continue
		}
		p.SpeedIncrease += g.SpeedIncrease
		p.FireRateMultiplier *= 1 + g.AttackSpeedIncrease
		p.DamageMultiplier *= 1 - g.DamageReduction
		if g.Charming {
			p.Charming = true
		} else if g.DamageReduction > 0 {
			p.HasShield = true
		}
	}
}

// move 方向键移动，机身限制在屏幕内
func (s *PlayerSystem) move(p *components.PlayerComponent, pos *components.PositionComponent, deltaTime float64) {
	step := p.Speed * (1 + p.SpeedIncrease) * deltaTime
	if s.keys.IsKeyPressed(types.KeyLeft) {
		pos.X -= step
	}
	if s.keys.IsKeyPressed(types.KeyRight) {
		pos.X += step
	}
	if s.keys.IsKeyPressed(types.KeyUp) {
		pos.Y -= step
	}
	if s.keys.IsKeyPressed(types.KeyDown) {
		pos.Y += step
	}

	size := s.cfg.Player.Size
	screen := s.cfg.Screen
	pos.X = utils.Clamp(pos.X, size.Width/2, screen.Width-size.Width/2)
	pos.Y = utils.Clamp(pos.Y, size.Height/2, screen.Height-size.Height/2)
}

// Bounds 玩家当前的碰撞矩形（护盾生效时使用护盾尺寸）
func (s *PlayerSystem) Bounds(id ecs.EntityID) utils.Rect {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	if !ok {
		return utils.Rect{}
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if p.HasShield {
		shield := s.cfg.Player.ShieldSize
		return utils.CenteredRect(pos.X, pos.Y, shield.Width, shield.Height)
	}
	col, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
	return col.Bounds(pos)
}

// ResolveCollisions 结算命中玩家的敌方子弹
// 每颗命中的子弹造成 max(固定伤害, 伤害比例 × 当前生命值) 的原始伤害，然后爆炸
func (s *PlayerSystem) ResolveCollisions(id ecs.EntityID) {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	if !ok || !p.Available || p.Dying {
		return
	}
	bounds := s.Bounds(id)

	bulletIDs := ecs.GetEntitiesWith2[*components.BulletComponent, *components.CollisionComponent](s.entityManager)
	for _, bid := range bulletIDs {
		b, _ := ecs.GetComponent[*components.BulletComponent](s.entityManager, bid)
		if !b.Collidable() || b.FromPlayer {
			continue
		}
		bpos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, bid)
		if !ok {
			continue
		}
		bcol, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, bid)
		if !bounds.Intersects(bcol.Bounds(bpos)) {
			continue
		}
		s.TakeDamage(p, math.Max(b.Damage, b.DamageRate*p.Health))
		s.bullets.Explode(b)
	}
}

// TakeDamage 按减伤汇总值折算后扣除生命值
func (s *PlayerSystem) TakeDamage(p *components.PlayerComponent, rawDamage float64) {
	p.Health -= math.Max(0, rawDamage*p.DamageMultiplier)
}

// Shoot 射击间隔到达后发射双管子弹
// 射速倍率大于 1 时间隔缩短，并额外发射一组散射弹
func (s *PlayerSystem) Shoot(id ecs.EntityID) {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	if !ok || !p.Available {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	pc := s.cfg.Player

	super := false
	if p.ShotGap > 0 {
		gap := p.ShotGap
		if p.FireRateMultiplier > 1 {
			gap /= p.FireRateMultiplier
			super = true
		}
		if !p.ShotTimer.HasElapsed(gap) {
			return
		}
	}

	center := pos.Vec()
	up := utils.Vec2{X: 0, Y: -1}
	s.factory.NewCannon(center.Add(utils.Vec2{X: -pc.TwinOffsetX, Y: pc.MuzzleOffsetY}), up,
		types.ArchetypePlayerBullet, true, pc.BulletSpeed, p.Damage, p.Charming)
	s.factory.NewCannon(center.Add(utils.Vec2{X: pc.TwinOffsetX, Y: pc.MuzzleOffsetY}), up,
		types.ArchetypePlayerBullet, true, pc.BulletSpeed, p.Damage, p.Charming)

	if super {
		if p.SuperShots%2 == 0 {
			s.sound.PlaySound(types.SoundSuperBullet)
		}
		rng := s.factory.Random()
		muzzle := center.Add(utils.Vec2{X: 0, Y: pc.SuperMuzzleOffsetY})
		for i := 0; i < pc.SuperBulletCount; i++ {
			dir := utils.Vec2{X: utils.GenerateInRange(rng, -pc.SuperBulletSpread, pc.SuperBulletSpread), Y: -1}
			s.factory.NewCannon(muzzle, dir, types.ArchetypePlayerSuperBullet, true,
				pc.SuperBulletSpeed, p.Damage, p.Charming)
		}
	}
	p.SuperShots++
	p.ShotTimer.Restart()
}
