package systems

import (
	"math"

	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/entities"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
	"github.com/rs/zerolog"
)

// EnemySystem 敌机移动、射击、受击、魅惑与死亡动画
type EnemySystem struct {
	entityManager *ecs.EntityManager
	factory       *entities.Factory
	cfg           *config.BalanceConfig
	bullets       *BulletSystem
	sound         SoundPlayer
	frames        FrameProber
	log           zerolog.Logger
}

// NewEnemySystem 创建敌机系统
func NewEnemySystem(factory *entities.Factory, bullets *BulletSystem, sound SoundPlayer, frames FrameProber, log zerolog.Logger) *EnemySystem {
	if sound == nil {
		sound = NopSound{}
	}
	if frames == nil {
		frames = NopFrames{}
	}
	return &EnemySystem{
		entityManager: factory.EntityManager(),
		factory:       factory,
		cfg:           factory.Balance(),
		bullets:       bullets,
		sound:         sound,
		frames:        frames,
		log:           log,
	}
}

// Update 按创建顺序处理每架敌机：推进、射击、结算子弹碰撞，然后做击杀/魅惑簿记
//
// 击杀奖励由 BonusTaken 锁存，每架敌机最多结算一次：
// 魅惑确认时立即结算，否则在死亡后移除时结算。
func (s *EnemySystem) Update(deltaTime float64, state *BattleState, player *components.PlayerComponent) {
	state.BossID = 0
	ids := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager)
	for _, id := range ids {
		e, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)

		if e.Available {
			s.Advance(id, deltaTime)
			s.Shoot(id)
			s.ResolveCollisions(id)

			if !e.BonusTaken && e.Charmed {
				s.creditBonus(e, state, player)
				state.uncountEnemy(e.Level)
			} else if e.IsBoss() && e.Alive() {
				state.BossID = id
			}
			continue
		}

		if !e.BonusTaken && e.Health <= 0 {
			s.creditBonus(e, state, player)
		}
		// 被魅惑的敌机在魅惑时已经注销
		if !e.Charmed {
			state.uncountEnemy(e.Level)
		}
		s.entityManager.DestroyEntity(id)
	}
}

// creditBonus 结算击杀奖励
func (s *EnemySystem) creditBonus(e *components.EnemyComponent, state *BattleState, player *components.PlayerComponent) {
	if e.BonusTaken {
		return
	}
	if player != nil {
		player.Health += e.KillBonus
	}
	state.Killed++
	e.BonusTaken = true
}

// Advance 移动敌机，然后推进死亡动画或回复生命值
func (s *EnemySystem) Advance(id ecs.EntityID, deltaTime float64) {
	e, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
	if !ok || !e.Available {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	osc, _ := ecs.GetComponent[*components.OscillationComponent](s.entityManager, id)

	e.Hit = false
	s.move(e, pos, osc, deltaTime)

	if e.Health <= 0 {
		s.advanceDeath(e)
		return
	}
	s.recover(e, deltaTime)
}

// move 纵向移动 + 可选的横向正弦摆动，然后检查是否仍在屏幕内
//
// 普通敌机向下飞行；被魅惑的敌机速度为负（向上），到达停留线后停住；
// Boss 下降到停留线后保持高度。
func (s *EnemySystem) move(e *components.EnemyComponent, pos *components.PositionComponent,
	osc *components.OscillationComponent, deltaTime float64) {
	screen := s.cfg.Screen
	holdLine := 0.0
	if lc := s.cfg.Enemies.Level(e.Level); lc != nil {
		holdLine = lc.HoldLineRatio * screen.Height
	}

	if e.IsBoss() {
		if pos.Y < holdLine {
			pos.Y = math.Min(pos.Y+e.Speed*deltaTime, holdLine)
		}
	} else {
		if e.Charmed && pos.Y <= holdLine {
			e.Speed = 0
		}
		pos.Y += e.Speed * deltaTime
	}

	if osc != nil {
		pos.X = osc.Center + math.Sin(osc.Phase.ElapsedTime()*osc.Frequency)*osc.Amplitude
	}

	inY := pos.Y >= 0 && pos.Y <= screen.Height
	inX := pos.X >= 0 && pos.X < screen.Width
	if osc != nil && !e.IsBoss() {
		// 摆动敌机只检查纵向
		e.Available = inY
	} else {
		e.Available = inX && inY
	}
}

// advanceDeath 首帧播放坠毁音效，之后逐帧播放坠毁动画，动画帧不存在时失效
func (s *EnemySystem) advanceDeath(e *components.EnemyComponent) {
	if !e.Dying {
		e.Dying = true
		if e.DownFrameIdx < 1 {
			e.DownFrameIdx = 1
		}
		e.AnimTimer.Restart()
		s.sound.PlaySound(types.EnemyDownSound(e.Level))
		if e.IsBoss() {
			s.log.Info().Float64("maxHealth", e.MaxHealth).Msg("Boss destroyed")
		}
	}

	frame := types.EnemyDownFrame(e.Level, e.DownFrameIdx)
	if e.DownFrameIdx > s.cfg.Enemies.MaxDeathFrames || !s.frames.HasImage(frame) {
		e.Available = false
		return
	}
	if e.AnimTimer.HasElapsed(s.cfg.Enemies.DeathFrameInterval) {
		e.DownFrameIdx++
		e.AnimTimer.Restart()
	}
}

// recover 被魅惑的敌机和 Boss 每帧回复生命值
func (s *EnemySystem) recover(e *components.EnemyComponent, deltaTime float64) {
	switch {
	case e.Charmed:
		charm := s.cfg.Enemies.Charm
		e.Health = math.Min(e.MaxHealth*charm.RegenCapRatio, e.Health+deltaTime*charm.RegenRate)
	case e.IsBoss():
		boss := s.cfg.Enemies.Boss
		e.Health = math.Min(e.Health+deltaTime*e.RecoverRate, e.MaxHealth*boss.RecoverCapRatio)
	}
}

// Shoot 射击间隔到达后开火
// 普通敌机单发；被魅惑的敌机向上射出玩家方子弹；Boss 发射弹幕
func (s *EnemySystem) Shoot(id ecs.EntityID) {
	e, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
	if !ok || !e.Alive() {
		return
	}
	if e.ShotGap > 0 && !e.ShotTimer.HasElapsed(e.ShotGap) {
		return
	}
	bounds := s.bounds(id)

	if e.IsBoss() {
		s.bossVolley(e, bounds)
		e.ShotTimer.Restart()
		return
	}

	gap := s.cfg.Enemies.MuzzleGap
	centerX := bounds.X + bounds.W/2
	spawn := utils.Vec2{X: centerX, Y: bounds.Y + bounds.H + gap}
	dir := utils.Vec2{X: 0, Y: 1}
	archetype := types.ArchetypeEnemyBullet
	if e.Charmed {
		spawn = utils.Vec2{X: centerX, Y: bounds.Y - gap}
		dir = utils.Vec2{X: 0, Y: -1}
		archetype = types.ArchetypePlayerBullet
	}
	s.factory.NewCannon(spawn, dir, archetype, e.Charmed, e.BulletSpeed, e.Damage, false)
	e.ShotTimer.Restart()
}

// bossVolley Boss 弹幕
//
// 每轮固定发射一组散射弹，然后根据节奏计数器和剩余生命值追加：
//   - 计数器归零或生命值极低：导弹齐射（生命值低于阈值时数量翻倍）
//   - 计数器为 4、6（或残血时为 9）：双火箭
func (s *EnemySystem) bossVolley(e *components.EnemyComponent, bounds utils.Rect) {
	boss := s.cfg.Enemies.Boss
	rng := s.factory.Random()
	centerX := bounds.X + bounds.W/2
	bottomY := bounds.Y + bounds.H + s.cfg.Enemies.MuzzleGap

	for i := 0; i < boss.VolleyCount; i++ {
		dir := utils.Vec2{X: utils.GenerateInRange(rng, -boss.VolleySpread, boss.VolleySpread), Y: 1}
		s.factory.NewCannon(utils.Vec2{X: centerX, Y: bottomY}, dir,
			types.ArchetypeBossBullet, false, e.BulletSpeed, e.Damage, false)
	}

	e.ShootCounter = (e.ShootCounter + 1) % boss.CounterCycle
	down := utils.Vec2{X: 0, Y: 1}

	switch {
	case e.ShootCounter == 0 || e.Health < boss.DesperateHealth:
		count := 2
		if e.Health < e.MaxHealth*boss.AggressiveRatio {
			count = 4
		}
		for i := 0; i < count; i++ {
			fi := float64(i)
			tracking := boss.MissileTrackingMin + fi*boss.MissileTrackingInc
			damage := e.Damage * boss.MissileDamageMul
			s.factory.NewMissile(utils.Vec2{X: centerX - 50 - fi*20, Y: bottomY - fi*36}, down,
				types.ArchetypeEnemyMissile, false, e.BulletSpeed*(0.08+fi*0.01), damage, tracking)
			s.factory.NewMissile(utils.Vec2{X: centerX + 50 + fi*20, Y: bottomY - fi*36}, down,
				types.ArchetypeEnemyMissile, false, e.BulletSpeed*(0.02+fi*0.03), damage, tracking)
		}
		s.sound.PlaySound(types.SoundMissile)

	case e.ShootCounter == 4 || e.ShootCounter == 6 ||
		(e.Health < e.MaxHealth*boss.RocketRatio && e.ShootCounter == 9):
		damage := e.Damage * boss.RocketDamageMul
		s.factory.NewRocket(utils.Vec2{X: centerX - 50, Y: bottomY}, down,
			types.ArchetypeEnemyRocket, false, e.BulletSpeed*0.01, damage)
		s.factory.NewRocket(utils.Vec2{X: centerX + 50, Y: bottomY}, down,
			types.ArchetypeEnemyRocket, false, e.BulletSpeed*0.14, damage)
		s.sound.PlaySound(types.SoundRocket)

	default:
		s.sound.PlaySound(types.SoundBullet)
	}
}

// ResolveCollisions 结算与该敌机重叠的所有可碰撞子弹
//
// 魅惑弹命中未被魅惑的 1/2 级敌机时执行魅惑转换并消耗子弹；
// 否则只有敌对阵营的子弹造成 max(固定伤害, 伤害比例 × 当前生命值) 的伤害。
func (s *EnemySystem) ResolveCollisions(id ecs.EntityID) {
	e, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
	if !ok || !e.Alive() {
		return
	}
	bounds := s.bounds(id)

	bulletIDs := ecs.GetEntitiesWith2[*components.BulletComponent, *components.CollisionComponent](s.entityManager)
	for _, bid := range bulletIDs {
		b, _ := ecs.GetComponent[*components.BulletComponent](s.entityManager, bid)
		if !b.Collidable() {
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

		if !e.Charmed && b.Charming && !e.IsBoss() {
			s.Charm(e)
			b.Available = false
			s.sound.PlaySound(types.SoundAllMyPeople)
		} else if b.FromPlayer != e.Charmed {
			s.TakeDamage(e, math.Max(b.Damage, b.DamageRate*e.Health))
			s.bullets.ExplodeSoundOnly(b)
			b.Available = false
		}
	}
}

// Charm 魅惑转换：速度反向减半、生命值与伤害提升
func (s *EnemySystem) Charm(e *components.EnemyComponent) {
	charm := s.cfg.Enemies.Charm
	e.Charmed = true
	e.Speed *= charm.SpeedFactor
	e.Health *= charm.HealthMul
	e.Damage *= charm.DamageMul
	s.log.Debug().Int("level", e.Level).Float64("health", e.Health).Msg("Enemy charmed")
}

// TakeDamage 扣除生命值并标记受击
func (s *EnemySystem) TakeDamage(e *components.EnemyComponent, damage float64) {
	e.Health -= damage
	e.Hit = true
}

// bounds 敌机的碰撞矩形
func (s *EnemySystem) bounds(id ecs.EntityID) utils.Rect {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
	if !ok || pos == nil {
		return utils.Rect{}
	}
	return col.Bounds(pos)
}
