package systems

import (
	"fmt"

	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/entities"
	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BattleDeps 创建战斗所需的外部依赖
type BattleDeps struct {
	Balance  *config.BalanceConfig
	Clock    utils.Clock   // nil 时使用真实时钟
	Random   *utils.Random // nil 时以当前时间为种子
	Sound    SoundPlayer
	Frames   FrameProber
	Keyboard Keyboard
}

// Battle 一局战斗的模拟循环
//
// 拥有全部实体（子弹、敌机、玩家、道具），每帧按固定顺序推进：
// 玩家 → 玩家受击 → 子弹 → 道具 → 敌机（移动、射击、受击、簿记）→ 刷怪 → 道具掉落。
type Battle struct {
	entityManager *ecs.EntityManager
	factory       *entities.Factory
	cfg           *config.BalanceConfig
	clock         utils.Clock
	log           zerolog.Logger

	state    *BattleState
	playerID ecs.EntityID
	paused   bool

	// SessionID 标识一局战斗，读档时沿用存档中的值
	SessionID uuid.UUID

	Players *PlayerSystem
	Bullets *BulletSystem
	Enemies *EnemySystem
	Gifts   *GiftSystem
	Spawner *SpawnSystem
}

// NewBattle 创建新的一局战斗并放置玩家
func NewBattle(deps BattleDeps) (*Battle, error) {
	if deps.Balance == nil {
		return nil, fmt.Errorf("balance config cannot be nil")
	}
	if deps.Clock == nil {
		deps.Clock = utils.RealClock{}
	}
	if deps.Random == nil {
		deps.Random = utils.NewRandomFromTime()
	}

	em := ecs.NewEntityManager()
	factory, err := entities.NewFactory(em, deps.Clock, deps.Random, deps.Balance)
	if err != nil {
		return nil, fmt.Errorf("failed to create entity factory: %w", err)
	}

	log := logger.For("battle")
	bullets := NewBulletSystem(em, deps.Balance, deps.Sound)
	gifts := NewGiftSystem(em, deps.Balance, deps.Sound)

	b := &Battle{
		entityManager: em,
		factory:       factory,
		cfg:           deps.Balance,
		clock:         deps.Clock,
		log:           log,
		SessionID:     uuid.New(),
		Players:       NewPlayerSystem(factory, bullets, deps.Sound, deps.Keyboard),
		Bullets:       bullets,
		Enemies:       NewEnemySystem(factory, bullets, deps.Sound, deps.Frames, logger.For("enemies")),
		Gifts:         gifts,
		Spawner:       NewSpawnSystem(factory, gifts, deps.Sound, log),
	}
	b.Reset()
	b.playerID = factory.NewPlayer()
	return b, nil
}

// Reset 清空全部实体和簿记（读档前调用，调用方负责重新放置玩家）
func (b *Battle) Reset() {
	b.entityManager.Clear()
	b.state = NewBattleState(b.clock)
	b.playerID = 0
	b.paused = false
}

// Tick 用增量计时器测量上一帧以来的时间并推进一帧
// 暂停期间只重启增量计时器
func (b *Battle) Tick() (bool, error) {
	if b.paused {
		b.state.DeltaTimer.Restart()
		return true, nil
	}
	dt := b.state.DeltaTimer.ElapsedTime()
	b.state.DeltaTimer.Restart()
	return b.Update(dt)
}

// Update 以给定的帧间隔推进一帧
//
// 返回：
//   - bool: 战斗是否仍在进行（玩家失效后返回 false）
//   - error: 随机服务参数错误等编程错误
func (b *Battle) Update(deltaTime float64) (bool, error) {
	player := b.Player()
	if player == nil || !player.Available {
		return false, nil
	}

	b.Players.Update(b.playerID, deltaTime)
	b.Players.ResolveCollisions(b.playerID)

	b.state.TimeElapsed += deltaTime

	if player.Health > 0 {
		b.Players.Shoot(b.playerID)
	}

	b.Bullets.Update(deltaTime, b.HitTarget())
	b.Gifts.Update(deltaTime)
	b.Enemies.Update(deltaTime, b.state, player)

	if err := b.Spawner.SpawnEnemies(b.state); err != nil {
		return false, err
	}
	if err := b.Spawner.BringGifts(b.state); err != nil {
		return false, err
	}

	b.entityManager.RemoveMarkedEntities()

	if !player.Available {
		b.log.Info().
			Float64("timeElapsed", b.state.TimeElapsed).
			Int("killed", b.state.Killed).
			Int("entities", b.entityManager.EntityCount()).
			Msg("Player destroyed")
	}
	return true, nil
}

// HitTarget 敌方追踪弹的目标
// strongest_charmed 策略下优先追踪生命值最高的被魅惑敌机，否则追踪玩家
func (b *Battle) HitTarget() HitTarget {
	target := HitTarget{}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](b.entityManager, b.playerID); ok {
		target = HitTarget{Position: pos.Vec(), Valid: true}
	}
	if b.cfg.Spawn.HitTargetPolicy != types.HitTargetStrongestCharmed {
		return target
	}

	maxHealth := 0.0
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](b.entityManager) {
		e, _ := ecs.GetComponent[*components.EnemyComponent](b.entityManager, id)
		if !e.Alive() || !e.Charmed || e.Health <= maxHealth {
			continue
		}
		maxHealth = e.Health
		target = HitTarget{Position: b.Enemies.bounds(id).Center(), Valid: true}
	}
	return target
}

// Pause 暂停：冻结模拟，不销毁任何实体
func (b *Battle) Pause() {
	b.paused = true
	b.state.DeltaTimer.Restart()
}

// Resume 继续战斗，丢弃暂停期间的时间
func (b *Battle) Resume() {
	b.paused = false
	b.state.DeltaTimer.Restart()
}

// Paused 是否暂停中
func (b *Battle) Paused() bool {
	return b.paused
}

// Running 玩家是否仍然可用
func (b *Battle) Running() bool {
	p := b.Player()
	return p != nil && p.Available
}

// State 战斗簿记
func (b *Battle) State() *BattleState {
	return b.state
}

// EntityManager 实体管理器
func (b *Battle) EntityManager() *ecs.EntityManager {
	return b.entityManager
}

// Factory 实体工厂
func (b *Battle) Factory() *entities.Factory {
	return b.factory
}

// Balance 数值表
func (b *Battle) Balance() *config.BalanceConfig {
	return b.cfg
}

// PlayerID 玩家实体ID
func (b *Battle) PlayerID() ecs.EntityID {
	return b.playerID
}

// SetPlayerID 读档后绑定玩家实体
func (b *Battle) SetPlayerID(id ecs.EntityID) {
	b.playerID = id
}

// Player 玩家组件，不存在时返回 nil
func (b *Battle) Player() *components.PlayerComponent {
	p, ok := ecs.GetComponent[*components.PlayerComponent](b.entityManager, b.playerID)
	if !ok {
		return nil
	}
	return p
}

// RecountEnemies 根据可用且未被魅惑的敌机重新统计同屏数量
func (b *Battle) RecountEnemies() {
	b.state.EnemyCount = [MaxEnemyLevel + 1]int{}
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](b.entityManager) {
		e, _ := ecs.GetComponent[*components.EnemyComponent](b.entityManager, id)
		if e.Available && !e.Charmed {
			b.state.countEnemy(e.Level)
		}
	}
}

// ShowingInstructions 开局一段时间内显示操作提示
func (b *Battle) ShowingInstructions() bool {
	return b.paused || b.state.TimeElapsed <= b.cfg.HUD.InstructionDuration
}

// BossHealth 当前 Boss 的生命值和百分比
func (b *Battle) BossHealth() (health, percent float64, ok bool) {
	if !b.entityManager.Exists(b.state.BossID) {
		return 0, 0, false
	}
	e, found := ecs.GetComponent[*components.EnemyComponent](b.entityManager, b.state.BossID)
	if !found || e.MaxHealth <= 0 {
		return 0, 0, false
	}
	return e.Health, e.Health / e.MaxHealth * 100, true
}
