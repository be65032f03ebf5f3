package systems

import (
	"fmt"

	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/entities"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
	"github.com/rs/zerolog"
)

// enemyLevels 刷怪时的候选等级
var enemyLevels = []int{1, 2, 3}

// SpawnSystem 刷怪与道具掉落调度
type SpawnSystem struct {
	factory *entities.Factory
	cfg     *config.BalanceConfig
	gifts   *GiftSystem
	sound   SoundPlayer
	log     zerolog.Logger
}

// NewSpawnSystem 创建调度系统
func NewSpawnSystem(factory *entities.Factory, gifts *GiftSystem, sound SoundPlayer, log zerolog.Logger) *SpawnSystem {
	if sound == nil {
		sound = NopSound{}
	}
	return &SpawnSystem{
		factory: factory,
		cfg:     factory.Balance(),
		gifts:   gifts,
		sound:   sound,
		log:     log,
	}
}

// SpawnEnemies 刷怪
//
// 间隔到达后按权重抽取等级，受同屏上限约束；抽到 Boss 且战斗时长超过阈值时，
// 改为触发一次性的 Boss 波次（固定数量的 1/2 级敌机加一只 Boss）。
// 无论是否真正生成，间隔计时器都会重启。
func (s *SpawnSystem) SpawnEnemies(state *BattleState) error {
	sc := s.cfg.Spawn
	interval := sc.EnemyInterval
	if state.BossID != 0 {
		interval = sc.BossEnemyInterval
	}
	if !state.SpawnTimer.HasElapsed(interval) {
		return nil
	}

	level, err := utils.GenerateFromSetWithProb(s.factory.Random(), enemyLevels, sc.LevelProbabilities)
	if err != nil {
		return fmt.Errorf("failed to draw enemy level: %w", err)
	}

	switch level {
	case 1, 2:
		if state.EnemyCount[level] < sc.LevelCaps[level-1] {
			if err := s.spawnAtTop(state, level); err != nil {
				return err
			}
		}
	case 3:
		if !state.BossWaveTriggered && state.EnemyCount[3] < sc.LevelCaps[2] &&
			state.TimeElapsed > sc.BossWave.TimeThreshold {
			if err := s.bossWave(state); err != nil {
				return err
			}
		}
	}

	state.SpawnTimer.Restart()
	return nil
}

// spawnAtTop 在屏幕顶部随机横坐标生成敌机
func (s *SpawnSystem) spawnAtTop(state *BattleState, level int) error {
	x := float64(s.factory.Random().IntN(int(s.cfg.Screen.Width)))
	if _, err := s.factory.NewEnemy(level, x, 0); err != nil {
		return err
	}
	state.countEnemy(level)
	return nil
}

// bossWave 一次性集中刷怪
func (s *SpawnSystem) bossWave(state *BattleState) error {
	wave := s.cfg.Spawn.BossWave
	for i := 0; i < wave.Level1Count; i++ {
		if err := s.spawnAtTop(state, 1); err != nil {
			return err
		}
	}
	for i := 0; i < wave.Level2Count; i++ {
		if err := s.spawnAtTop(state, 2); err != nil {
			return err
		}
	}
	for i := 0; i < wave.BossCount; i++ {
		if _, err := s.factory.NewEnemy(3, s.cfg.Screen.Width/2, 0); err != nil {
			return err
		}
		state.countEnemy(3)
	}
	state.BossWaveTriggered = true
	s.log.Info().
		Float64("timeElapsed", state.TimeElapsed).
		Int("level1", wave.Level1Count).
		Int("level2", wave.Level2Count).
		Msg("Boss wave triggered")
	return nil
}

// BringGifts 道具掉落
//
// 生效道具达到上限时不掉落。间隔到达且伯努利试验成功后，决定本次掉落数量
// （Boss 在场时多掉一个），按权重逐个抽取种类：已生效的种类和本次已抽中的种类权重置零。
// 只有真正掉落时才重启间隔计时器。
func (s *SpawnSystem) BringGifts(state *BattleState) error {
	sc := s.cfg.Spawn
	active := s.gifts.Active()
	if len(active) >= sc.MaxGifts {
		return nil
	}
	if !state.GiftTimer.HasElapsed(sc.GiftInterval) {
		return nil
	}

	rng := s.factory.Random()
	drop, err := rng.ChooseWithProb(sc.GiftProbability)
	if err != nil {
		return fmt.Errorf("failed to draw gift drop: %w", err)
	}
	if !drop {
		return nil
	}

	count := 1
	multi, err := rng.ChooseWithProb(sc.GiftProbability / 2)
	if err != nil {
		return fmt.Errorf("failed to draw gift count: %w", err)
	}
	if multi {
		count = sc.MultiGiftCount
		if state.BossID != 0 {
			count = sc.BossMultiGiftCount
		}
	}
	count = min(count, sc.MaxGifts-len(active))

	ratios := s.cfg.GiftRatios()
	for _, g := range active {
		excludeKind(ratios, g.Kind)
	}

	for i := 0; i < count; i++ {
		if !anyPositive(ratios) {
			break
		}
		kind, err := utils.GenerateFromSetWithProb(rng, types.AllGiftKinds, ratios)
		if err != nil {
			return fmt.Errorf("failed to draw gift kind: %w", err)
		}
		if _, err := s.factory.NewGift(kind); err != nil {
			return err
		}
		s.sound.PlaySound(string(kind))
		excludeKind(ratios, kind)
	}

	state.GiftTimer.Restart()
	return nil
}

// excludeKind 将某个道具种类的权重置零
func excludeKind(ratios []float64, kind types.GiftKind) {
	for i, k := range types.AllGiftKinds {
		if k == kind {
			ratios[i] = 0
		}
	}
}

func anyPositive(values []float64) bool {
	for _, v := range values {
		if v > 0 {
			return true
		}
	}
	return false
}
