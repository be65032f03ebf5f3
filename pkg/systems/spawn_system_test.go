package systems

import (
	"errors"
	"testing"

	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
)

func onlyLevel(level int) func(cfg *config.BalanceConfig) {
	return func(cfg *config.BalanceConfig) {
		cfg.Spawn.LevelProbabilities = []float64{0, 0, 0}
		cfg.Spawn.LevelProbabilities[level-1] = 1
	}
}

func TestSpawnEnemies(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		count     int
		elapsed   float64
		bossAlive bool
		want      int
	}{
		{"间隔未到", 1, 0, 0.5, false, 0},
		{"生成1级敌机", 1, 0, 0.6, false, 1},
		{"生成2级敌机", 2, 0, 0.6, false, 1},
		{"1级达到上限", 1, 24, 0.6, false, 0},
		{"2级达到上限", 2, 12, 0.6, false, 0},
		{"Boss在场时缩短间隔", 1, 0, 0.1, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestRig(t, nil, onlyLevel(tt.level))
			state := rig.battle.State()
			state.EnemyCount[tt.level] = tt.count
			if tt.bossAlive {
				state.BossID = 999
			}

			rig.clock.Advance(tt.elapsed)
			if err := rig.battle.Spawner.SpawnEnemies(state); err != nil {
				t.Fatalf("SpawnEnemies failed: %v", err)
			}

			if got := countEnemies(rig.em())[tt.level]; got != tt.want {
				t.Errorf("spawned: got %d, want %d", got, tt.want)
			}
			if got := state.EnemyCount[tt.level]; got != tt.count+tt.want {
				t.Errorf("EnemyCount: got %d, want %d", got, tt.count+tt.want)
			}
		})
	}
}

func TestSpawnTimerRestartsEvenWhenCapped(t *testing.T) {
	rig := newTestRig(t, nil, onlyLevel(1))
	state := rig.battle.State()
	state.EnemyCount[1] = 24

	rig.clock.Advance(0.6)
	if err := rig.battle.Spawner.SpawnEnemies(state); err != nil {
		t.Fatalf("SpawnEnemies failed: %v", err)
	}
	if state.SpawnTimer.HasElapsed(0.6) {
		t.Error("spawn timer should restart even when nothing was spawned")
	}
}

func TestBossWave(t *testing.T) {
	t.Run("时长未到不触发", func(t *testing.T) {
		rig := newTestRig(t, nil, onlyLevel(3))
		state := rig.battle.State()
		state.TimeElapsed = 10

		rig.clock.Advance(0.6)
		if err := rig.battle.Spawner.SpawnEnemies(state); err != nil {
			t.Fatalf("SpawnEnemies failed: %v", err)
		}
		if len(countEnemies(rig.em())) != 0 || state.BossWaveTriggered {
			t.Error("boss wave should not trigger before the time threshold")
		}
	})

	t.Run("只触发一次", func(t *testing.T) {
		rig := newTestRig(t, nil, onlyLevel(3))
		state := rig.battle.State()
		state.TimeElapsed = 40

		rig.clock.Advance(0.6)
		if err := rig.battle.Spawner.SpawnEnemies(state); err != nil {
			t.Fatalf("SpawnEnemies failed: %v", err)
		}
		counts := countEnemies(rig.em())
		if counts[1] != 32 || counts[2] != 24 || counts[3] != 1 {
			t.Fatalf("boss wave: got %v, want 32/24/1", counts)
		}
		if !state.BossWaveTriggered {
			t.Fatal("BossWaveTriggered should be latched")
		}
		if state.EnemyCount != [MaxEnemyLevel + 1]int{0, 32, 24, 1} {
			t.Errorf("EnemyCount: got %v", state.EnemyCount)
		}

		state.EnemyCount[3] = 0
		for i := 0; i < 5; i++ {
			rig.clock.Advance(0.6)
			if err := rig.battle.Spawner.SpawnEnemies(state); err != nil {
				t.Fatalf("SpawnEnemies failed: %v", err)
			}
		}
		if got := countEnemies(rig.em())[3]; got != 1 {
			t.Errorf("bosses after latch: got %d, want 1", got)
		}
	})
}

func TestBringGifts(t *testing.T) {
	rig := newTestRig(t, nil, func(cfg *config.BalanceConfig) {
		cfg.Spawn.GiftProbability = 1
	})
	state := rig.battle.State()
	gifts := rig.battle.Gifts

	for round := 0; round < 20; round++ {
		for _, g := range gifts.Active() {
			g.Available = false
		}
		gifts.Update(0)
		rig.em().RemoveMarkedEntities()
		rig.spawnGift(t, types.GiftSpeedStorm, 10)

		rig.clock.Advance(12)
		if err := rig.battle.Spawner.BringGifts(state); err != nil {
			t.Fatalf("round %d: BringGifts failed: %v", round, err)
		}

		active := gifts.Active()
		if len(active) < 2 || len(active) > 3 {
			t.Fatalf("round %d: active gifts got %d, want 2..3", round, len(active))
		}
		seen := make(map[types.GiftKind]bool)
		for _, g := range active {
			if seen[g.Kind] {
				t.Fatalf("round %d: duplicate gift kind %s", round, g.Kind)
			}
			seen[g.Kind] = true
		}
		if state.GiftTimer.HasElapsed(12) {
			t.Fatalf("round %d: gift timer should restart after a drop", round)
		}
	}
}

func TestBringGiftsAtCap(t *testing.T) {
	rig := newTestRig(t, nil, func(cfg *config.BalanceConfig) {
		cfg.Spawn.GiftProbability = 1
	})
	state := rig.battle.State()
	rig.spawnGift(t, types.GiftSpeedStorm, 10)
	rig.spawnGift(t, types.GiftFullFirePower, 10)
	rig.spawnGift(t, types.GiftCenturyShield, 10)

	rig.clock.Advance(12)
	if err := rig.battle.Spawner.BringGifts(state); err != nil {
		t.Fatalf("BringGifts failed: %v", err)
	}
	if n := len(rig.battle.Gifts.Active()); n != 3 {
		t.Errorf("active gifts: got %d, want 3", n)
	}
	if !state.GiftTimer.HasElapsed(12) {
		t.Error("gift timer should not restart when nothing dropped")
	}
}

func TestBringGiftsInvalidProbability(t *testing.T) {
	rig := newTestRig(t, nil, func(cfg *config.BalanceConfig) {
		cfg.Spawn.GiftProbability = 1.5
	})

	rig.clock.Advance(12)
	err := rig.battle.Spawner.BringGifts(rig.battle.State())
	if !errors.Is(err, utils.ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}
