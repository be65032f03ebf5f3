package config

import "github.com/decker502/thunderwings/pkg/types"

// DefaultBalance 返回内置数值表，与 data/balance.yaml 保持一致
// 测试和终端前端在没有数值文件时使用
func DefaultBalance() *BalanceConfig {
	return &BalanceConfig{
		Screen: ScreenConfig{Width: 1440, Height: 900},
		Player: PlayerConfig{
			Speed:              512,
			MaxHealth:          96000,
			InitialHealthRatio: 0.64,
			Damage:             512,
			ShotGap:            0.128,
			RecoverHealth:      8,
			RecoverInterval:    0.64,
			StartX:             400,
			StartY:             500,
			Size:               Size{Width: 65, Height: 81},
			ShieldSize:         Size{Width: 128, Height: 128},
			BulletSpeed:        1024,
			TwinOffsetX:        20,
			MuzzleOffsetY:      -16,
			SuperBulletCount:   6,
			SuperBulletSpread:  0.4,
			SuperBulletSpeed:   1600,
			SuperMuzzleOffsetY: -32,
			DeathFrames:        4,
			DeathFrameInterval: 0.4,
		},
		Enemies: EnemiesConfig{
			Levels: []EnemyLevelConfig{
				{
					Level:             1,
					Health:            Range{Min: 2048, Max: 2048},
					Speed:             Range{Min: 128, Max: 256},
					BulletSpeedFactor: 3.2,
					ShotGap:           Range{Min: 0.2, Max: 0.2},
					Damage:            512,
					KillBonus:         5000,
					Size:              Size{Width: 57, Height: 43},
					HoldLineRatio:     1.0 / 3.0,
				},
				{
					Level:             2,
					Health:            Range{Min: 16384, Max: 16384},
					Speed:             Range{Min: 64, Max: 256},
					BulletSpeedFactor: 4.0,
					ShotGap:           Range{Min: 0.1, Max: 0.1},
					Damage:            728,
					KillBonus:         10000,
					Amplitude:         Range{Min: 128, Max: 256},
					Frequency:         Range{Min: 0.5, Max: 1.5},
					Size:              Size{Width: 69, Height: 99},
					HoldLineRatio:     1.0 / 5.0,
				},
				{
					Level:         3,
					Health:        Range{Min: 840000, Max: 1200000},
					Speed:         Range{Min: 16, Max: 32},
					BulletSpeed:   Range{Min: 1024, Max: 2048},
					ShotGap:       Range{Min: 0.2, Max: 0.28},
					Damage:        4096,
					Amplitude:     Range{Min: 128, Max: 256},
					Frequency:     Range{Min: 0.6, Max: 1.2},
					Size:          Size{Width: 169, Height: 258},
					HoldLineRatio: 0.05,
				},
			},
			Boss: BossConfig{
				RecoverRate:        512,
				RecoverCapRatio:    2,
				VolleyCount:        6,
				VolleySpread:       0.32,
				CounterCycle:       16,
				DesperateHealth:    12480,
				AggressiveRatio:    0.4,
				RocketRatio:        0.32,
				MissileDamageMul:   4.2,
				RocketDamageMul:    1.6,
				MissileTrackingMin: 0.4,
				MissileTrackingInc: 0.5,
			},
			Charm: CharmConfig{
				SpeedFactor:   -0.5,
				HealthMul:     10,
				DamageMul:     1.6,
				RegenRate:     240,
				RegenCapRatio: 15,
			},
			DeathFrameInterval: 0.16,
			MaxDeathFrames:     16,
			MuzzleGap:          8,
		},
		Bullets: BulletsConfig{
			Missile: MissileConfig{
				TrackingDuration: 2.5,
				TrackingGrowth:   0.00002,
				TrackingAccel:    100,
				CruiseAccel:      220,
			},
			Rocket: RocketConfig{
				Tracking:          16384,
				TrackingDuration:  0.92,
				Accel:             540,
				DamageRateInitial: 0.32,
				DamageRate:        0.06,
				DamageRateDelay:   0.04,
			},
			ExplodeDuration: 0.6,
			FlashDuration:   0.3,
			ArchetypeSizes: []Size{
				types.ArchetypePlayerBullet:      {Width: 5, Height: 11},
				types.ArchetypeEnemyBullet:       {Width: 5, Height: 11},
				types.ArchetypeEnemyMissile:      {Width: 16, Height: 48},
				types.ArchetypeEnemyRocket:       {Width: 18, Height: 56},
				types.ArchetypeBossBullet:        {Width: 12, Height: 24},
				types.ArchetypePlayerSuperBullet: {Width: 10, Height: 20},
			},
		},
		Gifts: GiftsConfig{
			Lifetime:           Range{Min: 7, Max: 10},
			DisappearThreshold: 3.5,
			FirstWarning:       0.72,
			SecondWarning:      1.72,
			Kinds: map[types.GiftKind]GiftKindConfig{
				types.GiftFullFirePower: {AttackSpeedIncrease: 4.0, Ratio: 20},
				types.GiftCenturyShield: {DamageReduction: 0.9, Ratio: 25},
				types.GiftAllMyPeople:   {Charming: true, LifetimeExtension: 5, Ratio: 15},
				types.GiftSpeedStorm:    {SpeedIncrease: 0.6, Ratio: 40},
			},
		},
		Spawn: SpawnConfig{
			EnemyInterval:      0.6,
			BossEnemyInterval:  0.1,
			LevelProbabilities: []float64{0.72, 0.26, 0.02},
			LevelCaps:          []int{24, 12, 1},
			BossWave: BossWaveConfig{
				TimeThreshold: 32,
				Level1Count:   32,
				Level2Count:   24,
				BossCount:     1,
			},
			GiftInterval:       12,
			GiftProbability:    0.4,
			MaxGifts:           3,
			MultiGiftCount:     2,
			BossMultiGiftCount: 3,
			HitTargetPolicy:    types.HitTargetStrongestCharmed,
		},
		HUD: HUDConfig{
			InstructionDuration: 8,
			GameOverDuration:    3.2,
		},
	}
}
