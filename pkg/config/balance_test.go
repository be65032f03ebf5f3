package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/thunderwings/pkg/types"
)

func TestDefaultBalanceIsValid(t *testing.T) {
	cfg := DefaultBalance()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultBalance should be valid: %v", err)
	}

	if cfg.Screen.Width != 1440 || cfg.Screen.Height != 900 {
		t.Errorf("Screen: got %vx%v, want 1440x900", cfg.Screen.Width, cfg.Screen.Height)
	}
	if got := cfg.Enemies.Level(3).KillBonus; got != 0 {
		t.Errorf("Boss killBonus should be derived from maxHealth, got %v", got)
	}
}

func TestShippedBalanceMatchesDefaults(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "balance.yaml"))
	if err != nil {
		t.Fatalf("Failed to read shipped balance file: %v", err)
	}

	cfg, err := ParseBalanceConfig(data)
	if err != nil {
		t.Fatalf("Shipped balance file should parse: %v", err)
	}

	def := DefaultBalance()
	if cfg.Player != def.Player {
		t.Errorf("Player config differs from defaults:\n got %+v\nwant %+v", cfg.Player, def.Player)
	}
	if cfg.Enemies.Boss != def.Enemies.Boss {
		t.Errorf("Boss config differs from defaults")
	}
	if cfg.Bullets.Rocket != def.Bullets.Rocket || cfg.Bullets.Missile != def.Bullets.Missile {
		t.Errorf("Bullet config differs from defaults")
	}
	for _, kind := range types.AllGiftKinds {
		if cfg.Gifts.Kinds[kind] != def.Gifts.Kinds[kind] {
			t.Errorf("Gift %s differs: got %+v, want %+v", kind, cfg.Gifts.Kinds[kind], def.Gifts.Kinds[kind])
		}
	}
	for level := 1; level <= 3; level++ {
		if *cfg.Enemies.Level(level) != *def.Enemies.Level(level) {
			t.Errorf("Enemy level %d differs from defaults", level)
		}
	}
}

func TestLoadBalanceConfigFromDisk(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("部分覆盖保留默认值", func(t *testing.T) {
		content := `
player:
  speed: 300
spawn:
  hitTargetPolicy: player
`
		path := filepath.Join(tempDir, "partial.yaml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		cfg, err := LoadBalanceConfig(path)
		if err != nil {
			t.Fatalf("LoadBalanceConfig failed: %v", err)
		}
		if cfg.Player.Speed != 300 {
			t.Errorf("Player speed: got %v, want 300", cfg.Player.Speed)
		}
		if cfg.Player.MaxHealth != 96000 {
			t.Errorf("Player maxHealth should keep default, got %v", cfg.Player.MaxHealth)
		}
		if cfg.Spawn.HitTargetPolicy != types.HitTargetPlayer {
			t.Errorf("HitTargetPolicy: got %q, want %q", cfg.Spawn.HitTargetPolicy, types.HitTargetPlayer)
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadBalanceConfig(filepath.Join(tempDir, "missing.yaml"))
		if err == nil {
			t.Fatal("Expected error for missing file")
		}
	})

	t.Run("YAML格式错误", func(t *testing.T) {
		path := filepath.Join(tempDir, "broken.yaml")
		if err := os.WriteFile(path, []byte("player: [unclosed"), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}
		if _, err := LoadBalanceConfig(path); err == nil {
			t.Fatal("Expected error for malformed YAML")
		}
	})
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *BalanceConfig)
		wantErr string
	}{
		{
			name:    "屏幕尺寸为零",
			mutate:  func(c *BalanceConfig) { c.Screen.Width = 0 },
			wantErr: "screen size",
		},
		{
			name:    "缺少敌机等级",
			mutate:  func(c *BalanceConfig) { c.Enemies.Levels = c.Enemies.Levels[:2] },
			wantErr: "enemy level 3",
		},
		{
			name:    "原型尺寸数量不符",
			mutate:  func(c *BalanceConfig) { c.Bullets.ArchetypeSizes = c.Bullets.ArchetypeSizes[:3] },
			wantErr: "archetypeSizes",
		},
		{
			name:    "减伤越界",
			mutate:  func(c *BalanceConfig) { c.Gifts.Kinds[types.GiftCenturyShield] = GiftKindConfig{DamageReduction: 1.5} },
			wantErr: "damageReduction",
		},
		{
			name:    "未知追踪策略",
			mutate:  func(c *BalanceConfig) { c.Spawn.HitTargetPolicy = "nearest" },
			wantErr: "hitTargetPolicy",
		},
		{
			name:    "道具概率越界",
			mutate:  func(c *BalanceConfig) { c.Spawn.GiftProbability = 2 },
			wantErr: "giftProbability",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBalance()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Expected validation error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q should mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestBulletSizeOfClampsArchetype(t *testing.T) {
	cfg := DefaultBalance()
	last := cfg.Bullets.ArchetypeSizes[len(cfg.Bullets.ArchetypeSizes)-1]
	if got := cfg.Bullets.SizeOf(types.BulletArchetype(42)); got != last {
		t.Errorf("Out-of-range archetype: got %+v, want %+v", got, last)
	}
}

func TestGiftRatiosOrder(t *testing.T) {
	ratios := DefaultBalance().GiftRatios()
	want := []float64{20, 25, 15, 40}
	for i := range want {
		if ratios[i] != want[i] {
			t.Errorf("Ratio[%d]: got %v, want %v", i, ratios[i], want[i])
		}
	}
}
