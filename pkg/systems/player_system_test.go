package systems

import (
	"testing"

	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
)

func TestPlayerRecomputeAggregates(t *testing.T) {
	tests := []struct {
		name         string
		gifts        []types.GiftKind
		wantFireRate float64
		wantDamage   float64
		wantSpeed    float64
		wantShield   bool
		wantCharming bool
	}{
		{"没有道具", nil, 1, 1, 0, false, false},
		{"火力全开", []types.GiftKind{types.GiftFullFirePower}, 5, 1, 0, false, false},
		{"世纪护盾", []types.GiftKind{types.GiftCenturyShield}, 1, 0.1, 0, true, false},
		{"众志成城", []types.GiftKind{types.GiftAllMyPeople}, 1, 1, 0, false, true},
		{"疾风", []types.GiftKind{types.GiftSpeedStorm}, 1, 1, 0.6, false, false},
		{"多个道具叠加", []types.GiftKind{types.GiftFullFirePower, types.GiftCenturyShield, types.GiftSpeedStorm}, 5, 0.1, 0.6, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestRig(t, nil, nil)
			for _, kind := range tt.gifts {
				rig.spawnGift(t, kind, 10)
			}
			p := rig.battle.Player()

			rig.battle.Players.RecomputeAggregates(p)

			if !almostEqual(p.FireRateMultiplier, tt.wantFireRate) {
				t.Errorf("FireRateMultiplier: got %v, want %v", p.FireRateMultiplier, tt.wantFireRate)
			}
			if !almostEqual(p.DamageMultiplier, tt.wantDamage) {
				t.Errorf("DamageMultiplier: got %v, want %v", p.DamageMultiplier, tt.wantDamage)
			}
			if !almostEqual(p.SpeedIncrease, tt.wantSpeed) {
				t.Errorf("SpeedIncrease: got %v, want %v", p.SpeedIncrease, tt.wantSpeed)
			}
			if p.HasShield != tt.wantShield {
				t.Errorf("HasShield: got %v, want %v", p.HasShield, tt.wantShield)
			}
			if p.Charming != tt.wantCharming {
				t.Errorf("Charming: got %v, want %v", p.Charming, tt.wantCharming)
			}
		})
	}
}

func TestPlayerRecomputeIgnoresExpiredGifts(t *testing.T) {
	rig := newTestRig(t, nil, nil)
	g := rig.spawnGift(t, types.GiftCenturyShield, 10)
	g.Available = false
	p := rig.battle.Player()

	rig.battle.Players.RecomputeAggregates(p)

	if p.HasShield || p.DamageMultiplier != 1 {
		t.Errorf("expired gift applied: HasShield=%v DamageMultiplier=%v", p.HasShield, p.DamageMultiplier)
	}
}

func TestPlayerMove(t *testing.T) {
	tests := []struct {
		name  string
		keys  []types.Key
		gift  types.GiftKind
		dt    float64
		wantX float64
		wantY float64
	}{
		{"向右", []types.Key{types.KeyRight}, "", 0.5, 656, 500},
		{"向上", []types.Key{types.KeyUp}, "", 0.5, 400, 244},
		{"左边界", []types.Key{types.KeyLeft}, "", 1, 32.5, 500},
		{"下边界", []types.Key{types.KeyDown}, "", 1, 400, 900 - 40.5},
		{"疾风加速", []types.Key{types.KeyRight}, types.GiftSpeedStorm, 0.5, 400 + 512*1.6*0.5, 500},
		{"左右同时按下", []types.Key{types.KeyLeft, types.KeyRight}, "", 0.5, 400, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestRig(t, nil, nil)
			for _, k := range tt.keys {
				rig.keys[k] = true
			}
			if tt.gift != "" {
				rig.spawnGift(t, tt.gift, 10)
			}

			rig.battle.Players.Update(rig.battle.PlayerID(), tt.dt)

			pos := position(rig.em(), rig.battle.PlayerID())
			if !almostEqual(pos.X, tt.wantX) || !almostEqual(pos.Y, tt.wantY) {
				t.Errorf("position: got (%v, %v), want (%v, %v)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPlayerCollisions(t *testing.T) {
	tests := []struct {
		name          string
		offsetX       float64
		fromPlayer    bool
		variant       types.BulletVariant
		shield        bool
		wantDamage    float64
		wantExploding bool
	}{
		{"敌方炮弹命中", 0, false, types.BulletCannon, false, 512, false},
		{"敌方导弹命中后爆炸", 0, false, types.BulletMissile, false, 512, true},
		{"己方子弹不伤害玩家", 0, true, types.BulletCannon, false, 0, false},
		{"机身外未命中", 55, false, types.BulletCannon, false, 0, false},
		{"护盾扩大碰撞范围并减伤", 55, false, types.BulletCannon, true, 51.2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestRig(t, nil, nil)
			p := rig.battle.Player()
			if tt.shield {
				rig.spawnGift(t, types.GiftCenturyShield, 10)
				rig.battle.Players.RecomputeAggregates(p)
			}
			health := p.Health

			at := utils.Vec2{X: 400 + tt.offsetX, Y: 500}
			var bid ecs.EntityID
			if tt.variant == types.BulletMissile {
				bid = rig.battle.Factory().NewMissile(at, utils.Vec2{X: 0, Y: 1}, types.ArchetypeEnemyMissile, tt.fromPlayer, 200, 512, 0.4)
			} else {
				bid = rig.battle.Factory().NewCannon(at, utils.Vec2{X: 0, Y: 1}, types.ArchetypeEnemyBullet, tt.fromPlayer, 200, 512, false)
			}

			rig.battle.Players.ResolveCollisions(rig.battle.PlayerID())

			if got := health - p.Health; !almostEqual(got, tt.wantDamage) {
				t.Errorf("damage: got %v, want %v", got, tt.wantDamage)
			}
			b := bullet(rig.em(), bid)
			if b.Exploding != tt.wantExploding {
				t.Errorf("Exploding: got %v, want %v", b.Exploding, tt.wantExploding)
			}
			if hit := tt.wantDamage > 0; b.Available == hit {
				t.Errorf("bullet Available: got %v, want %v", b.Available, !hit)
			}
		})
	}
}

func TestPlayerShoot(t *testing.T) {
	t.Run("间隔未到不开火", func(t *testing.T) {
		rig := newTestRig(t, nil, nil)
		rig.battle.Players.Shoot(rig.battle.PlayerID())
		if n := len(ecsBullets(rig)); n != 0 {
			t.Errorf("bullets: got %d, want 0", n)
		}
	})

	t.Run("双管射击", func(t *testing.T) {
		rig := newTestRig(t, nil, nil)
		rig.clock.Advance(0.128)
		rig.battle.Players.Shoot(rig.battle.PlayerID())

		ids := ecsBullets(rig)
		if len(ids) != 2 {
			t.Fatalf("bullets: got %d, want 2", len(ids))
		}
		for _, id := range ids {
			b := bullet(rig.em(), id)
			if !b.FromPlayer || b.Charming || b.Direction.Y != -1 {
				t.Errorf("player bullet: got FromPlayer=%v Charming=%v dir=%+v", b.FromPlayer, b.Charming, b.Direction)
			}
		}
		if len(rig.sound.played) != 0 {
			t.Errorf("normal shot should be silent, played %v", rig.sound.played)
		}
	})

	t.Run("火力全开追加散射", func(t *testing.T) {
		rig := newTestRig(t, nil, nil)
		rig.spawnGift(t, types.GiftFullFirePower, 10)
		p := rig.battle.Player()
		rig.battle.Players.RecomputeAggregates(p)

		rig.clock.Advance(0.03)
		rig.battle.Players.Shoot(rig.battle.PlayerID())

		super := 0
		for _, id := range ecsBullets(rig) {
			if bullet(rig.em(), id).Archetype == types.ArchetypePlayerSuperBullet {
				super++
			}
		}
		if n := len(ecsBullets(rig)); n != 8 {
			t.Errorf("bullets: got %d, want 8", n)
		}
		if super != 6 {
			t.Errorf("super bullets: got %d, want 6", super)
		}
		if rig.sound.count(types.SoundSuperBullet) != 1 {
			t.Errorf("super shot sound: got %d, want 1", rig.sound.count(types.SoundSuperBullet))
		}
	})

	t.Run("众志成城子弹附带魅惑", func(t *testing.T) {
		rig := newTestRig(t, nil, nil)
		rig.spawnGift(t, types.GiftAllMyPeople, 10)
		rig.battle.Players.RecomputeAggregates(rig.battle.Player())

		rig.clock.Advance(0.128)
		rig.battle.Players.Shoot(rig.battle.PlayerID())
		for _, id := range ecsBullets(rig) {
			if !bullet(rig.em(), id).Charming {
				t.Error("bullet should carry the charm flag")
			}
		}
	})
}

func TestPlayerRecover(t *testing.T) {
	rig := newTestRig(t, nil, nil)
	p := rig.battle.Player()
	p.Health = 100

	rig.clock.Advance(0.64)
	rig.battle.Players.Update(rig.battle.PlayerID(), 0.016)
	if p.Health != 108 {
		t.Errorf("health after recover: got %v, want 108", p.Health)
	}

	p.Health = p.MaxHealth - 1
	rig.clock.Advance(0.64)
	rig.battle.Players.Update(rig.battle.PlayerID(), 0.016)
	if p.Health != p.MaxHealth {
		t.Errorf("recover should cap at MaxHealth: got %v", p.Health)
	}
}

func TestPlayerDeath(t *testing.T) {
	rig := newTestRig(t, nil, nil)
	id := rig.battle.PlayerID()
	p := rig.battle.Player()
	p.Health = -10

	rig.battle.Players.Update(id, 0.016)
	if !p.Dying || p.Health != 0 {
		t.Fatalf("got Dying=%v Health=%v, want true/0", p.Dying, p.Health)
	}

	for i := 0; i < 4; i++ {
		rig.clock.Advance(0.4)
		rig.battle.Players.Update(id, 0.016)
	}
	if !p.Available || p.DeathFrameIdx != 4 {
		t.Fatalf("after 4 frames: got Available=%v idx=%d", p.Available, p.DeathFrameIdx)
	}

	rig.clock.Advance(0.4)
	rig.battle.Players.Update(id, 0.016)
	if p.Available || p.Dying {
		t.Errorf("player should be unavailable after the death animation")
	}
	if rig.sound.count(types.SoundPlayerDown) != 1 {
		t.Errorf("me_down sound: got %d, want 1", rig.sound.count(types.SoundPlayerDown))
	}
}

func TestPlayerTakeDamageNeverHeals(t *testing.T) {
	rig := newTestRig(t, nil, nil)
	p := &components.PlayerComponent{Health: 100, DamageMultiplier: 1}
	rig.battle.Players.TakeDamage(p, -50)
	if p.Health != 100 {
		t.Errorf("negative damage: got %v, want 100", p.Health)
	}
}
