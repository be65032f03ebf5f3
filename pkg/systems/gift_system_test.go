package systems

import (
	"testing"

	"github.com/decker502/thunderwings/pkg/types"
)

func TestGiftDisappearing(t *testing.T) {
	tests := []struct {
		name    string
		elapsed float64
		want    bool
	}{
		{"剩余时间充足", 6.4, false},
		{"到达消失阈值", 6.5, true},
		{"接近过期", 9.9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestRig(t, nil, nil)
			g := rig.spawnGift(t, types.GiftSpeedStorm, 10)

			rig.battle.Gifts.Advance(g, tt.elapsed)

			if g.Disappearing != tt.want {
				t.Errorf("Disappearing after %vs: got %v, want %v", tt.elapsed, g.Disappearing, tt.want)
			}
			if !g.Available {
				t.Error("gift should still be available")
			}
		})
	}
}

func TestGiftWarningsAndExpiry(t *testing.T) {
	rig := newTestRig(t, nil, nil)
	gifts := rig.battle.Gifts
	g := rig.spawnGift(t, types.GiftCenturyShield, 10)

	gifts.Advance(g, 6.5)
	gifts.Advance(g, 0)
	if n := rig.sound.count(types.SoundGiftDisappear1); n != 0 {
		t.Fatalf("warning before 0.72s: got %d plays", n)
	}

	rig.clock.Advance(0.72)
	gifts.Advance(g, 0)
	gifts.Advance(g, 0)
	if n := rig.sound.count(types.SoundGiftDisappear1); n != 1 {
		t.Fatalf("first warning: got %d plays, want 1", n)
	}

	rig.clock.Advance(1)
	gifts.Advance(g, 0)
	gifts.Advance(g, 0)
	if n := rig.sound.count(types.SoundGiftDisappear1); n != 2 {
		t.Fatalf("second warning: got %d plays, want 2", n)
	}

	gifts.Advance(g, 3.5)
	if g.Available {
		t.Error("gift should expire when remaining time runs out")
	}
	if n := rig.sound.count(types.SoundGiftDisappear2); n != 1 {
		t.Errorf("expiry sound: got %d plays, want 1", n)
	}
}

func TestGiftUpdateRemovesExpired(t *testing.T) {
	rig := newTestRig(t, nil, nil)
	rig.spawnGift(t, types.GiftFullFirePower, 1)
	rig.spawnGift(t, types.GiftSpeedStorm, 10)

	rig.battle.Gifts.Update(1.5)
	active := rig.battle.Gifts.Active()
	if len(active) != 1 || active[0].Kind != types.GiftSpeedStorm {
		t.Fatalf("Active after expiry: got %d gifts", len(active))
	}

	rig.battle.Gifts.Update(0.016)
	rig.em().RemoveMarkedEntities()
	if n := len(ecsGifts(rig)); n != 1 {
		t.Errorf("gift entities after removal: got %d, want 1", n)
	}
}

func TestGiftProgress(t *testing.T) {
	rig := newTestRig(t, nil, nil)
	g := rig.spawnGift(t, types.GiftAllMyPeople, 8)

	rig.battle.Gifts.Advance(g, 2)
	if got := g.Progress(); !almostEqual(got, 0.75) {
		t.Errorf("Progress: got %v, want 0.75", got)
	}
}

func TestNewGiftLifetime(t *testing.T) {
	rig := newTestRig(t, nil, nil)
	for i := 0; i < 50; i++ {
		for _, kind := range types.AllGiftKinds {
			id, err := rig.battle.Factory().NewGift(kind)
			if err != nil {
				t.Fatalf("NewGift(%s) failed: %v", kind, err)
			}
			g := giftComponent(rig, id)
			min, max := 7.0, 10.0
			if kind == types.GiftAllMyPeople {
				min, max = 12, 15
			}
			if g.RemainingTime < min || g.RemainingTime > max || g.RemainingTime != float64(int(g.RemainingTime)) {
				t.Fatalf("%s lifetime: got %v, want integer in [%v, %v]", kind, g.RemainingTime, min, max)
			}
		}
	}
}
