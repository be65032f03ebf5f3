package systems

import (
	"testing"

	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
)

// fakeSound 记录播放过的音效
type fakeSound struct {
	played []string
}

func (f *fakeSound) PlaySound(id string) bool {
	f.played = append(f.played, id)
	return true
}

// count 某个音效被播放的次数
func (f *fakeSound) count(id string) int {
	n := 0
	for _, p := range f.played {
		if p == id {
			n++
		}
	}
	return n
}

// fakeFrames 存在的动画帧集合
type fakeFrames map[string]bool

func (f fakeFrames) HasImage(id string) bool { return f[id] }

// fakeKeys 按下的方向键集合
type fakeKeys map[types.Key]bool

func (k fakeKeys) IsKeyPressed(key types.Key) bool { return k[key] }

// testRig 一局使用手动时钟和固定种子的战斗
type testRig struct {
	battle *Battle
	clock  *utils.ManualClock
	sound  *fakeSound
	keys   fakeKeys
}

// newTestRig 创建测试战斗，可通过 tune 修改数值表
func newTestRig(t *testing.T, frames FrameProber, tune func(cfg *config.BalanceConfig)) *testRig {
	t.Helper()
	cfg := config.DefaultBalance()
	if tune != nil {
		tune(cfg)
	}
	rig := &testRig{
		clock: utils.NewManualClock(),
		sound: &fakeSound{},
		keys:  fakeKeys{},
	}
	b, err := NewBattle(BattleDeps{
		Balance:  cfg,
		Clock:    rig.clock,
		Random:   utils.NewRandom(42),
		Sound:    rig.sound,
		Frames:   frames,
		Keyboard: rig.keys,
	})
	if err != nil {
		t.Fatalf("NewBattle failed: %v", err)
	}
	rig.battle = b
	return rig
}

func (r *testRig) em() *ecs.EntityManager {
	return r.battle.EntityManager()
}

// spawnEnemy 创建指定等级的敌机
func (r *testRig) spawnEnemy(t *testing.T, level int, x, y float64) (ecs.EntityID, *components.EnemyComponent) {
	t.Helper()
	id, err := r.battle.Factory().NewEnemy(level, x, y)
	if err != nil {
		t.Fatalf("NewEnemy(%d) failed: %v", level, err)
	}
	e, _ := ecs.GetComponent[*components.EnemyComponent](r.em(), id)
	return id, e
}

// spawnGift 创建指定剩余时间的道具
func (r *testRig) spawnGift(t *testing.T, kind types.GiftKind, remaining float64) *components.GiftComponent {
	t.Helper()
	id, err := r.battle.Factory().NewGiftWithLifetime(kind, remaining)
	if err != nil {
		t.Fatalf("NewGiftWithLifetime(%s) failed: %v", kind, err)
	}
	g, _ := ecs.GetComponent[*components.GiftComponent](r.em(), id)
	return g
}

// enemyCenter 敌机碰撞盒中心（用于把子弹放到敌机身上）
func (r *testRig) enemyCenter(id ecs.EntityID) utils.Vec2 {
	return r.battle.Enemies.bounds(id).Center()
}

func position(em *ecs.EntityManager, id ecs.EntityID) *components.PositionComponent {
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	return pos
}

func bullet(em *ecs.EntityManager, id ecs.EntityID) *components.BulletComponent {
	b, _ := ecs.GetComponent[*components.BulletComponent](em, id)
	return b
}

// bulletsByVariant 按变体统计可碰撞的子弹
func bulletsByVariant(em *ecs.EntityManager) map[types.BulletVariant]int {
	counts := make(map[types.BulletVariant]int)
	for _, id := range ecs.GetEntitiesWith1[*components.BulletComponent](em) {
		if b := bullet(em, id); b.Collidable() {
			counts[b.Variant]++
		}
	}
	return counts
}

// countEnemies 按等级统计实体数量
func countEnemies(em *ecs.EntityManager) map[int]int {
	counts := make(map[int]int)
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](em) {
		e, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		counts[e.Level]++
	}
	return counts
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}

func ecsOscillation(r *testRig, id ecs.EntityID) (*components.OscillationComponent, bool) {
	return ecs.GetComponent[*components.OscillationComponent](r.em(), id)
}

func ecsBullets(r *testRig) []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.BulletComponent](r.em())
}

func ecsGifts(r *testRig) []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.GiftComponent](r.em())
}

func giftComponent(r *testRig, id ecs.EntityID) *components.GiftComponent {
	g, _ := ecs.GetComponent[*components.GiftComponent](r.em(), id)
	return g
}
