package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updates   int
	draws     int
	entered   int
	deltaTime float64
	err       error
	onUpdate  func()
}

func (m *MockScene) Update(deltaTime float64) error {
	m.updates++
	m.deltaTime = deltaTime
	if m.onUpdate != nil {
		m.onUpdate()
	}
	return m.err
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.draws++
}

func (m *MockScene) OnEnter() {
	m.entered++
}

// TestSceneManager_FirstSwitchIsImmediate 没有活动场景时立即切换
func TestSceneManager_FirstSwitchIsImmediate(t *testing.T) {
	sm := NewSceneManager()
	menu := &MockScene{}

	sm.SwitchTo("menu", menu)

	if sm.GetCurrentScene() != menu {
		t.Error("SwitchTo did not set the initial scene")
	}
	if sm.CurrentName() != "menu" {
		t.Errorf("CurrentName: got %q, want menu", sm.CurrentName())
	}
	if menu.entered != 1 {
		t.Errorf("OnEnter calls: got %d, want 1", menu.entered)
	}
}

// TestSceneManager_SwitchDuringUpdate 更新中请求的切换在下一帧生效
func TestSceneManager_SwitchDuringUpdate(t *testing.T) {
	sm := NewSceneManager()
	battle := &MockScene{}
	menu := &MockScene{}
	menu.onUpdate = func() { sm.SwitchTo("battle", battle) }
	sm.SwitchTo("menu", menu)

	if err := sm.Update(1.0 / 60); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if sm.GetCurrentScene() != menu {
		t.Error("switch should not take effect within the same update")
	}

	if err := sm.Update(1.0 / 60); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if sm.GetCurrentScene() != battle {
		t.Error("switch should take effect on the next update")
	}
	if battle.updates != 1 || battle.entered != 1 {
		t.Errorf("battle: got updates=%d entered=%d, want 1 and 1", battle.updates, battle.entered)
	}
	if menu.updates != 1 {
		t.Errorf("menu updates: got %d, want 1", menu.updates)
	}
}

// TestSceneManager_UpdateError 场景错误被包装后返回
func TestSceneManager_UpdateError(t *testing.T) {
	sm := NewSceneManager()
	boom := errors.New("boom")
	sm.SwitchTo("battle", &MockScene{err: boom})

	if err := sm.Update(0.016); !errors.Is(err, boom) {
		t.Errorf("Update error: got %v, want wrapped boom", err)
	}
}

// TestSceneManager_NoScene 没有活动场景时 Update/Draw 不做任何事
func TestSceneManager_NoScene(t *testing.T) {
	sm := NewSceneManager()
	if err := sm.Update(0.016); err != nil {
		t.Errorf("Update without scene: got %v", err)
	}
	sm.Draw(nil)

	sm.Terminate()
	if !sm.Terminated() {
		t.Error("Terminated: got false after Terminate")
	}
}
