package utils

import (
	"testing"
)

func TestTimerElapsed(t *testing.T) {
	clock := NewManualClock()
	timer := NewTimer(clock)

	if got := timer.ElapsedTime(); got != 0 {
		t.Errorf("ElapsedTime at start: got %v, want 0", got)
	}

	clock.Advance(1.5)
	if got := timer.ElapsedTime(); got != 1.5 {
		t.Errorf("ElapsedTime: got %v, want 1.5", got)
	}
	if !timer.HasElapsed(1.5) || timer.HasElapsed(1.6) {
		t.Error("HasElapsed threshold is inclusive")
	}

	timer.Restart()
	if got := timer.ElapsedTime(); got != 0 {
		t.Errorf("ElapsedTime after Restart: got %v, want 0", got)
	}
}

func TestTimerSetElapsedTime(t *testing.T) {
	tests := []struct {
		name    string
		restore float64
		advance float64
		want    float64
	}{
		{"恢复后立即读取", 0.5, 0, 0.5},
		{"恢复后继续计时", 0.5, 0.25, 0.75},
		{"恢复为零", 0, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewManualClock()
			timer := NewTimer(clock)
			clock.Advance(10)

			timer.SetElapsedTime(tt.restore)
			clock.Advance(tt.advance)

			if got := timer.ElapsedTime(); got != tt.want {
				t.Errorf("ElapsedTime: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimerRestartClearsOffset(t *testing.T) {
	clock := NewManualClock()
	timer := NewTimer(clock)
	timer.SetElapsedTime(3)

	timer.Restart()
	clock.Advance(0.5)

	if got := timer.ElapsedTime(); got != 0.5 {
		t.Errorf("ElapsedTime: got %v, want 0.5", got)
	}
}

func TestTimerZeroValue(t *testing.T) {
	var timer Timer
	if got := timer.ElapsedTime(); got < 0 || got > 1 {
		t.Errorf("zero Timer should start counting on first use, got %v", got)
	}
	if timer.clock == nil {
		t.Error("zero Timer should fall back to the real clock")
	}
}
