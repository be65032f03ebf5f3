package utils

import "time"

// Clock 时间源
// 生产环境使用 RealClock（单调时钟），测试中注入 ManualClock 以获得可复现的计时
type Clock interface {
	Now() time.Time
}

// RealClock 基于 time.Now 的单调时钟
type RealClock struct{}

// Now 返回当前时间（携带单调时钟读数）
func (RealClock) Now() time.Time {
	return time.Now()
}

// ManualClock 手动推进的时钟
// 仅在 Advance 被调用时前进，用于测试与无头模拟
type ManualClock struct {
	now time.Time
}

// NewManualClock 创建一个从固定起点开始的手动时钟
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(0, 0)}
}

// Now 返回当前时间
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance 将时钟推进指定秒数
func (c *ManualClock) Advance(seconds float64) {
	c.now = c.now.Add(time.Duration(seconds * float64(time.Second)))
}

// Timer 带偏移量的计时器
//
// 已过时间 = 自上次重启以来的时钟时间 + 偏移量。
// 偏移量只在反序列化时通过 SetElapsedTime 设置，使恢复后的阈值判断
// （HasElapsed）与保存前保持一致。
type Timer struct {
	clock  Clock
	start  time.Time
	offset float64
}

// NewTimer 创建并立即启动计时器
// clock 为 nil 时使用 RealClock
func NewTimer(clock Clock) Timer {
	if clock == nil {
		clock = RealClock{}
	}
	return Timer{clock: clock, start: clock.Now()}
}

// Restart 重启计时器：已过时间归零，偏移量归零
func (t *Timer) Restart() {
	t.ensureClock()
	t.offset = 0
	t.start = t.clock.Now()
}

// ElapsedTime 返回已过时间（秒）
func (t *Timer) ElapsedTime() float64 {
	t.ensureClock()
	return t.clock.Now().Sub(t.start).Seconds() + t.offset
}

// SetElapsedTime 恢复已过时间
// 重置底层时钟并将偏移量设为 seconds，之后的读数从该值继续增长
func (t *Timer) SetElapsedTime(seconds float64) {
	t.ensureClock()
	t.offset = seconds
	t.start = t.clock.Now()
}

// HasElapsed 判断已过时间是否达到 seconds
func (t *Timer) HasElapsed(seconds float64) bool {
	return t.ElapsedTime() >= seconds
}

// ensureClock 零值 Timer 退化为使用真实时钟
func (t *Timer) ensureClock() {
	if t.clock == nil {
		t.clock = RealClock{}
		t.start = t.clock.Now()
	}
}
