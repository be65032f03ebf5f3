package utils

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// ErrInvalidArgument 随机服务的参数错误（空集合、长度不匹配、概率越界）
// 属于编程错误，调用方不应静默吞掉
var ErrInvalidArgument = errors.New("invalid argument")

// Number 可用于区间采样的数值类型
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Random 随机服务
// 所有生成/掉落决策共用一个生成器；游戏循环是单线程的，因此不加锁
type Random struct {
	rng *rand.Rand
}

// NewRandom 使用固定种子创建随机服务（相同种子产生相同序列）
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomFromTime 使用当前时间作为种子
func NewRandomFromTime() *Random {
	return NewRandom(uint64(time.Now().UnixNano()))
}

// Float64 返回 [0,1) 上的均匀采样
func (r *Random) Float64() float64 {
	return r.rng.Float64()
}

// IntN 返回 [0,n) 上的均匀整数，n <= 0 时返回 0
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

// ChooseWithProb 伯努利试验：以概率 p 返回 true
// p 不在 [0,1] 内时返回 ErrInvalidArgument
func (r *Random) ChooseWithProb(p float64) (bool, error) {
	if !(p >= 0 && p <= 1) {
		return false, fmt.Errorf("probability %v must be between 0 and 1: %w", p, ErrInvalidArgument)
	}
	return r.rng.Float64() < p, nil
}

// GenerateInRange 闭区间 [min,max] 上的均匀采样
// 整数类型包含两端；浮点类型按连续分布采样
func GenerateInRange[T Number](r *Random, min, max T) T {
	if max < min {
		min, max = max, min
	}
	half := 0.5
	if T(half) != 0 {
		return min + T(r.rng.Float64()*float64(max-min))
	}
	span := int64(max-min) + 1
	return min + T(r.rng.Int64N(span))
}

// GenerateFromSet 从集合中均匀选取一个元素
func GenerateFromSet[T any](r *Random, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("set cannot be empty: %w", ErrInvalidArgument)
	}
	return items[r.rng.IntN(len(items))], nil
}

// GenerateFromSetWithProb 按权重从集合中选取一个元素
//
// 权重会先归一化（允许传入比例，如 20/25/15/40），然后对 [0,1) 上的均匀
// 采样做累积和阈值查找。权重为 0 的元素永远不会被选中。
func GenerateFromSetWithProb[T any](r *Random, items []T, weights []float64) (T, error) {
	var zero T
	if len(items) == 0 || len(items) != len(weights) {
		return zero, fmt.Errorf("set (%d) and weights (%d) must have the same size and cannot be empty: %w",
			len(items), len(weights), ErrInvalidArgument)
	}
	idx, err := weightedIndex(weights, r.rng.Float64())
	if err != nil {
		return zero, err
	}
	return items[idx], nil
}

// weightedIndex 返回第一个累积归一化权重严格大于 draw 的下标
func weightedIndex(weights []float64, draw float64) (int, error) {
	total := 0.0
	for i, w := range weights {
		if !(w >= 0) || math.IsInf(w, 1) {
			return 0, fmt.Errorf("weight[%d]=%v must be a finite non-negative number: %w", i, w, ErrInvalidArgument)
		}
		total += w
	}
	if total <= 0 {
		return 0, fmt.Errorf("weights must not all be zero: %w", ErrInvalidArgument)
	}

	cumulative := 0.0
	last := 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		last = i
		cumulative += w / total
		if cumulative > draw {
			return i, nil
		}
	}
	// 浮点舍入导致累积和略小于 1 时，落到最后一个非零权重
	return last, nil
}
