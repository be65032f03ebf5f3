// Package entities 提供游戏实体的工厂函数
package entities

import (
	"fmt"

	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
)

// Factory 创建实体所需的共享依赖
// 所有实体的计时器共用同一个时钟，测试中注入 ManualClock 即可复现轨迹
type Factory struct {
	em    *ecs.EntityManager
	clock utils.Clock
	rng   *utils.Random
	cfg   *config.BalanceConfig
}

// NewFactory 创建实体工厂
//
// 参数：
//   - em: 实体管理器
//   - clock: 时钟，nil 时使用真实时钟
//   - rng: 随机服务
//   - cfg: 数值表
func NewFactory(em *ecs.EntityManager, clock utils.Clock, rng *utils.Random, cfg *config.BalanceConfig) (*Factory, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random service cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("balance config cannot be nil")
	}
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &Factory{em: em, clock: clock, rng: rng, cfg: cfg}, nil
}

// EntityManager 返回工厂使用的实体管理器
func (f *Factory) EntityManager() *ecs.EntityManager {
	return f.em
}

// Clock 返回工厂使用的时钟
func (f *Factory) Clock() utils.Clock {
	return f.clock
}

// Random 返回工厂使用的随机服务
func (f *Factory) Random() *utils.Random {
	return f.rng
}

// Balance 返回数值表
func (f *Factory) Balance() *config.BalanceConfig {
	return f.cfg
}

// NewTimer 创建使用工厂时钟的计时器
func (f *Factory) NewTimer() utils.Timer {
	return utils.NewTimer(f.clock)
}

// RestoredTimer 创建计时器并恢复已过时间
func (f *Factory) RestoredTimer(elapsed float64) utils.Timer {
	t := utils.NewTimer(f.clock)
	t.SetElapsedTime(elapsed)
	return t
}

// enemyLevel 查询等级配置
func (f *Factory) enemyLevel(level int) (*config.EnemyLevelConfig, error) {
	lc := f.cfg.Enemies.Level(level)
	if lc == nil {
		return nil, fmt.Errorf("unknown enemy level %d", level)
	}
	return lc, nil
}

// giftKind 查询道具配置
func (f *Factory) giftKind(kind types.GiftKind) (config.GiftKindConfig, error) {
	kc, ok := f.cfg.Gifts.Kinds[kind]
	if !ok {
		return config.GiftKindConfig{}, fmt.Errorf("unknown gift kind %q", kind)
	}
	return kc, nil
}
