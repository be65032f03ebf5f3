package entities

import (
	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/types"
	"github.com/decker502/thunderwings/pkg/utils"
)

// NewGift 创建生效中的增益道具
// 剩余时间在 [lifetime.min, lifetime.max] 内取整数秒，部分道具会额外延长
func (f *Factory) NewGift(kind types.GiftKind) (ecs.EntityID, error) {
	kc, err := f.giftKind(kind)
	if err != nil {
		return 0, err
	}

	lifetime := f.cfg.Gifts.Lifetime
	remaining := float64(utils.GenerateInRange(f.rng, int(lifetime.Min), int(lifetime.Max)))
	remaining += kc.LifetimeExtension

	return f.SpawnGift(&components.GiftComponent{
		Kind:                kind,
		DamageReduction:     kc.DamageReduction,
		AttackSpeedIncrease: kc.AttackSpeedIncrease,
		SpeedIncrease:       kc.SpeedIncrease,
		Charming:            kc.Charming,
		RemainingTime:       remaining,
		MaxTime:             remaining,
		DisappearTimer:      f.NewTimer(),
		Available:           true,
	}), nil
}

// NewGiftWithLifetime 创建指定剩余时间的道具（不做随机采样）
func (f *Factory) NewGiftWithLifetime(kind types.GiftKind, remaining float64) (ecs.EntityID, error) {
	kc, err := f.giftKind(kind)
	if err != nil {
		return 0, err
	}
	return f.SpawnGift(&components.GiftComponent{
		Kind:                kind,
		DamageReduction:     kc.DamageReduction,
		AttackSpeedIncrease: kc.AttackSpeedIncrease,
		SpeedIncrease:       kc.SpeedIncrease,
		Charming:            kc.Charming,
		RemainingTime:       remaining,
		MaxTime:             remaining,
		DisappearTimer:      f.NewTimer(),
		Available:           true,
	}), nil
}

// SpawnGift 将道具状态挂载到新实体上（也用于读档恢复）
func (f *Factory) SpawnGift(g *components.GiftComponent) ecs.EntityID {
	id := f.em.CreateEntity()
	f.em.AddComponent(id, g)
	return id
}
