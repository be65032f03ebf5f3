package systems

import (
	"github.com/decker502/thunderwings/pkg/components"
	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/types"
)

// GiftSystem 道具倒计时、消失预警和过期清理
type GiftSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.BalanceConfig
	sound         SoundPlayer
}

// NewGiftSystem 创建道具系统
func NewGiftSystem(em *ecs.EntityManager, cfg *config.BalanceConfig, sound SoundPlayer) *GiftSystem {
	if sound == nil {
		sound = NopSound{}
	}
	return &GiftSystem{entityManager: em, cfg: cfg, sound: sound}
}

// Update 推进所有道具，清理已过期的道具
func (s *GiftSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.GiftComponent](s.entityManager) {
		g, _ := ecs.GetComponent[*components.GiftComponent](s.entityManager, id)
		if !g.Available {
			s.entityManager.DestroyEntity(id)
			continue
		}
		s.Advance(g, deltaTime)
	}
}

// Advance 推进单个道具
//
// 剩余时间降到阈值以下进入消失阶段，阶段内两次预警音效各播放一次；
// 剩余时间耗尽后失效并播放过期音效。
func (s *GiftSystem) Advance(g *components.GiftComponent, deltaTime float64) {
	if !g.Available {
		return
	}
	gc := s.cfg.Gifts

	g.RemainingTime -= deltaTime
	if !g.Disappearing && g.RemainingTime <= gc.DisappearThreshold {
		g.DisappearTimer.Restart()
		g.Disappearing = true
	}
	if g.Disappearing {
		if !g.FirstWarningPlayed && g.DisappearTimer.HasElapsed(gc.FirstWarning) {
			s.sound.PlaySound(types.SoundGiftDisappear1)
			g.FirstWarningPlayed = true
		} else if !g.SecondWarningPlayed && g.DisappearTimer.HasElapsed(gc.SecondWarning) {
			s.sound.PlaySound(types.SoundGiftDisappear1)
			g.SecondWarningPlayed = true
		}
	}
	if g.RemainingTime <= 0 {
		g.Available = false
		s.sound.PlaySound(types.SoundGiftDisappear2)
	}
}

// Active 按获得顺序返回生效中的道具
func (s *GiftSystem) Active() []*components.GiftComponent {
	var gifts []*components.GiftComponent
	for _, id := range ecs.GetEntitiesWith1[*components.GiftComponent](s.entityManager) {
		g, _ := ecs.GetComponent[*components.GiftComponent](s.entityManager, id)
		if g.Available {
			gifts = append(gifts, g)
		}
	}
	return gifts
}
