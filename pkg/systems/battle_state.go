package systems

import (
	"github.com/decker502/thunderwings/pkg/ecs"
	"github.com/decker502/thunderwings/pkg/utils"
)

// MaxEnemyLevel 最高敌机等级（Boss）
const MaxEnemyLevel = 3

// BattleState 一局战斗的全局簿记
type BattleState struct {
	DeltaTimer utils.Timer // 上一帧以来的时间
	GiftTimer  utils.Timer // 道具掉落间隔
	SpawnTimer utils.Timer // 刷怪间隔

	TimeElapsed       float64 // 战斗总时长（暂停期间不累计）
	Killed            int     // 击杀数（魅惑也计入）
	BossWaveTriggered bool    // Boss 波次只触发一次

	// EnemyCount 按等级统计的同屏敌机数（下标即等级，被魅惑的敌机不计入）
	EnemyCount [MaxEnemyLevel + 1]int

	// BossID 当前存活的 Boss，每帧重新解析，0 表示没有
	BossID ecs.EntityID
}

// NewBattleState 创建战斗簿记，所有计时器使用同一个时钟
func NewBattleState(clock utils.Clock) *BattleState {
	return &BattleState{
		DeltaTimer: utils.NewTimer(clock),
		GiftTimer:  utils.NewTimer(clock),
		SpawnTimer: utils.NewTimer(clock),
	}
}

// countEnemy 登记新敌机
func (s *BattleState) countEnemy(level int) {
	if level >= 1 && level <= MaxEnemyLevel {
		s.EnemyCount[level]++
	}
}

// uncountEnemy 注销敌机，计数不会小于 0
func (s *BattleState) uncountEnemy(level int) {
	if level >= 1 && level <= MaxEnemyLevel && s.EnemyCount[level] > 0 {
		s.EnemyCount[level]--
	}
}
