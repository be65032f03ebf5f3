package game

import (
	"errors"
	"time"
)

// BattleSaveVersion 战斗存档版本号
// 数据结构发生不兼容变更时递增
const BattleSaveVersion = 1

var (
	// ErrNoSavedBattle 指定槽位没有存档
	ErrNoSavedBattle = errors.New("no saved battle")
	// ErrIncompatibleSave 存档版本与当前版本不一致
	ErrIncompatibleSave = errors.New("incompatible save version")
)

// BattleSaveData 战斗存档
//
// 使用 YAML 编码。实体列表按创建顺序排列，恢复时保持同样的顺序；
// 计时器只保存已过时间，恢复时通过 Timer.SetElapsedTime 续上。
type BattleSaveData struct {
	Version   int       `yaml:"version"`
	SaveTime  time.Time `yaml:"saveTime"`
	SessionID string    `yaml:"sessionId"`

	DeltaTime         float64 `yaml:"deltaTime"`
	GiftTime          float64 `yaml:"giftTime"`
	SpawnTime         float64 `yaml:"spawnTime"`
	TimeElapsed       float64 `yaml:"timeElapsed"`
	Killed            int     `yaml:"killed"`
	BossWaveTriggered bool    `yaml:"bossWaveTriggered"`

	Bullets []BulletData `yaml:"bullets"`
	Enemies []EnemyData  `yaml:"enemies"`
	Player  PlayerData   `yaml:"player"`
	Gifts   []GiftData   `yaml:"gifts"`
}

// Vec2Data 二维向量
type Vec2Data struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BulletData 子弹记录，Type 为 "Cannon" / "Missile" / "Rocket"
type BulletData struct {
	Type       string   `yaml:"type"`
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	Avail      bool     `yaml:"avail"`
	FromPlayer bool     `yaml:"from_player"`
	Damage     float64  `yaml:"damage"`
	DamageRate float64  `yaml:"damageRate"`
	Time       float64  `yaml:"time"` // 发射后经过的时间
	Direction  Vec2Data `yaml:"direction"`
	Speed      float64  `yaml:"speed"`
	ID         int      `yaml:"id"` // 外观原型
	Charming   bool     `yaml:"charming,omitempty"`
	Tracking   float64  `yaml:"tracking,omitempty"` // 仅追踪弹
}

// EnemyData 敌机记录，Level 为 1 / 2 / 3
// 摆动参数只有 2/3 级敌机才有
type EnemyData struct {
	Level        int     `yaml:"level"`
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Avail        bool    `yaml:"avail"`
	Health       float64 `yaml:"health"`
	MaxHealth    float64 `yaml:"maxHealth"`
	KillBonus    float64 `yaml:"killBonus"`
	Speed        float64 `yaml:"speed"`
	BulletSpeed  float64 `yaml:"bulletspeed"`
	ShotGap      float64 `yaml:"current_shot_gap"`
	Damage       float64 `yaml:"damage"`
	Charmed      bool    `yaml:"charmed"`
	BonusTaken   bool    `yaml:"bonusTaken"`
	ShotTime     float64 `yaml:"shotTime"`
	ShootCounter int     `yaml:"shootCounter,omitempty"`

	VerticalAmplitude float64 `yaml:"verticalAmplitude,omitempty"`
	VerticalFrequency float64 `yaml:"verticalFrequency,omitempty"`
	VerticalCenter    float64 `yaml:"verticalCenter,omitempty"`
	Time              float64 `yaml:"time,omitempty"` // 摆动相位计时
	RecoverRate       float64 `yaml:"recoverRate,omitempty"`
}

// PlayerData 玩家记录
type PlayerData struct {
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Avail         bool    `yaml:"avail"`
	Health        float64 `yaml:"health"`
	Damage        float64 `yaml:"damage"`
	ShotGap       float64 `yaml:"current_shot_gap"`
	RecoverHealth float64 `yaml:"recover_health"`
}

// GiftData 道具记录，Name 为道具种类
type GiftData struct {
	Name                string  `yaml:"name"`
	Avail               bool    `yaml:"avail"`
	DamageReduction     float64 `yaml:"damageReduction"`
	AttackSpeedIncrease float64 `yaml:"attackSpeedIncrease"`
	SpeedIncrease       float64 `yaml:"speedIncrease"`
	Charming            bool    `yaml:"charming"`
	RemainingTime       float64 `yaml:"remainingTime"`
	MaxTime             float64 `yaml:"maxTime"`
	Disappearing        bool    `yaml:"disappearing"`
	DisappearingTime    float64 `yaml:"disappearingTime"`
	Sound1Played        bool    `yaml:"disappearingSound1Played"`
	Sound2Played        bool    `yaml:"disappearingSound2Played"`
}

// NewBattleSaveData 创建带版本号的空存档
func NewBattleSaveData() *BattleSaveData {
	return &BattleSaveData{
		Version:  BattleSaveVersion,
		SaveTime: time.Now(),
		Bullets:  []BulletData{},
		Enemies:  []EnemyData{},
		Gifts:    []GiftData{},
	}
}
