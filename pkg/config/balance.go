package config

import (
	"fmt"

	"github.com/decker502/thunderwings/pkg/embedded"
	"github.com/decker502/thunderwings/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultBalancePath 内嵌数值表路径
const DefaultBalancePath = "data/balance.yaml"

// Range 闭区间取值范围
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Size 碰撞尺寸
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScreenConfig 逻辑屏幕尺寸
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig 玩家战机数值
type PlayerConfig struct {
	Speed              float64 `yaml:"speed"`              // 移动速度（像素/秒）
	MaxHealth          float64 `yaml:"maxHealth"`          // 最大生命值
	InitialHealthRatio float64 `yaml:"initialHealthRatio"` // 开局生命值占最大生命值的比例
	Damage             float64 `yaml:"damage"`             // 单发伤害
	ShotGap            float64 `yaml:"shotGap"`            // 射击间隔（秒）
	RecoverHealth      float64 `yaml:"recoverHealth"`      // 每次回复量
	RecoverInterval    float64 `yaml:"recoverInterval"`    // 回复间隔（秒）
	StartX             float64 `yaml:"startX"`
	StartY             float64 `yaml:"startY"`
	Size               Size    `yaml:"size"`
	ShieldSize         Size    `yaml:"shieldSize"` // 护盾生效时的碰撞尺寸

	BulletSpeed        float64 `yaml:"bulletSpeed"`
	TwinOffsetX        float64 `yaml:"twinOffsetX"`   // 双管相对机身中心的水平偏移
	MuzzleOffsetY      float64 `yaml:"muzzleOffsetY"` // 炮口相对机身中心的垂直偏移
	SuperBulletCount   int     `yaml:"superBulletCount"`
	SuperBulletSpread  float64 `yaml:"superBulletSpread"` // 散射弹水平方向分量范围 [-spread, spread]
	SuperBulletSpeed   float64 `yaml:"superBulletSpeed"`
	SuperMuzzleOffsetY float64 `yaml:"superMuzzleOffsetY"`

	DeathFrames        int     `yaml:"deathFrames"`
	DeathFrameInterval float64 `yaml:"deathFrameInterval"`
}

// EnemyLevelConfig 单个敌机等级的数值范围
type EnemyLevelConfig struct {
	Level       int   `yaml:"level"`
	Health      Range `yaml:"health"`
	Speed       Range `yaml:"speed"`
	BulletSpeed Range `yaml:"bulletSpeed"`
	// BulletSpeedFactor 大于 0 时子弹速度 = 移动速度 × 系数，忽略 BulletSpeed
	BulletSpeedFactor float64 `yaml:"bulletSpeedFactor"`
	ShotGap           Range   `yaml:"shotGap"`
	Damage            float64 `yaml:"damage"`
	// KillBonus 为 0 时击杀奖励等于最大生命值
	KillBonus float64 `yaml:"killBonus"`
	Amplitude Range   `yaml:"amplitude"`
	Frequency Range   `yaml:"frequency"`
	Size      Size    `yaml:"size"`
	// HoldLineRatio 停留线（屏幕高度比例）：被魅惑敌机上升到此处后停住，Boss 下降到此处后停住
	HoldLineRatio float64 `yaml:"holdLineRatio"`
}

// Oscillates 是否做正弦摆动
func (c *EnemyLevelConfig) Oscillates() bool {
	return c.Amplitude.Max > 0 && c.Frequency.Max > 0
}

// BossConfig Boss 专属数值
type BossConfig struct {
	RecoverRate        float64 `yaml:"recoverRate"`        // 每秒回复量
	RecoverCapRatio    float64 `yaml:"recoverCapRatio"`    // 回复上限 = 最大生命值 × 比例
	VolleyCount        int     `yaml:"volleyCount"`        // 每轮弹幕数量
	VolleySpread       float64 `yaml:"volleySpread"`       // 弹幕水平方向分量范围
	CounterCycle       int     `yaml:"counterCycle"`       // 射击计数器周期
	DesperateHealth    float64 `yaml:"desperateHealth"`    // 低于该生命值时每次都发射导弹
	AggressiveRatio    float64 `yaml:"aggressiveRatio"`    // 低于该比例时导弹齐射数量翻倍
	RocketRatio        float64 `yaml:"rocketRatio"`        // 低于该比例时追加火箭齐射
	MissileDamageMul   float64 `yaml:"missileDamageMul"`   // 导弹伤害倍率
	RocketDamageMul    float64 `yaml:"rocketDamageMul"`    // 火箭伤害倍率
	MissileTrackingMin float64 `yaml:"missileTrackingMin"` // 第 i 对导弹追踪强度 = min + i × step
	MissileTrackingInc float64 `yaml:"missileTrackingInc"`
}

// CharmConfig 魅惑转换参数
type CharmConfig struct {
	SpeedFactor   float64 `yaml:"speedFactor"` // 速度乘数（负值表示反向）
	HealthMul     float64 `yaml:"healthMul"`
	DamageMul     float64 `yaml:"damageMul"`
	RegenRate     float64 `yaml:"regenRate"`     // 被魅惑后的每秒回复量
	RegenCapRatio float64 `yaml:"regenCapRatio"` // 回复上限 = 最大生命值 × 比例
}

// EnemiesConfig 敌机数值
type EnemiesConfig struct {
	Levels             []EnemyLevelConfig `yaml:"levels"`
	Boss               BossConfig         `yaml:"boss"`
	Charm              CharmConfig        `yaml:"charm"`
	DeathFrameInterval float64            `yaml:"deathFrameInterval"`
	MaxDeathFrames     int                `yaml:"maxDeathFrames"` // 死亡帧探测上限
	MuzzleGap          float64            `yaml:"muzzleGap"`      // 子弹出生点与机身边缘的距离
}

// Level 返回指定等级的配置，不存在时返回 nil
func (c *EnemiesConfig) Level(level int) *EnemyLevelConfig {
	for i := range c.Levels {
		if c.Levels[i].Level == level {
			return &c.Levels[i]
		}
	}
	return nil
}

// MissileConfig 导弹参数
type MissileConfig struct {
	TrackingDuration float64 `yaml:"trackingDuration"`
	TrackingGrowth   float64 `yaml:"trackingGrowth"` // 追踪强度每秒增量
	TrackingAccel    float64 `yaml:"trackingAccel"`  // 追踪期间加速度
	CruiseAccel      float64 `yaml:"cruiseAccel"`    // 非追踪期间加速度
}

// RocketConfig 火箭参数
type RocketConfig struct {
	Tracking          float64 `yaml:"tracking"`
	TrackingDuration  float64 `yaml:"trackingDuration"`
	Accel             float64 `yaml:"accel"`
	DamageRateInitial float64 `yaml:"damageRateInitial"`
	DamageRate        float64 `yaml:"damageRate"`
	DamageRateDelay   float64 `yaml:"damageRateDelay"`
}

// BulletsConfig 子弹参数
type BulletsConfig struct {
	Missile         MissileConfig `yaml:"missile"`
	Rocket          RocketConfig  `yaml:"rocket"`
	ExplodeDuration float64       `yaml:"explodeDuration"`
	FlashDuration   float64       `yaml:"flashDuration"`
	// ArchetypeSizes 按原型ID排列的碰撞尺寸
	ArchetypeSizes []Size `yaml:"archetypeSizes"`
}

// SizeOf 原型碰撞尺寸（越界ID收敛到最后一个）
func (c *BulletsConfig) SizeOf(archetype types.BulletArchetype) Size {
	if len(c.ArchetypeSizes) == 0 {
		return Size{}
	}
	idx := int(archetype)
	if idx >= len(c.ArchetypeSizes) {
		idx = len(c.ArchetypeSizes) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return c.ArchetypeSizes[idx]
}

// GiftKindConfig 单种道具的效果
type GiftKindConfig struct {
	AttackSpeedIncrease float64 `yaml:"attackSpeedIncrease"`
	DamageReduction     float64 `yaml:"damageReduction"`
	Charming            bool    `yaml:"charming"`
	SpeedIncrease       float64 `yaml:"speedIncrease"`
	LifetimeExtension   float64 `yaml:"lifetimeExtension"`
	Ratio               float64 `yaml:"ratio"` // 掉落权重
}

// GiftsConfig 道具参数
type GiftsConfig struct {
	Lifetime           Range                             `yaml:"lifetime"`
	DisappearThreshold float64                           `yaml:"disappearThreshold"`
	FirstWarning       float64                           `yaml:"firstWarning"`
	SecondWarning      float64                           `yaml:"secondWarning"`
	Kinds              map[types.GiftKind]GiftKindConfig `yaml:"kinds"`
}

// BossWaveConfig Boss 波次（一次性集中刷怪）
type BossWaveConfig struct {
	TimeThreshold float64 `yaml:"timeThreshold"`
	Level1Count   int     `yaml:"level1Count"`
	Level2Count   int     `yaml:"level2Count"`
	BossCount     int     `yaml:"bossCount"`
}

// SpawnConfig 刷怪与掉落调度
type SpawnConfig struct {
	EnemyInterval      float64               `yaml:"enemyInterval"`
	BossEnemyInterval  float64               `yaml:"bossEnemyInterval"`
	LevelProbabilities []float64             `yaml:"levelProbabilities"` // 等级 1/2/3 的权重
	LevelCaps          []int                 `yaml:"levelCaps"`          // 等级 1/2/3 的同屏上限
	BossWave           BossWaveConfig        `yaml:"bossWave"`
	GiftInterval       float64               `yaml:"giftInterval"`
	GiftProbability    float64               `yaml:"giftProbability"`
	MaxGifts           int                   `yaml:"maxGifts"`
	MultiGiftCount     int                   `yaml:"multiGiftCount"`
	BossMultiGiftCount int                   `yaml:"bossMultiGiftCount"`
	HitTargetPolicy    types.HitTargetPolicy `yaml:"hitTargetPolicy"`
}

// HUDConfig 界面相关时长
type HUDConfig struct {
	InstructionDuration float64 `yaml:"instructionDuration"`
	GameOverDuration    float64 `yaml:"gameOverDuration"`
}

// BalanceConfig 全部数值表
type BalanceConfig struct {
	Screen  ScreenConfig  `yaml:"screen"`
	Player  PlayerConfig  `yaml:"player"`
	Enemies EnemiesConfig `yaml:"enemies"`
	Bullets BulletsConfig `yaml:"bullets"`
	Gifts   GiftsConfig   `yaml:"gifts"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	HUD     HUDConfig     `yaml:"hud"`
}

// LoadBalanceConfig 加载数值表
// 参数：
//
//	path - 以 "data/" 开头时从内嵌资源读取，否则从磁盘读取
//
// 返回：
//
//	*BalanceConfig - 解析并校验后的配置
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadBalanceConfig(path string) (*BalanceConfig, error) {
	data, err := embedded.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance file %s: %w", path, err)
	}

	cfg, err := ParseBalanceConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid balance file %s: %w", path, err)
	}
	return cfg, nil
}

// ParseBalanceConfig 解析数值表
// 文件中缺省的字段保留 DefaultBalance 中的值
func ParseBalanceConfig(data []byte) (*BalanceConfig, error) {
	cfg := DefaultBalance()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse balance YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验数值表的完整性和合法性
func (c *BalanceConfig) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	}
	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player maxHealth must be positive, got %v", c.Player.MaxHealth)
	}
	if c.Player.ShotGap <= 0 {
		return fmt.Errorf("player shotGap must be positive, got %v", c.Player.ShotGap)
	}
	if c.Player.DeathFrames < 0 {
		return fmt.Errorf("player deathFrames cannot be negative, got %d", c.Player.DeathFrames)
	}

	for level := 1; level <= 3; level++ {
		lc := c.Enemies.Level(level)
		if lc == nil {
			return fmt.Errorf("enemy level %d is missing", level)
		}
		if lc.Health.Min <= 0 || lc.Health.Max < lc.Health.Min {
			return fmt.Errorf("enemy level %d: invalid health range [%v, %v]", level, lc.Health.Min, lc.Health.Max)
		}
		if lc.Speed.Max < lc.Speed.Min {
			return fmt.Errorf("enemy level %d: invalid speed range [%v, %v]", level, lc.Speed.Min, lc.Speed.Max)
		}
		if lc.ShotGap.Min <= 0 || lc.ShotGap.Max < lc.ShotGap.Min {
			return fmt.Errorf("enemy level %d: invalid shotGap range [%v, %v]", level, lc.ShotGap.Min, lc.ShotGap.Max)
		}
	}
	if c.Enemies.Boss.CounterCycle <= 0 {
		return fmt.Errorf("boss counterCycle must be positive, got %d", c.Enemies.Boss.CounterCycle)
	}

	if len(c.Bullets.ArchetypeSizes) != types.ArchetypeCount {
		return fmt.Errorf("archetypeSizes must have %d entries, got %d", types.ArchetypeCount, len(c.Bullets.ArchetypeSizes))
	}

	if c.Gifts.Lifetime.Min <= 0 || c.Gifts.Lifetime.Max < c.Gifts.Lifetime.Min {
		return fmt.Errorf("invalid gift lifetime range [%v, %v]", c.Gifts.Lifetime.Min, c.Gifts.Lifetime.Max)
	}
	for _, kind := range types.AllGiftKinds {
		kc, ok := c.Gifts.Kinds[kind]
		if !ok {
			return fmt.Errorf("gift kind %s is missing", kind)
		}
		if kc.DamageReduction < 0 || kc.DamageReduction > 1 {
			return fmt.Errorf("gift %s: damageReduction must be in [0,1], got %v", kind, kc.DamageReduction)
		}
		if kc.Ratio < 0 {
			return fmt.Errorf("gift %s: ratio cannot be negative, got %v", kind, kc.Ratio)
		}
	}

	if len(c.Spawn.LevelProbabilities) != 3 || len(c.Spawn.LevelCaps) != 3 {
		return fmt.Errorf("levelProbabilities and levelCaps must have 3 entries")
	}
	if c.Spawn.GiftProbability < 0 || c.Spawn.GiftProbability > 1 {
		return fmt.Errorf("giftProbability must be in [0,1], got %v", c.Spawn.GiftProbability)
	}
	if !c.Spawn.HitTargetPolicy.Valid() {
		return fmt.Errorf("unknown hitTargetPolicy %q", c.Spawn.HitTargetPolicy)
	}

	return nil
}

// GiftRatios 按 types.AllGiftKinds 顺序返回掉落权重
func (c *BalanceConfig) GiftRatios() []float64 {
	ratios := make([]float64, len(types.AllGiftKinds))
	for i, kind := range types.AllGiftKinds {
		ratios[i] = c.Gifts.Kinds[kind].Ratio
	}
	return ratios
}
