// Package types 定义共享的基础类型
package types

import "fmt"

// BulletVariant 子弹的行为变体（存档中的 "type" 标签）
type BulletVariant int

const (
	// BulletCannon 直线飞行的普通炮弹
	BulletCannon BulletVariant = iota
	// BulletMissile 追踪导弹：追踪强度随时间衰减，寿命加速
	BulletMissile
	// BulletRocket 强追踪火箭：短时追踪，伤害比例在发射后阶跃下降
	BulletRocket
)

// String 返回存档标签
func (v BulletVariant) String() string {
	switch v {
	case BulletCannon:
		return "Cannon"
	case BulletMissile:
		return "Missile"
	case BulletRocket:
		return "Rocket"
	}
	return fmt.Sprintf("BulletVariant(%d)", int(v))
}

// ParseBulletVariant 解析存档标签
func ParseBulletVariant(tag string) (BulletVariant, bool) {
	switch tag {
	case "Cannon":
		return BulletCannon, true
	case "Missile":
		return BulletMissile, true
	case "Rocket":
		return BulletRocket, true
	}
	return 0, false
}

// IsHoming 是否为追踪弹（命中玩家时进入爆炸状态）
func (v BulletVariant) IsHoming() bool {
	return v == BulletMissile || v == BulletRocket
}

// BulletArchetype 子弹外观/行为原型ID，同时决定贴图与碰撞尺寸
type BulletArchetype int

const (
	ArchetypePlayerBullet      BulletArchetype = iota // 玩家普通子弹
	ArchetypeEnemyBullet                              // 敌机普通子弹
	ArchetypeEnemyMissile                             // 敌机导弹
	ArchetypeEnemyRocket                              // 敌机火箭
	ArchetypeBossBullet                               // Boss 弹幕
	ArchetypePlayerSuperBullet                        // 玩家火力全开散射弹
)

// archetypeImages 原型对应的贴图ID
var archetypeImages = [...]string{
	ArchetypePlayerBullet:      "bullet1",
	ArchetypeEnemyBullet:       "bullet2",
	ArchetypeEnemyMissile:      "missle",
	ArchetypeEnemyRocket:       "rocket",
	ArchetypeBossBullet:        "bullet3",
	ArchetypePlayerSuperBullet: "bullet4",
}

// ArchetypeCount 原型数量
const ArchetypeCount = len(archetypeImages)

// ClampArchetype 越界的原型ID收敛到最后一个合法值
func ClampArchetype(id int) BulletArchetype {
	if id < 0 {
		return ArchetypePlayerBullet
	}
	if id >= ArchetypeCount {
		return BulletArchetype(ArchetypeCount - 1)
	}
	return BulletArchetype(id)
}

// ImageID 原型贴图ID
func (a BulletArchetype) ImageID() string {
	return archetypeImages[ClampArchetype(int(a))]
}
