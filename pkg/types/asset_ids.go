package types

import "fmt"

// 音效ID（对应 assets/<id>.wav）
const (
	SoundAllMyPeople     = "AllMyPeople"
	SoundExplode         = "explode"
	SoundMissile         = "missile"
	SoundRocket          = "rocket"
	SoundBullet          = "bullet"
	SoundSuperBullet     = "bullet3"
	SoundPlayerDown      = "me_down"
	SoundGiftDisappear1  = "gift_disappear1"
	SoundGiftDisappear2  = "gift_disappear2"
	SoundEnemyDownFormat = "enemy%d_down"
)

// 贴图ID（对应 assets/<id>.png）
const (
	ImageBackground      = "background"
	ImageMenu            = "mujianwu"
	ImagePlayerShield    = "PlayerShield"
	ImageExplode         = "explode"
	ImageExplodeRocket   = "explode2"
	ImagePlayerDeathBase = "me_destroy_"
)

// 音乐与字体ID
const (
	MusicBackground = "background"
	FontGame        = "game"
)

// PlayerImages 玩家飞行动画帧
var PlayerImages = []string{"me1", "me2"}

// EnemyDownSound 敌机坠毁音效
func EnemyDownSound(level int) string {
	return fmt.Sprintf(SoundEnemyDownFormat, level)
}

// EnemyImage 敌机贴图
func EnemyImage(level int) string {
	return fmt.Sprintf("enemy%d", level)
}

// EnemyHitImage 敌机受击贴图
func EnemyHitImage(level int) string {
	return fmt.Sprintf("enemy%d_hit", level)
}

// EnemyDownFrame 敌机坠毁动画帧（从 1 开始）
func EnemyDownFrame(level, idx int) string {
	return fmt.Sprintf("enemy%d_down%d", level, idx)
}

// PlayerDeathFrame 玩家坠毁动画帧（从 1 开始）
func PlayerDeathFrame(idx int) string {
	return fmt.Sprintf("%s%d", ImagePlayerDeathBase, idx)
}
