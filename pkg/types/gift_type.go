package types

// GiftKind 增益道具种类（存档中的 "name" 标签）
type GiftKind string

const (
	// GiftFullFirePower 火力全开：射速提升并解锁散射
	GiftFullFirePower GiftKind = "FullFirePower"
	// GiftCenturyShield 世纪护盾：减伤并扩大碰撞范围
	GiftCenturyShield GiftKind = "CenturyShield"
	// GiftAllMyPeople 众志成城：子弹附带魅惑效果
	GiftAllMyPeople GiftKind = "AllMyPeople"
	// GiftSpeedStorm 疾风：移动速度提升
	GiftSpeedStorm GiftKind = "SpeedStorm"
)

// AllGiftKinds 按掉落权重表顺序排列的全部道具种类
var AllGiftKinds = []GiftKind{
	GiftFullFirePower,
	GiftCenturyShield,
	GiftAllMyPeople,
	GiftSpeedStorm,
}

// ParseGiftKind 解析存档标签
func ParseGiftKind(name string) (GiftKind, bool) {
	for _, k := range AllGiftKinds {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}
