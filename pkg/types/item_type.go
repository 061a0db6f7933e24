package types

// DropKind 掉落物种类
type DropKind int

const (
	DropExperience DropKind = iota // 经验球
	DropCurrency                   // 金币
	DropHealth                     // 回血
)

// String 返回掉落物种类的字符串表示
func (k DropKind) String() string {
	switch k {
	case DropExperience:
		return "experience"
	case DropCurrency:
		return "currency"
	case DropHealth:
		return "health"
	default:
		return "unknown"
	}
}

// WeaponType 武器类型
type WeaponType int

const (
	WeaponFireball  WeaponType = iota // 火球：自动锁定最近敌人
	WeaponSlash                       // 斩击：近战范围攻击
	WeaponLightning                   // 闪电链
)

// String 返回武器类型的字符串表示
func (w WeaponType) String() string {
	switch w {
	case WeaponFireball:
		return "fireball"
	case WeaponSlash:
		return "slash"
	case WeaponLightning:
		return "lightning"
	default:
		return "unknown"
	}
}

// ActionKind 计划动作类型（见 ScheduledActionsComponent）
type ActionKind int

const (
	// ActionFireProjectile 发射一枚火球
	ActionFireProjectile ActionKind = iota
)

// CellType 竞技场格子类型
type CellType uint8

const (
	CellOpen      CellType = iota // 可通行
	CellObstacleA                 // 障碍（树/冰块等主样式）
	CellObstacleB                 // 障碍（次样式，仅视觉区别）
)

// IsSolid 判断格子是否为障碍
func (c CellType) IsSolid() bool {
	return c != CellOpen
}

// Rarity 升级稀有度
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityStringMap = map[Rarity]string{
	RarityCommon:    "common",
	RarityRare:      "rare",
	RarityEpic:      "epic",
	RarityLegendary: "legendary",
}

// String 返回稀有度的配置字符串表示
func (r Rarity) String() string {
	if s, ok := rarityStringMap[r]; ok {
		return s
	}
	return "unknown"
}

// RarityFromString 将配置字符串转换为 Rarity
// 第二个返回值表示字符串是否合法
func RarityFromString(s string) (Rarity, bool) {
	for r, name := range rarityStringMap {
		if name == s {
			return r, true
		}
	}
	return RarityCommon, false
}
