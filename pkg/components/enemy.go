package components

import "github.com/foumildo44/vampire-survivor/pkg/types"

// EnemyTier 敌人等级：Normal | Elite(词缀) | Boss
//
// 用单一的带标签值取代"是否Boss"与"是否精英"两个独立布尔量，
// Boss 与精英的组合在类型上不可构造。
type EnemyTier struct {
	Kind  types.TierKind
	Elite types.EliteArchetype // 仅当 Kind == TierElite 时有意义
}

// NormalTier 普通敌人
func NormalTier() EnemyTier {
	return EnemyTier{Kind: types.TierNormal}
}

// EliteTier 带词缀的精英敌人
func EliteTier(archetype types.EliteArchetype) EnemyTier {
	return EnemyTier{Kind: types.TierElite, Elite: archetype}
}

// BossTier Boss 敌人
func BossTier() EnemyTier {
	return EnemyTier{Kind: types.TierBoss}
}

// IsBoss 是否为 Boss
func (t EnemyTier) IsBoss() bool { return t.Kind == types.TierBoss }

// IsElite 是否为精英
func (t EnemyTier) IsElite() bool { return t.Kind == types.TierElite }

// EliteArchetype 返回精英词缀，非精英返回 EliteNone
func (t EnemyTier) EliteArchetype() types.EliteArchetype {
	if t.Kind != types.TierElite {
		return types.EliteNone
	}
	return t.Elite
}

// EnemyModifiers 生成时计算一次的属性倍率，之后不再重算
type EnemyModifiers struct {
	HP    float64
	Speed float64
	Scale float64
	XP    float64
}

// EnemyComponent 敌人数据
type EnemyComponent struct {
	Archetype types.EnemyArchetype
	Tier      EnemyTier
	Modifiers EnemyModifiers

	Speed         float64 // 已应用倍率的移动速度
	Scale         float64 // 已应用倍率的体型
	XPValue       float64 // 已应用倍率的经验奖励
	ContactDamage float64 // 每秒接触伤害

	// Counted 是否已计入击杀数（单向置位）
	Counted bool
}
