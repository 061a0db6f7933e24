package components

// HealthComponent 存储角色（玩家/敌人）的生命值信息
//
// Dead 是单向标记：一旦为 true，任何后续伤害都必须是空操作，
// 以防止重复掉落或重复计算击杀。
type HealthComponent struct {
	Current float64 // 当前生命值（由死亡判定隐式截断，不会向上修正）
	Max     float64 // 最大生命值
	Dead    bool    // 是否已死亡
}
