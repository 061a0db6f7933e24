package components

// PlayerComponent 玩家属性与成长数据
type PlayerComponent struct {
	Speed  float64 // 移动速度（单位/秒）
	Facing float64 // 朝向角度（弧度）

	Level    int     // 当前等级
	XP       float64 // 当前经验
	XPToNext float64 // 升到下一级所需经验

	DamageMultiplier float64 // 全局伤害倍率
	ProjectileCount  int     // 每次火球齐射的数量
	CritChance       float64 // 暴击率（0-1），暴击造成 2 倍伤害

	// PendingLevelUps 尚未选择升级的次数
	// 大于 0 时模拟暂停，直到玩家选择升级
	PendingLevelUps int
}

// DashComponent 冲刺状态
type DashComponent struct {
	Cooldown      float64 // 冲刺冷却（秒）
	CooldownTimer float64 // 剩余冷却（秒），<= 0 表示可用
	Duration      float64 // 冲刺持续时间（秒）
	Timer         float64 // 冲刺剩余时间（秒）
	Speed         float64 // 冲刺速度
	DirX, DirY    float64 // 冲刺方向（单位向量）
	IsDashing     bool
}

// WeaponsComponent 玩家持有的武器与冷却
//
// 等级为 0 表示尚未获得该武器（火球默认持有）。
type WeaponsComponent struct {
	FireballCooldown float64
	FireballTimer    float64

	SlashLevel    int
	SlashCooldown float64
	SlashTimer    float64

	LightningLevel    int
	LightningCooldown float64
	LightningTimer    float64
	LightningDamage   float64 // 闪电链基础伤害（未计等级加成）
	ChainCount        int     // 闪电链基础跳数
}
