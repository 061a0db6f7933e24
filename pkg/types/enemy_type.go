// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// EnemyArchetype 定义敌人的基础属性档位
type EnemyArchetype int

const (
	EnemyUnknown  EnemyArchetype = iota // 未知敌人类型
	EnemySkeleton                       // 骷髅：脆弱、较快
	EnemyZombie                         // 僵尸：中等血量、慢
	EnemyLizard                         // 蜥蜴：高速
	EnemyDemon                          // 恶魔：高血量
	EnemyBoss                           // Boss 专用档位
)

// enemyArchetypeStringMap 敌人类型到配置字符串的映射
var enemyArchetypeStringMap = map[EnemyArchetype]string{
	EnemySkeleton: "skeleton",
	EnemyZombie:   "zombie",
	EnemyLizard:   "lizard",
	EnemyDemon:    "demon",
	EnemyBoss:     "boss",
}

// stringToEnemyArchetypeMap 配置字符串到敌人类型的反向映射
var stringToEnemyArchetypeMap map[string]EnemyArchetype

// EliteArchetype 精英词缀
type EliteArchetype int

const (
	EliteNone      EliteArchetype = iota // 非精英
	EliteSwift                           // 迅捷：速度大幅提升
	EliteTank                            // 坦克：血量大幅提升、变慢
	EliteExplosive                       // 爆裂：死亡时产生范围爆炸
)

var eliteArchetypeStringMap = map[EliteArchetype]string{
	EliteSwift:     "swift",
	EliteTank:      "tank",
	EliteExplosive: "explosive",
}

var stringToEliteArchetypeMap map[string]EliteArchetype

// AllEliteArchetypes 按固定顺序列出所有精英词缀（用于随机抽取）
var AllEliteArchetypes = []EliteArchetype{EliteSwift, EliteTank, EliteExplosive}

func init() {
	stringToEnemyArchetypeMap = make(map[string]EnemyArchetype)
	for a, s := range enemyArchetypeStringMap {
		stringToEnemyArchetypeMap[s] = a
	}
	stringToEliteArchetypeMap = make(map[string]EliteArchetype)
	for e, s := range eliteArchetypeStringMap {
		stringToEliteArchetypeMap[s] = e
	}
}

// String 返回敌人类型的配置字符串表示（用于配置文件匹配）
func (a EnemyArchetype) String() string {
	if s, ok := enemyArchetypeStringMap[a]; ok {
		return s
	}
	return "unknown"
}

// EnemyArchetypeFromString 将配置字符串转换为 EnemyArchetype
func EnemyArchetypeFromString(s string) EnemyArchetype {
	if a, ok := stringToEnemyArchetypeMap[s]; ok {
		return a
	}
	return EnemyUnknown
}

// String 返回精英词缀的配置字符串表示
func (e EliteArchetype) String() string {
	if s, ok := eliteArchetypeStringMap[e]; ok {
		return s
	}
	return "none"
}

// EliteArchetypeFromString 将配置字符串转换为 EliteArchetype
func EliteArchetypeFromString(s string) EliteArchetype {
	if e, ok := stringToEliteArchetypeMap[s]; ok {
		return e
	}
	return EliteNone
}

// TierKind 敌人等级的判别标签
type TierKind int

const (
	TierNormal TierKind = iota
	TierElite
	TierBoss
)

// String 返回等级标签
func (k TierKind) String() string {
	switch k {
	case TierElite:
		return "elite"
	case TierBoss:
		return "boss"
	default:
		return "normal"
	}
}
