// Package events 定义模拟核心对外发布的瞬时通知
//
// 通知只供 UI/音效等外部协作方消费，模拟自身从不读取它们。
package events

// Type 事件类型
type Type string

const (
	// WaveStarted 波次开始，Data 为 WaveStartedData
	WaveStarted Type = "wave-started"
	// WaveCompleted 波次完成，Data 为 WaveCompletedData
	WaveCompleted Type = "wave-completed"
	// DamageDealt 造成伤害，Data 为 DamageDealtData
	DamageDealt Type = "damage-dealt"
	// LevelUp 玩家升级，Data 为 LevelUpData
	LevelUp Type = "level-up"
	// GameOver 玩家死亡，Data 为 GameOverData
	GameOver Type = "game-over"
	// BossSpawned Boss 出现，Data 为 BossSpawnedData
	BossSpawned Type = "boss-spawned"
)

// Event 一条通知
type Event struct {
	Type Type `json:"type"`
	Data any  `json:"data,omitempty"`
}

// WaveStartedData 波次开始
type WaveStartedData struct {
	Wave        int `json:"wave"`
	TargetCount int `json:"targetCount"`
}

// WaveCompletedData 波次完成及奖励
type WaveCompletedData struct {
	Wave       int `json:"wave"`
	XPReward   int `json:"xpReward"`
	GoldReward int `json:"goldReward"`
}

// DamageDealtData 一次伤害
type DamageDealtData struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Amount     float64 `json:"amount"`
	IsCritical bool    `json:"isCritical"`
}

// UpgradeOption 升级选项的展示数据
type UpgradeOption struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Rarity string `json:"rarity"`
}

// LevelUpData 升级及可选项
type LevelUpData struct {
	Level   int             `json:"level"`
	Options []UpgradeOption `json:"options"`
}

// GameOverData 游戏结束统计
type GameOverData struct {
	Wave    int     `json:"wave"`
	Kills   int     `json:"kills"`
	Elapsed float64 `json:"elapsed"`
}

// BossSpawnedData Boss 出现位置
type BossSpawnedData struct {
	Wave int     `json:"wave"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}
