package game

// SessionStats 当前对局统计（供 HUD 与 game-over 通知使用）
type SessionStats struct {
	Kills          int     `json:"kills"`
	Elapsed        float64 `json:"elapsed"`        // 未暂停的累计时间（秒）
	Wave           int     `json:"wave"`           // 当前波次
	WaveActive     bool    `json:"waveActive"`     // 是否处于进攻阶段
	BreakRemaining float64 `json:"breakRemaining"` // 休息阶段剩余时间（秒）
	GoldCollected  int     `json:"goldCollected"`  // 本局存入账本的金币
	EnemiesAlive   int     `json:"enemiesAlive"`
}

// AddKills 累加击杀数
func (s *SessionStats) AddKills(n int) {
	s.Kills += n
}
