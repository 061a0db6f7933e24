package components

// WavePhase 波次阶段
type WavePhase int

const (
	// WavePhaseBreak 休息阶段（初始状态）
	WavePhaseBreak WavePhase = iota
	// WavePhaseActive 进攻阶段
	WavePhaseActive
)

// String 返回阶段名称
func (p WavePhase) String() string {
	if p == WavePhaseActive {
		return "active"
	}
	return "break"
}

// WaveState 波次状态机数据，由 SpawnDirector 独占持有
type WaveState struct {
	Wave  int       // 当前波次（>= 0，0 表示尚未开始）
	Phase WavePhase // 当前阶段

	// PhaseElapsed 当前阶段已经过的时间（秒）
	PhaseElapsed float64

	Spawned     int // 本波已成功生成的敌人数量
	TargetCount int // 本波目标敌人数量

	Difficulty  float64 // 本波难度倍率
	EliteChance float64 // 本波精英概率

	// SpawnTimer 距下一次生成的倒计时（秒）
	SpawnTimer float64

	// BossSpawned 本波 Boss 是否已生成（每波重置）
	BossSpawned bool
}
