package systems

import (
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/config"
)

// DifficultyEngine 难度引擎
// 负责根据波次号计算每波参数，为 SpawnDirector 提供难度数据支持
//
// 所有参数都是波次号的线性函数，增量非负（由配置验证保证），因此随波次单调不减。
type DifficultyEngine struct {
	waves *config.WaveConfig
}

// NewDifficultyEngine 创建新的难度引擎实例
func NewDifficultyEngine(waves *config.WaveConfig) *DifficultyEngine {
	return &DifficultyEngine{waves: waves}
}

// TargetCount 计算本波目标敌人数量
// 公式: floor(TargetBase + TargetPerWave * wave)
func (d *DifficultyEngine) TargetCount(wave int) int {
	return int(math.Floor(d.waves.TargetBase + d.waves.TargetPerWave*float64(wave)))
}

// Difficulty 计算本波难度倍率
// 公式: DifficultyBase + DifficultyPerWave * wave
func (d *DifficultyEngine) Difficulty(wave int) float64 {
	return d.waves.DifficultyBase + d.waves.DifficultyPerWave*float64(wave)
}

// EliteChance 计算本波精英概率
// 公式: min(EliteChanceCap, EliteChanceBase + EliteChancePerWave * wave)
func (d *DifficultyEngine) EliteChance(wave int) float64 {
	return math.Min(d.waves.EliteChanceCap, d.waves.EliteChanceBase+d.waves.EliteChancePerWave*float64(wave))
}

// SpawnInterval 计算下一次生成的间隔
// 公式: max(SpawnIntervalFloor, SpawnIntervalStart - waveElapsed / SpawnIntervalDecay)
// 参数:
//
//	waveElapsed - 本波已进行的时间（秒）
func (d *DifficultyEngine) SpawnInterval(waveElapsed float64) float64 {
	return math.Max(d.waves.SpawnIntervalFloor, d.waves.SpawnIntervalStart-waveElapsed/d.waves.SpawnIntervalDecay)
}

// IsBossWave 判断是否为 Boss 波
func (d *DifficultyEngine) IsBossWave(wave int) bool {
	return wave > 0 && wave%d.waves.BossInterval == 0
}

// XPReward 计算波次完成的经验奖励
// 公式: floor(XPRewardPerWave * wave * difficulty)
func (d *DifficultyEngine) XPReward(wave int, difficulty float64) int {
	return int(math.Floor(d.waves.XPRewardPerWave * float64(wave) * difficulty))
}

// GoldReward 计算波次完成的金币奖励
// 公式: floor(GoldRewardPerWave * wave * difficulty)
func (d *DifficultyEngine) GoldReward(wave int, difficulty float64) int {
	return int(math.Floor(d.waves.GoldRewardPerWave * float64(wave) * difficulty))
}
