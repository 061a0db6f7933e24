package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// WaveConfig 波次导演的调参
//
// 每波参数均为波次号 n 的线性函数：
//
//	targetCount = floor(TargetBase + TargetPerWave * n)
//	difficulty  = DifficultyBase + DifficultyPerWave * n
//	eliteChance = min(EliteChanceCap, EliteChanceBase + EliteChancePerWave * n)
type WaveConfig struct {
	BreakDuration float64 `yaml:"breakDuration"` // 休息阶段时长（秒）

	TargetBase    float64 `yaml:"targetBase"`
	TargetPerWave float64 `yaml:"targetPerWave"`

	DifficultyBase    float64 `yaml:"difficultyBase"`
	DifficultyPerWave float64 `yaml:"difficultyPerWave"`

	EliteChanceBase    float64 `yaml:"eliteChanceBase"`
	EliteChancePerWave float64 `yaml:"eliteChancePerWave"`
	EliteChanceCap     float64 `yaml:"eliteChanceCap"`

	// 生成间隔 = max(SpawnIntervalFloor, SpawnIntervalStart - waveElapsed / SpawnIntervalDecay)
	SpawnIntervalStart float64 `yaml:"spawnIntervalStart"`
	SpawnIntervalDecay float64 `yaml:"spawnIntervalDecay"`
	SpawnIntervalFloor float64 `yaml:"spawnIntervalFloor"`

	SpawnDistanceMin float64 `yaml:"spawnDistanceMin"`
	SpawnDistanceMax float64 `yaml:"spawnDistanceMax"`

	BossInterval int     `yaml:"bossInterval"` // 每隔多少波出现 Boss
	BossDistance float64 `yaml:"bossDistance"` // Boss 出生距离

	XPRewardPerWave   float64 `yaml:"xpRewardPerWave"`   // xp = floor(XPRewardPerWave * n * difficulty)
	GoldRewardPerWave float64 `yaml:"goldRewardPerWave"` // gold = floor(GoldRewardPerWave * n * difficulty)
}

// parseWaves 解析并验证波次配置
func parseWaves(data []byte, source string) (*WaveConfig, error) {
	var config WaveConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse waves YAML from %s: %w", source, err)
	}
	if err := validateWaves(&config); err != nil {
		return nil, fmt.Errorf("invalid waves in %s: %w", source, err)
	}
	return &config, nil
}

// validateWaves 验证波次配置
// 所有每波增量必须非负，保证各参数随波次单调不减
func validateWaves(config *WaveConfig) error {
	if config.BreakDuration < 0 {
		return fmt.Errorf("breakDuration cannot be negative, got %v", config.BreakDuration)
	}
	if config.TargetBase < 0 || config.TargetPerWave < 0 {
		return fmt.Errorf("targetBase and targetPerWave cannot be negative")
	}
	if config.DifficultyPerWave < 0 {
		return fmt.Errorf("difficultyPerWave cannot be negative, got %v", config.DifficultyPerWave)
	}
	if config.EliteChancePerWave < 0 {
		return fmt.Errorf("eliteChancePerWave cannot be negative, got %v", config.EliteChancePerWave)
	}
	if config.EliteChanceCap < 0 || config.EliteChanceCap > 1 {
		return fmt.Errorf("eliteChanceCap must be within [0,1], got %v", config.EliteChanceCap)
	}
	if config.SpawnIntervalFloor <= 0 {
		return fmt.Errorf("spawnIntervalFloor must be positive, got %v", config.SpawnIntervalFloor)
	}
	if config.SpawnIntervalDecay <= 0 {
		return fmt.Errorf("spawnIntervalDecay must be positive, got %v", config.SpawnIntervalDecay)
	}
	if config.SpawnDistanceMin < 0 || config.SpawnDistanceMax < config.SpawnDistanceMin {
		return fmt.Errorf("spawn distance band [%v, %v] is invalid", config.SpawnDistanceMin, config.SpawnDistanceMax)
	}
	if config.BossInterval < 1 {
		return fmt.Errorf("bossInterval must be at least 1, got %d", config.BossInterval)
	}
	return nil
}
