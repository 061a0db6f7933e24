package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FireballConfig 火球（自动攻击）配置
type FireballConfig struct {
	Cooldown  float64 `yaml:"cooldown"`
	Range     float64 `yaml:"range"`     // 锁定目标的最大距离
	Speed     float64 `yaml:"speed"`     // 飞行速度
	Lifetime  float64 `yaml:"lifetime"`  // 最长飞行时间
	Damage    float64 `yaml:"damage"`    // 基础伤害
	HitRadius float64 `yaml:"hitRadius"` // 命中判定半径
	Stagger   float64 `yaml:"stagger"`   // 多重射击的发射间隔
}

// SlashConfig 斩击配置
type SlashConfig struct {
	Cooldown       float64 `yaml:"cooldown"`
	CooldownFactor float64 `yaml:"cooldownFactor"` // 每次升级的冷却系数
	BaseRange      float64 `yaml:"baseRange"`
	RangePerLevel  float64 `yaml:"rangePerLevel"`
	Damage         float64 `yaml:"damage"`
	Knockback      float64 `yaml:"knockback"`
	UpgradeDelay   float64 `yaml:"upgradeDelay"` // 升级后首次斩击的延迟
}

// LightningConfig 闪电链配置
type LightningConfig struct {
	Cooldown         float64 `yaml:"cooldown"`
	CooldownFactor   float64 `yaml:"cooldownFactor"`
	Damage           float64 `yaml:"damage"`
	ChainCount       int     `yaml:"chainCount"`
	FirstRange       float64 `yaml:"firstRange"` // 首个目标的搜索半径
	HopRange         float64 `yaml:"hopRange"`   // 后续跳跃的搜索半径
	Decay            float64 `yaml:"decay"`      // 每跳伤害衰减系数
	LevelDamageBonus float64 `yaml:"levelDamageBonus"`
	LevelChainBonus  float64 `yaml:"levelChainBonus"`
	EffectLifetime   float64 `yaml:"effectLifetime"` // 闪电特效显示时长
}

// DashConfig 冲刺配置
type DashConfig struct {
	Cooldown float64 `yaml:"cooldown"`
	Duration float64 `yaml:"duration"`
	Speed    float64 `yaml:"speed"`
}

// PickupConfig 掉落物拾取配置
type PickupConfig struct {
	MagnetRadius  float64 `yaml:"magnetRadius"`
	CollectRadius float64 `yaml:"collectRadius"`
	Attraction    float64 `yaml:"attraction"` // 每秒向玩家靠近的比例
	DropLifetime  float64 `yaml:"dropLifetime"`
	DropScatter   float64 `yaml:"dropScatter"`
}

// PlayerConfig 玩家属性与武器配置
type PlayerConfig struct {
	MaxHealth      float64 `yaml:"maxHealth"`
	Speed          float64 `yaml:"speed"`
	XPToNext       float64 `yaml:"xpToNext"`
	XPGrowth       float64 `yaml:"xpGrowth"`
	CritChance     float64 `yaml:"critChance"`
	CritMultiplier float64 `yaml:"critMultiplier"`

	Fireball  FireballConfig  `yaml:"fireball"`
	Slash     SlashConfig     `yaml:"slash"`
	Lightning LightningConfig `yaml:"lightning"`
	Dash      DashConfig      `yaml:"dash"`
	Pickup    PickupConfig    `yaml:"pickup"`
}

// parsePlayer 解析并验证玩家配置
func parsePlayer(data []byte, source string) (*PlayerConfig, error) {
	var config PlayerConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse player YAML from %s: %w", source, err)
	}
	if err := validatePlayer(&config); err != nil {
		return nil, fmt.Errorf("invalid player config in %s: %w", source, err)
	}
	return &config, nil
}

// validatePlayer 验证玩家配置
func validatePlayer(config *PlayerConfig) error {
	if config.MaxHealth <= 0 {
		return fmt.Errorf("maxHealth must be positive, got %v", config.MaxHealth)
	}
	if config.XPToNext <= 0 {
		return fmt.Errorf("xpToNext must be positive, got %v", config.XPToNext)
	}
	if config.XPGrowth < 1 {
		return fmt.Errorf("xpGrowth must be at least 1, got %v", config.XPGrowth)
	}
	if config.CritChance < 0 || config.CritChance > 1 {
		return fmt.Errorf("critChance must be within [0,1], got %v", config.CritChance)
	}
	if config.Fireball.Cooldown <= 0 || config.Slash.Cooldown <= 0 || config.Lightning.Cooldown <= 0 {
		return fmt.Errorf("weapon cooldowns must be positive")
	}
	if config.Lightning.ChainCount < 1 {
		return fmt.Errorf("lightning.chainCount must be at least 1, got %d", config.Lightning.ChainCount)
	}
	if config.Lightning.Decay <= 0 || config.Lightning.Decay > 1 {
		return fmt.Errorf("lightning.decay must be within (0,1], got %v", config.Lightning.Decay)
	}
	if config.Pickup.CollectRadius > config.Pickup.MagnetRadius {
		return fmt.Errorf("pickup.collectRadius (%v) must not exceed magnetRadius (%v)",
			config.Pickup.CollectRadius, config.Pickup.MagnetRadius)
	}
	return nil
}
