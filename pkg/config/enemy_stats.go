package config

import (
	"fmt"

	"github.com/foumildo44/vampire-survivor/pkg/types"
	"gopkg.in/yaml.v3"
)

// EnemyStats 单个敌人类型的基础属性
type EnemyStats struct {
	Health float64 `yaml:"health"`
	Speed  float64 `yaml:"speed"`
	Scale  float64 `yaml:"scale"`
	XP     float64 `yaml:"xp"`
}

// StatMultipliers 属性倍率（精英词缀、Boss 共用）
type StatMultipliers struct {
	Health float64 `yaml:"health"`
	Speed  float64 `yaml:"speed"`
	Scale  float64 `yaml:"scale"`
	XP     float64 `yaml:"xp"`
}

// EliteConfig 单个精英词缀的配置
type EliteConfig struct {
	Weight          float64 `yaml:"weight"` // 抽取权重
	StatMultipliers `yaml:",inline"`
}

// ExplosionConfig 爆裂精英死亡时的范围爆炸
type ExplosionConfig struct {
	Radius float64 `yaml:"radius"`
	Damage float64 `yaml:"damage"` // 中心伤害，随距离线性衰减
}

// ContactConfig 接触伤害（每秒）
type ContactConfig struct {
	Range  float64 `yaml:"range"` // 小于该距离时停止移动并造成伤害
	Normal float64 `yaml:"normal"`
	Elite  float64 `yaml:"elite"`
	Boss   float64 `yaml:"boss"`
}

// DropTableConfig 掉落表
type DropTableConfig struct {
	GoldChance      float64 `yaml:"goldChance"`      // 普通敌人金币掉落概率
	GoldValue       float64 `yaml:"goldValue"`       // 普通敌人金币面值
	EliteGoldValue  float64 `yaml:"eliteGoldValue"`  // 精英必掉金币面值
	BossGoldCount   int     `yaml:"bossGoldCount"`   // Boss 金币数量
	BossGoldValue   float64 `yaml:"bossGoldValue"`   // Boss 每枚金币面值
	BossGoldScatter float64 `yaml:"bossGoldScatter"` // Boss 金币散布半宽
	HealthChance    float64 `yaml:"healthChance"`    // 回血道具掉落概率
	HealthValue     float64 `yaml:"healthValue"`     // 回血量
}

// EnemyStatsConfig 敌人属性配置文件结构
type EnemyStatsConfig struct {
	Enemies       map[string]EnemyStats  `yaml:"enemies"`
	Elites        map[string]EliteConfig `yaml:"elites"`
	Boss          StatMultipliers        `yaml:"boss"`
	Explosion     ExplosionConfig        `yaml:"explosion"`
	ContactDamage ContactConfig          `yaml:"contactDamage"`
	Drops         DropTableConfig        `yaml:"drops"`
}

// parseEnemyStats 解析并验证敌人属性配置
func parseEnemyStats(data []byte, source string) (*EnemyStatsConfig, error) {
	var config EnemyStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse enemy stats YAML from %s: %w", source, err)
	}
	if err := validateEnemyStats(&config); err != nil {
		return nil, fmt.Errorf("invalid enemy stats in %s: %w", source, err)
	}
	return &config, nil
}

// validateEnemyStats 验证敌人属性配置的完整性和合法性
func validateEnemyStats(config *EnemyStatsConfig) error {
	if len(config.Enemies) == 0 {
		return fmt.Errorf("at least one enemy type is required")
	}
	if _, ok := config.Enemies[types.EnemyBoss.String()]; !ok {
		return fmt.Errorf("enemy type %q is required", types.EnemyBoss.String())
	}

	for name, stats := range config.Enemies {
		if types.EnemyArchetypeFromString(name) == types.EnemyUnknown {
			return fmt.Errorf("enemy %s: unknown enemy type", name)
		}
		if stats.Health <= 0 {
			return fmt.Errorf("enemy %s: health must be positive, got %v", name, stats.Health)
		}
		if stats.Speed < 0 {
			return fmt.Errorf("enemy %s: speed cannot be negative, got %v", name, stats.Speed)
		}
		if stats.XP < 0 {
			return fmt.Errorf("enemy %s: xp cannot be negative, got %v", name, stats.XP)
		}
	}

	for name, elite := range config.Elites {
		if types.EliteArchetypeFromString(name) == types.EliteNone {
			return fmt.Errorf("elite %s: unknown elite type", name)
		}
		if elite.Weight < 0 {
			return fmt.Errorf("elite %s: weight cannot be negative, got %v", name, elite.Weight)
		}
		if elite.Health <= 0 || elite.Speed < 0 || elite.Scale <= 0 || elite.XP < 0 {
			return fmt.Errorf("elite %s: invalid multipliers %+v", name, elite.StatMultipliers)
		}
	}

	if config.Boss.Health <= 0 || config.Boss.Scale <= 0 {
		return fmt.Errorf("boss: invalid multipliers %+v", config.Boss)
	}
	if config.Explosion.Radius < 0 || config.Explosion.Damage < 0 {
		return fmt.Errorf("explosion: radius and damage cannot be negative")
	}
	if config.Drops.GoldChance < 0 || config.Drops.GoldChance > 1 {
		return fmt.Errorf("drops: goldChance must be within [0,1], got %v", config.Drops.GoldChance)
	}
	if config.Drops.HealthChance < 0 || config.Drops.HealthChance > 1 {
		return fmt.Errorf("drops: healthChance must be within [0,1], got %v", config.Drops.HealthChance)
	}
	if config.Drops.BossGoldCount < 0 {
		return fmt.Errorf("drops: bossGoldCount cannot be negative, got %d", config.Drops.BossGoldCount)
	}
	return nil
}

// GetEnemyStats 获取指定敌人类型的基础属性
// 如果敌人类型不存在，返回 nil 和 false
func (c *EnemyStatsConfig) GetEnemyStats(archetype types.EnemyArchetype) (*EnemyStats, bool) {
	stats, ok := c.Enemies[archetype.String()]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// GetElite 获取指定精英词缀的配置
func (c *EnemyStatsConfig) GetElite(archetype types.EliteArchetype) (*EliteConfig, bool) {
	elite, ok := c.Elites[archetype.String()]
	if !ok {
		return nil, false
	}
	return &elite, true
}
