package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// EnemyWeight 群系中某种敌人的出现权重
type EnemyWeight struct {
	Type   string  `yaml:"type"`   // 敌人类型（skeleton/zombie/lizard/demon）
	Weight float64 `yaml:"weight"` // 相对权重
}

// BiomeConfig 单个群系的地形与敌人配置
type BiomeConfig struct {
	Width           int           `yaml:"width"`           // 竞技场宽度（格）
	Height          int           `yaml:"height"`          // 竞技场高度（格）
	Density         float64       `yaml:"density"`         // 初始障碍密度 [0,1]
	SmoothingPasses int           `yaml:"smoothingPasses"` // 元胞自动机平滑次数
	SafeZoneRadius  int           `yaml:"safeZoneRadius"`  // 出生安全区半径（方形，格）
	ObstacleBChance float64       `yaml:"obstacleBChance"` // 障碍格转为次样式的概率
	Enemies         []EnemyWeight `yaml:"enemies"`         // 敌人类型权重（顺序即抽取表顺序）
}

// BiomesConfig 群系配置文件结构
type BiomesConfig struct {
	Default string                 `yaml:"default"` // 默认群系
	Biomes  map[string]BiomeConfig `yaml:"biomes"`
}

// parseBiomes 解析并验证群系配置
func parseBiomes(data []byte, source string) (*BiomesConfig, error) {
	var config BiomesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse biomes YAML from %s: %w", source, err)
	}
	if err := validateBiomes(&config); err != nil {
		return nil, fmt.Errorf("invalid biomes in %s: %w", source, err)
	}
	return &config, nil
}

// validateBiomes 验证群系配置的合法性
func validateBiomes(config *BiomesConfig) error {
	if len(config.Biomes) == 0 {
		return fmt.Errorf("at least one biome is required")
	}
	if _, ok := config.Biomes[config.Default]; !ok {
		return fmt.Errorf("default biome %q is not defined", config.Default)
	}

	for name, biome := range config.Biomes {
		if biome.Width < 3 || biome.Height < 3 {
			return fmt.Errorf("biome %s: arena must be at least 3x3, got %dx%d", name, biome.Width, biome.Height)
		}
		if biome.Density < 0 || biome.Density > 1 {
			return fmt.Errorf("biome %s: density must be within [0,1], got %v", name, biome.Density)
		}
		if biome.ObstacleBChance < 0 || biome.ObstacleBChance > 1 {
			return fmt.Errorf("biome %s: obstacleBChance must be within [0,1], got %v", name, biome.ObstacleBChance)
		}
		if biome.SmoothingPasses < 0 {
			return fmt.Errorf("biome %s: smoothingPasses cannot be negative, got %d", name, biome.SmoothingPasses)
		}
		if biome.SafeZoneRadius < 0 {
			return fmt.Errorf("biome %s: safeZoneRadius cannot be negative, got %d", name, biome.SafeZoneRadius)
		}
		if len(biome.Enemies) == 0 {
			return fmt.Errorf("biome %s: at least one enemy weight is required", name)
		}
		for _, ew := range biome.Enemies {
			if ew.Weight < 0 {
				return fmt.Errorf("biome %s: enemy %s weight cannot be negative, got %v", name, ew.Type, ew.Weight)
			}
		}
	}
	return nil
}

// GetBiome 获取指定群系配置
// 如果群系不存在，返回 nil 和 false
func (c *BiomesConfig) GetBiome(name string) (*BiomeConfig, bool) {
	biome, ok := c.Biomes[name]
	if !ok {
		return nil, false
	}
	return &biome, true
}

// Names 返回按字母排序的群系名称
func (c *BiomesConfig) Names() []string {
	names := make([]string, 0, len(c.Biomes))
	for name := range c.Biomes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
