package config

import (
	"fmt"

	"github.com/foumildo44/vampire-survivor/pkg/types"
	"gopkg.in/yaml.v3"
)

// UpgradeEntry 升级池中的一项
type UpgradeEntry struct {
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title"`
	Rarity string  `yaml:"rarity"`
	Value  float64 `yaml:"value"` // 效果数值（含义由升级ID决定）
}

// UpgradeConfig 升级池配置
type UpgradeConfig struct {
	OptionsPerLevel int                `yaml:"optionsPerLevel"`
	RarityWeights   map[string]float64 `yaml:"rarityWeights"`
	Upgrades        []UpgradeEntry     `yaml:"upgrades"`
}

// parseUpgrades 解析并验证升级池配置
func parseUpgrades(data []byte, source string) (*UpgradeConfig, error) {
	var config UpgradeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse upgrades YAML from %s: %w", source, err)
	}
	if err := validateUpgrades(&config); err != nil {
		return nil, fmt.Errorf("invalid upgrades in %s: %w", source, err)
	}
	return &config, nil
}

// validateUpgrades 验证升级池配置
func validateUpgrades(config *UpgradeConfig) error {
	if config.OptionsPerLevel < 1 {
		return fmt.Errorf("optionsPerLevel must be at least 1, got %d", config.OptionsPerLevel)
	}
	for rarity, weight := range config.RarityWeights {
		if _, ok := types.RarityFromString(rarity); !ok {
			return fmt.Errorf("rarityWeights: unknown rarity %q", rarity)
		}
		if weight < 0 {
			return fmt.Errorf("rarityWeights: %s weight cannot be negative, got %v", rarity, weight)
		}
	}

	seen := make(map[string]bool)
	for _, u := range config.Upgrades {
		if u.ID == "" {
			return fmt.Errorf("upgrade id cannot be empty")
		}
		if seen[u.ID] {
			return fmt.Errorf("duplicate upgrade id %q", u.ID)
		}
		seen[u.ID] = true
		if _, ok := types.RarityFromString(u.Rarity); !ok {
			return fmt.Errorf("upgrade %s: unknown rarity %q", u.ID, u.Rarity)
		}
	}
	return nil
}

// RarityWeight 返回稀有度对应的权重，未配置时返回 0
func (c *UpgradeConfig) RarityWeight(r types.Rarity) float64 {
	return c.RarityWeights[r.String()]
}
