package config

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/foumildo44/vampire-survivor/pkg/embedded"
)

// 数据文件名（相对于数据目录）
const (
	BiomesFile     = "biomes.yaml"
	EnemyStatsFile = "enemy_stats.yaml"
	WavesFile      = "waves.yaml"
	PlayerFile     = "player.yaml"
	UpgradesFile   = "upgrades.yaml"
)

// GameConfig 汇总所有游戏调参
type GameConfig struct {
	Biomes   *BiomesConfig
	Enemies  *EnemyStatsConfig
	Waves    *WaveConfig
	Player   *PlayerConfig
	Upgrades *UpgradeConfig
}

// LoadGameConfigFS 从任意文件系统的 dir 目录加载全部配置
// 参数：
//   - fsys: 文件系统（embed.FS、os.DirFS、fstest.MapFS 均可）
//   - dir: 数据目录（如 "data"，根目录用 "."）
//
// 返回：
//   - *GameConfig: 解析并验证后的配置
//   - error: 任一文件读取、解析或验证失败时返回
func LoadGameConfigFS(fsys fs.FS, dir string) (*GameConfig, error) {
	read := func(name string) ([]byte, string, error) {
		p := path.Join(dir, name)
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, p, fmt.Errorf("failed to read config file %s: %w", p, err)
		}
		return data, p, nil
	}

	cfg := &GameConfig{}

	data, src, err := read(BiomesFile)
	if err != nil {
		return nil, err
	}
	if cfg.Biomes, err = parseBiomes(data, src); err != nil {
		return nil, err
	}

	if data, src, err = read(EnemyStatsFile); err != nil {
		return nil, err
	}
	if cfg.Enemies, err = parseEnemyStats(data, src); err != nil {
		return nil, err
	}

	if data, src, err = read(WavesFile); err != nil {
		return nil, err
	}
	if cfg.Waves, err = parseWaves(data, src); err != nil {
		return nil, err
	}

	if data, src, err = read(PlayerFile); err != nil {
		return nil, err
	}
	if cfg.Player, err = parsePlayer(data, src); err != nil {
		return nil, err
	}

	if data, src, err = read(UpgradesFile); err != nil {
		return nil, err
	}
	if cfg.Upgrades, err = parseUpgrades(data, src); err != nil {
		return nil, err
	}

	if err := cfg.validateCrossReferences(); err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", dir, err)
	}

	log.Printf("[Config] Loaded game config from %s (%d biomes, %d enemy types, %d upgrades)",
		dir, len(cfg.Biomes.Biomes), len(cfg.Enemies.Enemies), len(cfg.Upgrades.Upgrades))
	return cfg, nil
}

// LoadGameConfigDir 从磁盘目录加载配置（用于 SURVIVOR_DATA_DIR 覆盖）
func LoadGameConfigDir(dir string) (*GameConfig, error) {
	return LoadGameConfigFS(os.DirFS(dir), ".")
}

// LoadEmbeddedGameConfig 从嵌入的 data/ 目录加载配置
// 必须先调用 embedded.Init
func LoadEmbeddedGameConfig() (*GameConfig, error) {
	fsys, err := embedded.Sub("data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded data: %w", err)
	}
	return LoadGameConfigFS(fsys, ".")
}

// validateCrossReferences 检查跨文件引用：群系中出现的敌人类型必须有属性配置
func (c *GameConfig) validateCrossReferences() error {
	for name, biome := range c.Biomes.Biomes {
		for _, ew := range biome.Enemies {
			if _, ok := c.Enemies.Enemies[ew.Type]; !ok {
				return fmt.Errorf("biome %s references enemy %q without stats", name, ew.Type)
			}
		}
	}
	return nil
}

// Validate 对整份配置执行与加载时相同的验证（用于手工构造的配置）
func (c *GameConfig) Validate() error {
	if c.Biomes == nil || c.Enemies == nil || c.Waves == nil || c.Player == nil || c.Upgrades == nil {
		return fmt.Errorf("game config is incomplete")
	}
	if err := validateBiomes(c.Biomes); err != nil {
		return err
	}
	if err := validateEnemyStats(c.Enemies); err != nil {
		return err
	}
	if err := validateWaves(c.Waves); err != nil {
		return err
	}
	if err := validatePlayer(c.Player); err != nil {
		return err
	}
	if err := validateUpgrades(c.Upgrades); err != nil {
		return err
	}
	return c.validateCrossReferences()
}
