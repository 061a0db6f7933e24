package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

// RuntimeConfig 宿主程序（桌面、服务器、预览工具）的运行参数，从环境变量读取
type RuntimeConfig struct {
	// Seed 为 0 时使用当前时间
	Seed int64 `env:"SURVIVOR_SEED" envDefault:"0"`
	// Biome 为空时使用配置中的默认群系
	Biome string `env:"SURVIVOR_BIOME"`
	// DataDir 为空时使用内置数据
	DataDir    string        `env:"SURVIVOR_DATA_DIR"`
	ListenAddr string        `env:"SURVIVOR_LISTEN_ADDR" envDefault:":8080"`
	TickRate   int           `env:"SURVIVOR_TICK_RATE" envDefault:"60"`
	AppName    string        `env:"SURVIVOR_APP_NAME" envDefault:"vampire-survivor"`
	Verbose    bool          `env:"SURVIVOR_VERBOSE" envDefault:"false"`
	IdleKick   time.Duration `env:"SURVIVOR_IDLE_KICK" envDefault:"2m"`
}

// LoadRuntimeConfig 从环境变量加载运行参数
func LoadRuntimeConfig() (*RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickRate <= 0 {
		return nil, fmt.Errorf("SURVIVOR_TICK_RATE must be positive, got %d", cfg.TickRate)
	}
	return &cfg, nil
}

// TickInterval 返回每个 tick 的时长
func (c *RuntimeConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// ResolveGameConfig 按运行参数选择配置来源：
// DataDir 非空时从磁盘加载，否则从嵌入数据加载；嵌入数据未初始化时回退到内置默认值
func (c *RuntimeConfig) ResolveGameConfig() (*GameConfig, error) {
	if c.DataDir != "" {
		return LoadGameConfigDir(c.DataDir)
	}
	cfg, err := LoadEmbeddedGameConfig()
	if err != nil {
		log.Printf("[Config] Embedded data unavailable (%v), using built-in defaults", err)
		return DefaultGameConfig(), nil
	}
	return cfg, nil
}
