// Package upgrades 实现升级池：按稀有度权重抽取不重复的选项，并把选中的效果应用到玩家身上
package upgrades

import (
	"errors"
	"fmt"
	"log"

	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/entities"
	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
)

// 升级ID
const (
	IDHeal           = "heal"
	IDSpeed          = "speed"
	IDMaxHP          = "maxhp"
	IDDamage         = "damage"
	IDAttackSpeed    = "attack_speed"
	IDSlash          = "slash"
	IDLightning      = "lightning"
	IDMultishot      = "multishot"
	IDSuperLightning = "super_lightning"
)

// ErrUnknownUpgrade 升级ID不在已知效果列表中
var ErrUnknownUpgrade = errors.New("unknown upgrade")

// Upgrade 一个升级选项
type Upgrade struct {
	ID     string
	Title  string
	Rarity types.Rarity
	Value  float64
}

// effect 升级效果
type effect func(p *playerState, u Upgrade, cfg *config.PlayerConfig)

// playerState 应用效果时需要的玩家组件
type playerState struct {
	store   *entities.Store
	player  *components.PlayerComponent
	health  *components.HealthComponent
	weapons *components.WeaponsComponent
}

var effects = map[string]effect{
	IDHeal: func(p *playerState, u Upgrade, _ *config.PlayerConfig) {
		p.store.Heal(p.health.Max * u.Value)
	},
	IDSpeed: func(p *playerState, u Upgrade, _ *config.PlayerConfig) {
		p.player.Speed *= u.Value
	},
	IDMaxHP: func(p *playerState, u Upgrade, _ *config.PlayerConfig) {
		p.health.Max += u.Value
		p.health.Current = p.health.Max
	},
	IDDamage: func(p *playerState, u Upgrade, _ *config.PlayerConfig) {
		p.player.DamageMultiplier += u.Value
	},
	IDAttackSpeed: func(p *playerState, u Upgrade, _ *config.PlayerConfig) {
		p.weapons.FireballCooldown *= u.Value
	},
	IDSlash: func(p *playerState, _ Upgrade, cfg *config.PlayerConfig) {
		upgradeSlash(p.weapons, cfg)
	},
	IDLightning: func(p *playerState, _ Upgrade, cfg *config.PlayerConfig) {
		upgradeLightning(p.weapons, cfg)
	},
	IDMultishot: func(p *playerState, u Upgrade, _ *config.PlayerConfig) {
		p.player.ProjectileCount += int(u.Value)
	},
	IDSuperLightning: func(p *playerState, _ Upgrade, cfg *config.PlayerConfig) {
		w := p.weapons
		if w.LightningLevel > 0 {
			w.ChainCount += 3
			w.LightningDamage *= 2
			w.LightningCooldown *= 0.5
			return
		}
		upgradeLightning(w, cfg)
		w.ChainCount += 2
	},
}

// upgradeSlash 斩击等级 +1，冷却缩短，并在短暂延迟后立即触发一次
func upgradeSlash(w *components.WeaponsComponent, cfg *config.PlayerConfig) {
	w.SlashLevel++
	w.SlashCooldown *= cfg.Slash.CooldownFactor
	w.SlashTimer = cfg.Slash.UpgradeDelay
}

// upgradeLightning 首次获得时立即可用；之后每级缩短冷却并增加一跳
func upgradeLightning(w *components.WeaponsComponent, cfg *config.PlayerConfig) {
	if w.LightningLevel == 0 {
		w.LightningLevel = 1
		w.LightningTimer = 0
		return
	}
	w.LightningLevel++
	w.LightningCooldown *= cfg.Lightning.CooldownFactor
	w.ChainCount++
}

// Pool 升级池
//
// 稀有度权重在构建时转换为累积权重表，抽取时二分查找，不放回。
type Pool struct {
	upgrades []Upgrade
	byID     map[string]Upgrade
	table    *utils.WeightedTable[Upgrade]
	options  int
	player   *config.PlayerConfig
}

// NewPool 从配置构建升级池
// 配置中出现没有对应效果的升级ID时返回 ErrUnknownUpgrade
func NewPool(cfg *config.UpgradeConfig, player *config.PlayerConfig) (*Pool, error) {
	p := &Pool{
		byID:    make(map[string]Upgrade, len(cfg.Upgrades)),
		options: cfg.OptionsPerLevel,
		player:  player,
	}

	weights := make([]float64, 0, len(cfg.Upgrades))
	for _, entry := range cfg.Upgrades {
		if _, ok := effects[entry.ID]; !ok {
			return nil, fmt.Errorf("upgrade %q: %w", entry.ID, ErrUnknownUpgrade)
		}
		rarity, _ := types.RarityFromString(entry.Rarity)
		u := Upgrade{ID: entry.ID, Title: entry.Title, Rarity: rarity, Value: entry.Value}
		p.upgrades = append(p.upgrades, u)
		p.byID[u.ID] = u
		weights = append(weights, cfg.RarityWeight(rarity))
	}
	p.table = utils.NewWeightedTable(p.upgrades, weights)
	return p, nil
}

// Upgrades 返回池中所有升级（配置顺序）
func (p *Pool) Upgrades() []Upgrade {
	return p.upgrades
}

// Get 按ID查找升级
func (p *Pool) Get(id string) (Upgrade, bool) {
	u, ok := p.byID[id]
	return u, ok
}

// Roll 抽取一组互不相同的升级选项
func (p *Pool) Roll(rng utils.Random) []Upgrade {
	return p.table.PickDistinct(rng, p.options)
}

// Apply 把升级效果应用到玩家
func (p *Pool) Apply(store *entities.Store, id string) error {
	u, ok := p.byID[id]
	if !ok {
		return fmt.Errorf("apply %q: %w", id, ErrUnknownUpgrade)
	}

	em := store.EntityManager()
	player := store.Player()
	pc, ok1 := ecs.GetComponent[*components.PlayerComponent](em, player)
	health, ok2 := store.Health(player)
	weapons, ok3 := ecs.GetComponent[*components.WeaponsComponent](em, player)
	if !ok1 || !ok2 || !ok3 {
		return fmt.Errorf("apply %q: player not found", id)
	}

	effects[id](&playerState{store: store, player: pc, health: health, weapons: weapons}, u, p.player)
	log.Printf("[Upgrades] Applied %s (%s)", u.Title, u.Rarity)
	return nil
}
