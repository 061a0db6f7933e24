// Package entities 提供实体工厂与实体仓库（EntityStore）
//
// Store 是玩家、敌人、飞行道具、掉落物和闪电特效的唯一拥有者。
// 其他系统只通过 EntityID 引用实体，删除一律延迟到帧末的 SweepDead。
package entities

import (
	"log"
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
)

// Store 实体仓库
type Store struct {
	em     *ecs.EntityManager
	cfg    *config.GameConfig
	rng    utils.Random
	player ecs.EntityID
	kills  int
}

// NewStore 创建实体仓库
//
// 参数：
//   - em: 底层实体管理器
//   - cfg: 游戏配置（敌人属性、玩家属性、拾取参数）
//   - rng: 掉落散布使用的随机源
func NewStore(em *ecs.EntityManager, cfg *config.GameConfig, rng utils.Random) *Store {
	return &Store{em: em, cfg: cfg, rng: rng}
}

// EntityManager 返回底层实体管理器
func (s *Store) EntityManager() *ecs.EntityManager {
	return s.em
}

// Config 返回游戏配置
func (s *Store) Config() *config.GameConfig {
	return s.cfg
}

// Player 返回玩家实体ID（尚未创建时为 0）
func (s *Store) Player() ecs.EntityID {
	return s.player
}

// Kills 返回累计击杀数
func (s *Store) Kills() int {
	return s.kills
}

// Position 返回实体位置
func (s *Store) Position(id ecs.EntityID) (*components.PositionComponent, bool) {
	return ecs.GetComponent[*components.PositionComponent](s.em, id)
}

// Health 返回实体生命值
func (s *Store) Health(id ecs.EntityID) (*components.HealthComponent, bool) {
	return ecs.GetComponent[*components.HealthComponent](s.em, id)
}

// IsAlive 判断角色是否存活（存在、有生命值且未死亡）
func (s *Store) IsAlive(id ecs.EntityID) bool {
	h, ok := s.Health(id)
	return ok && !h.Dead && !s.em.IsMarkedForDestroy(id)
}

// PlayerAlive 判断玩家是否存活
func (s *Store) PlayerAlive() bool {
	return s.player != 0 && s.IsAlive(s.player)
}

// CreatePlayer 在指定位置创建玩家
func (s *Store) CreatePlayer(x, y float64) ecs.EntityID {
	pc := s.cfg.Player
	id := s.em.CreateEntity()

	ecs.AddComponent(s.em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(s.em, id, &components.HealthComponent{Current: pc.MaxHealth, Max: pc.MaxHealth})
	ecs.AddComponent(s.em, id, &components.PlayerComponent{
		Speed:            pc.Speed,
		Facing:           math.Pi / 2,
		Level:            1,
		XPToNext:         pc.XPToNext,
		DamageMultiplier: 1.0,
		ProjectileCount:  1,
		CritChance:       pc.CritChance,
	})
	ecs.AddComponent(s.em, id, &components.DashComponent{
		Cooldown: pc.Dash.Cooldown,
		Duration: pc.Dash.Duration,
		Speed:    pc.Dash.Speed,
	})
	ecs.AddComponent(s.em, id, &components.WeaponsComponent{
		FireballCooldown:  pc.Fireball.Cooldown,
		SlashCooldown:     pc.Slash.Cooldown,
		LightningCooldown: pc.Lightning.Cooldown,
		LightningDamage:   pc.Lightning.Damage,
		ChainCount:        pc.Lightning.ChainCount,
	})
	ecs.AddComponent(s.em, id, &components.ScheduledActionsComponent{})

	s.player = id
	return id
}

// CreateEnemy 在指定位置创建敌人
//
// 倍率在此处计算一次并缓存：Boss 倍率 × 精英词缀倍率。
// 未配置的敌人类型返回 false。
func (s *Store) CreateEnemy(archetype types.EnemyArchetype, tier components.EnemyTier, x, y float64) (ecs.EntityID, bool) {
	stats, ok := s.cfg.Enemies.GetEnemyStats(archetype)
	if !ok {
		log.Printf("[Store] Unknown enemy archetype %v, spawn skipped", archetype)
		return 0, false
	}

	mods := components.EnemyModifiers{HP: 1, Speed: 1, Scale: 1, XP: 1}
	contact := s.cfg.Enemies.ContactDamage.Normal
	switch tier.Kind {
	case types.TierBoss:
		b := s.cfg.Enemies.Boss
		mods = components.EnemyModifiers{HP: b.Health, Speed: b.Speed, Scale: b.Scale, XP: b.XP}
		contact = s.cfg.Enemies.ContactDamage.Boss
	case types.TierElite:
		if elite, ok := s.cfg.Enemies.GetElite(tier.Elite); ok {
			mods.HP *= elite.Health
			mods.Speed *= elite.Speed
			mods.Scale *= elite.Scale
			mods.XP *= elite.XP
		}
		contact = s.cfg.Enemies.ContactDamage.Elite
	}

	hp := stats.Health * mods.HP
	id := s.em.CreateEntity()
	ecs.AddComponent(s.em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(s.em, id, &components.HealthComponent{Current: hp, Max: hp})
	ecs.AddComponent(s.em, id, &components.EnemyComponent{
		Archetype:     archetype,
		Tier:          tier,
		Modifiers:     mods,
		Speed:         stats.Speed * mods.Speed,
		Scale:         stats.Scale * mods.Scale,
		XPValue:       stats.XP * mods.XP,
		ContactDamage: contact,
	})
	return id, true
}

// CreateProjectile 创建飞行道具
func (s *Store) CreateProjectile(x, y, vx, vy, damage, lifetime float64, weapon types.WeaponType) ecs.EntityID {
	id := s.em.CreateEntity()
	ecs.AddComponent(s.em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(s.em, id, &components.VelocityComponent{VX: vx, VY: vy})
	ecs.AddComponent(s.em, id, &components.ProjectileComponent{
		OriginX: x,
		OriginY: y,
		Damage:  damage,
		Weapon:  weapon,
		HitIDs:  make(map[ecs.EntityID]struct{}),
	})
	ecs.AddComponent(s.em, id, &components.LifetimeComponent{MaxLifetime: lifetime})
	return id
}

// CreateDrop 创建掉落物，位置在 ±DropScatter 范围内随机偏移
func (s *Store) CreateDrop(kind types.DropKind, value, x, y float64) ecs.EntityID {
	scatter := s.cfg.Player.Pickup.DropScatter
	x += (s.rng.Float64()*2 - 1) * scatter
	y += (s.rng.Float64()*2 - 1) * scatter

	id := s.em.CreateEntity()
	ecs.AddComponent(s.em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(s.em, id, &components.DropComponent{Kind: kind, Value: value})
	ecs.AddComponent(s.em, id, &components.LifetimeComponent{MaxLifetime: s.cfg.Player.Pickup.DropLifetime})
	return id
}

// CreateChainEffect 创建闪电链显示特效
func (s *Store) CreateChainEffect(waypoints []components.ChainWaypoint, lifetime float64) ecs.EntityID {
	id := s.em.CreateEntity()
	ecs.AddComponent(s.em, id, &components.ChainEffectComponent{Waypoints: waypoints})
	ecs.AddComponent(s.em, id, &components.LifetimeComponent{MaxLifetime: lifetime})
	return id
}
