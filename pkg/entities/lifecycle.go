package entities

import (
	"log"
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/game"
	"github.com/foumildo44/vampire-survivor/pkg/types"
)

// SweepResult 一次帧末清理的结果
type SweepResult struct {
	Kills   int // 本次新增击杀
	Removed int // 本次删除的实体数
}

// SweepDead 帧末清理
//
// 死亡敌人通过 Counted 标记保证每个敌人只计一次击杀；
// 已命中/撞墙的飞行道具、已拾取的掉落物和已过期的实体一并删除。
// 玩家实体永不删除。
func (s *Store) SweepDead() SweepResult {
	var result SweepResult

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.HealthComponent](s.em) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.em, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.em, id)
		if !health.Dead {
			continue
		}
		if !enemy.Counted {
			enemy.Counted = true
			s.kills++
			result.Kills++
		}
		s.em.DestroyEntity(id)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](s.em) {
		if p, _ := ecs.GetComponent[*components.ProjectileComponent](s.em, id); p.Spent {
			s.em.DestroyEntity(id)
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.DropComponent](s.em) {
		if d, _ := ecs.GetComponent[*components.DropComponent](s.em, id); d.Collected {
			s.em.DestroyEntity(id)
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.em) {
		if l, _ := ecs.GetComponent[*components.LifetimeComponent](s.em, id); l.IsExpired && id != s.player {
			s.em.DestroyEntity(id)
		}
	}

	result.Removed = len(s.em.RemoveMarkedEntities())
	return result
}

// PickupResult 一帧内拾取的汇总
type PickupResult struct {
	XP           float64
	Gold         int
	Healed       float64
	LevelsGained int
}

// ResolvePickups 处理掉落物的吸附与拾取
//
// 进入吸附半径后 Magnetized 置为 true 且不可逆，之后每帧按
// pos += (player - pos) × min(1, attraction·dt) 靠近玩家；
// 进入拾取半径后生效并标记为已拾取。玩家死亡时掉落物既不移动也不被拾取。
//
// 参数：
//   - dt: 帧时间（秒）
//   - ledger: 金币账本，可为 nil（金币只计入结果，不入账）
func (s *Store) ResolvePickups(dt float64, ledger game.CurrencyLedger) PickupResult {
	var result PickupResult
	if !s.PlayerAlive() {
		return result
	}

	pp, _ := s.Position(s.player)
	pickup := s.cfg.Player.Pickup
	pull := math.Min(1, pickup.Attraction*dt)

	for _, id := range ecs.GetEntitiesWith2[*components.DropComponent, *components.PositionComponent](s.em) {
		drop, _ := ecs.GetComponent[*components.DropComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		if drop.Collected {
			continue
		}
		if lt, ok := ecs.GetComponent[*components.LifetimeComponent](s.em, id); ok && lt.IsExpired {
			continue
		}

		if !drop.Magnetized && math.Hypot(pp.X-pos.X, pp.Y-pos.Y) < pickup.MagnetRadius {
			drop.Magnetized = true
		}
		if drop.Magnetized {
			pos.X += (pp.X - pos.X) * pull
			pos.Y += (pp.Y - pos.Y) * pull
		}

		if math.Hypot(pp.X-pos.X, pp.Y-pos.Y) >= pickup.CollectRadius {
			continue
		}

		drop.Collected = true
		switch drop.Kind {
		case types.DropExperience:
			result.XP += drop.Value
			result.LevelsGained += s.GainXP(drop.Value)
		case types.DropHealth:
			result.Healed += s.Heal(drop.Value)
		case types.DropCurrency:
			amount := int(drop.Value)
			result.Gold += amount
			if ledger != nil {
				if err := ledger.Deposit(amount); err != nil {
					log.Printf("[Store] Failed to deposit %d gold: %v", amount, err)
				}
			}
		}
	}
	return result
}

// GainXP 为玩家增加经验，返回本次升级次数
//
// 每越过一次阈值：经验扣除阈值、等级 +1、阈值乘以增长系数（向下取整），
// 并累加一次待选择的升级。
func (s *Store) GainXP(amount float64) int {
	pc, ok := ecs.GetComponent[*components.PlayerComponent](s.em, s.player)
	if !ok || amount <= 0 {
		return 0
	}

	pc.XP += amount
	levels := 0
	for pc.XPToNext > 0 && pc.XP >= pc.XPToNext {
		pc.XP -= pc.XPToNext
		pc.Level++
		pc.XPToNext = math.Floor(pc.XPToNext * s.cfg.Player.XPGrowth)
		pc.PendingLevelUps++
		levels++
		log.Printf("[Store] Player reached level %d (next at %.0f xp)", pc.Level, pc.XPToNext)
	}
	return levels
}

// Heal 为玩家回血（不超过最大生命值），返回实际回复量
func (s *Store) Heal(amount float64) float64 {
	h, ok := s.Health(s.player)
	if !ok || h.Dead || amount <= 0 {
		return 0
	}
	before := h.Current
	h.Current = math.Min(h.Max, h.Current+amount)
	return h.Current - before
}
