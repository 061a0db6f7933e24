package systems

import (
	"log"
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/arena"
	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/entities"
	"github.com/foumildo44/vampire-survivor/pkg/events"
	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
)

// DamageResult 一次伤害的结果
type DamageResult struct {
	Dealt    float64 // 实际扣除的生命值（敌人为取整后的值）
	Killed   bool    // 本次伤害是否触发了死亡
	Critical bool
}

// Hit 一次命中记录
type Hit struct {
	Target ecs.EntityID
	DamageResult
}

// ChainParams 闪电链参数
type ChainParams struct {
	Damage         float64 // 第 0 跳的伤害
	Hops           int     // 最大跳数
	FirstRange     float64 // 从起点搜索首个目标的半径
	HopRange       float64 // 后续每跳的搜索半径
	Decay          float64 // 每跳的伤害衰减系数
	EffectLifetime float64 // 显示特效的存活时间，<= 0 不创建特效
}

// ChainResult 闪电链结果
type ChainResult struct {
	// Waypoints 显示路径，第一个点是未命中任何目标的起点
	Waypoints []components.ChainWaypoint
	Hits      []Hit
	// Effect 创建的显示特效，没有命中时为 0
	Effect ecs.EntityID
}

// pendingExplosion 排队等待结算的爆炸
type pendingExplosion struct {
	x, y   float64
	source ecs.EntityID
}

// CombatResolver 战斗结算器
//
// 负责伤害、近战扫击、飞行道具命中、闪电链和范围伤害，以及死亡后的掉落与爆炸。
// 结算器本身不拥有任何实体，只通过 Store 修改生命值和请求创建掉落物。
//
// 爆炸型精英死亡时产生的范围伤害不会立即递归执行，而是排入队列，
// 由最外层的结算调用在返回前依次处理。已死亡的角色不会再次受到伤害，
// 因此每个角色最多死亡（爆炸）一次，连锁爆炸的总次数不超过敌人数量。
type CombatResolver struct {
	store *entities.Store
	arena *arena.Arena
	sink  events.Sink
	rng   utils.Random

	explosions []pendingExplosion
	resolving  bool
	verbose    bool
}

// NewCombatResolver 创建战斗结算器
func NewCombatResolver(store *entities.Store, a *arena.Arena, sink events.Sink, rng utils.Random) *CombatResolver {
	if sink == nil {
		sink = events.Discard{}
	}
	return &CombatResolver{
		store: store,
		arena: a,
		sink:  sink,
		rng:   rng,
	}
}

// SetVerbose 设置是否输出详细日志
func (r *CombatResolver) SetVerbose(verbose bool) {
	r.verbose = verbose
}

// AreaDamage 范围伤害的线性衰减
// 距离为 0 时为峰值伤害，距离 >= radius 时为 0
func AreaDamage(peak, radius, distance float64) float64 {
	if radius <= 0 || distance >= radius {
		return 0
	}
	if distance <= 0 {
		return peak
	}
	return peak * (1 - distance/radius)
}

// ChainHopDamage 闪电链第 hop 跳的伤害：base × decay^hop
func ChainHopDamage(base, decay float64, hop int) float64 {
	return base * math.Pow(decay, float64(hop))
}

// ApplyDamage 对角色造成伤害
//
// 对敌人：伤害先向下取整再扣除，生命值 <= 0 时触发唯一一次死亡流程。
// 对玩家：伤害不取整，冲刺无敌期间忽略。
// 对已死亡的角色永远是空操作。
func (r *CombatResolver) ApplyDamage(target ecs.EntityID, raw float64) DamageResult {
	outer := r.enter()
	defer r.leave(outer)
	return r.applyDamage(target, raw, false)
}

// ResolveMeleeSweep 近战扫击
//
// 范围内（严格小于 radius）的每个存活敌人受到伤害，存活者被沿远离原点的方向击退；
// 击退落点不可行走时放弃击退。
func (r *CombatResolver) ResolveMeleeSweep(x, y, radius, damage, knockback float64) []Hit {
	outer := r.enter()
	defer r.leave(outer)

	targets := r.store.Within(x, y, radius)
	hits := make([]Hit, 0, len(targets))
	for _, id := range targets {
		if !r.store.IsAlive(id) {
			continue
		}
		amount, crit := r.weaponDamage(damage)
		res := r.applyDamage(id, amount, crit)
		hits = append(hits, Hit{Target: id, DamageResult: res})

		if !res.Killed && knockback > 0 {
			r.knockback(id, x, y, knockback)
		}
	}
	return hits
}

// knockback 沿远离 (fromX, fromY) 的方向移动敌人
func (r *CombatResolver) knockback(id ecs.EntityID, fromX, fromY, distance float64) {
	pos, ok := r.store.Position(id)
	if !ok {
		return
	}
	dx, dy := utils.Normalize(pos.X-fromX, pos.Y-fromY)
	if dx == 0 && dy == 0 {
		return
	}
	nx, ny := pos.X+dx*distance, pos.Y+dy*distance
	if !r.arena.Walkable(nx, ny) {
		return
	}
	pos.X, pos.Y = nx, ny
}

// ResolveProjectileHit 检查飞行道具是否命中敌人
//
// 命中判定半径内最近的、未被该飞行道具命中过的存活敌人受到伤害，
// 飞行道具随即标记为 Spent（单目标单次命中）。返回是否命中。
func (r *CombatResolver) ResolveProjectileHit(projectile ecs.EntityID) bool {
	outer := r.enter()
	defer r.leave(outer)

	em := r.store.EntityManager()
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](em, projectile)
	if !ok || proj.Spent {
		return false
	}
	pos, ok := r.store.Position(projectile)
	if !ok {
		return false
	}

	radius := r.store.Config().Player.Fireball.HitRadius
	target, _, found := r.store.Nearest(pos.X, pos.Y, radius, proj.HitIDs)
	if !found {
		return false
	}

	proj.HitIDs[target] = struct{}{}
	proj.Spent = true
	amount, crit := r.weaponDamage(proj.Damage)
	r.applyDamage(target, amount, crit)
	return true
}

// ResolveChain 闪电链
//
// 从 (x, y) 出发，在 FirstRange 内寻找最近的存活敌人作为第 0 跳（满伤害），
// 之后每跳在上一目标周围 HopRange 内寻找本链尚未命中的最近存活敌人，
// 伤害按 Decay^hop 衰减，最多 Hops 跳；找不到目标时提前结束。
// 有命中时创建一个只用于显示的闪电特效。
func (r *CombatResolver) ResolveChain(x, y float64, params ChainParams) ChainResult {
	outer := r.enter()
	defer r.leave(outer)

	result := ChainResult{
		Waypoints: []components.ChainWaypoint{{X: x, Y: y}},
	}
	struck := make(map[ecs.EntityID]struct{})
	cx, cy := x, y
	radius := params.FirstRange

	for hop := 0; hop < params.Hops; hop++ {
		target, _, found := r.store.Nearest(cx, cy, radius, struck)
		if !found {
			break
		}
		struck[target] = struct{}{}

		pos, _ := r.store.Position(target)
		cx, cy = pos.X, pos.Y
		result.Waypoints = append(result.Waypoints, components.ChainWaypoint{X: cx, Y: cy, Target: target})

		amount, crit := r.weaponDamage(ChainHopDamage(params.Damage, params.Decay, hop))
		res := r.applyDamage(target, amount, crit)
		result.Hits = append(result.Hits, Hit{Target: target, DamageResult: res})

		radius = params.HopRange
	}

	if len(result.Hits) > 0 && params.EffectLifetime > 0 {
		result.Effect = r.store.CreateChainEffect(result.Waypoints, params.EffectLifetime)
	}
	if r.verbose {
		log.Printf("[CombatResolver] Chain from (%.1f, %.1f): %d hits", x, y, len(result.Hits))
	}
	return result
}

// ResolveAreaEffect 范围伤害
//
// 半径内的每个存活角色（包括玩家，不包括 source）受到按距离线性衰减的伤害。
func (r *CombatResolver) ResolveAreaEffect(x, y, radius, peak float64, source ecs.EntityID) []Hit {
	outer := r.enter()
	defer r.leave(outer)
	return r.areaEffect(x, y, radius, peak, source)
}

func (r *CombatResolver) areaEffect(x, y, radius, peak float64, source ecs.EntityID) []Hit {
	var hits []Hit

	targets := r.store.Within(x, y, radius)
	if player := r.store.Player(); player != 0 && player != source && r.store.IsAlive(player) {
		targets = append(targets, player)
	}

	for _, id := range targets {
		if id == source || !r.store.IsAlive(id) {
			continue
		}
		pos, ok := r.store.Position(id)
		if !ok {
			continue
		}
		amount := AreaDamage(peak, radius, math.Hypot(pos.X-x, pos.Y-y))
		if amount <= 0 {
			continue
		}
		res := r.applyDamage(id, amount, false)
		hits = append(hits, Hit{Target: id, DamageResult: res})
	}
	return hits
}

// weaponDamage 对玩家武器伤害进行暴击判定
func (r *CombatResolver) weaponDamage(base float64) (float64, bool) {
	pc, ok := ecs.GetComponent[*components.PlayerComponent](r.store.EntityManager(), r.store.Player())
	if !ok {
		return base, false
	}
	if utils.Chance(r.rng, pc.CritChance) {
		return base * r.store.Config().Player.CritMultiplier, true
	}
	return base, false
}

func (r *CombatResolver) applyDamage(target ecs.EntityID, raw float64, critical bool) DamageResult {
	if !r.store.IsAlive(target) || raw <= 0 {
		return DamageResult{}
	}
	if target == r.store.Player() {
		return r.damagePlayer(target, raw)
	}

	em := r.store.EntityManager()
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](em, target)
	if !ok {
		return DamageResult{}
	}
	health, _ := r.store.Health(target)
	pos, _ := r.store.Position(target)

	amount := math.Floor(raw)
	if amount <= 0 {
		return DamageResult{}
	}
	health.Current -= amount
	r.sink.Emit(events.Event{
		Type: events.DamageDealt,
		Data: events.DamageDealtData{X: pos.X, Y: pos.Y, Amount: amount, IsCritical: critical},
	})

	res := DamageResult{Dealt: amount, Critical: critical}
	if health.Current <= 0 && !health.Dead {
		health.Dead = true
		res.Killed = true
		r.onEnemyDeath(target, enemy, pos.X, pos.Y)
	}
	return res
}

func (r *CombatResolver) damagePlayer(id ecs.EntityID, raw float64) DamageResult {
	if dash, ok := ecs.GetComponent[*components.DashComponent](r.store.EntityManager(), id); ok && dash.IsDashing {
		return DamageResult{}
	}
	health, _ := r.store.Health(id)
	health.Current -= raw

	res := DamageResult{Dealt: raw}
	if health.Current <= 0 && !health.Dead {
		health.Dead = true
		res.Killed = true
		log.Printf("[CombatResolver] Player died")
	}
	return res
}

// onEnemyDeath 死亡流程：掉落奖励，爆炸型精英排队爆炸
func (r *CombatResolver) onEnemyDeath(id ecs.EntityID, enemy *components.EnemyComponent, x, y float64) {
	drops := r.store.Config().Enemies.Drops

	r.store.CreateDrop(types.DropExperience, enemy.XPValue, x, y)

	switch {
	case enemy.Tier.IsBoss():
		for i := 0; i < drops.BossGoldCount; i++ {
			ox := x + (r.rng.Float64()*2-1)*drops.BossGoldScatter
			oy := y + (r.rng.Float64()*2-1)*drops.BossGoldScatter
			r.store.CreateDrop(types.DropCurrency, drops.BossGoldValue, ox, oy)
		}
		log.Printf("[CombatResolver] Boss %d defeated at (%.1f, %.1f)", id, x, y)
	case enemy.Tier.IsElite():
		r.store.CreateDrop(types.DropCurrency, drops.EliteGoldValue, x, y)
	default:
		if utils.Chance(r.rng, drops.GoldChance) {
			r.store.CreateDrop(types.DropCurrency, drops.GoldValue, x, y)
		}
	}

	if utils.Chance(r.rng, drops.HealthChance) {
		r.store.CreateDrop(types.DropHealth, drops.HealthValue, x, y)
	}

	if enemy.Tier.EliteArchetype() == types.EliteExplosive {
		r.explosions = append(r.explosions, pendingExplosion{x: x, y: y, source: id})
	}
}

// enter 标记进入结算，返回是否为最外层调用
func (r *CombatResolver) enter() bool {
	if r.resolving {
		return false
	}
	r.resolving = true
	return true
}

// leave 最外层调用退出前依次结算排队的爆炸
func (r *CombatResolver) leave(outer bool) {
	if !outer {
		return
	}
	explosion := r.store.Config().Enemies.Explosion
	for len(r.explosions) > 0 {
		e := r.explosions[0]
		r.explosions = r.explosions[1:]
		if r.verbose {
			log.Printf("[CombatResolver] Explosion at (%.1f, %.1f) from %d", e.x, e.y, e.source)
		}
		r.areaEffect(e.x, e.y, explosion.Radius, explosion.Damage, e.source)
	}
	r.resolving = false
}
