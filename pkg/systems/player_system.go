package systems

import (
	"log"
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/arena"
	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/entities"
	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
)

// Intent 宿主每帧提供的移动意图
// X/Y 为单位化的方向（长度超过 1 时会被归一化），Dash 为离散动作标志
type Intent struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Dash bool    `json:"dash"`
}

// PlayerSystem 玩家系统
// 处理移动、冲刺和三种武器（火球、斩击、闪电链）的冷却与触发
type PlayerSystem struct {
	store    *entities.Store
	arena    *arena.Arena
	resolver *CombatResolver
	cfg      *config.PlayerConfig

	intent  Intent
	verbose bool
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(store *entities.Store, a *arena.Arena, resolver *CombatResolver) *PlayerSystem {
	return &PlayerSystem{
		store:    store,
		arena:    a,
		resolver: resolver,
		cfg:      store.Config().Player,
	}
}

// SetVerbose 设置是否输出详细日志
func (s *PlayerSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// SetIntent 设置本帧的移动意图
func (s *PlayerSystem) SetIntent(intent Intent) {
	if l := math.Hypot(intent.X, intent.Y); l > 1 {
		intent.X /= l
		intent.Y /= l
	}
	if math.IsNaN(intent.X) || math.IsNaN(intent.Y) {
		intent.X, intent.Y = 0, 0
	}
	s.intent = intent
}

// Intent 返回当前移动意图
func (s *PlayerSystem) Intent() Intent {
	return s.intent
}

// Update 更新玩家
func (s *PlayerSystem) Update(dt float64) {
	if !s.store.PlayerAlive() {
		return
	}
	em := s.store.EntityManager()
	id := s.store.Player()

	pos, _ := s.store.Position(id)
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	dash, _ := ecs.GetComponent[*components.DashComponent](em, id)
	weapons, _ := ecs.GetComponent[*components.WeaponsComponent](em, id)

	s.updateMovement(dt, pos, player, dash)
	s.updateFireball(dt, id, player, weapons)
	s.updateSlash(dt, pos, player, weapons)
	s.updateLightning(dt, pos, player, weapons)
}

func (s *PlayerSystem) updateMovement(dt float64, pos *components.PositionComponent, player *components.PlayerComponent, dash *components.DashComponent) {
	moving := s.intent.X != 0 || s.intent.Y != 0

	dash.CooldownTimer -= dt
	if s.intent.Dash && !dash.IsDashing && dash.CooldownTimer <= 0 {
		dx, dy := math.Cos(player.Facing), math.Sin(player.Facing)
		if moving {
			dx, dy = utils.Normalize(s.intent.X, s.intent.Y)
		}
		dash.DirX, dash.DirY = dx, dy
		dash.IsDashing = true
		dash.Timer = dash.Duration
		dash.CooldownTimer = dash.Cooldown
		if s.verbose {
			log.Printf("[PlayerSystem] Dash started (%.2f, %.2f)", dx, dy)
		}
	}

	var vx, vy float64
	if dash.IsDashing {
		vx, vy = dash.DirX*dash.Speed, dash.DirY*dash.Speed
		dash.Timer -= dt
		if dash.Timer <= 0 {
			dash.IsDashing = false
		}
	} else {
		vx, vy = s.intent.X*player.Speed, s.intent.Y*player.Speed
	}

	moveWithCollision(s.arena, pos, vx*dt, vy*dt)

	if moving {
		player.Facing = math.Atan2(s.intent.Y, s.intent.X)
	}
}

// updateFireball 火球冷却结束时按投射物数量排入计划动作，间隔 Stagger 依次发射
func (s *PlayerSystem) updateFireball(dt float64, id ecs.EntityID, player *components.PlayerComponent, weapons *components.WeaponsComponent) {
	queue, ok := ecs.GetComponent[*components.ScheduledActionsComponent](s.store.EntityManager(), id)
	if !ok {
		return
	}
	for i := range queue.Queue {
		queue.Queue[i].Delay -= dt
	}

	weapons.FireballTimer -= dt
	if weapons.FireballTimer <= 0 {
		for i := 0; i < player.ProjectileCount; i++ {
			queue.Queue = append(queue.Queue, components.ScheduledAction{
				Kind:  types.ActionFireProjectile,
				Delay: float64(i) * s.cfg.Fireball.Stagger,
			})
		}
		weapons.FireballTimer = weapons.FireballCooldown
	}

	remaining := queue.Queue[:0]
	for _, action := range queue.Queue {
		if action.Delay > 0 {
			remaining = append(remaining, action)
			continue
		}
		if action.Kind == types.ActionFireProjectile {
			s.fireProjectile(player)
		}
	}
	queue.Queue = remaining
}

// fireProjectile 向射程内最近的敌人发射一枚火球，没有目标时不发射
func (s *PlayerSystem) fireProjectile(player *components.PlayerComponent) {
	pos, ok := s.store.Position(s.store.Player())
	if !ok {
		return
	}
	fb := s.cfg.Fireball
	target, _, found := s.store.Nearest(pos.X, pos.Y, fb.Range, nil)
	if !found {
		return
	}
	tp, _ := s.store.Position(target)
	dx, dy := utils.Normalize(tp.X-pos.X, tp.Y-pos.Y)
	if dx == 0 && dy == 0 {
		dx, dy = math.Cos(player.Facing), math.Sin(player.Facing)
	}
	s.store.CreateProjectile(pos.X, pos.Y, dx*fb.Speed, dy*fb.Speed,
		fb.Damage*player.DamageMultiplier, fb.Lifetime, types.WeaponFireball)
}

func (s *PlayerSystem) updateSlash(dt float64, pos *components.PositionComponent, player *components.PlayerComponent, weapons *components.WeaponsComponent) {
	if weapons.SlashLevel <= 0 {
		return
	}
	weapons.SlashTimer -= dt
	if weapons.SlashTimer > 0 {
		return
	}
	sc := s.cfg.Slash
	radius := sc.BaseRange + sc.RangePerLevel*float64(weapons.SlashLevel)
	hits := s.resolver.ResolveMeleeSweep(pos.X, pos.Y, radius, sc.Damage*player.DamageMultiplier, sc.Knockback)
	weapons.SlashTimer = weapons.SlashCooldown
	if s.verbose {
		log.Printf("[PlayerSystem] Slash radius=%.1f hits=%d", radius, len(hits))
	}
}

func (s *PlayerSystem) updateLightning(dt float64, pos *components.PositionComponent, player *components.PlayerComponent, weapons *components.WeaponsComponent) {
	if weapons.LightningLevel <= 0 {
		return
	}
	weapons.LightningTimer -= dt
	if weapons.LightningTimer > 0 {
		return
	}
	weapons.LightningTimer = weapons.LightningCooldown

	lc := s.cfg.Lightning
	level := float64(weapons.LightningLevel)
	s.resolver.ResolveChain(pos.X, pos.Y, ChainParams{
		Damage:         weapons.LightningDamage * (1 + lc.LevelDamageBonus*level) * player.DamageMultiplier,
		Hops:           weapons.ChainCount + int(math.Floor(level*lc.LevelChainBonus)),
		FirstRange:     lc.FirstRange,
		HopRange:       lc.HopRange,
		Decay:          lc.Decay,
		EffectLifetime: lc.EffectLifetime,
	})
}

// moveWithCollision 按轴分离的方式移动：先 X 后 Y，目标位置不可行走的轴不移动
func moveWithCollision(a *arena.Arena, pos *components.PositionComponent, dx, dy float64) {
	if dx != 0 {
		if nx := pos.X + dx; a.Walkable(nx, pos.Y) {
			pos.X = nx
		}
	}
	if dy != 0 {
		if ny := pos.Y + dy; a.Walkable(pos.X, ny) {
			pos.Y = ny
		}
	}
}
