package systems

import (
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/arena"
	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/entities"
)

// ProjectileSystem 飞行道具系统
// 沿路径移动飞行道具；进入不可行走的地形时标记为 Spent，否则交给 CombatResolver 判定命中
type ProjectileSystem struct {
	store    *entities.Store
	arena    *arena.Arena
	resolver *CombatResolver
}

// NewProjectileSystem 创建飞行道具系统
func NewProjectileSystem(store *entities.Store, a *arena.Arena, resolver *CombatResolver) *ProjectileSystem {
	return &ProjectileSystem{
		store:    store,
		arena:    a,
		resolver: resolver,
	}
}

// Update 更新所有飞行道具
func (s *ProjectileSystem) Update(dt float64) {
	em := s.store.EntityManager()
	ids := ecs.GetEntitiesWith3[
		*components.ProjectileComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](em)

	for _, id := range ids {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		if proj.Spent || em.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)

		s.advance(id, proj, pos, vel.VX*dt, vel.VY*dt)
	}
}

// advance 沿本帧位移分段前进，每段不超过命中半径的一半
// 每段先检查地形再检查命中，撞墙或命中即停在该段终点
func (s *ProjectileSystem) advance(id ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent, dx, dy float64) {
	steps := 1
	step := s.store.Config().Player.Fireball.HitRadius / 2
	if dist := math.Hypot(dx, dy); step > 0 && dist > step && !math.IsInf(dist, 0) {
		steps = int(math.Ceil(dist / step))
	}
	x0, y0 := pos.X, pos.Y

	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pos.X = x0 + dx*t
		pos.Y = y0 + dy*t

		if !s.arena.Walkable(pos.X, pos.Y) {
			proj.Spent = true
			return
		}
		if s.resolver.ResolveProjectileHit(id) {
			return
		}
	}
}
