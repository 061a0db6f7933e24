package systems

import (
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/arena"
	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/entities"
)

// EnemySystem 敌人系统
//
// 敌人直接朝玩家移动（按轴分离检查可行走性，不做寻路）；
// 进入接触范围后停止移动，每秒对玩家造成 ContactDamage 点伤害。
type EnemySystem struct {
	store    *entities.Store
	arena    *arena.Arena
	resolver *CombatResolver
}

// NewEnemySystem 创建敌人系统
func NewEnemySystem(store *entities.Store, a *arena.Arena, resolver *CombatResolver) *EnemySystem {
	return &EnemySystem{
		store:    store,
		arena:    a,
		resolver: resolver,
	}
}

// Update 更新所有存活敌人
func (s *EnemySystem) Update(dt float64) {
	if !s.store.PlayerAlive() {
		return
	}
	player := s.store.Player()
	pp, _ := s.store.Position(player)
	contactRange := s.store.Config().Enemies.ContactDamage.Range
	em := s.store.EntityManager()

	for _, id := range s.store.LiveEnemies() {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		pos, _ := s.store.Position(id)

		dx, dy := pp.X-pos.X, pp.Y-pos.Y
		dist := math.Hypot(dx, dy)
		if dist > contactRange {
			step := enemy.Speed * dt
			moveWithCollision(s.arena, pos, dx/dist*step, dy/dist*step)
			continue
		}

		s.resolver.ApplyDamage(player, enemy.ContactDamage*dt)
		if !s.store.PlayerAlive() {
			return
		}
	}
}
