package entities

import (
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
)

// Enemies 返回所有敌人（含已死亡但尚未清理的），按ID升序
func (s *Store) Enemies() []ecs.EntityID {
	return ecs.GetEntitiesWith3[
		*components.EnemyComponent,
		*components.PositionComponent,
		*components.HealthComponent,
	](s.em)
}

// LiveEnemies 返回所有存活敌人，按ID升序
func (s *Store) LiveEnemies() []ecs.EntityID {
	all := s.Enemies()
	live := all[:0]
	for _, id := range all {
		if s.IsAlive(id) {
			live = append(live, id)
		}
	}
	return live
}

// AliveEnemyCount 返回存活敌人数量
func (s *Store) AliveEnemyCount() int {
	return len(s.LiveEnemies())
}

// Nearest 线性扫描，返回距离 (x, y) 严格小于 radius 的最近存活敌人
//
// exclude 中的实体被跳过（可为 nil）。距离相同时取ID较小者。
func (s *Store) Nearest(x, y, radius float64, exclude map[ecs.EntityID]struct{}) (ecs.EntityID, float64, bool) {
	var best ecs.EntityID
	bestDist := math.Inf(1)

	for _, id := range s.LiveEnemies() {
		if _, skip := exclude[id]; skip {
			continue
		}
		pos, ok := s.Position(id)
		if !ok {
			continue
		}
		d := math.Hypot(pos.X-x, pos.Y-y)
		if d < radius && d < bestDist {
			best, bestDist = id, d
		}
	}

	if best == 0 {
		return 0, 0, false
	}
	return best, bestDist, true
}

// Within 返回距离 (x, y) 严格小于 radius 的所有存活敌人，按ID升序
func (s *Store) Within(x, y, radius float64) []ecs.EntityID {
	result := make([]ecs.EntityID, 0)
	for _, id := range s.LiveEnemies() {
		pos, ok := s.Position(id)
		if !ok {
			continue
		}
		if math.Hypot(pos.X-x, pos.Y-y) < radius {
			result = append(result, id)
		}
	}
	return result
}
