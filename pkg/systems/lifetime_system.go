package systems

import (
	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/entities"
)

// LifetimeSystem 管理飞行道具、掉落物和闪电特效的生命周期
//
// 已被吸附的掉落物不再老化；玩家死亡后掉落物也停止老化。
type LifetimeSystem struct {
	store *entities.Store
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(store *entities.Store) *LifetimeSystem {
	return &LifetimeSystem{
		store: store,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	em := s.store.EntityManager()
	playerAlive := s.store.PlayerAlive()

	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](em) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		if drop, isDrop := ecs.GetComponent[*components.DropComponent](em, id); isDrop {
			if drop.Magnetized || !playerAlive {
				continue
			}
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			// 标记待删除，由帧末的清理统一移除
			em.DestroyEntity(id)
		}
	}
}
