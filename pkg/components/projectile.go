package components

import (
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/types"
)

// ProjectileComponent 飞行道具数据
// 位置与速度分别存放在 PositionComponent / VelocityComponent 中
type ProjectileComponent struct {
	OriginX, OriginY float64
	Damage           float64
	Weapon           types.WeaponType
	// HitIDs 已命中的实体（按ID引用），每个实体最多被命中一次
	HitIDs map[ecs.EntityID]struct{}
	// Spent 已命中目标或撞墙，等待清理
	Spent bool
}
