package components

import "github.com/foumildo44/vampire-survivor/pkg/ecs"

// ChainWaypoint 闪电链路径上的一个点
// Target 为 0 表示自由点（如链的起点）
type ChainWaypoint struct {
	X, Y   float64
	Target ecs.EntityID
}

// ChainEffectComponent 闪电链显示数据（创建后只有生命周期会衰减）
type ChainEffectComponent struct {
	Waypoints []ChainWaypoint
}
