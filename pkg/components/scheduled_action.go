package components

import "github.com/foumildo44/vampire-survivor/pkg/types"

// ScheduledAction 延迟执行的动作
type ScheduledAction struct {
	Kind  types.ActionKind
	Delay float64 // 剩余延迟（秒）
}

// ScheduledActionsComponent 每个角色自己的计划动作队列
// 在正常的 tick 中推进，暂停时不推进
type ScheduledActionsComponent struct {
	Queue []ScheduledAction
}
