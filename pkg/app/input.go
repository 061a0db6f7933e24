package app

import (
	"fmt"

	"github.com/foumildo44/vampire-survivor/pkg/events"
	"github.com/foumildo44/vampire-survivor/pkg/systems"
)

// keyIntent 一帧的方向键与冲刺键状态
type keyIntent struct {
	Up, Down, Left, Right bool
	Dash                  bool
}

// toIntent 转换为模拟的移动意图（对角线由模拟归一化）
func (k keyIntent) toIntent() systems.Intent {
	var in systems.Intent
	if k.Left {
		in.X--
	}
	if k.Right {
		in.X++
	}
	if k.Up {
		in.Y--
	}
	if k.Down {
		in.Y++
	}
	in.Dash = k.Dash
	return in
}

// describeEvent 把通知转换为屏幕提示文字，伤害通知不显示
func describeEvent(e events.Event) (string, bool) {
	switch d := e.Data.(type) {
	case events.WaveStartedData:
		return fmt.Sprintf("Wave %d begins (%d enemies)", d.Wave, d.TargetCount), true
	case events.WaveCompletedData:
		return fmt.Sprintf("Wave %d cleared: +%d XP, +%d gold", d.Wave, d.XPReward, d.GoldReward), true
	case events.BossSpawnedData:
		return fmt.Sprintf("A boss has appeared in wave %d!", d.Wave), true
	case events.LevelUpData:
		return fmt.Sprintf("Level %d! Choose an upgrade", d.Level), true
	case events.GameOverData:
		return fmt.Sprintf("You fell in wave %d after %d kills", d.Wave, d.Kills), true
	default:
		return "", false
	}
}

// noticeLog 屏幕左下角的滚动提示，每条显示固定时长
type noticeLog struct {
	max   int
	ttl   float64
	items []notice
}

type notice struct {
	text string
	age  float64
}

func newNoticeLog(max int, ttl float64) *noticeLog {
	return &noticeLog{max: max, ttl: ttl}
}

func (n *noticeLog) push(text string) {
	n.items = append(n.items, notice{text: text})
	if len(n.items) > n.max {
		n.items = n.items[len(n.items)-n.max:]
	}
}

func (n *noticeLog) advance(dt float64) {
	kept := n.items[:0]
	for _, it := range n.items {
		it.age += dt
		if it.age < n.ttl {
			kept = append(kept, it)
		}
	}
	n.items = kept
}

func (n *noticeLog) reset() {
	n.items = nil
}

// lines 返回当前显示的提示（旧的在前）
func (n *noticeLog) lines() []string {
	out := make([]string, len(n.items))
	for i, it := range n.items {
		out[i] = it.text
	}
	return out
}
