// Package server 通过 WebSocket 对外提供模拟核心
//
// 每个连接拥有一局独立的模拟。客户端发送移动意图、暂停与升级选择，
// 服务器以固定频率推进模拟并推送快照与通知（JSON 文本帧）。
package server

import (
	"github.com/foumildo44/vampire-survivor/pkg/events"
	"github.com/foumildo44/vampire-survivor/pkg/game"
	"github.com/foumildo44/vampire-survivor/pkg/simulation"
	"github.com/foumildo44/vampire-survivor/pkg/systems"
)

// 消息类型
const (
	// 客户端 → 服务器
	MsgIntent  = "intent"
	MsgPause   = "pause"
	MsgChoose  = "choose"
	MsgRestart = "restart"

	// 服务器 → 客户端
	MsgHello = "hello"
	MsgFrame = "frame"
	MsgError = "error"
)

// ClientMessage 客户端消息
type ClientMessage struct {
	Type    string          `json:"type"`
	Intent  *systems.Intent `json:"intent,omitempty"`
	Paused  bool            `json:"paused,omitempty"`
	Upgrade string          `json:"upgrade,omitempty"`
}

// ServerMessage 服务器消息，Type 决定哪个字段有效
type ServerMessage struct {
	Type  string `json:"type"`
	Hello *Hello `json:"hello,omitempty"`
	Frame *Frame `json:"frame,omitempty"`
	Error string `json:"error,omitempty"`
}

// Hello 新一局开始时发送一次，包含静态的竞技场地形
type Hello struct {
	RunID  string   `json:"runId"`
	Biome  string   `json:"biome"`
	Seed   int64    `json:"seed"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  []string `json:"cells"` // 每行一个字符串：'.' 空地，'#' '%' 障碍
}

// Frame 每个 tick 推送一次
type Frame struct {
	Snapshot simulation.Snapshot `json:"snapshot"`
	Events   []events.Event      `json:"events,omitempty"`
	Stats    game.SessionStats   `json:"stats"`
}

func newHello(sim *simulation.Simulation) ServerMessage {
	a := sim.Arena()
	return ServerMessage{Type: MsgHello, Hello: &Hello{
		RunID:  sim.ID(),
		Biome:  sim.Biome(),
		Seed:   sim.Seed(),
		Width:  a.Width,
		Height: a.Height,
		Cells:  a.Rows(),
	}}
}

func newFrame(sim *simulation.Simulation) ServerMessage {
	return ServerMessage{Type: MsgFrame, Frame: &Frame{
		Snapshot: sim.Snapshot(),
		Events:   sim.Events(),
		Stats:    sim.Stats(),
	}}
}

func newError(err error) ServerMessage {
	return ServerMessage{Type: MsgError, Error: err.Error()}
}
