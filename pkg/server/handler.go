package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/simulation"
)

// Handler WebSocket 入口，同时提供 /healthz
type Handler struct {
	game     *config.GameConfig
	runtime  *config.RuntimeConfig
	sessions atomic.Int64
	mux      *http.ServeMux
}

// NewHandler 创建处理器
func NewHandler(game *config.GameConfig, runtime *config.RuntimeConfig) *Handler {
	h := &Handler{game: game, runtime: runtime}
	h.mux = http.NewServeMux()
	h.mux.HandleFunc("/ws", h.serveWS)
	h.mux.HandleFunc("/healthz", h.serveHealth)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Sessions 返回当前连接数
func (h *Handler) Sessions() int64 {
	return h.sessions.Load()
}

func (h *Handler) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": h.Sessions(),
	})
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // 开发用：跳过 Origin 检查
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to accept", "err", err)
		return
	}
	defer conn.CloseNow()

	sess, err := newSession(conn, simulation.Options{
		Config:  h.game,
		Biome:   h.runtime.Biome,
		Seed:    h.runtime.Seed,
		Verbose: h.runtime.Verbose,
	}, h.runtime.TickInterval(), h.runtime.IdleKick)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create session", "err", err)
		conn.Close(websocket.StatusInternalError, "failed to create session")
		return
	}

	h.sessions.Add(1)
	defer h.sessions.Add(-1)

	started := time.Now()
	slog.InfoContext(ctx, "session started", "run_id", sess.sim.ID(), "remote", r.RemoteAddr)

	err = sess.run(ctx)
	attrs := []any{
		"run_id", sess.sim.ID(),
		"duration", time.Since(started).Round(time.Millisecond),
		"dropped_frames", sess.dropped.Load(),
	}
	switch {
	case errors.Is(err, ErrIdle):
		slog.InfoContext(ctx, "session idle, closing", attrs...)
		conn.Close(websocket.StatusPolicyViolation, "idle")
	case isNormalClose(err):
		slog.InfoContext(ctx, "session closed", attrs...)
		conn.Close(websocket.StatusNormalClosure, "")
	default:
		slog.WarnContext(ctx, "session ended", append(attrs, "err", err)...)
	}
}

func isNormalClose(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}
