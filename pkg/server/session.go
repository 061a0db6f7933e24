package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/foumildo44/vampire-survivor/pkg/simulation"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrBackpressure 写入队列已满
	ErrBackpressure = errors.New("write queue is full")
	// ErrIdle 客户端长时间没有发送消息
	ErrIdle = errors.New("client idle for too long")
	// ErrUnknownMessage 无法识别的消息类型
	ErrUnknownMessage = errors.New("unknown message type")
)

const writeTimeout = 5 * time.Second

// session 一个连接对应的一局模拟
//
// ownerLoop 独占模拟：客户端命令经 cmdCh 转交给它，在两个 tick 之间执行。
type session struct {
	conn     *websocket.Conn
	opts     simulation.Options
	sim      *simulation.Simulation
	interval time.Duration
	idleKick time.Duration

	cmdCh    chan ClientMessage
	writeCh  chan ServerMessage
	lastSeen atomic.Int64
	dropped  atomic.Int64
}

func newSession(conn *websocket.Conn, opts simulation.Options, interval, idleKick time.Duration) (*session, error) {
	sim, err := simulation.New(opts)
	if err != nil {
		return nil, err
	}
	s := &session{
		conn:     conn,
		opts:     opts,
		sim:      sim,
		interval: interval,
		idleKick: idleKick,
		cmdCh:    make(chan ClientMessage, 64),
		writeCh:  make(chan ServerMessage, 256),
	}
	s.touch()
	return s, nil
}

// run 启动读、写、模拟三个循环，任一循环退出时全部结束
func (s *session) run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return s.readLoop(ctx)
	})
	eg.Go(func() error {
		return s.writeLoop(ctx)
	})
	eg.Go(func() error {
		return s.ownerLoop(ctx)
	})
	return eg.Wait()
}

func (s *session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *session) idleFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

func (s *session) readLoop(ctx context.Context) error {
	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, s.conn, &msg); err != nil {
			return err
		}
		s.touch()
		select {
		case s.cmdCh <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *session) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-s.writeCh:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, s.conn, msg)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}

func (s *session) ownerLoop(ctx context.Context) error {
	if err := s.send(newHello(s.sim)); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	dt := s.interval.Seconds()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-s.cmdCh:
			if err := s.apply(msg); err != nil {
				slog.DebugContext(ctx, "rejected client message", "run_id", s.sim.ID(), "type", msg.Type, "err", err)
				if err := s.send(newError(err)); err != nil {
					return err
				}
			}
		case now := <-ticker.C:
			if s.idleKick > 0 && s.idleFor(now) > s.idleKick {
				return ErrIdle
			}
			s.sim.Tick(dt)
			// 帧可以丢弃，下一帧包含完整快照；但丢弃的通知不会重发
			if err := s.send(newFrame(s.sim)); err != nil {
				s.dropped.Add(1)
			}
		}
	}
}

// apply 执行一条客户端命令
func (s *session) apply(msg ClientMessage) error {
	switch msg.Type {
	case MsgIntent:
		if msg.Intent == nil {
			return fmt.Errorf("intent message without intent")
		}
		s.sim.SetIntent(*msg.Intent)
	case MsgPause:
		s.sim.SetPaused(msg.Paused)
	case MsgChoose:
		return s.sim.ChooseUpgrade(msg.Upgrade)
	case MsgRestart:
		sim, err := simulation.New(s.opts)
		if err != nil {
			return err
		}
		s.sim = sim
		return s.send(newHello(sim))
	default:
		return fmt.Errorf("%q: %w", msg.Type, ErrUnknownMessage)
	}
	return nil
}

// send 非阻塞地把消息放入写队列
func (s *session) send(msg ServerMessage) error {
	select {
	case s.writeCh <- msg:
		return nil
	default:
		return ErrBackpressure
	}
}
