// arena-server 无界面的 WebSocket 宿主
//
// 每个连接到 /ws 的客户端获得一局独立的模拟，服务器按 SURVIVOR_TICK_RATE
// 推进并推送 JSON 快照。运行参数见 config.RuntimeConfig。
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	runtimeCfg, err := config.LoadRuntimeConfig()
	if err != nil {
		slog.Error("failed to load runtime config", "err", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if runtimeCfg.Verbose {
		level = slog.LevelDebug
	} else {
		// 模拟核心使用 log 包输出调试信息，非 verbose 模式下关闭
		log.SetOutput(io.Discard)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	gameCfg, err := runtimeCfg.ResolveGameConfig()
	if err != nil {
		slog.Error("failed to load game config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, gameCfg, runtimeCfg); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, gameCfg *config.GameConfig, runtimeCfg *config.RuntimeConfig) error {
	srv := &http.Server{
		Addr:              runtimeCfg.ListenAddr,
		Handler:           server.NewHandler(gameCfg, runtimeCfg),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		slog.InfoContext(ctx, "listening", "addr", runtimeCfg.ListenAddr,
			"tick_rate", runtimeCfg.TickRate, "biome", runtimeCfg.Biome, "seed", runtimeCfg.Seed)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
