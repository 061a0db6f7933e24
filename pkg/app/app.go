// Package app 提供桌面宿主的 ebiten.Game 实现
//
// 该包把模拟核心接入 Ebitengine：每帧读取键盘输入生成移动意图，
// 调用 Simulation.Tick，然后绘制渲染快照和 HUD。
// main.go 只负责初始化嵌入数据、读取运行参数并调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/game"
	"github.com/foumildo44/vampire-survivor/pkg/simulation"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// 逻辑屏幕尺寸与每格像素数
const (
	ScreenWidth  = 960
	ScreenHeight = 720
	TileSize     = 16
)

// Config 定义应用启动配置
type Config struct {
	// Game 游戏调参
	Game *config.GameConfig
	// Runtime 运行参数（种子、群系、存档名）
	Runtime *config.RuntimeConfig
}

// App 桌面宿主，实现 ebiten.Game 接口
type App struct {
	cfg    Config
	sim    *simulation.Simulation
	ledger *game.GdataLedger
	face   *text.GoXFace

	terrain *ebiten.Image // 预渲染的竞技场地形
	notices *noticeLog
	intent  keyIntent

	runRecorded              bool
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化桌面宿主
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	if cfg.Runtime == nil {
		return nil, fmt.Errorf("runtime config is required")
	}
	if !cfg.Runtime.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	a := &App{
		cfg:     cfg,
		ledger:  game.OpenGdataLedger(cfg.Runtime.AppName),
		face:    text.NewGoXFace(basicfont.Face7x13),
		notices: newNoticeLog(5, 3),
		verbose: cfg.Runtime.Verbose,
	}
	if err := a.startRun(); err != nil {
		return nil, err
	}
	log.Printf("[App] Desktop host ready (gold balance=%d, runs=%d)", a.ledger.Balance(), a.ledger.Data().Runs)
	return a, nil
}

// startRun 开始新的一局（首次启动或游戏结束后按 R）
func (a *App) startRun() error {
	sim, err := simulation.New(simulation.Options{
		Config:  a.cfg.Game,
		Biome:   a.cfg.Runtime.Biome,
		Seed:    a.cfg.Runtime.Seed,
		Ledger:  a.ledger,
		Verbose: a.verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}
	a.sim = sim
	a.terrain = renderTerrain(sim.Arena())
	a.runRecorded = false
	a.notices.reset()
	a.notices.push(fmt.Sprintf("Biome %s, seed %d", sim.Biome(), sim.Seed()))
	return nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	a.notices.advance(dt)

	if a.sim.GameOver() {
		a.recordRun()
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			return a.startRun()
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.sim.SetPaused(!a.sim.Paused())
	}

	if options := a.sim.PendingUpgrade(); len(options) > 0 {
		for i := range options {
			if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
				if err := a.sim.ChooseUpgrade(options[i].ID); err != nil {
					log.Printf("[App] Failed to choose upgrade %s: %v", options[i].ID, err)
				}
				break
			}
		}
		return nil
	}

	a.intent = keyIntent{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Dash:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
	a.sim.SetIntent(a.intent.toIntent())
	a.sim.Tick(dt)

	for _, e := range a.sim.Events() {
		if msg, ok := describeEvent(e); ok {
			a.notices.push(msg)
		}
	}
	return nil
}

// recordRun 游戏结束后记录一次对局并写入存档（每局只执行一次）
func (a *App) recordRun() {
	if a.runRecorded {
		return
	}
	a.runRecorded = true
	if err := a.ledger.RecordRun(); err != nil {
		log.Printf("[App] Failed to record run: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 16, B: 24, A: 255})
	snap := a.sim.Snapshot()

	cam := newCamera(snap)
	a.drawTerrain(screen, cam)
	a.drawChains(screen, cam, snap.Chains)
	a.drawRecords(screen, cam, snap.Records)
	a.drawHUD(screen, snap)
	a.drawNotices(screen)

	switch {
	case snap.GameOver:
		a.drawGameOver(screen, snap)
	case len(snap.PendingUpgrade) > 0:
		a.drawUpgradeChoice(screen, snap)
	case snap.Paused:
		a.drawCentered(screen, []string{"PAUSED", "Press P or Esc to resume"})
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close 退出前保存账本
func (a *App) Close() error {
	return a.ledger.Save()
}
