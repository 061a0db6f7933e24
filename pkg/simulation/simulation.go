// Package simulation 组装模拟核心并按固定顺序逐帧推进
//
// 宿主（桌面窗口、WebSocket 服务器或测试）每帧调用一次 Tick(dt)，
// 之后读取 Snapshot 绘制画面、读取 Events 触发界面与音效。
package simulation

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/arena"
	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/entities"
	"github.com/foumildo44/vampire-survivor/pkg/events"
	"github.com/foumildo44/vampire-survivor/pkg/game"
	"github.com/foumildo44/vampire-survivor/pkg/systems"
	"github.com/foumildo44/vampire-survivor/pkg/upgrades"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
	"github.com/google/uuid"
)

var (
	// ErrNoPendingUpgrade 当前没有等待选择的升级
	ErrNoPendingUpgrade = errors.New("no pending upgrade")
	// ErrUpgradeNotOffered 选择的升级不在本次提供的选项中
	ErrUpgradeNotOffered = errors.New("upgrade was not offered")
)

// Options 创建模拟的参数
type Options struct {
	// Config 游戏配置，nil 时使用 config.DefaultGameConfig()
	Config *config.GameConfig
	// Biome 群系名称，空字符串使用配置中的默认群系
	Biome string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Random 覆盖随机源（测试用），非 nil 时忽略 Seed
	Random utils.Random
	// Ledger 金币账本，nil 时使用内存账本
	Ledger game.CurrencyLedger
	// Verbose 输出各系统的详细日志
	Verbose bool
}

// Snapshot 对外输出的一帧数据
type Snapshot struct {
	RunID          string                 `json:"runId"`
	Tick           uint64                 `json:"tick"`
	Paused         bool                   `json:"paused"`
	GameOver       bool                   `json:"gameOver"`
	PendingUpgrade []events.UpgradeOption `json:"pendingUpgrade,omitempty"`
	systems.Snapshot
}

// Simulation 模拟上下文
//
// 持有每个系统实际需要的句柄（实体仓库、竞技场、波次状态由导演独占），
// 各系统之间只有单向依赖，不存在全局的游戏对象。
type Simulation struct {
	id    uuid.UUID
	cfg   *config.GameConfig
	biome string
	seed  int64
	rng   utils.Random

	arena  *arena.Arena
	store  *entities.Store
	bus    *events.Bus
	ledger *countingLedger

	resolver    *systems.CombatResolver
	director    *systems.SpawnDirector
	player      *systems.PlayerSystem
	enemies     *systems.EnemySystem
	projectiles *systems.ProjectileSystem
	lifetime    *systems.LifetimeSystem
	render      *systems.RenderSnapshotSystem
	pool        *upgrades.Pool

	stats    game.SessionStats
	tick     uint64
	paused   bool
	gameOver bool
	offered  []upgrades.Upgrade
	snapshot Snapshot
}

// New 创建一局新的模拟：生成竞技场、在中心放置玩家、连接各系统
func New(opts Options) (*Simulation, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}

	name := opts.Biome
	if name == "" {
		name = cfg.Biomes.Default
	}
	biome, ok := cfg.Biomes.GetBiome(name)
	if !ok {
		return nil, fmt.Errorf("unknown biome %q (available: %v)", name, cfg.Biomes.Names())
	}

	rng := opts.Random
	var seed int64
	if rng == nil {
		seeded := utils.NewSeededRandom(opts.Seed)
		seed = seeded.Seed()
		rng = seeded
	}

	pool, err := upgrades.NewPool(cfg.Upgrades, cfg.Player)
	if err != nil {
		return nil, fmt.Errorf("failed to build upgrade pool: %w", err)
	}

	ledger := opts.Ledger
	if ledger == nil {
		ledger = game.NewMemoryLedger()
	}

	s := &Simulation{
		id:     uuid.New(),
		cfg:    cfg,
		biome:  name,
		seed:   seed,
		rng:    rng,
		arena:  arena.GenerateWithOptions(arena.OptionsFromBiome(biome), rng),
		bus:    events.NewBus(),
		ledger: &countingLedger{inner: ledger},
		pool:   pool,
	}
	s.store = entities.NewStore(ecs.NewEntityManager(), cfg, rng)
	s.store.CreatePlayer(s.arena.SpawnPoint())

	s.resolver = systems.NewCombatResolver(s.store, s.arena, s.bus, rng)
	s.director = systems.NewSpawnDirector(s.store, s.arena, biome, s.bus, s.ledger, rng)
	s.player = systems.NewPlayerSystem(s.store, s.arena, s.resolver)
	s.enemies = systems.NewEnemySystem(s.store, s.arena, s.resolver)
	s.projectiles = systems.NewProjectileSystem(s.store, s.arena, s.resolver)
	s.lifetime = systems.NewLifetimeSystem(s.store)
	s.render = systems.NewRenderSnapshotSystem(s.store, s.player)

	s.SetVerbose(opts.Verbose)
	s.refresh()

	log.Printf("[Simulation] Run %s started (biome=%s, seed=%d, arena=%dx%d, open=%d)",
		s.id, name, seed, s.arena.Width, s.arena.Height, s.arena.CountOpen())
	return s, nil
}

// SetVerbose 设置各系统是否输出详细日志
func (s *Simulation) SetVerbose(verbose bool) {
	s.resolver.SetVerbose(verbose)
	s.director.SetVerbose(verbose)
	s.player.SetVerbose(verbose)
}

// ID 返回本局的运行ID
func (s *Simulation) ID() string {
	return s.id.String()
}

// Seed 返回实际使用的随机种子（使用外部随机源时为 0）
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Biome 返回群系名称
func (s *Simulation) Biome() string {
	return s.biome
}

// Arena 返回竞技场（只读使用）
func (s *Simulation) Arena() *arena.Arena {
	return s.arena
}

// Tick 推进一帧
//
// 顺序：波次导演 → 玩家 → 敌人 → 飞行道具 → 拾取 → 生命周期 → 清理死亡实体。
// 暂停、等待升级选择或游戏结束时整帧为空操作。
// dt 可以为 0 或很大，负数和 NaN 视为 0。
func (s *Simulation) Tick(dt float64) {
	if s.paused || s.gameOver || len(s.offered) > 0 {
		return
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	s.tick++
	s.stats.Elapsed += dt

	s.director.Update(dt)
	s.player.Update(dt)
	s.enemies.Update(dt)
	s.projectiles.Update(dt)
	s.store.ResolvePickups(dt, s.ledger)
	s.lifetime.Update(dt)

	sweep := s.store.SweepDead()
	s.stats.AddKills(sweep.Kills)

	s.offerUpgrades()
	s.checkGameOver()
	s.refresh()
}

// SetPaused 设置暂停
func (s *Simulation) SetPaused(paused bool) {
	if s.paused == paused {
		return
	}
	s.paused = paused
	log.Printf("[Simulation] Paused=%v", paused)
	s.refresh()
}

// Paused 是否暂停
func (s *Simulation) Paused() bool {
	return s.paused
}

// GameOver 玩家是否已死亡
func (s *Simulation) GameOver() bool {
	return s.gameOver
}

// SetIntent 设置玩家的移动意图，下一次 Tick 生效
func (s *Simulation) SetIntent(intent systems.Intent) {
	s.player.SetIntent(intent)
}

// PendingUpgrade 返回当前等待选择的升级选项，没有时返回 nil
func (s *Simulation) PendingUpgrade() []events.UpgradeOption {
	if len(s.offered) == 0 {
		return nil
	}
	out := make([]events.UpgradeOption, len(s.offered))
	for i, u := range s.offered {
		out[i] = events.UpgradeOption{ID: u.ID, Title: u.Title, Rarity: u.Rarity.String()}
	}
	return out
}

// ChooseUpgrade 应用一个已提供的升级选项并恢复模拟
// 还有未处理的升级时会立即提供下一组选项
func (s *Simulation) ChooseUpgrade(id string) error {
	if len(s.offered) == 0 {
		return ErrNoPendingUpgrade
	}
	found := false
	for _, u := range s.offered {
		if u.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("choose %q: %w", id, ErrUpgradeNotOffered)
	}

	if err := s.pool.Apply(s.store, id); err != nil {
		return err
	}
	if pc, ok := s.playerComponent(); ok && pc.PendingLevelUps > 0 {
		pc.PendingLevelUps--
	}
	s.offered = nil

	s.offerUpgrades()
	s.refresh()
	return nil
}

// Snapshot 返回最近一帧的渲染数据
func (s *Simulation) Snapshot() Snapshot {
	return s.snapshot
}

// Events 取走自上次调用以来发布的所有通知（按发布顺序）
func (s *Simulation) Events() []events.Event {
	return s.bus.Drain()
}

// Subscribe 同步订阅某类通知
func (s *Simulation) Subscribe(t events.Type, l events.Listener) {
	s.bus.Subscribe(t, l)
}

// Stats 返回本局统计
func (s *Simulation) Stats() game.SessionStats {
	return s.stats
}

// offerUpgrades 有待处理的升级且尚未提供选项时，抽取选项并发出 level-up
func (s *Simulation) offerUpgrades() {
	if len(s.offered) > 0 {
		return
	}
	pc, ok := s.playerComponent()
	if !ok || pc.PendingLevelUps <= 0 || !s.store.PlayerAlive() {
		return
	}

	s.offered = s.pool.Roll(s.rng)
	if len(s.offered) == 0 {
		pc.PendingLevelUps = 0
		return
	}

	log.Printf("[Simulation] Level %d reached, %d upgrade options offered", pc.Level, len(s.offered))
	s.bus.Emit(events.Event{
		Type: events.LevelUp,
		Data: events.LevelUpData{Level: pc.Level, Options: s.PendingUpgrade()},
	})
}

func (s *Simulation) checkGameOver() {
	if s.gameOver || s.store.PlayerAlive() {
		return
	}
	s.gameOver = true
	s.offered = nil

	log.Printf("[Simulation] Game over at wave %d (kills=%d, elapsed=%.1fs)",
		s.stats.Wave, s.stats.Kills, s.stats.Elapsed)
	s.bus.Emit(events.Event{
		Type: events.GameOver,
		Data: events.GameOverData{Wave: s.stats.Wave, Kills: s.stats.Kills, Elapsed: s.stats.Elapsed},
	})
}

// refresh 更新统计并重建快照
func (s *Simulation) refresh() {
	wave := s.director.State()
	s.stats.Wave = wave.Wave
	s.stats.WaveActive = wave.Phase == components.WavePhaseActive
	s.stats.BreakRemaining = s.director.BreakRemaining()
	s.stats.EnemiesAlive = s.store.AliveEnemyCount()
	s.stats.GoldCollected = s.ledger.deposited

	snap := s.render.Build(systems.HUD{
		Wave:           s.stats.Wave,
		WaveActive:     s.stats.WaveActive,
		BreakRemaining: s.stats.BreakRemaining,
		Kills:          s.stats.Kills,
		Elapsed:        s.stats.Elapsed,
		Gold:           s.ledger.Balance(),
		EnemiesAlive:   s.stats.EnemiesAlive,
	})
	s.snapshot = Snapshot{
		RunID:          s.ID(),
		Tick:           s.tick,
		Paused:         s.paused,
		GameOver:       s.gameOver,
		PendingUpgrade: s.PendingUpgrade(),
		Snapshot:       snap,
	}
}

func (s *Simulation) playerComponent() (*components.PlayerComponent, bool) {
	return ecs.GetComponent[*components.PlayerComponent](s.store.EntityManager(), s.store.Player())
}

// countingLedger 统计本局存入的金币，再转交给实际账本
type countingLedger struct {
	inner     game.CurrencyLedger
	deposited int
}

func (l *countingLedger) Deposit(amount int) error {
	if err := l.inner.Deposit(amount); err != nil {
		return err
	}
	l.deposited += amount
	return nil
}

func (l *countingLedger) Balance() int {
	return l.inner.Balance()
}
