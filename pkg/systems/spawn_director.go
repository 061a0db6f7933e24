package systems

import (
	"log"
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/arena"
	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/entities"
	"github.com/foumildo44/vampire-survivor/pkg/events"
	"github.com/foumildo44/vampire-survivor/pkg/game"
	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
)

// SpawnDirector 波次导演
//
// 状态机：Break（初始，波次 0）→ Active → Break → ...
//   - Break 持续 BreakDuration 秒后进入下一波，重新计算本波参数并发出 wave-started
//   - Active 期间按生成计时器在玩家周围生成敌人，直到达到目标数量
//   - Boss 波在 Active 开始后生成唯一一个 Boss
//   - 生成数量达到目标且场上没有存活敌人时结束本波，发放奖励并发出 wave-completed
//
// 生成点不可行走时本次生成直接放弃（不重试），只有成功放置的敌人才计入生成数量；
// 生成计时器无论成功与否都会刷新。
type SpawnDirector struct {
	store  *entities.Store
	arena  *arena.Arena
	sink   events.Sink
	ledger game.CurrencyLedger
	rng    utils.Random

	waves  *config.WaveConfig
	engine *DifficultyEngine

	archetypes *utils.WeightedTable[types.EnemyArchetype]
	elites     *utils.WeightedTable[types.EliteArchetype]

	state   components.WaveState
	verbose bool
}

// NewSpawnDirector 创建波次导演
//
// 参数：
//   - store: 实体仓库（插入敌人、查询玩家位置和存活敌人数量）
//   - a: 竞技场（生成点可行走判定）
//   - biome: 当前群系，决定敌人类型权重
//   - sink: 事件发布端口
//   - ledger: 金币账本，可为 nil
//   - rng: 随机源
func NewSpawnDirector(
	store *entities.Store,
	a *arena.Arena,
	biome *config.BiomeConfig,
	sink events.Sink,
	ledger game.CurrencyLedger,
	rng utils.Random,
) *SpawnDirector {
	if sink == nil {
		sink = events.Discard{}
	}
	cfg := store.Config()

	items := make([]types.EnemyArchetype, 0, len(biome.Enemies))
	weights := make([]float64, 0, len(biome.Enemies))
	for _, e := range biome.Enemies {
		items = append(items, types.EnemyArchetypeFromString(e.Type))
		weights = append(weights, e.Weight)
	}

	eliteItems := make([]types.EliteArchetype, 0, len(types.AllEliteArchetypes))
	eliteWeights := make([]float64, 0, len(types.AllEliteArchetypes))
	for _, archetype := range types.AllEliteArchetypes {
		if elite, ok := cfg.Enemies.GetElite(archetype); ok {
			eliteItems = append(eliteItems, archetype)
			eliteWeights = append(eliteWeights, elite.Weight)
		}
	}

	return &SpawnDirector{
		store:      store,
		arena:      a,
		sink:       sink,
		ledger:     ledger,
		rng:        rng,
		waves:      cfg.Waves,
		engine:     NewDifficultyEngine(cfg.Waves),
		archetypes: utils.NewWeightedTable(items, weights),
		elites:     utils.NewWeightedTable(eliteItems, eliteWeights),
		state:      components.WaveState{Phase: components.WavePhaseBreak},
	}
}

// SetVerbose 设置是否输出详细日志
func (d *SpawnDirector) SetVerbose(verbose bool) {
	d.verbose = verbose
}

// State 返回波次状态的副本
func (d *SpawnDirector) State() components.WaveState {
	return d.state
}

// Engine 返回难度引擎
func (d *SpawnDirector) Engine() *DifficultyEngine {
	return d.engine
}

// BreakRemaining 返回休息阶段剩余时间，Active 阶段返回 0
func (d *SpawnDirector) BreakRemaining() float64 {
	if d.state.Phase != components.WavePhaseBreak {
		return 0
	}
	return math.Max(0, d.waves.BreakDuration-d.state.PhaseElapsed)
}

// Update 推进状态机
func (d *SpawnDirector) Update(dt float64) {
	d.state.PhaseElapsed += dt

	switch d.state.Phase {
	case components.WavePhaseBreak:
		if d.state.PhaseElapsed >= d.waves.BreakDuration {
			d.startWave()
		}
	case components.WavePhaseActive:
		d.updateActive(dt)
	}
}

// startWave Break → Active
func (d *SpawnDirector) startWave() {
	s := &d.state
	s.Wave++
	s.Phase = components.WavePhaseActive
	s.PhaseElapsed = 0
	s.Spawned = 0
	s.TargetCount = d.engine.TargetCount(s.Wave)
	s.Difficulty = d.engine.Difficulty(s.Wave)
	s.EliteChance = d.engine.EliteChance(s.Wave)
	s.SpawnTimer = 0
	s.BossSpawned = false

	log.Printf("[SpawnDirector] Wave %d started (target=%d, difficulty=%.2f, elite=%.2f)",
		s.Wave, s.TargetCount, s.Difficulty, s.EliteChance)
	d.sink.Emit(events.Event{
		Type: events.WaveStarted,
		Data: events.WaveStartedData{Wave: s.Wave, TargetCount: s.TargetCount},
	})
}

func (d *SpawnDirector) updateActive(dt float64) {
	s := &d.state

	if d.engine.IsBossWave(s.Wave) && !s.BossSpawned {
		d.TrySpawnBoss()
	}

	s.SpawnTimer -= dt
	if s.SpawnTimer <= 0 && s.Spawned < s.TargetCount {
		if d.spawnEnemy() {
			s.Spawned++
		}
		s.SpawnTimer = d.engine.SpawnInterval(s.PhaseElapsed)
	}

	// Boss 波必须先放置 Boss 才能结束
	bossPending := d.engine.IsBossWave(s.Wave) && !s.BossSpawned
	if s.Spawned >= s.TargetCount && !bossPending && d.store.AliveEnemyCount() == 0 {
		d.completeWave()
	}
}

// TrySpawnBoss 尝试生成本波的 Boss
//
// 仅在 Active 阶段、Boss 波且本波尚未生成 Boss 时生效；
// 成功放置后本波不再生成 Boss。放置失败时下一次 tick 重试。
func (d *SpawnDirector) TrySpawnBoss() bool {
	s := &d.state
	if s.Phase != components.WavePhaseActive || !d.engine.IsBossWave(s.Wave) || s.BossSpawned {
		return false
	}

	px, py, ok := d.playerPosition()
	if !ok {
		return false
	}
	angle := utils.RandAngle(d.rng)
	x := px + math.Cos(angle)*d.waves.BossDistance
	y := py + math.Sin(angle)*d.waves.BossDistance
	if !d.arena.Walkable(x, y) {
		if d.verbose {
			log.Printf("[SpawnDirector] Boss placement at (%.1f, %.1f) blocked, retrying next tick", x, y)
		}
		return false
	}

	if _, ok := d.store.CreateEnemy(types.EnemyBoss, components.BossTier(), x, y); !ok {
		return false
	}
	s.BossSpawned = true

	log.Printf("[SpawnDirector] Boss spawned for wave %d at (%.1f, %.1f)", s.Wave, x, y)
	d.sink.Emit(events.Event{
		Type: events.BossSpawned,
		Data: events.BossSpawnedData{Wave: s.Wave, X: x, Y: y},
	})
	return true
}

// spawnEnemy 在玩家周围的距离带内随机生成一个敌人，返回是否成功放置
func (d *SpawnDirector) spawnEnemy() bool {
	px, py, ok := d.playerPosition()
	if !ok {
		return false
	}

	angle := utils.RandAngle(d.rng)
	dist := utils.RandRange(d.rng, d.waves.SpawnDistanceMin, d.waves.SpawnDistanceMax)
	x := px + math.Cos(angle)*dist
	y := py + math.Sin(angle)*dist
	if !d.arena.Walkable(x, y) {
		if d.verbose {
			log.Printf("[SpawnDirector] Spawn at (%.1f, %.1f) blocked, discarded", x, y)
		}
		return false
	}

	archetype, ok := d.archetypes.Pick(d.rng)
	if !ok {
		return false
	}
	tier := components.NormalTier()
	if utils.Chance(d.rng, d.state.EliteChance) {
		if elite, ok := d.elites.Pick(d.rng); ok {
			tier = components.EliteTier(elite)
		}
	}

	id, ok := d.store.CreateEnemy(archetype, tier, x, y)
	if ok && d.verbose {
		log.Printf("[SpawnDirector] Spawned %s (%s) #%d at (%.1f, %.1f)", archetype, tier.Kind, id, x, y)
	}
	return ok
}

// completeWave Active → Break，发放经验与金币奖励
func (d *SpawnDirector) completeWave() {
	s := &d.state
	xp := d.engine.XPReward(s.Wave, s.Difficulty)
	gold := d.engine.GoldReward(s.Wave, s.Difficulty)

	d.store.GainXP(float64(xp))
	if d.ledger != nil {
		if err := d.ledger.Deposit(gold); err != nil {
			log.Printf("[SpawnDirector] Failed to deposit wave reward: %v", err)
		}
	}

	log.Printf("[SpawnDirector] Wave %d completed (xp=%d, gold=%d)", s.Wave, xp, gold)
	d.sink.Emit(events.Event{
		Type: events.WaveCompleted,
		Data: events.WaveCompletedData{Wave: s.Wave, XPReward: xp, GoldReward: gold},
	})

	s.Phase = components.WavePhaseBreak
	s.PhaseElapsed = 0
}

func (d *SpawnDirector) playerPosition() (float64, float64, bool) {
	pos, ok := d.store.Position(d.store.Player())
	if !ok {
		return 0, 0, false
	}
	return pos.X, pos.Y, true
}
