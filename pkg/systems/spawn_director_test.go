package systems

import (
	"testing"

	"github.com/foumildo44/vampire-survivor/pkg/arena"
	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/events"
	"github.com/foumildo44/vampire-survivor/pkg/events/mocks"
	"github.com/foumildo44/vampire-survivor/pkg/game"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestDirector(w *testWorld, ledger game.CurrencyLedger) *SpawnDirector {
	biome, _ := w.cfg.Biomes.GetBiome("forest")
	return NewSpawnDirector(w.store, w.arena, biome, w.bus, ledger, w.rng)
}

func countBosses(w *testWorld) int {
	n := 0
	for _, id := range w.store.Enemies() {
		if enemy, ok := ecs.GetComponent[*components.EnemyComponent](w.em(), id); ok && enemy.Tier.IsBoss() {
			n++
		}
	}
	return n
}

func TestDirectorInitialState(t *testing.T) {
	w := newTestWorld()
	d := newTestDirector(w, nil)

	s := d.State()
	if s.Phase != components.WavePhaseBreak || s.Wave != 0 {
		t.Errorf("Expected Break with wave 0, got %v wave %d", s.Phase, s.Wave)
	}
	if d.BreakRemaining() != w.cfg.Waves.BreakDuration {
		t.Errorf("Expected full break remaining, got %v", d.BreakRemaining())
	}
}

func TestWaveStartEmitsEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Emit(events.Event{
		Type: events.WaveStarted,
		Data: events.WaveStartedData{Wave: 1, TargetCount: 13},
	}).Times(1)

	w := newTestWorld()
	biome, _ := w.cfg.Biomes.GetBiome("forest")
	d := NewSpawnDirector(w.store, w.arena, biome, sink, nil, w.rng)

	d.Update(14.9)
	require.Equal(t, components.WavePhaseBreak, d.State().Phase)

	d.Update(0.2)
	s := d.State()
	require.Equal(t, components.WavePhaseActive, s.Phase)
	require.Equal(t, 1, s.Wave)
	require.Equal(t, 13, s.TargetCount)
	require.InDelta(t, 1.15, s.Difficulty, 1e-9)
	require.False(t, s.BossSpawned)
}

// TestWaveLifecycle 只有在生成数量达到目标且没有存活敌人时才结束波次
func TestWaveLifecycle(t *testing.T) {
	w := newTestWorld()
	w.cfg.Waves.TargetBase = 2
	w.cfg.Waves.TargetPerWave = 0
	w.cfg.Waves.BreakDuration = 1
	ledger := game.NewMemoryLedger()
	d := newTestDirector(w, ledger)

	d.Update(1)
	require.Equal(t, components.WavePhaseActive, d.State().Phase)
	require.Equal(t, 2, d.State().TargetCount)

	d.Update(0.01)
	require.Equal(t, 1, d.State().Spawned)
	require.Equal(t, 1, w.store.AliveEnemyCount())

	d.Update(2.0)
	require.Equal(t, 2, d.State().Spawned)
	require.Equal(t, components.WavePhaseActive, d.State().Phase, "enemies alive, wave must not end")

	for i := 0; i < 5; i++ {
		d.Update(1)
	}
	require.Equal(t, 2, d.State().Spawned, "spawning stops at target count")
	require.Equal(t, components.WavePhaseActive, d.State().Phase)

	live := w.store.LiveEnemies()
	w.resolver.ApplyDamage(live[0], 1000)
	d.Update(0.01)
	require.Equal(t, components.WavePhaseActive, d.State().Phase, "one enemy still alive")

	w.resolver.ApplyDamage(live[1], 1000)
	w.bus.Drain()
	d.Update(0.01)
	require.Equal(t, components.WavePhaseBreak, d.State().Phase)

	completed := w.eventsOfType(events.WaveCompleted)
	require.Len(t, completed, 1)
	require.Equal(t, events.WaveCompletedData{Wave: 1, XPReward: 57, GoldReward: 28}, completed[0].Data)

	require.Equal(t, 28, ledger.Balance())
	pc := w.playerComponent()
	require.Equal(t, 2, pc.Level)
	require.InDelta(t, 7.0, pc.XP, 1e-9)
}

// TestSpawnBlockedByTerrain 生成点落在障碍上时放弃本次生成，不计数，计时器照常刷新
func TestSpawnBlockedByTerrain(t *testing.T) {
	solid := arena.Generate(40, 40, 1, utils.NewSeededRandom(1))
	w := newTestWorldWithArena(solid)
	w.cfg.Waves.BreakDuration = 0
	d := newTestDirector(w, nil)

	d.Update(0)
	require.Equal(t, components.WavePhaseActive, d.State().Phase)

	d.Update(0.1)
	s := d.State()
	require.Equal(t, 0, s.Spawned)
	require.Equal(t, 0, w.store.AliveEnemyCount())
	require.Greater(t, s.SpawnTimer, 0.0)
}

// TestBossWave wave 5 生成且只生成一个 Boss，同一波内再次尝试被拒绝
func TestBossWave(t *testing.T) {
	w := newTestWorld()
	d := newTestDirector(w, nil)
	d.state.Wave = 4

	d.Update(w.cfg.Waves.BreakDuration)
	require.Equal(t, 5, d.State().Wave)
	require.Equal(t, 0, countBosses(w))

	d.Update(0.016)
	require.True(t, d.State().BossSpawned)
	require.Equal(t, 1, countBosses(w))
	require.Len(t, w.eventsOfType(events.BossSpawned), 1)

	require.False(t, d.TrySpawnBoss(), "second boss in the same wave must be rejected")
	for i := 0; i < 100; i++ {
		d.Update(0.5)
	}
	require.Equal(t, 1, countBosses(w))
	require.Empty(t, w.eventsOfType(events.BossSpawned))
}

// TestBossWaveWaitsForBoss Boss 放置一直失败时，普通敌人清空也不结束 Boss 波
func TestBossWaveWaitsForBoss(t *testing.T) {
	solid := arena.Generate(40, 40, 1, utils.NewSeededRandom(1))
	w := newTestWorldWithArena(solid)
	w.cfg.Waves.BreakDuration = 0
	d := newTestDirector(w, nil)
	d.state.Wave = 4

	d.Update(0)
	require.Equal(t, 5, d.State().Wave)
	require.Equal(t, components.WavePhaseActive, d.State().Phase)

	d.state.Spawned = d.state.TargetCount
	for i := 0; i < 10; i++ {
		d.Update(0.1)
	}

	s := d.State()
	require.Equal(t, components.WavePhaseActive, s.Phase)
	require.False(t, s.BossSpawned)
	require.Equal(t, 0, w.store.AliveEnemyCount())
	require.Empty(t, w.eventsOfType(events.WaveCompleted))
}

func TestNoBossOnRegularWave(t *testing.T) {
	w := newTestWorld()
	d := newTestDirector(w, nil)

	d.Update(w.cfg.Waves.BreakDuration)
	require.Equal(t, 1, d.State().Wave)
	require.False(t, d.TrySpawnBoss())

	for i := 0; i < 20; i++ {
		d.Update(0.5)
	}
	require.Equal(t, 0, countBosses(w))
}

func TestTrySpawnBossDuringBreak(t *testing.T) {
	w := newTestWorld()
	d := newTestDirector(w, nil)
	d.state.Wave = 5

	if d.TrySpawnBoss() {
		t.Error("Boss must not spawn during Break")
	}
}
