package simulation

import (
	"errors"
	"testing"

	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/events"
	"github.com/foumildo44/vampire-survivor/pkg/game"
	"github.com/foumildo44/vampire-survivor/pkg/systems"
	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newTestSimulation 使用小号、无障碍的森林竞技场
func newTestSimulation(t *testing.T, ledger game.CurrencyLedger) *Simulation {
	t.Helper()
	cfg := config.DefaultGameConfig()
	forest := cfg.Biomes.Biomes["forest"]
	forest.Width, forest.Height, forest.Density = 40, 40, 0
	cfg.Biomes.Biomes["forest"] = forest

	s, err := New(Options{Config: cfg, Seed: 42, Ledger: ledger})
	require.NoError(t, err)
	return s
}

func eventsOfType(evs []events.Event, t events.Type) []events.Event {
	var out []events.Event
	for _, e := range evs {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func TestNewUnknownBiome(t *testing.T) {
	_, err := New(Options{Biome: "volcano", Seed: 1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "volcano")
}

func TestNewInitialSnapshot(t *testing.T) {
	s := newTestSimulation(t, nil)

	_, err := uuid.Parse(s.ID())
	require.NoError(t, err)
	require.Equal(t, int64(42), s.Seed())
	require.Equal(t, "forest", s.Biome())

	snap := s.Snapshot()
	require.Equal(t, s.ID(), snap.RunID)
	require.Equal(t, uint64(0), snap.Tick)
	require.False(t, snap.GameOver)
	require.Len(t, snap.Records, 1)
	require.Equal(t, systems.RenderPlayer, snap.Records[0].Kind)
	require.Equal(t, 100.0, snap.HUD.Health)
	require.Equal(t, 1, snap.HUD.Level)
	require.InDelta(t, 15.0, snap.HUD.BreakRemaining, 1e-9)

	x, y := s.Arena().SpawnPoint()
	require.Equal(t, x, snap.Records[0].X)
	require.Equal(t, y, snap.Records[0].Y)
}

func TestTickClampsInvalidDelta(t *testing.T) {
	s := newTestSimulation(t, nil)

	s.Tick(-1)
	s.Tick(0)
	require.Equal(t, uint64(2), s.Snapshot().Tick)
	require.Equal(t, 0.0, s.Stats().Elapsed)
}

func TestPausedTickIsNoOp(t *testing.T) {
	s := newTestSimulation(t, nil)
	s.SetPaused(true)
	require.True(t, s.Snapshot().Paused)

	s.Tick(20)
	require.Equal(t, uint64(0), s.Snapshot().Tick)
	require.Equal(t, 0, s.Stats().Wave)

	s.SetPaused(false)
	s.Tick(15)
	require.Equal(t, 1, s.Stats().Wave)
	require.True(t, s.Stats().WaveActive)
}

func TestWaveStartEventAndSubscribe(t *testing.T) {
	s := newTestSimulation(t, nil)
	var received []events.Event
	s.Subscribe(events.WaveStarted, events.ListenerFunc(func(e events.Event) {
		received = append(received, e)
	}))

	s.Tick(15)

	require.Len(t, received, 1)
	started := eventsOfType(s.Events(), events.WaveStarted)
	require.Len(t, started, 1)
	require.Equal(t, events.WaveStartedData{Wave: 1, TargetCount: 13}, started[0].Data)
	require.Empty(t, s.Events(), "events are drained once")
}

func TestIntentMovesPlayer(t *testing.T) {
	s := newTestSimulation(t, nil)
	x0 := s.Snapshot().Records[0].X

	s.SetIntent(systems.Intent{X: 1})
	s.Tick(0.5)

	require.InDelta(t, x0+3, s.Snapshot().Records[0].X, 1e-9)
}

// TestLevelUpBlocksUntilChosen 有待选择的升级时整帧不推进，选择后恢复
func TestLevelUpBlocksUntilChosen(t *testing.T) {
	s := newTestSimulation(t, nil)
	pc, _ := s.playerComponent()
	s.store.GainXP(pc.XPToNext)
	require.Equal(t, 1, pc.PendingLevelUps)

	s.Tick(0.01)
	options := s.PendingUpgrade()
	require.Len(t, options, s.cfg.Upgrades.OptionsPerLevel)
	require.Equal(t, options, s.Snapshot().PendingUpgrade)

	levelUps := eventsOfType(s.Events(), events.LevelUp)
	require.Len(t, levelUps, 1)
	require.Equal(t, events.LevelUpData{Level: 2, Options: options}, levelUps[0].Data)

	tick := s.Snapshot().Tick
	s.Tick(1)
	require.Equal(t, tick, s.Snapshot().Tick, "tick must not advance while an upgrade is pending")

	err := s.ChooseUpgrade("not-offered")
	require.True(t, errors.Is(err, ErrUpgradeNotOffered))

	require.NoError(t, s.ChooseUpgrade(options[0].ID))
	require.Nil(t, s.PendingUpgrade())
	require.Equal(t, 0, pc.PendingLevelUps)

	require.ErrorIs(t, s.ChooseUpgrade(options[0].ID), ErrNoPendingUpgrade)

	s.Tick(0.01)
	require.Equal(t, tick+1, s.Snapshot().Tick)
}

// TestMultipleLevelUpsOfferedInTurn 连续升级时逐次提供选项
func TestMultipleLevelUpsOfferedInTurn(t *testing.T) {
	s := newTestSimulation(t, nil)
	pc, _ := s.playerComponent()
	pc.PendingLevelUps = 2

	s.Tick(0.01)
	first := s.PendingUpgrade()
	require.NotEmpty(t, first)
	s.Events()

	require.NoError(t, s.ChooseUpgrade(first[0].ID))
	require.NotEmpty(t, s.PendingUpgrade(), "second set offered immediately")
	require.Len(t, eventsOfType(s.Events(), events.LevelUp), 1)

	require.NoError(t, s.ChooseUpgrade(s.PendingUpgrade()[0].ID))
	require.Nil(t, s.PendingUpgrade())
	require.Equal(t, 0, pc.PendingLevelUps)
}

func TestGameOverEmittedOnce(t *testing.T) {
	s := newTestSimulation(t, nil)
	s.Tick(15)
	s.Events()

	s.resolver.ApplyDamage(s.store.Player(), 1000)
	s.Tick(0.01)

	require.True(t, s.GameOver())
	require.True(t, s.Snapshot().GameOver)
	over := eventsOfType(s.Events(), events.GameOver)
	require.Len(t, over, 1)
	data := over[0].Data.(events.GameOverData)
	require.Equal(t, 1, data.Wave)

	tick := s.Snapshot().Tick
	s.Tick(1)
	s.Tick(1)
	require.Equal(t, tick, s.Snapshot().Tick)
	require.Empty(t, eventsOfType(s.Events(), events.GameOver))
}

func TestGoldPickupReachesLedger(t *testing.T) {
	ledger := game.NewMemoryLedger()
	s := newTestSimulation(t, ledger)

	x, y := s.Arena().SpawnPoint()
	s.store.CreateDrop(types.DropCurrency, 10, x, y)
	s.Tick(0.01)

	require.Equal(t, 10, ledger.Balance())
	require.Equal(t, 10, s.Stats().GoldCollected)
	require.Equal(t, 10, s.Snapshot().HUD.Gold)
}

// TestDeterministicReplay 相同种子与相同输入得到相同的模拟结果
func TestDeterministicReplay(t *testing.T) {
	a := newTestSimulation(t, nil)
	b := newTestSimulation(t, nil)

	intents := []systems.Intent{{X: 1}, {Y: 1}, {X: -1, Y: -1}, {Dash: true}, {}}
	for i := 0; i < 1200; i++ {
		in := intents[(i/60)%len(intents)]
		a.SetIntent(in)
		b.SetIntent(in)
		a.Tick(1.0 / 30)
		b.Tick(1.0 / 30)
		for _, s := range []*Simulation{a, b} {
			if opts := s.PendingUpgrade(); len(opts) > 0 {
				require.NoError(t, s.ChooseUpgrade(opts[0].ID))
			}
		}
	}

	require.Equal(t, a.Snapshot().Snapshot, b.Snapshot().Snapshot)
	require.Equal(t, a.Stats(), b.Stats())
	require.Equal(t, a.Events(), b.Events())
}
