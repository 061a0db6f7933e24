package upgrades

import (
	"errors"
	"testing"

	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/entities"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestPool(t *testing.T) (*Pool, *entities.Store) {
	t.Helper()
	cfg := config.DefaultGameConfig()
	pool, err := NewPool(cfg.Upgrades, cfg.Player)
	require.NoError(t, err)

	store := entities.NewStore(ecs.NewEntityManager(), cfg, utils.NewSeededRandom(1))
	store.CreatePlayer(10, 10)
	return pool, store
}

func weapons(store *entities.Store) *components.WeaponsComponent {
	w, _ := ecs.GetComponent[*components.WeaponsComponent](store.EntityManager(), store.Player())
	return w
}

func player(store *entities.Store) *components.PlayerComponent {
	p, _ := ecs.GetComponent[*components.PlayerComponent](store.EntityManager(), store.Player())
	return p
}

func TestNewPoolRejectsUnknownID(t *testing.T) {
	cfg := config.DefaultUpgrades()
	cfg.Upgrades = append(cfg.Upgrades, config.UpgradeEntry{ID: "teleport", Rarity: "epic"})

	_, err := NewPool(cfg, config.DefaultPlayer())
	if !errors.Is(err, ErrUnknownUpgrade) {
		t.Errorf("Expected ErrUnknownUpgrade, got %v", err)
	}
}

func TestRollDistinct(t *testing.T) {
	pool, _ := newTestPool(t)

	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64Range(1, 1<<40).Draw(t, "seed")
		options := pool.Roll(utils.NewSeededRandom(seed))
		if len(options) != 3 {
			t.Fatalf("expected 3 options, got %d", len(options))
		}
		seen := make(map[string]bool)
		for _, o := range options {
			if seen[o.ID] {
				t.Fatalf("option %s offered twice", o.ID)
			}
			seen[o.ID] = true
		}
	})
}

// TestRollRespectsRarity 抽到 0.0 落在第一个 common 条目，抽到接近 1 落在最后一个 legendary 条目
func TestRollRespectsRarity(t *testing.T) {
	pool, _ := newTestPool(t)

	first := pool.Roll(&utils.SequenceRandom{Values: []float64{0}})
	require.Equal(t, IDHeal, first[0].ID)

	last := pool.Roll(&utils.SequenceRandom{Values: []float64{0.999999}})
	require.Equal(t, IDSuperLightning, last[0].ID)
}

func TestApplyStatUpgrades(t *testing.T) {
	pool, store := newTestPool(t)
	health, _ := store.Health(store.Player())

	health.Current = 30
	require.NoError(t, pool.Apply(store, IDHeal))
	require.Equal(t, 80.0, health.Current)

	require.NoError(t, pool.Apply(store, IDMaxHP))
	require.Equal(t, 120.0, health.Max)
	require.Equal(t, 120.0, health.Current)

	require.NoError(t, pool.Apply(store, IDSpeed))
	require.InDelta(t, 6.6, player(store).Speed, 1e-9)

	require.NoError(t, pool.Apply(store, IDDamage))
	require.InDelta(t, 1.2, player(store).DamageMultiplier, 1e-9)

	require.NoError(t, pool.Apply(store, IDAttackSpeed))
	require.InDelta(t, 0.6*0.85, weapons(store).FireballCooldown, 1e-9)

	require.NoError(t, pool.Apply(store, IDMultishot))
	require.Equal(t, 2, player(store).ProjectileCount)
}

func TestApplySlash(t *testing.T) {
	pool, store := newTestPool(t)

	require.NoError(t, pool.Apply(store, IDSlash))
	w := weapons(store)
	require.Equal(t, 1, w.SlashLevel)
	require.InDelta(t, 1.5*0.85, w.SlashCooldown, 1e-9)
	require.InDelta(t, 0.1, w.SlashTimer, 1e-9)
}

func TestApplyLightning(t *testing.T) {
	pool, store := newTestPool(t)
	w := weapons(store)

	require.NoError(t, pool.Apply(store, IDLightning))
	require.Equal(t, 1, w.LightningLevel)
	require.Equal(t, 3, w.ChainCount)
	require.Equal(t, 2.0, w.LightningCooldown)

	require.NoError(t, pool.Apply(store, IDLightning))
	require.Equal(t, 2, w.LightningLevel)
	require.Equal(t, 4, w.ChainCount)
	require.InDelta(t, 1.8, w.LightningCooldown, 1e-9)
}

func TestApplySuperLightning(t *testing.T) {
	t.Run("未拥有闪电", func(t *testing.T) {
		pool, store := newTestPool(t)
		require.NoError(t, pool.Apply(store, IDSuperLightning))
		w := weapons(store)
		require.Equal(t, 1, w.LightningLevel)
		require.Equal(t, 5, w.ChainCount)
		require.Equal(t, 30.0, w.LightningDamage)
	})

	t.Run("已拥有闪电", func(t *testing.T) {
		pool, store := newTestPool(t)
		require.NoError(t, pool.Apply(store, IDLightning))
		require.NoError(t, pool.Apply(store, IDSuperLightning))
		w := weapons(store)
		require.Equal(t, 1, w.LightningLevel)
		require.Equal(t, 6, w.ChainCount)
		require.Equal(t, 60.0, w.LightningDamage)
		require.Equal(t, 1.0, w.LightningCooldown)
	})
}

func TestApplyUnknown(t *testing.T) {
	pool, store := newTestPool(t)
	if err := pool.Apply(store, "nope"); !errors.Is(err, ErrUnknownUpgrade) {
		t.Errorf("Expected ErrUnknownUpgrade, got %v", err)
	}
}
