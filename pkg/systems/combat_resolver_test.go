package systems

import (
	"testing"

	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/events"
	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestApplyDamageFloorsEnemyDamage(t *testing.T) {
	w := newTestWorld()
	id := w.spawn(types.EnemyZombie, components.NormalTier(), 25, 20.5)

	res := w.resolver.ApplyDamage(id, 7.9)
	if res.Dealt != 7 {
		t.Errorf("Expected floored damage 7, got %v", res.Dealt)
	}
	if got := w.health(id).Current; got != 33 {
		t.Errorf("Expected health 33, got %v", got)
	}

	dealt := w.eventsOfType(events.DamageDealt)
	if len(dealt) != 1 {
		t.Fatalf("Expected 1 damage-dealt event, got %d", len(dealt))
	}
	if data := dealt[0].Data.(events.DamageDealtData); data.Amount != 7 || data.X != 25 {
		t.Errorf("Unexpected damage-dealt payload: %+v", data)
	}

	// 不足 1 点的伤害取整后为 0，不产生事件
	if res := w.resolver.ApplyDamage(id, 0.9); res.Dealt != 0 {
		t.Errorf("Expected 0 damage for sub-integer hit, got %v", res.Dealt)
	}
	if n := len(w.eventsOfType(events.DamageDealt)); n != 0 {
		t.Errorf("Expected no damage-dealt event, got %d", n)
	}
}

func TestApplyDamagePlayer(t *testing.T) {
	w := newTestWorld()

	res := w.resolver.ApplyDamage(w.player, 0.16)
	if !approxEqual(res.Dealt, 0.16) {
		t.Errorf("Player damage should not be floored, got %v", res.Dealt)
	}
	if !approxEqual(w.health(w.player).Current, 99.84) {
		t.Errorf("Expected player health 99.84, got %v", w.health(w.player).Current)
	}

	dash, _ := ecs.GetComponent[*components.DashComponent](w.em(), w.player)
	dash.IsDashing = true
	if res := w.resolver.ApplyDamage(w.player, 50); res.Dealt != 0 {
		t.Errorf("Dashing player should be invulnerable, got %v damage", res.Dealt)
	}
	dash.IsDashing = false

	res = w.resolver.ApplyDamage(w.player, 200)
	if !res.Killed || !w.health(w.player).Dead {
		t.Error("Player should be dead after lethal damage")
	}
	if res := w.resolver.ApplyDamage(w.player, 10); res.Dealt != 0 || res.Killed {
		t.Error("Damage to a dead player must be a no-op")
	}
}

// TestMeleeKillDropsOnce 20 血的敌人受到 25 点近战伤害：只死亡一次，只掉落一次
func TestMeleeKillDropsOnce(t *testing.T) {
	tests := []struct {
		name         string
		rng          []float64
		wantCurrency int
	}{
		{"金币判定失败", []float64{0.5}, 0},
		{"金币判定成功", []float64{0.05}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(tt.rng...)
			id := w.spawn(types.EnemySkeleton, components.NormalTier(), 22, 20.5)

			hits := w.resolver.ResolveMeleeSweep(20.5, 20.5, 3.5, 25, 1.5)
			require.Len(t, hits, 1)
			require.True(t, hits[0].Killed)
			require.LessOrEqual(t, w.health(id).Current, 0.0)

			require.Equal(t, 1, w.dropsOf(types.DropExperience))
			require.Equal(t, tt.wantCurrency, w.dropsOf(types.DropCurrency))

			// 再次伤害已死亡的敌人：空操作
			again := w.resolver.ApplyDamage(id, 25)
			require.Zero(t, again.Dealt)
			require.False(t, again.Killed)
			require.Empty(t, w.resolver.ResolveMeleeSweep(20.5, 20.5, 3.5, 25, 1.5))

			require.Equal(t, 1, w.dropsOf(types.DropExperience))
			require.Equal(t, tt.wantCurrency, w.dropsOf(types.DropCurrency))

			require.Equal(t, 1, w.store.SweepDead().Kills)
			require.Equal(t, 0, w.store.SweepDead().Kills)
			require.Equal(t, 1, w.store.Kills())
		})
	}
}

func TestMeleeKnockback(t *testing.T) {
	w := newTestWorld()
	survivor := w.spawn(types.EnemyDemon, components.NormalTier(), 22.5, 20.5)
	nearWall := w.spawn(types.EnemyDemon, components.NormalTier(), 1.2, 20.5)

	w.resolver.ResolveMeleeSweep(20.5, 20.5, 3.5, 25, 1.5)
	pos, _ := w.store.Position(survivor)
	if !approxEqual(pos.X, 24) || !approxEqual(pos.Y, 20.5) {
		t.Errorf("Expected knockback to (24, 20.5), got (%v, %v)", pos.X, pos.Y)
	}

	// 击退落点在边界障碍中：放弃击退
	w.resolver.ResolveMeleeSweep(2.0, 20.5, 3.5, 25, 1.5)
	pos, _ = w.store.Position(nearWall)
	if pos.X != 1.2 {
		t.Errorf("Knockback into a wall should be discarded, got x=%v", pos.X)
	}
}

// TestChainDecay 闪电链伤害：30 → 24 → 19，没有第四个目标时提前结束
func TestChainDecay(t *testing.T) {
	w := newTestWorld()
	e1 := w.spawn(types.EnemyDemon, components.NormalTier(), 23, 20.5)
	e2 := w.spawn(types.EnemyDemon, components.NormalTier(), 26, 20.5)
	e3 := w.spawn(types.EnemyDemon, components.NormalTier(), 29, 20.5)

	result := w.resolver.ResolveChain(20.5, 20.5, ChainParams{
		Damage:         30,
		Hops:           4,
		FirstRange:     15,
		HopRange:       5,
		Decay:          0.8,
		EffectLifetime: 0.3,
	})

	require.Len(t, result.Hits, 3)
	wantTargets := []ecs.EntityID{e1, e2, e3}
	wantDamage := []float64{30, 24, 19}
	for i, hit := range result.Hits {
		require.Equal(t, wantTargets[i], hit.Target, "hop %d target", i)
		require.Equal(t, wantDamage[i], hit.Dealt, "hop %d damage", i)
	}

	require.Len(t, result.Waypoints, 4)
	require.Equal(t, ecs.EntityID(0), result.Waypoints[0].Target)
	require.NotZero(t, result.Effect)
	chain, ok := ecs.GetComponent[*components.ChainEffectComponent](w.em(), result.Effect)
	require.True(t, ok)
	require.Len(t, chain.Waypoints, 4)
}

func TestChainNoTarget(t *testing.T) {
	w := newTestWorld()
	w.spawn(types.EnemyDemon, components.NormalTier(), 37, 20.5)

	result := w.resolver.ResolveChain(20.5, 20.5, ChainParams{Damage: 30, Hops: 3, FirstRange: 15, HopRange: 5, Decay: 0.8, EffectLifetime: 0.3})
	if len(result.Hits) != 0 {
		t.Errorf("Expected no hits, got %d", len(result.Hits))
	}
	if result.Effect != 0 {
		t.Error("No chain effect should be created without hits")
	}
}

// TestChainProperties 随机布局下：每跳伤害不增加，同一条链不会重复命中
func TestChainProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := newTestWorld()
		n := rapid.IntRange(0, 12).Draw(t, "enemies")
		for i := 0; i < n; i++ {
			x := rapid.Float64Range(5, 35).Draw(t, "x")
			y := rapid.Float64Range(5, 35).Draw(t, "y")
			w.spawn(types.EnemyDemon, components.BossTier(), x, y)
		}
		hops := rapid.IntRange(0, 15).Draw(t, "hops")
		base := rapid.Float64Range(1, 200).Draw(t, "damage")

		result := w.resolver.ResolveChain(20.5, 20.5, ChainParams{
			Damage: base, Hops: hops, FirstRange: 15, HopRange: 5, Decay: 0.8,
		})

		if len(result.Hits) > hops {
			t.Fatalf("%d hits exceed %d hops", len(result.Hits), hops)
		}
		seen := make(map[ecs.EntityID]bool)
		for k, hit := range result.Hits {
			if seen[hit.Target] {
				t.Fatalf("entity %d struck twice", hit.Target)
			}
			seen[hit.Target] = true
			if k > 0 && hit.Dealt > result.Hits[k-1].Dealt {
				t.Fatalf("hop %d damage %v exceeds hop %d damage %v", k, hit.Dealt, k-1, result.Hits[k-1].Dealt)
			}
		}
	})
}

func TestAreaDamageBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		peak := rapid.Float64Range(0, 1000).Draw(t, "peak")
		radius := rapid.Float64Range(0.01, 50).Draw(t, "radius")
		d := rapid.Float64Range(0, 100).Draw(t, "distance")

		got := AreaDamage(peak, radius, d)
		if d >= radius && got != 0 {
			t.Fatalf("damage %v at distance %v >= radius %v", got, d, radius)
		}
		if got < 0 || got > peak {
			t.Fatalf("damage %v outside [0, %v]", got, peak)
		}
		if AreaDamage(peak, radius, 0) != peak {
			t.Fatalf("damage at center should equal peak %v", peak)
		}
	})
}

func TestAreaEffectHitsPlayerExcludesSource(t *testing.T) {
	w := newTestWorld()
	source := w.spawn(types.EnemyDemon, components.NormalTier(), 21.5, 20.5)
	other := w.spawn(types.EnemyDemon, components.NormalTier(), 22.5, 20.5)

	hits := w.resolver.ResolveAreaEffect(21.5, 20.5, 3, 50, source)
	require.Len(t, hits, 2)

	require.Equal(t, 100.0, w.health(source).Current)
	// 距离 1：50 × (1 - 1/3) = 33.3，敌人取整为 33，玩家不取整
	require.Equal(t, 67.0, w.health(other).Current)
	require.InDelta(t, 100-50.0*2/3, w.health(w.player).Current, 1e-9)
}

// TestExplosiveCascade 爆炸型精英连锁爆炸：每个敌人只爆炸一次，队列最终清空
func TestExplosiveCascade(t *testing.T) {
	w := newTestWorld()
	first := w.spawn(types.EnemySkeleton, components.EliteTier(types.EliteExplosive), 30, 20.5)
	second := w.spawn(types.EnemySkeleton, components.EliteTier(types.EliteExplosive), 30.5, 20.5)
	bystander := w.spawn(types.EnemyDemon, components.NormalTier(), 32, 20.5)

	res := w.resolver.ApplyDamage(first, 100)
	require.True(t, res.Killed)

	require.True(t, w.health(second).Dead, "second explosive should die from the first explosion")
	// 旁观者距第一次爆炸 2.0、距第二次爆炸 1.5：floor(50/3)=16 与 floor(25)=25
	require.Equal(t, 100.0-16-25, w.health(bystander).Current)
	require.Equal(t, 100.0, w.health(w.player).Current, "player is out of range")

	require.Empty(t, w.resolver.explosions)
	require.False(t, w.resolver.resolving)
	require.Equal(t, 2, w.store.SweepDead().Kills)
}

func TestBossDeathDrops(t *testing.T) {
	w := newTestWorld()
	boss := w.spawn(types.EnemyBoss, components.BossTier(), 25, 20.5)

	w.resolver.ApplyDamage(boss, 1e6)
	if got := w.dropsOf(types.DropCurrency); got != 5 {
		t.Errorf("Expected 5 boss gold drops, got %d", got)
	}
	if got := w.dropsOf(types.DropExperience); got != 1 {
		t.Errorf("Expected 1 experience drop, got %d", got)
	}
}

func TestEliteGuaranteedGold(t *testing.T) {
	w := newTestWorld()
	elite := w.spawn(types.EnemyZombie, components.EliteTier(types.EliteTank), 25, 20.5)

	w.resolver.ApplyDamage(elite, 1e6)
	if got := w.dropsOf(types.DropCurrency); got != 1 {
		t.Errorf("Expected 1 elite gold drop, got %d", got)
	}
}

func TestProjectileHitOnce(t *testing.T) {
	w := newTestWorld()
	target := w.spawn(types.EnemyZombie, components.NormalTier(), 25, 20.5)
	proj := w.store.CreateProjectile(25.3, 20.5, 30, 0, 10, 5, types.WeaponFireball)

	if !w.resolver.ResolveProjectileHit(proj) {
		t.Fatal("Expected projectile to hit")
	}
	if got := w.health(target).Current; got != 30 {
		t.Errorf("Expected health 30, got %v", got)
	}
	if w.resolver.ResolveProjectileHit(proj) {
		t.Error("A spent projectile must not hit again")
	}
}

func TestCriticalHit(t *testing.T) {
	w := newTestWorld(0.1)
	w.playerComponent().CritChance = 0.5
	target := w.spawn(types.EnemyDemon, components.NormalTier(), 22, 20.5)

	hits := w.resolver.ResolveMeleeSweep(20.5, 20.5, 3.5, 25, 0)
	require.Len(t, hits, 1)
	require.True(t, hits[0].Critical)
	require.Equal(t, 50.0, hits[0].Dealt)
	require.Equal(t, 50.0, w.health(target).Current)

	dealt := w.eventsOfType(events.DamageDealt)
	require.Len(t, dealt, 1)
	require.True(t, dealt[0].Data.(events.DamageDealtData).IsCritical)
}
