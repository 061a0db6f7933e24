package systems

import (
	"testing"

	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/types"
)

func TestEnemySteersTowardPlayer(t *testing.T) {
	w := newTestWorld()
	system := NewEnemySystem(w.store, w.arena, w.resolver)
	id := w.spawn(types.EnemyZombie, components.NormalTier(), 25.5, 20.5)

	system.Update(1)

	pos, _ := w.store.Position(id)
	if !approxEqual(pos.X, 24.0) || !approxEqual(pos.Y, 20.5) {
		t.Errorf("Expected zombie at (24, 20.5), got (%v, %v)", pos.X, pos.Y)
	}
	if w.health(w.player).Current != 100 {
		t.Error("Player should not take damage out of contact range")
	}
}

func TestEnemyContactDamage(t *testing.T) {
	tests := []struct {
		name string
		tier components.EnemyTier
		want float64
	}{
		{"普通", components.NormalTier(), 100 - 10*0.5},
		{"精英", components.EliteTier(types.EliteTank), 100 - 15*0.5},
		{"Boss", components.BossTier(), 100 - 20*0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			system := NewEnemySystem(w.store, w.arena, w.resolver)
			id := w.spawn(types.EnemyZombie, tt.tier, 20.8, 20.5)

			system.Update(0.5)

			if got := w.health(w.player).Current; !approxEqual(got, tt.want) {
				t.Errorf("Expected player health %v, got %v", tt.want, got)
			}
			pos, _ := w.store.Position(id)
			if pos.X != 20.8 {
				t.Errorf("Enemy in contact range should not move, got x=%v", pos.X)
			}
		})
	}
}

func TestEnemyContactDamageNotFloored(t *testing.T) {
	w := newTestWorld()
	system := NewEnemySystem(w.store, w.arena, w.resolver)
	w.spawn(types.EnemySkeleton, components.NormalTier(), 20.5, 20.7)

	system.Update(0.016)

	if got := w.health(w.player).Current; !approxEqual(got, 100-0.16) {
		t.Errorf("Expected continuous damage 0.16, got health %v", got)
	}
}

func TestEnemyIdleWhenPlayerDead(t *testing.T) {
	w := newTestWorld()
	system := NewEnemySystem(w.store, w.arena, w.resolver)
	id := w.spawn(types.EnemyZombie, components.NormalTier(), 25.5, 20.5)
	w.health(w.player).Dead = true

	system.Update(1)

	pos, _ := w.store.Position(id)
	if pos.X != 25.5 {
		t.Errorf("Enemies should stop once the player is dead, got x=%v", pos.X)
	}
}
