package systems

import (
	"testing"

	"github.com/foumildo44/vampire-survivor/pkg/config"
	"pgregory.net/rapid"
)

func TestDifficultyEngineFormulas(t *testing.T) {
	engine := NewDifficultyEngine(config.DefaultWaves())

	tests := []struct {
		wave        int
		target      int
		difficulty  float64
		eliteChance float64
		xp, gold    int
	}{
		{1, 13, 1.15, 0.12, 57, 28},
		{5, 25, 1.75, 0.20, 437, 218},
		{20, 70, 4.0, 0.40, 4000, 2000},
	}

	for _, tt := range tests {
		if got := engine.TargetCount(tt.wave); got != tt.target {
			t.Errorf("wave %d: target expected %d, got %d", tt.wave, tt.target, got)
		}
		if got := engine.Difficulty(tt.wave); !approxEqual(got, tt.difficulty) {
			t.Errorf("wave %d: difficulty expected %v, got %v", tt.wave, tt.difficulty, got)
		}
		if got := engine.EliteChance(tt.wave); !approxEqual(got, tt.eliteChance) {
			t.Errorf("wave %d: elite chance expected %v, got %v", tt.wave, tt.eliteChance, got)
		}
		if got := engine.XPReward(tt.wave, engine.Difficulty(tt.wave)); got != tt.xp {
			t.Errorf("wave %d: xp reward expected %d, got %d", tt.wave, tt.xp, got)
		}
		if got := engine.GoldReward(tt.wave, engine.Difficulty(tt.wave)); got != tt.gold {
			t.Errorf("wave %d: gold reward expected %d, got %d", tt.wave, tt.gold, got)
		}
	}
}

func TestSpawnIntervalFloor(t *testing.T) {
	engine := NewDifficultyEngine(config.DefaultWaves())

	if got := engine.SpawnInterval(0); got != 2.0 {
		t.Errorf("Expected 2.0 at wave start, got %v", got)
	}
	if got := engine.SpawnInterval(30); !approxEqual(got, 1.0) {
		t.Errorf("Expected 1.0 after 30s, got %v", got)
	}
	if got := engine.SpawnInterval(1000); got != 0.3 {
		t.Errorf("Expected floor 0.3, got %v", got)
	}
}

func TestIsBossWave(t *testing.T) {
	engine := NewDifficultyEngine(config.DefaultWaves())
	for wave, want := range map[int]bool{0: false, 1: false, 4: false, 5: true, 10: true, 11: false} {
		if got := engine.IsBossWave(wave); got != want {
			t.Errorf("wave %d: expected boss=%v, got %v", wave, want, got)
		}
	}
}

// TestWaveParametersMonotonic 目标数量、难度和精英概率随波次单调不减
func TestWaveParametersMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		waves := config.DefaultWaves()
		waves.TargetPerWave = rapid.Float64Range(0, 10).Draw(t, "targetPerWave")
		waves.DifficultyPerWave = rapid.Float64Range(0, 1).Draw(t, "difficultyPerWave")
		waves.EliteChancePerWave = rapid.Float64Range(0, 0.2).Draw(t, "eliteChancePerWave")
		waves.EliteChanceCap = rapid.Float64Range(0, 1).Draw(t, "eliteChanceCap")
		engine := NewDifficultyEngine(waves)

		n := rapid.IntRange(1, 500).Draw(t, "wave")
		if engine.TargetCount(n) < engine.TargetCount(n-1) {
			t.Fatalf("target count decreased at wave %d", n)
		}
		if engine.Difficulty(n) < engine.Difficulty(n-1) {
			t.Fatalf("difficulty decreased at wave %d", n)
		}
		if engine.EliteChance(n) < engine.EliteChance(n-1) {
			t.Fatalf("elite chance decreased at wave %d", n)
		}
		if engine.EliteChance(n) > waves.EliteChanceCap {
			t.Fatalf("elite chance %v exceeds cap %v", engine.EliteChance(n), waves.EliteChanceCap)
		}
	})
}
