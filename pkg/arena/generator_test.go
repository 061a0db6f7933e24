package arena

import (
	"testing"

	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
	"pgregory.net/rapid"
)

// TestGenerateZeroDensity 密度为 0 的 80×80 竞技场：除边界外全部可通行
func TestGenerateZeroDensity(t *testing.T) {
	a := Generate(80, 80, 0, utils.NewSeededRandom(7))

	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			border := x == 0 || y == 0 || x == a.Width-1 || y == a.Height-1
			if border && !a.IsSolid(x, y) {
				t.Fatalf("border cell (%d,%d) should be solid", x, y)
			}
			if !border && a.IsSolid(x, y) {
				t.Fatalf("interior cell (%d,%d) should be open", x, y)
			}
		}
	}

	if !a.Walkable(1, 1) {
		t.Error("Walkable(1,1) should be true")
	}
	if a.CountOpen() != 78*78 {
		t.Errorf("Expected %d open cells, got %d", 78*78, a.CountOpen())
	}
}

// TestGenerateFullDensity 密度为 1：只有安全区可通行
func TestGenerateFullDensity(t *testing.T) {
	a := GenerateWithOptions(GenerateOptions{
		Width: 40, Height: 40, Density: 1,
		SmoothingPasses: 5, SafeZoneRadius: 6, ObstacleBChance: 0,
	}, utils.NewSeededRandom(3))

	if got, want := a.CountOpen(), 13*13; got != want {
		t.Errorf("Expected %d open cells, got %d", want, got)
	}
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			if a.Cell(x, y) == types.CellObstacleB {
				t.Fatalf("ObstacleBChance 0 should never produce ObstacleB at (%d,%d)", x, y)
			}
		}
	}

	x, y := a.SpawnPoint()
	if !a.Walkable(x, y) {
		t.Error("spawn point should be walkable")
	}
}

func TestWalkableOutOfBounds(t *testing.T) {
	a := Generate(10, 10, 0, utils.NewSeededRandom(1))

	tests := []struct {
		name string
		x, y float64
	}{
		{"负坐标", -0.5, 5},
		{"超出宽度", 10.0, 5},
		{"超出高度", 5, 10.2},
		{"边界格", 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if a.Walkable(tt.x, tt.y) {
				t.Errorf("Walkable(%v,%v) should be false", tt.x, tt.y)
			}
		})
	}

	if a.Cell(-1, -1) != types.CellObstacleA {
		t.Error("out-of-bounds cell should read as obstacle")
	}
}

// TestSmoothingRule 空旷区域平滑一次后只有四个角被填充
func TestSmoothingRule(t *testing.T) {
	a := newArena(7, 7)
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			if a.isBorder(x, y) {
				a.set(x, y, types.CellObstacleA)
			}
		}
	}

	a.smooth()

	for y := 1; y <= 5; y++ {
		for x := 1; x <= 5; x++ {
			corner := (x == 1 || x == 5) && (y == 1 || y == 5)
			if corner != a.IsSolid(x, y) {
				t.Errorf("cell (%d,%d): expected solid=%v", x, y, corner)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(50, 50, 0.38, utils.NewSeededRandom(99))
	b := Generate(50, 50, 0.38, utils.NewSeededRandom(99))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if a.Cell(x, y) != b.Cell(x, y) {
				t.Fatalf("same seed produced different cell at (%d,%d)", x, y)
			}
		}
	}
}

// TestGenerateInvariants 任意密度与种子下：边界全为障碍，安全区全为空地
func TestGenerateInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := rapid.IntRange(0, 6).Draw(t, "safeZone")
		w := rapid.IntRange(2*r+3, 60).Draw(t, "width")
		h := rapid.IntRange(2*r+3, 60).Draw(t, "height")
		density := rapid.Float64Range(0, 1).Draw(t, "density")
		seed := rapid.Int64Range(1, 1<<50).Draw(t, "seed")

		a := GenerateWithOptions(GenerateOptions{
			Width: w, Height: h, Density: density,
			SmoothingPasses: 5, SafeZoneRadius: r, ObstacleBChance: 0.3,
		}, utils.NewSeededRandom(seed))

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if a.isBorder(x, y) && !a.IsSolid(x, y) {
					t.Fatalf("border cell (%d,%d) is open", x, y)
				}
				if a.InSafeZone(x, y, r) && a.IsSolid(x, y) {
					t.Fatalf("safe zone cell (%d,%d) is solid", x, y)
				}
			}
		}
	})
}

func TestRows(t *testing.T) {
	a := GenerateWithOptions(GenerateOptions{Width: 4, Height: 3, SafeZoneRadius: 0}, utils.NewSeededRandom(1))
	a.set(1, 1, types.CellObstacleB)

	want := []string{"####", "#%.#", "####"}
	got := a.Rows()
	if len(got) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
