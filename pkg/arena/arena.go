// Package arena 实现竞技场地形生成（元胞自动机）与可通行性查询
package arena

import (
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/types"
)

// Arena 矩形格子地图
// 格子 (x, y) 覆盖世界坐标 [x, x+1) × [y, y+1)
type Arena struct {
	Width  int
	Height int
	cells  []types.CellType // 行优先存储：cells[y*Width+x]
}

// newArena 创建全部为 CellOpen 的竞技场
func newArena(width, height int) *Arena {
	return &Arena{
		Width:  width,
		Height: height,
		cells:  make([]types.CellType, width*height),
	}
}

// InBounds 判断格子坐标是否在竞技场内
func (a *Arena) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < a.Width && y < a.Height
}

// Cell 返回格子类型，越界视为 CellObstacleA
func (a *Arena) Cell(x, y int) types.CellType {
	if !a.InBounds(x, y) {
		return types.CellObstacleA
	}
	return a.cells[y*a.Width+x]
}

func (a *Arena) set(x, y int, c types.CellType) {
	a.cells[y*a.Width+x] = c
}

// IsSolid 判断格子是否为障碍（越界视为障碍）
func (a *Arena) IsSolid(x, y int) bool {
	return a.Cell(x, y).IsSolid()
}

// Walkable 判断世界坐标是否可通行
// 越界永远不可通行，这不是错误
func (a *Arena) Walkable(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	cx, cy := math.Floor(x), math.Floor(y)
	if cx < 0 || cy < 0 || cx >= float64(a.Width) || cy >= float64(a.Height) {
		return false
	}
	return a.cells[int(cy)*a.Width+int(cx)] == types.CellOpen
}

// SpawnPoint 返回玩家出生点（竞技场中心格的中心）
func (a *Arena) SpawnPoint() (float64, float64) {
	return float64(a.Width/2) + 0.5, float64(a.Height/2) + 0.5
}

// CountOpen 返回可通行格子数量
func (a *Arena) CountOpen() int {
	n := 0
	for _, c := range a.cells {
		if c == types.CellOpen {
			n++
		}
	}
	return n
}

// 文本形式的格子字符
const (
	RuneOpen      = '.'
	RuneObstacleA = '#'
	RuneObstacleB = '%'
)

// Rows 以文本形式返回每一行格子（用于网络传输和终端预览）
func (a *Arena) Rows() []string {
	rows := make([]string, a.Height)
	buf := make([]byte, a.Width)
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			switch a.cells[y*a.Width+x] {
			case types.CellObstacleA:
				buf[x] = RuneObstacleA
			case types.CellObstacleB:
				buf[x] = RuneObstacleB
			default:
				buf[x] = RuneOpen
			}
		}
		rows[y] = string(buf)
	}
	return rows
}
