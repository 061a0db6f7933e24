package components

import "github.com/foumildo44/vampire-survivor/pkg/types"

// DropComponent 掉落物
//
// Magnetized 只会从 false 变为 true：进入吸附半径后持续飞向玩家直到被拾取。
type DropComponent struct {
	Kind       types.DropKind
	Value      float64
	Magnetized bool
	Collected  bool
}
