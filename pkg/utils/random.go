package utils

import (
	"math"
	"math/rand"
	"time"
)

// Random 是模拟中所有概率决策的唯一随机源
//
// 地形噪声、精英判定、敌人类型、掉落概率都必须通过它取值，
// 这样同一个种子下生成与战斗结果可复现。
type Random interface {
	// Float64 返回 [0.0, 1.0) 的随机数
	Float64() float64
	// Intn 返回 [0, n) 的随机整数，n <= 0 时返回 0
	Intn(n int) int
}

// SeededRandom 基于 math/rand 的可设种子随机源
type SeededRandom struct {
	rng  *rand.Rand
	seed int64
}

// NewSeededRandom 创建指定种子的随机源
// 如果 seed 为 0，使用当前时间
func NewSeededRandom(seed int64) *SeededRandom {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SeededRandom{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed 返回实际使用的种子（便于日志复现）
func (r *SeededRandom) Seed() int64 {
	return r.seed
}

// Float64 返回 [0.0, 1.0) 的随机数
func (r *SeededRandom) Float64() float64 {
	return r.rng.Float64()
}

// Intn 返回 [0, n) 的随机整数
func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// RandRange 返回 [min, max) 的随机数
func RandRange(rng Random, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// RandAngle 返回 [0, 2π) 的随机角度
func RandAngle(rng Random) float64 {
	return rng.Float64() * 2 * math.Pi
}

// Chance 以概率 p 返回 true
// p <= 0 永远为 false，p >= 1 永远为 true
func Chance(rng Random, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}

// SequenceRandom 按给定序列循环返回 Float64 值的随机源（测试用）
// Intn 基于同一序列计算：int(v * n)
type SequenceRandom struct {
	Values []float64
	index  int
}

// Float64 返回序列中的下一个值
func (s *SequenceRandom) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.index%len(s.Values)]
	s.index++
	return v
}

// Intn 基于序列值返回 [0, n) 的整数
func (s *SequenceRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
