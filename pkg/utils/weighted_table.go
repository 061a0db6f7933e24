package utils

import "sort"

// WeightedTable 累积权重表
//
// 构建时把权重转换为前缀和，选择时在 [0, total) 内取随机值并二分查找，
// 不需要把条目按权重重复展开成列表。
type WeightedTable[T any] struct {
	items      []T
	cumulative []float64
	total      float64
}

// NewWeightedTable 创建累积权重表
// 权重 <= 0 的条目被忽略
func NewWeightedTable[T any](items []T, weights []float64) *WeightedTable[T] {
	t := &WeightedTable[T]{}
	for i, item := range items {
		if i >= len(weights) || weights[i] <= 0 {
			continue
		}
		t.total += weights[i]
		t.items = append(t.items, item)
		t.cumulative = append(t.cumulative, t.total)
	}
	return t
}

// Len 返回有效条目数
func (t *WeightedTable[T]) Len() int {
	return len(t.items)
}

// Total 返回权重总和
func (t *WeightedTable[T]) Total() float64 {
	return t.total
}

// Pick 按权重随机选择一个条目
// 表为空时返回零值和 false
func (t *WeightedTable[T]) Pick(rng Random) (T, bool) {
	var zero T
	if len(t.items) == 0 {
		return zero, false
	}
	return t.items[t.indexFor(rng.Float64()*t.total)], true
}

// indexFor 找到第一个累积权重严格大于 r 的条目
func (t *WeightedTable[T]) indexFor(r float64) int {
	i := sort.Search(len(t.cumulative), func(i int) bool {
		return t.cumulative[i] > r
	})
	if i >= len(t.items) {
		i = len(t.items) - 1
	}
	return i
}

// PickDistinct 不放回地按权重选择最多 n 个不同条目
func (t *WeightedTable[T]) PickDistinct(rng Random, n int) []T {
	items := append([]T(nil), t.items...)
	weights := make([]float64, len(t.cumulative))
	prev := 0.0
	for i, c := range t.cumulative {
		weights[i] = c - prev
		prev = c
	}

	result := make([]T, 0, n)
	for len(result) < n && len(items) > 0 {
		remaining := NewWeightedTable(items, weights)
		idx := remaining.indexFor(rng.Float64() * remaining.total)
		result = append(result, items[idx])
		items = append(items[:idx], items[idx+1:]...)
		weights = append(weights[:idx], weights[idx+1:]...)
	}
	return result
}
