package foundry

import "fmt"

// SimpleCache is a small append-only, string-keyed cache with a fixed
// capacity. It backs the order graph's system registry: a system's Go
// type name is its key, the node index is its value, so AddSystem can
// reject two registrations of the same system type in one schedule.
type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

func NewSimpleCache[T any](maxCapacity int) *SimpleCache[T] {
	return &SimpleCache[T]{
		items:       make([]T, 0, maxCapacity),
		itemIndices: make(map[string]int, maxCapacity),
		maxCapacity: maxCapacity,
	}
}

func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *SimpleCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

func (c *SimpleCache[T]) GetItem32(index uint32) *T {
	return &c.items[index]
}

func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if _, ok := c.itemIndices[key]; ok {
		return -1, fmt.Errorf("foundry: %q already registered", key)
	}
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, fmt.Errorf("foundry: cache at maximum capacity (%d)", c.maxCapacity)
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

func (c *SimpleCache[T]) Len() int { return len(c.items) }

func (c *SimpleCache[T]) Clear() {
	c.items = c.items[:0]
	c.itemIndices = make(map[string]int, c.maxCapacity)
}
