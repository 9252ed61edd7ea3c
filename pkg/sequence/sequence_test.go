package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinQueueOrdersLexically(t *testing.T) {
	q := NewMinQueue[string]()
	q.Enqueue("Temperature", "Cooked", "Pose", "AABB")

	var out []string
	for !q.IsEmpty() {
		v, ok := q.Dequeue()
		assert.True(t, ok)
		out = append(out, v)
	}
	assert.Equal(t, []string{"AABB", "Cooked", "Pose", "Temperature"}, out)

	_, ok := q.Dequeue()
	assert.False(t, ok)
}

func TestPriorityQueueCustomLess(t *testing.T) {
	q := NewPriorityQueue(func(a, b int) bool { return a > b })
	q.Enqueue(1, 4, 2)

	assert.Equal(t, 3, q.Len())
	top, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 4, top)
	assert.Equal(t, 2, q.Len())
}

func TestIteratorChain(t *testing.T) {
	in := []string{"Soaked", "Burnt", "Frozen", "Pose"}

	got := From(in).
		Filter(func(s string) bool { return s != "Pose" }).
		Collect()
	assert.Equal(t, []string{"Soaked", "Burnt", "Frozen"}, got)

	lengths := Map(From(in), func(s string) int { return len(s) }).Collect()
	assert.Equal(t, []int{6, 5, 6, 4}, lengths)

	assert.True(t, From(in).Any(func(s string) bool { return s == "Burnt" }))
	assert.False(t, From(in).Any(func(s string) bool { return s == "Cooked" }))
}

func TestSortIsStable(t *testing.T) {
	ranks := map[string]int{"Soaked": 1, "ToggledOn": 0, "Cooked": 2, "Wet": 1}
	got := From([]string{"Cooked", "Wet", "Soaked", "ToggledOn"}).
		Sort(func(a, b string) bool { return ranks[a] < ranks[b] }).
		Collect()
	assert.Equal(t, []string{"ToggledOn", "Wet", "Soaked", "Cooked"}, got)
}

func TestKeysSorted(t *testing.T) {
	m := map[string]int{"sliceable": 1, "cookable": 2, "burnable": 3}
	assert.Equal(t, []string{"burnable", "cookable", "sliceable"}, Keys(m).Collect())
}

func TestFromStopsEarly(t *testing.T) {
	seen := 0
	for v := range From([]int{1, 2, 3, 4}).Seq() {
		seen++
		if v == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}
