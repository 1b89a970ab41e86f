package physics

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(0, 0, 3, 4), 1e-9)
	assert.InDelta(t, 25.0, DistanceSquared(0, 0, 3, 4), 1e-9)
}

func TestCirclesOverlap(t *testing.T) {
	assert.True(t, CirclesOverlap(0, 0, 10, 15, 0, 7.5))
	assert.False(t, CirclesOverlap(0, 0, 10, 17.5, 0, 7.5), "touching circles do not overlap")
}

func TestRectOverlaps(t *testing.T) {
	a := CenteredRect(50, 50, 20, 20)
	assert.InDelta(t, 40.0, a.X, 1e-9)
	assert.InDelta(t, 60.0, a.Bottom(), 1e-9)

	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", Rect{X: 45, Y: 45, Width: 2, Height: 2}, true},
		{"partial", Rect{X: 55, Y: 55, Width: 20, Height: 20}, true},
		{"touching edge", Rect{X: 60, Y: 40, Width: 10, Height: 10}, false},
		{"far", Rect{X: 200, Y: 200, Width: 5, Height: 5}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(a))
		})
	}
}

func TestSpatialGridQuery(t *testing.T) {
	g := NewSpatialGrid(400, 300, 50)
	g.Insert(Rect{X: 10, Y: 10, Width: 10, Height: 10}, 0)
	g.Insert(Rect{X: 40, Y: 40, Width: 30, Height: 30}, 1) // spans four cells
	g.Insert(Rect{X: 300, Y: 250, Width: 10, Height: 10}, 2)
	g.Insert(Rect{X: 100, Y: -80, Width: 40, Height: 40}, 3) // above the field

	var got []int
	g.QueryRect(Rect{X: 0, Y: 0, Width: 60, Height: 60}, func(i int) bool {
		got = append(got, i)
		return false
	})
	sort.Ints(got)
	assert.Equal(t, []int{0, 1}, got, "each index reported once")

	got = got[:0]
	g.QueryRect(Rect{X: 110, Y: -10, Width: 5, Height: 5}, func(i int) bool {
		got = append(got, i)
		return false
	})
	assert.Equal(t, []int{3}, got, "off-field items clamp to border cells")

	g.Clear()
	called := false
	g.QueryRect(Rect{X: 0, Y: 0, Width: 400, Height: 300}, func(int) bool {
		called = true
		return false
	})
	assert.False(t, called)
}

func TestSpatialGridStopsEarly(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50)
	for i := 0; i < 5; i++ {
		g.Insert(Rect{X: 10, Y: 10, Width: 1, Height: 1}, i)
	}
	calls := 0
	g.QueryRect(Rect{X: 0, Y: 0, Width: 20, Height: 20}, func(int) bool {
		calls++
		return true
	})
	assert.Equal(t, 1, calls)
}
