package object

// scriptRand replays fixed rolls, cycling when exhausted.
type scriptRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return v % n
}

type collect[T any] struct {
	items []T
}

func (c *collect[T]) Spawn(obj T) {
	c.items = append(c.items, obj)
}
