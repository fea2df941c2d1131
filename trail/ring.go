package trail

// Ring is a fixed capacity queue. Pushing into a full ring evicts the
// oldest item.
type Ring[T any] struct {
	start  int
	length int
	data   []T
}

func NewRing[T any](capacity int) *Ring[T] {
	return &Ring[T]{
		data: make([]T, capacity),
	}
}

func (r *Ring[T]) Cap() int {
	return len(r.data)
}

func (r *Ring[T]) Len() int {
	return r.length
}

func (r *Ring[T]) IsFull() bool {
	return r.length >= len(r.data)
}

// Push adds item as the newest entry.
func (r *Ring[T]) Push(item T) {
	if len(r.data) == 0 {
		return
	}

	end := (r.start + r.length) % len(r.data)
	r.data[end] = item

	if r.IsFull() {
		r.start = (r.start + 1) % len(r.data)
	} else {
		r.length++
	}
}

// At returns the index-th entry counting from the newest.
func (r *Ring[T]) At(index int) *T {
	if index < 0 || index >= r.length {
		panic("Ring:At: index out of range")
	}
	return &r.data[(r.start+r.length-1-index)%len(r.data)]
}

// Retain drops every entry for which keep returns false, keeping order.
func (r *Ring[T]) Retain(keep func(*T) bool) {
	kept := 0
	for i := 0; i < r.length; i++ {
		item := r.data[(r.start+i)%len(r.data)]
		if keep(&item) {
			r.data[(r.start+kept)%len(r.data)] = item
			kept++
		}
	}

	var zero T
	for i := kept; i < r.length; i++ {
		r.data[(r.start+i)%len(r.data)] = zero
	}
	r.length = kept
}

func (r *Ring[T]) Clear() {
	clear(r.data)
	r.start = 0
	r.length = 0
}
