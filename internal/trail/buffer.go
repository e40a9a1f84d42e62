// Package trail stores the recent history of an attractor trajectory as a
// bounded FIFO of points.
package trail

import (
	"iter"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Buffer is a growable ring of points, oldest first. The bound can change
// at any time; it is enforced on the next Append.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	data []dynamo.Point3
	head int
	n    int
	max  int
}

// New returns an empty buffer bounded at maxLength points.
func New(maxLength int) *Buffer {
	if maxLength < 1 {
		maxLength = 1
	}
	return &Buffer{
		data: make([]dynamo.Point3, maxLength),
		max:  maxLength,
	}
}

func (b *Buffer) Len() int       { return b.n }
func (b *Buffer) MaxLength() int { return b.max }

// SetMaxLength changes the bound. Values below 1 are raised to 1.
func (b *Buffer) SetMaxLength(n int) {
	if n < 1 {
		n = 1
	}
	b.max = n
}

// Append adds p as the newest point and evicts from the head until the
// buffer is back within its bound.
func (b *Buffer) Append(p dynamo.Point3) {
	if b.n == len(b.data) {
		b.grow()
	}
	b.data[(b.head+b.n)%len(b.data)] = p
	b.n++
	for b.n > b.max {
		b.head = (b.head + 1) % len(b.data)
		b.n--
	}
}

// Seed clears the buffer, places initial as the only real sample and pads
// in front of it with copies of pad until the buffer holds maxLength points.
func (b *Buffer) Seed(initial dynamo.Point3, maxLength int, pad dynamo.Point3) {
	b.SetMaxLength(maxLength)
	if len(b.data) < b.max {
		b.data = make([]dynamo.Point3, b.max)
	}
	b.head = 0
	b.n = b.max
	for i := 0; i < b.n-1; i++ {
		b.data[i] = pad
	}
	b.data[b.n-1] = initial
}

// Reset drops every point. The bound is kept.
func (b *Buffer) Reset() {
	b.head = 0
	b.n = 0
}

// Last returns the newest point.
func (b *Buffer) Last() (dynamo.Point3, bool) {
	if b.n == 0 {
		return dynamo.Point3{}, false
	}
	return b.at(b.n - 1), true
}

// At returns the i-th point counting from the oldest.
func (b *Buffer) At(i int) dynamo.Point3 {
	if i < 0 || i >= b.n {
		panic("trail: index out of range")
	}
	return b.at(i)
}

// All yields (index, point) pairs from oldest to newest. It does not mutate
// the buffer and can be ranged over any number of times.
func (b *Buffer) All() iter.Seq2[int, dynamo.Point3] {
	return func(yield func(int, dynamo.Point3) bool) {
		for i := 0; i < b.n; i++ {
			if !yield(i, b.at(i)) {
				return
			}
		}
	}
}

// Points copies the buffer into a new slice, oldest first.
func (b *Buffer) Points() []dynamo.Point3 {
	out := make([]dynamo.Point3, b.n)
	for i := range out {
		out[i] = b.at(i)
	}
	return out
}

func (b *Buffer) at(i int) dynamo.Point3 {
	return b.data[(b.head+i)%len(b.data)]
}

// grow linearizes the ring into a larger backing slice.
func (b *Buffer) grow() {
	size := 2 * len(b.data)
	if size < b.max+1 {
		size = b.max + 1
	}
	data := make([]dynamo.Point3, size)
	for i := 0; i < b.n; i++ {
		data[i] = b.at(i)
	}
	b.data = data
	b.head = 0
}
