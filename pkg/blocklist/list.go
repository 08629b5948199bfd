package blocklist

import (
	"math/bits"
)

const (
	// DefaultDegree is the block capacity used when no degree is requested.
	DefaultDegree = 128

	// MinDegree is the smallest block capacity a list will use.
	MinDegree = 2

	// MaxDegree caps the block capacity. Larger hints are clamped to it.
	MaxDegree = 1 << 20
)

// List is a sequence of T stored in a doubly-linked chain of fixed-capacity
// circular buffers.
//
// The zero value is not usable; create lists with New.
type List[T any] struct {
	arena  *arena[T]
	degree int

	size     int
	blocks   int
	head     blockID
	tail     blockID
	modCount uint64

	metrics Metrics
}

// Option configures a List at construction time.
type Option func(*options)

type options struct {
	degree  int
	metrics Metrics
}

// WithDegree sets the requested block capacity. The effective degree is the
// smallest power of two that is >= max(n, MinDegree). Hints above MaxDegree
// are clamped to MaxDegree instead of being rounded up, so a single block
// never allocates more than MaxDegree slots.
func WithDegree(n int) Option {
	return func(o *options) {
		o.degree = n
	}
}

// WithMetrics attaches a metrics sink. A nil Metrics disables collection.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// New creates an empty list holding a single empty block.
func New[T any](opts ...Option) *List[T] {
	o := options{degree: DefaultDegree}
	for _, opt := range opts {
		opt(&o)
	}

	degree := fixDegree(o.degree)
	l := &List[T]{
		arena:   newArena[T](degree),
		degree:  degree,
		metrics: o.metrics,
	}
	id, _ := l.arena.alloc()
	l.head, l.tail = id, id
	l.blocks = 1
	return l
}

// fixDegree rounds a capacity hint up to a power of two within
// [MinDegree, MaxDegree].
func fixDegree(hint int) int {
	if hint <= MinDegree {
		return MinDegree
	}
	if hint >= MaxDegree {
		return MaxDegree
	}
	return 1 << bits.Len(uint(hint-1))
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int { return l.size }

// IsEmpty reports whether the list holds no elements.
func (l *List[T]) IsEmpty() bool { return l.size == 0 }

// Blocks returns the number of blocks currently linked in the chain.
func (l *List[T]) Blocks() int { return l.blocks }

// Degree returns the capacity of every block.
func (l *List[T]) Degree() int { return l.degree }

// LoadFactor returns size / (blocks * degree), or 0 for an empty list.
func (l *List[T]) LoadFactor() float64 {
	if l.size == 0 {
		return 0
	}
	return float64(l.size) / float64(l.blocks*l.degree)
}

// Get returns the element at index.
func (l *List[T]) Get(index int) (T, error) {
	if index < 0 || index >= l.size {
		var zero T
		return zero, &IndexError{Op: "get", Index: index, Size: l.size}
	}
	id, local := l.locate(index, false)
	return l.arena.get(id).get(local), nil
}

// Set replaces the element at index and returns the previous value.
// Set is not a structural modification and does not invalidate iterators.
func (l *List[T]) Set(index int, v T) (T, error) {
	if index < 0 || index >= l.size {
		var zero T
		return zero, &IndexError{Op: "set", Index: index, Size: l.size}
	}
	id, local := l.locate(index, false)
	return l.arena.get(id).set(local, v), nil
}

// Clear removes every element and returns the list to a single empty block.
// Released blocks are dropped so their memory can be reclaimed.
func (l *List[T]) Clear() {
	id := l.arena.reset(l.head)
	l.head, l.tail = id, id
	l.size = 0
	l.blocks = 1
	l.modCount++
	l.recordShape()
}

// ContainsFunc reports whether any element satisfies pred.
func (l *List[T]) ContainsFunc(pred func(T) bool) bool {
	return l.IndexFunc(pred) >= 0
}

// IndexFunc returns the index of the first element satisfying pred, or -1.
func (l *List[T]) IndexFunc(pred func(T) bool) int {
	index := 0
	for id := l.head; id != noBlock; {
		b := l.arena.get(id)
		for i := 0; i < b.count; i++ {
			if pred(b.get(i)) {
				return index
			}
			index++
		}
		id = b.next
	}
	return -1
}

// Contains reports whether v is present in l.
func Contains[T comparable](l *List[T], v T) bool {
	return Index(l, v) >= 0
}

// Index returns the index of the first occurrence of v in l, or -1.
func Index[T comparable](l *List[T], v T) int {
	return l.IndexFunc(func(e T) bool { return e == v })
}

// Equal reports whether a and b hold the same elements in the same order.
// Block layout and degree are not compared.
func Equal[T comparable](a, b *List[T]) bool {
	if a.size != b.size {
		return false
	}
	ia, ib := a.Iterator(), b.Iterator()
	for ia.HasNext() {
		va, _ := ia.Next()
		vb, _ := ib.Next()
		if va != vb {
			return false
		}
	}
	return true
}

// locate resolves a global index to a block and a local index within it.
//
// With forInsertion set, index may equal Len() and the returned local index
// may equal the block's count, meaning "after the last element of this
// block". Callers validate bounds before calling.
func (l *List[T]) locate(index int, forInsertion bool) (blockID, int) {
	if index < l.size-index {
		for id := l.head; ; {
			b := l.arena.get(id)
			if index < b.count || (forInsertion && index == b.count) || b.next == noBlock {
				return id, index
			}
			index -= b.count
			id = b.next
		}
	}

	id := l.tail
	b := l.arena.get(id)
	start := l.size - b.count
	for index < start {
		id = b.prev
		b = l.arena.get(id)
		start -= b.count
	}
	return id, index - start
}
