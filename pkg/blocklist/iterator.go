package blocklist

import (
	"fmt"
	"iter"
)

// Iterator walks a List front to back. It is fail-fast: any structural
// modification not made through the iterator itself is reported as
// ErrConcurrentModification.
type Iterator[T any] struct {
	list *List[T]

	total   int
	yielded int

	block blockID
	local int

	expected  uint64
	advanced  bool
	canRemove bool
}

// Iterator returns an iterator positioned before the first element.
func (l *List[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{
		list:     l,
		total:    l.size,
		block:    l.head,
		expected: l.modCount,
	}
}

// HasNext reports whether Next would return an element.
func (it *Iterator[T]) HasNext() bool {
	return it.yielded < it.total
}

// Next returns the next element.
func (it *Iterator[T]) Next() (T, error) {
	var zero T
	if it.list.modCount != it.expected {
		return zero, ErrConcurrentModification
	}
	if it.yielded >= it.total {
		return zero, ErrIteratorExhausted
	}

	b := it.list.arena.get(it.block)
	v := b.get(it.local)
	it.local++
	if it.local == b.count {
		it.block = b.next
		it.local = 0
	}
	it.yielded++
	it.advanced = true
	it.canRemove = true
	return v, nil
}

// Remove deletes the element most recently returned by Next.
func (it *Iterator[T]) Remove() error {
	if !it.canRemove {
		if !it.advanced {
			return fmt.Errorf("%w: remove called before next", ErrIllegalState)
		}
		return fmt.Errorf("%w: remove already called for this element", ErrIllegalState)
	}
	l := it.list
	if l.modCount != it.expected {
		return ErrConcurrentModification
	}

	if it.local == 0 {
		// The cursor already crossed into the following block, so the last
		// returned element is the final one of the previous block.
		prev := l.tail
		if it.block != noBlock {
			prev = l.arena.get(it.block).prev
		}
		pb := l.arena.get(prev)
		l.removeAt(prev, pb.count-1)
	} else {
		// The cursor block still holds the element at it.local, so it
		// cannot empty here.
		it.local--
		l.removeAt(it.block, it.local)
	}

	it.expected = l.modCount
	it.total--
	it.yielded--
	it.canRemove = false
	return nil
}

// Values returns a range-over-func sequence of the list's elements.
// It panics with ErrConcurrentModification if the list is structurally
// modified during the loop other than through the sequence itself.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.Iterator()
		for it.HasNext() {
			v, err := it.Next()
			if err != nil {
				panic(err)
			}
			if !yield(v) {
				return
			}
		}
	}
}
