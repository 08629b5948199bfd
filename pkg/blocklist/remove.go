package blocklist

import (
	"github.com/marmos91/blocklist/internal/logger"
)

// Remove deletes and returns the element at index, shifting later elements
// one position to the left.
func (l *List[T]) Remove(index int) (T, error) {
	if index < 0 || index >= l.size {
		var zero T
		return zero, &IndexError{Op: "remove", Index: index, Size: l.size}
	}
	id, local := l.locate(index, false)
	return l.removeAt(id, local), nil
}

// RemoveFunc deletes the first element satisfying pred and reports whether
// one was found.
func (l *List[T]) RemoveFunc(pred func(T) bool) bool {
	for id := l.head; id != noBlock; {
		b := l.arena.get(id)
		for i := 0; i < b.count; i++ {
			if pred(b.get(i)) {
				l.removeAt(id, i)
				return true
			}
		}
		id = b.next
	}
	return false
}

// RemoveIf deletes every element satisfying pred and returns how many were
// removed.
func (l *List[T]) RemoveIf(pred func(T) bool) int {
	removed := 0
	it := l.Iterator()
	for it.HasNext() {
		v, err := it.Next()
		if err != nil {
			// Only this iterator mutates the list here.
			panic(err)
		}
		if pred(v) {
			if err := it.Remove(); err != nil {
				panic(err)
			}
			removed++
		}
	}
	return removed
}

// removeAt deletes the element at local of block id. An emptied block is
// unlinked unless it is the only one.
func (l *List[T]) removeAt(id blockID, local int) T {
	b := l.arena.get(id)
	v := b.delete(local)
	l.size--
	l.modCount++

	unlinked := false
	if b.count == 0 && l.blocks > 1 {
		l.unlink(id)
		unlinked = true
	}
	if l.metrics != nil {
		l.metrics.ObserveRemove(unlinked)
	}
	l.recordShape()
	return v
}

// unlink splices block id out of the chain and returns it to the arena.
// The block must be empty and must not be the only block.
func (l *List[T]) unlink(id blockID) {
	b := l.arena.get(id)

	if b.prev != noBlock {
		l.arena.get(b.prev).next = b.next
	} else {
		l.head = b.next
	}
	if b.next != noBlock {
		l.arena.get(b.next).prev = b.prev
	} else {
		l.tail = b.prev
	}

	l.arena.release(id)
	l.blocks--

	logger.Debug("blocklist: unlinked empty block", logger.KeyBlocks, l.blocks)
}
