package blocklist

import (
	"github.com/marmos91/blocklist/internal/logger"
)

// Append adds v at the end of the list. A new tail block is linked when the
// current tail is full.
func (l *List[T]) Append(v T) {
	tail := l.arena.get(l.tail)
	path := PathAppend
	if tail.full() {
		_, tail = l.linkAfter(l.tail)
		path = PathNewBlock
	}
	tail.append(v)
	l.size++
	l.modCount++
	l.observeInsert(path)
	l.recordShape()
}

// Prepend adds v at the front of the list.
func (l *List[T]) Prepend(v T) {
	l.insert(0, v)
}

// Insert places v at index, shifting later elements one position to the
// right. Valid indexes are 0 through Len() inclusive.
func (l *List[T]) Insert(index int, v T) error {
	if index < 0 || index > l.size {
		return &IndexError{Op: "insert", Index: index, Size: l.size}
	}
	l.insert(index, v)
	return nil
}

// insert places v at index. The index must already be within [0, Len()].
func (l *List[T]) insert(index int, v T) {
	if index == l.size {
		l.Append(v)
		return
	}

	id, local := l.locate(index, true)
	b := l.arena.get(id)

	path := PathLocal
	if b.full() {
		path = l.insertIntoFull(id, b, local, v)
	} else {
		b.insert(local, v)
	}

	l.size++
	l.modCount++
	l.observeInsert(path)
	l.recordShape()
}

// insertIntoFull places v at local position local of the full block id,
// borrowing room from a neighbour when possible and splitting otherwise.
func (l *List[T]) insertIntoFull(id blockID, b *block[T], local int, v T) InsertPath {
	var left, right *block[T]
	if b.prev != noBlock {
		if p := l.arena.get(b.prev); !p.full() {
			left = p
		}
	}
	if b.next != noBlock {
		if n := l.arena.get(b.next); !n.full() {
			right = n
		}
	}

	switch {
	case left != nil && local == 0:
		left.append(v)
		return PathLeftNeighbour

	case right != nil && local == l.degree:
		right.prepend(v)
		return PathRightNeighbour

	case left != nil && (right == nil || local <= l.degree-local):
		// Shift the front of the block into the left neighbour.
		left.append(b.removeFirst())
		b.insert(local-1, v)
		return PathShiftLeft

	case right != nil:
		right.prepend(b.removeLast())
		b.insert(local, v)
		return PathShiftRight
	}

	l.split(id, b, local, v)
	return PathSplit
}

// split handles an insertion into a full block when neither neighbour has
// room. Elements below local stay in b; the rest move to a new block linked
// after it. Inserting at either edge links a new block holding only v.
func (l *List[T]) split(id blockID, b *block[T], local int, v T) {
	switch local {
	case 0:
		_, nb := l.linkBefore(id)
		nb.append(v)
	case l.degree:
		_, nb := l.linkAfter(id)
		nb.append(v)
	default:
		_, nb := l.linkAfter(id)
		for b.count > local {
			nb.prepend(b.removeLast())
		}
		if local <= l.degree-local {
			b.append(v)
		} else {
			nb.prepend(v)
		}
	}

	logger.Debug("blocklist: split full block",
		logger.KeyLocal, local,
		logger.KeyDegree, l.degree,
		logger.KeyBlocks, l.blocks)
}

// linkAfter allocates an empty block and splices it after id.
func (l *List[T]) linkAfter(id blockID) (blockID, *block[T]) {
	nid, nb := l.arena.alloc()
	b := l.arena.get(id)

	nb.prev = id
	nb.next = b.next
	if b.next != noBlock {
		l.arena.get(b.next).prev = nid
	} else {
		l.tail = nid
	}
	b.next = nid

	l.blocks++
	return nid, nb
}

// linkBefore allocates an empty block and splices it before id.
func (l *List[T]) linkBefore(id blockID) (blockID, *block[T]) {
	nid, nb := l.arena.alloc()
	b := l.arena.get(id)

	nb.next = id
	nb.prev = b.prev
	if b.prev != noBlock {
		l.arena.get(b.prev).next = nid
	} else {
		l.head = nid
	}
	b.prev = nid

	l.blocks++
	return nid, nb
}
