package blocklist

// maxSpareBlocks bounds how many released blocks keep their slot arrays for
// reuse. Beyond that the arena drops the block and only recycles the handle.
const maxSpareBlocks = 4

// arena owns every block of a list and hands out stable integer handles.
//
// The table stores pointers so a *block obtained from get stays valid across
// later allocations that grow the table.
type arena[T any] struct {
	table    []*block[T]
	free     []blockID
	capacity int
	spare    int
}

func newArena[T any](capacity int) *arena[T] {
	return &arena[T]{capacity: capacity}
}

func (a *arena[T]) get(id blockID) *block[T] {
	return a.table[id]
}

// alloc returns an empty, unlinked block, recycling a released handle if one
// is available.
func (a *arena[T]) alloc() (blockID, *block[T]) {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]

		b := a.table[id]
		if b == nil {
			b = newBlock[T](a.capacity)
			a.table[id] = b
		} else {
			a.spare--
			b.prev, b.next = noBlock, noBlock
		}
		return id, b
	}

	b := newBlock[T](a.capacity)
	a.table = append(a.table, b)
	return blockID(len(a.table) - 1), b
}

// release returns a block to the free list. The caller must already have
// unlinked it from the chain.
func (a *arena[T]) release(id blockID) {
	b := a.table[id]
	b.clear()
	b.prev, b.next = noBlock, noBlock

	if a.spare < maxSpareBlocks {
		a.spare++
	} else {
		a.table[id] = nil
	}
	a.free = append(a.free, id)
}

// reset drops every block except keep, which is cleared and becomes handle 0.
func (a *arena[T]) reset(keep blockID) blockID {
	b := a.table[keep]
	b.clear()
	b.prev, b.next = noBlock, noBlock

	clear(a.table)
	a.table = append(a.table[:0], b)
	a.free = a.free[:0]
	a.spare = 0
	return 0
}

// live reports the number of handles currently in use.
func (a *arena[T]) live() int {
	return len(a.table) - len(a.free)
}
