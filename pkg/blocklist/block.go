package blocklist

// blockID addresses a block in the list's arena.
type blockID int32

// noBlock marks a missing neighbour (chain ends).
const noBlock blockID = -1

// block is a fixed-capacity circular buffer. The element at local index i
// lives at slots[(head+i) & mask]; len(slots) is a power of two.
type block[T any] struct {
	slots []T
	head  int
	count int
	mask  int

	prev, next blockID
}

func newBlock[T any](capacity int) *block[T] {
	return &block[T]{
		slots: make([]T, capacity),
		mask:  capacity - 1,
		prev:  noBlock,
		next:  noBlock,
	}
}

func (b *block[T]) capacity() int { return len(b.slots) }
func (b *block[T]) full() bool    { return b.count == len(b.slots) }
func (b *block[T]) pos(i int) int { return (b.head + i) & b.mask }

func (b *block[T]) get(i int) T {
	return b.slots[b.pos(i)]
}

func (b *block[T]) set(i int, v T) T {
	p := b.pos(i)
	old := b.slots[p]
	b.slots[p] = v
	return old
}

func (b *block[T]) append(v T) {
	if b.full() {
		panic(errBlockFull)
	}
	b.slots[b.pos(b.count)] = v
	b.count++
}

func (b *block[T]) prepend(v T) {
	if b.full() {
		panic(errBlockFull)
	}
	b.head = (b.head - 1) & b.mask
	b.slots[b.head] = v
	b.count++
}

// insert opens a gap at local index i (0 <= i <= count) by moving whichever
// side of i is shorter, then stores v there.
func (b *block[T]) insert(i int, v T) {
	if b.full() {
		panic(errBlockFull)
	}
	if i < b.count-i {
		// Elements [0, i) move one slot towards the head.
		b.head = (b.head - 1) & b.mask
		for k := 0; k < i; k++ {
			b.slots[b.pos(k)] = b.slots[b.pos(k+1)]
		}
	} else {
		// Elements [i, count) move one slot towards the tail.
		for k := b.count; k > i; k-- {
			b.slots[b.pos(k)] = b.slots[b.pos(k-1)]
		}
	}
	b.slots[b.pos(i)] = v
	b.count++
}

// delete removes and returns the element at local index i, closing the gap
// from whichever side is shorter. The vacated slot is zeroed.
func (b *block[T]) delete(i int) T {
	var zero T
	v := b.slots[b.pos(i)]

	if i < b.count-1-i {
		for k := i; k > 0; k-- {
			b.slots[b.pos(k)] = b.slots[b.pos(k-1)]
		}
		b.slots[b.head] = zero
		b.head = (b.head + 1) & b.mask
	} else {
		last := b.count - 1
		for k := i; k < last; k++ {
			b.slots[b.pos(k)] = b.slots[b.pos(k+1)]
		}
		b.slots[b.pos(last)] = zero
	}
	b.count--
	return v
}

func (b *block[T]) removeFirst() T {
	var zero T
	v := b.slots[b.head]
	b.slots[b.head] = zero
	b.head = (b.head + 1) & b.mask
	b.count--
	return v
}

func (b *block[T]) removeLast() T {
	var zero T
	p := b.pos(b.count - 1)
	v := b.slots[p]
	b.slots[p] = zero
	b.count--
	return v
}

// clear zeroes the live slots so the block no longer pins its elements.
func (b *block[T]) clear() {
	var zero T
	for i := 0; i < b.count; i++ {
		b.slots[b.pos(i)] = zero
	}
	b.head = 0
	b.count = 0
}
