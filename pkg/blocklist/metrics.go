package blocklist

import "time"

// InsertPath identifies how an insertion was satisfied.
type InsertPath string

const (
	// PathAppend: appended to a tail block with room.
	PathAppend InsertPath = "append"
	// PathNewBlock: appended after a full tail, linking a new tail block.
	PathNewBlock InsertPath = "new_block"
	// PathLocal: inserted into a block with room.
	PathLocal InsertPath = "local"
	// PathLeftNeighbour: appended to the previous block at a block boundary.
	PathLeftNeighbour InsertPath = "left_neighbour"
	// PathRightNeighbour: prepended to the next block at a block boundary.
	PathRightNeighbour InsertPath = "right_neighbour"
	// PathShiftLeft: the first element of a full block moved to the previous block.
	PathShiftLeft InsertPath = "shift_left"
	// PathShiftRight: the last element of a full block moved to the next block.
	PathShiftRight InsertPath = "shift_right"
	// PathSplit: a full block was split into two.
	PathSplit InsertPath = "split"
)

// Metrics receives structural events from a List.
//
// Implementations must be cheap; they are called inline on every mutation.
// A nil Metrics disables collection entirely.
type Metrics interface {
	// ObserveInsert records one insertion and the path that satisfied it.
	ObserveInsert(path InsertPath)

	// ObserveRemove records one removal; unlinked reports whether the
	// containing block emptied and was unlinked.
	ObserveRemove(unlinked bool)

	// ObserveCompaction records one Compact call.
	ObserveCompaction(moved, freed int, duration time.Duration)

	// RecordShape records the list's size and block count after every
	// mutation that changes either of them.
	RecordShape(size, blocks int)
}

func (l *List[T]) observeInsert(path InsertPath) {
	if l.metrics != nil {
		l.metrics.ObserveInsert(path)
	}
}

func (l *List[T]) recordShape() {
	if l.metrics != nil {
		l.metrics.RecordShape(l.size, l.blocks)
	}
}
