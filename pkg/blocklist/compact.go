package blocklist

import (
	"time"

	"github.com/marmos91/blocklist/internal/logger"
)

// Compact pours elements from later blocks into earlier ones so that every
// block except possibly the last is full. Order is preserved and emptied
// blocks are unlinked. It returns the number of blocks freed.
//
// Compact counts as a structural modification when it moves anything, so
// open iterators fail on their next call.
func (l *List[T]) Compact() int {
	start := time.Now()
	moved, freed := 0, 0

	target := l.head
	source := l.arena.get(target).next
	for source != noBlock {
		t := l.arena.get(target)
		s := l.arena.get(source)

		for !t.full() && s.count > 0 {
			t.append(s.removeFirst())
			moved++
		}

		if s.count == 0 {
			next := s.next
			l.unlink(source)
			freed++
			source = next
			continue
		}

		// Target is full; the partially drained source becomes the next target.
		target = source
		source = s.next
	}

	if moved > 0 || freed > 0 {
		l.modCount++
	}
	if l.metrics != nil {
		l.metrics.ObserveCompaction(moved, freed, time.Since(start))
	}
	if freed > 0 {
		l.recordShape()
	}

	logger.Debug("blocklist: compacted",
		logger.KeyMoved, moved,
		logger.KeyFreed, freed,
		logger.KeyBlocks, l.blocks,
		logger.KeyDurationMs, logger.Duration(start))
	return freed
}
