package blocklist

import (
	"errors"
	"fmt"
)

// Stats is a point-in-time snapshot of a list's shape.
type Stats struct {
	Size        int     `json:"size" yaml:"size"`
	Blocks      int     `json:"blocks" yaml:"blocks"`
	Degree      int     `json:"degree" yaml:"degree"`
	LoadFactor  float64 `json:"load_factor" yaml:"load_factor"`
	BlockCounts []int   `json:"block_counts,omitempty" yaml:"block_counts,omitempty"`
}

// Stats returns the current shape of the list, including the element count
// of every block in chain order.
func (l *List[T]) Stats() Stats {
	counts := make([]int, 0, l.blocks)
	for id := l.head; id != noBlock; {
		b := l.arena.get(id)
		counts = append(counts, b.count)
		id = b.next
	}
	return Stats{
		Size:        l.size,
		Blocks:      l.blocks,
		Degree:      l.degree,
		LoadFactor:  l.LoadFactor(),
		BlockCounts: counts,
	}
}

// CheckInvariants walks the whole chain and verifies the structural
// invariants of the list. It is O(n) in the number of blocks and intended for
// tests and verification tooling.
func (l *List[T]) CheckInvariants() error {
	var errs []error

	if l.head == noBlock || l.tail == noBlock {
		return fmt.Errorf("blocklist: missing chain end (head=%d tail=%d)", l.head, l.tail)
	}
	if p := l.arena.get(l.head).prev; p != noBlock {
		errs = append(errs, fmt.Errorf("blocklist: head.prev is %d, want none", p))
	}
	if n := l.arena.get(l.tail).next; n != noBlock {
		errs = append(errs, fmt.Errorf("blocklist: tail.next is %d, want none", n))
	}

	size, blocks := 0, 0
	last := noBlock
	for id := l.head; id != noBlock; {
		b := l.arena.get(id)
		if b == nil {
			return errors.Join(append(errs, fmt.Errorf("blocklist: block %d linked but released", id))...)
		}
		blocks++
		if blocks > l.arena.live() {
			return errors.Join(append(errs, fmt.Errorf("blocklist: chain longer than %d live blocks", l.arena.live()))...)
		}

		if b.prev != last {
			errs = append(errs, fmt.Errorf("blocklist: block %d prev is %d, want %d", id, b.prev, last))
		}
		if b.capacity() != l.degree {
			errs = append(errs, fmt.Errorf("blocklist: block %d capacity %d, want %d", id, b.capacity(), l.degree))
		}
		if b.count < 0 || b.count > l.degree {
			errs = append(errs, fmt.Errorf("blocklist: block %d count %d outside [0, %d]", id, b.count, l.degree))
		}
		if b.head < 0 || b.head >= l.degree {
			errs = append(errs, fmt.Errorf("blocklist: block %d head %d outside [0, %d)", id, b.head, l.degree))
		}
		if b.count == 0 && (l.head != l.tail) {
			errs = append(errs, fmt.Errorf("blocklist: block %d is empty but not the only block", id))
		}

		size += b.count
		last = id
		id = b.next
	}

	if last != l.tail {
		errs = append(errs, fmt.Errorf("blocklist: chain ends at %d, tail is %d", last, l.tail))
	}
	if size != l.size {
		errs = append(errs, fmt.Errorf("blocklist: sum of block counts %d, size %d", size, l.size))
	}
	if blocks != l.blocks {
		errs = append(errs, fmt.Errorf("blocklist: %d linked blocks, block count %d", blocks, l.blocks))
	}
	if live := l.arena.live(); live != blocks {
		errs = append(errs, fmt.Errorf("blocklist: %d live arena blocks, %d linked", live, blocks))
	}

	return errors.Join(errs...)
}
