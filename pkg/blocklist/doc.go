// Package blocklist implements a sequential container built from a doubly-linked
// chain of fixed-capacity circular buffers ("blocks").
//
// A List sits between an array list and a linked list: indexed access only walks
// blocks (never individual elements), while insertion and removal shift at most
// one block's worth of elements and never reallocate the whole backing store.
//
// # Blocks
//
// Every block has the same capacity (the list's degree), which is always a power
// of two so that local positions can be computed with a bitmask. A block keeps a
// movable head offset, so inserting or deleting near either end of a block only
// moves the shorter side.
//
// # Full blocks
//
// When an insertion targets a full block the list first tries to push one
// boundary element into a neighbouring block with spare room. Only when neither
// neighbour has room is a new block allocated and the full block split.
//
// # Iteration
//
// Iterator is fail-fast: structural changes made to the list outside of the
// iterator are reported as ErrConcurrentModification on the next call. Removal
// through the iterator itself is allowed.
//
// # Thread Safety
//
// A List is not safe for concurrent use. Callers sharing a list across
// goroutines must provide their own synchronization.
package blocklist
