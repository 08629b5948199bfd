package blocklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextValue(t *testing.T, it *Iterator[int]) int {
	t.Helper()
	v, err := it.Next()
	require.NoError(t, err)
	return v
}

// ============================================================================
// Scenarios
// ============================================================================

func TestIterator_YieldsAllInOrder(t *testing.T) {
	l := newIntList(t, 4, 20)

	var got []int
	it := l.Iterator()
	for it.HasNext() {
		got = append(got, nextValue(t, it))
	}
	assert.Equal(t, seq(0, 20), got)

	_, err := it.Next()
	assert.ErrorIs(t, err, ErrIteratorExhausted)
}

func TestIterator_RemoveAcrossBlocks(t *testing.T) {
	l := newIntList(t, 4, 10)
	require.Equal(t, 3, l.Blocks())

	it := l.Iterator()
	assert.Equal(t, 0, nextValue(t, it))
	require.NoError(t, it.Remove())
	assert.Equal(t, 9, l.Len())

	assert.Equal(t, 1, nextValue(t, it))
	assert.Equal(t, 2, nextValue(t, it))
	assert.Equal(t, 3, nextValue(t, it))
	assert.Equal(t, 3, l.Blocks())

	for _, want := range []int{4, 5, 6, 7} {
		assert.Equal(t, want, nextValue(t, it))
		require.NoError(t, it.Remove())
		require.NoError(t, l.CheckInvariants())
	}
	assert.Equal(t, 2, l.Blocks())
	assert.Equal(t, []int{1, 2, 3, 8, 9}, contents(l))

	assert.Equal(t, 8, nextValue(t, it))
	assert.Equal(t, 9, nextValue(t, it))
	assert.False(t, it.HasNext())
}

func TestIterator_RemoveMidBlockDegreeTwo(t *testing.T) {
	l := newIntList(t, 2, 11)

	it := l.Iterator()
	for want := 0; want < 5; want++ {
		assert.Equal(t, want, nextValue(t, it))
	}
	require.NoError(t, it.Remove())
	assert.Equal(t, 5, nextValue(t, it))
	require.NoError(t, l.CheckInvariants())
}

func TestIterator_RemoveLastElement(t *testing.T) {
	l := newIntList(t, 4, 5)

	it := l.Iterator()
	for it.HasNext() {
		nextValue(t, it)
	}
	require.NoError(t, it.Remove())

	assert.Equal(t, []int{0, 1, 2, 3}, contents(l))
	assert.Equal(t, 1, l.Blocks())
	assert.False(t, it.HasNext())
	require.NoError(t, l.CheckInvariants())
}

func TestIterator_RemoveEverything(t *testing.T) {
	for _, degree := range []int{2, 4, 8} {
		l := newIntList(t, degree, 37)

		it := l.Iterator()
		for it.HasNext() {
			nextValue(t, it)
			require.NoError(t, it.Remove())
			require.NoError(t, l.CheckInvariants())
		}
		assert.True(t, l.IsEmpty())
		assert.Equal(t, 1, l.Blocks())
	}
}

// ============================================================================
// Misuse
// ============================================================================

func TestIterator_IllegalState(t *testing.T) {
	l := newIntList(t, 4, 3)
	it := l.Iterator()

	err := it.Remove()
	assert.ErrorIs(t, err, ErrIllegalState)
	assert.Contains(t, err.Error(), "before next")

	nextValue(t, it)
	require.NoError(t, it.Remove())

	err = it.Remove()
	assert.ErrorIs(t, err, ErrIllegalState)
	assert.Contains(t, err.Error(), "already called")
	assert.Equal(t, []int{1, 2}, contents(l))
}

func TestIterator_RemoveTwiceMidList(t *testing.T) {
	l := newIntList(t, 2, 6)
	it := l.Iterator()

	for range 3 {
		nextValue(t, it)
	}
	require.NoError(t, it.Remove())

	err := it.Remove()
	assert.ErrorIs(t, err, ErrIllegalState)
	assert.Contains(t, err.Error(), "already called")

	v := nextValue(t, it)
	assert.Equal(t, 3, v)
	require.NoError(t, it.Remove())
	assert.Equal(t, []int{0, 1, 4, 5}, contents(l))
}

func TestIterator_FailFast(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *List[int])
	}{
		{"append", func(l *List[int]) { l.Append(100) }},
		{"insert", func(l *List[int]) { _ = l.Insert(1, 100) }},
		{"remove", func(l *List[int]) { _, _ = l.Remove(0) }},
		{"clear", func(l *List[int]) { l.Clear() }},
		{"compact", func(l *List[int]) {
			_, _ = l.Remove(1)
			l.Compact()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newIntList(t, 4, 10)
			it := l.Iterator()
			nextValue(t, it)

			tt.mutate(l)

			_, err := it.Next()
			assert.ErrorIs(t, err, ErrConcurrentModification)
			assert.ErrorIs(t, it.Remove(), ErrConcurrentModification)
		})
	}
}

func TestIterator_RemoveKeepsOtherIteratorsFailing(t *testing.T) {
	l := newIntList(t, 4, 10)
	a, b := l.Iterator(), l.Iterator()

	nextValue(t, a)
	require.NoError(t, a.Remove())

	assert.Equal(t, 1, nextValue(t, a))
	_, err := b.Next()
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

// ============================================================================
// Values
// ============================================================================

func TestValues(t *testing.T) {
	l := newIntList(t, 4, 10)

	var got []int
	for v := range l.Values() {
		if v == 6 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, seq(0, 6), got)
}

func TestValues_PanicsOnModification(t *testing.T) {
	l := newIntList(t, 4, 10)

	assert.PanicsWithValue(t, ErrConcurrentModification, func() {
		for v := range l.Values() {
			if v == 2 {
				l.Append(11)
			}
		}
	})
}
