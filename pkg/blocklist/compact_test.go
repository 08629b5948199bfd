package blocklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompact_FillsBlocksInOrder(t *testing.T) {
	m := &recordingMetrics{}
	l := newIntList(t, 4, 40, WithMetrics(m))

	// Thin out the list to leave every block partially filled.
	removed := l.RemoveIf(func(v int) bool { return v%3 == 0 })
	require.Equal(t, 14, removed)
	want := contents(l)
	require.Equal(t, 10, l.Blocks())

	freed := l.Compact()

	assert.Equal(t, want, contents(l))
	assert.Equal(t, 7, l.Blocks())
	assert.Equal(t, 3, freed)
	assert.Equal(t, []int{4, 4, 4, 4, 4, 4, 2}, l.Stats().BlockCounts)
	assert.Equal(t, 1, m.compactions)
	assert.Equal(t, 3, m.freed)
	require.NoError(t, l.CheckInvariants())
}

func TestCompact_AtMostOneTrailingPartialBlock(t *testing.T) {
	for _, degree := range []int{2, 4, 8, 16} {
		l := New[int](WithDegree(degree))
		for i := 0; i < 300; i++ {
			require.NoError(t, l.Insert(i/2, i))
		}
		for i := 0; i < 100; i++ {
			_, err := l.Remove((i * 7) % l.Len())
			require.NoError(t, err)
		}
		want := contents(l)

		l.Compact()

		assert.Equal(t, want, contents(l))
		counts := l.Stats().BlockCounts
		for i, c := range counts[:len(counts)-1] {
			assert.Equalf(t, degree, c, "degree %d block %d", degree, i)
		}
		assert.Equal(t, (l.Len()+degree-1)/degree, l.Blocks())
		require.NoError(t, l.CheckInvariants())
	}
}

func TestCompact_NoOpKeepsIterators(t *testing.T) {
	l := newIntList(t, 4, 10)
	it := l.Iterator()

	assert.Zero(t, l.Compact())

	_, err := it.Next()
	assert.NoError(t, err)
}

func TestCompact_EmptyAndSingleBlock(t *testing.T) {
	l := New[int](WithDegree(4))
	assert.Zero(t, l.Compact())
	assert.Equal(t, 1, l.Blocks())

	l.Append(1)
	assert.Zero(t, l.Compact())
	assert.Equal(t, []int{1}, contents(l))
	require.NoError(t, l.CheckInvariants())
}
