package linerange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justina/linerange"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		pairs []linerange.Pair
	}{
		{"empty", nil},
		{"single 1-byte", []linerange.Pair{{Gap: 3, Run: 5}}},
		{"boundary of 1-byte class", []linerange.Pair{{Gap: 7, Run: 15}}},
		{"forces 2-byte class", []linerange.Pair{{Gap: 8, Run: 15}}},
		{"boundary of 2-byte class", []linerange.Pair{{Gap: 127, Run: 127}}},
		{"forces 3-byte class", []linerange.Pair{{Gap: 128, Run: 127}}},
		{"boundary of 3-byte class", []linerange.Pair{{Gap: 2047, Run: 2047}}},
		{"mixed widths", []linerange.Pair{{Gap: 3, Run: 5}, {Gap: 200, Run: 3}, {Gap: 0, Run: 2047}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := linerange.Encode(tt.pairs)
			require.NoError(t, err)

			decoded, err := linerange.Decode(encoded)
			require.NoError(t, err)

			if len(tt.pairs) == 0 {
				assert.Empty(t, decoded)
			} else {
				assert.Equal(t, tt.pairs, decoded)
			}
		})
	}
}

func TestEncode_TooLong(t *testing.T) {
	_, err := linerange.Encode([]linerange.Pair{{Gap: 2048, Run: 0}})
	assert.ErrorIs(t, err, linerange.ErrLineRangeTooLong)

	_, err = linerange.Encode([]linerange.Pair{{Gap: 0, Run: 2048}})
	assert.ErrorIs(t, err, linerange.ErrLineRangeTooLong)
}

func TestIndex_LineSequenceRoundTrip(t *testing.T) {
	// Matches §8 scenario 3: encoded pair table [3, 5, 7, 2].
	pairs := []linerange.Pair{{Gap: 3, Run: 5}, {Gap: 7, Run: 2}}
	ix := linerange.NewIndex(pairs)

	// Lines 4..8 (gap 3, run 5) are statement starts, ordinals 0..4.
	seq, ok := ix.LineSequenceIndex(4)
	require.True(t, ok)
	assert.Equal(t, 0, seq)

	seq, ok = ix.LineSequenceIndex(8)
	require.True(t, ok)
	assert.Equal(t, 4, seq)

	// Gap lines are not statement starts.
	_, ok = ix.LineSequenceIndex(3)
	assert.False(t, ok)
	_, ok = ix.LineSequenceIndex(9)
	assert.False(t, ok)

	// Lines 16..17 (after a further gap of 7) are ordinals 5..6.
	seq, ok = ix.LineSequenceIndex(16)
	require.True(t, ok)
	assert.Equal(t, 5, seq)

	line, ok := ix.LineForSequenceIndex(5)
	require.True(t, ok)
	assert.Equal(t, 16, line)

	assert.Equal(t, 7, ix.TotalRuns())
}
