package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintchat/internal/protocol"
)

func seg(x1, y1, x2, y2 float64) protocol.Segment {
	return protocol.Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: 6, Color: "#000000"}
}

func TestAppendKeepsArrivalOrder(t *testing.T) {
	l := NewPaintLog()
	first := seg(0, 0, 1, 1)
	second := seg(1, 1, 2, 2)
	third := seg(2, 2, 3, 3)

	l.Append(first)
	l.Append(second)
	l.Append(third)

	require.Equal(t, 3, l.Len())
	assert.Equal(t, []protocol.Segment{first, second, third}, l.Snapshot())
}

func TestClearEmptiesLog(t *testing.T) {
	l := NewPaintLog()
	l.Append(seg(0, 0, 1, 1))
	l.Append(seg(1, 1, 2, 2))

	l.Clear()

	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Snapshot())

	// Appends after a clear grow the now-empty log.
	after := seg(5, 5, 6, 6)
	l.Append(after)
	assert.Equal(t, []protocol.Segment{after}, l.Snapshot())
}

func TestSnapshotIsACopy(t *testing.T) {
	l := NewPaintLog()
	l.Append(seg(0, 0, 1, 1))

	snap := l.Snapshot()
	l.Append(seg(1, 1, 2, 2))

	// A snapshot is point-in-time; later appends do not leak into it.
	require.Len(t, snap, 1)
	assert.Equal(t, 2, l.Len())
}
