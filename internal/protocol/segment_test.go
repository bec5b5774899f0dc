package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		wire string
	}{
		{
			name: "line",
			seg:  Segment{X1: 0, Y1: 0, X2: 10, Y2: 10, Width: 6, Color: "#000000"},
			wire: "0 0 10 10 6 #000000",
		},
		{
			name: "dot",
			seg:  Segment{X1: 5, Y1: 5, X2: 5, Y2: 5, Width: 12, Color: "#ff0000"},
			wire: "5 5 5 5 12 #ff0000",
		},
		{
			name: "fractional coordinates",
			seg:  Segment{X1: 1.5, Y1: 2.25, X2: 3, Y2: 4, Width: 0.5, Color: "red"},
			wire: "1.5 2.25 3 4 0.5 red",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wire, EncodeSegment(tt.seg))
			got, err := DecodeSegment(tt.wire)
			require.NoError(t, err)
			assert.Equal(t, tt.seg, got)
		})
	}
}

func TestDecodeSegmentToleratesTrailingToken(t *testing.T) {
	// Some older clients append an opaque timestamp after the color. It must
	// be accepted; it rides along in the color field.
	got, err := DecodeSegment("0 0 10 10 6 #000000 1382000000")
	require.NoError(t, err)
	assert.Equal(t, "#000000 1382000000", got.Color)
}

func TestDecodeSegmentWithoutColor(t *testing.T) {
	got, err := DecodeSegment("0 1 2 3 4")
	require.NoError(t, err)
	assert.Equal(t, Segment{X1: 0, Y1: 1, X2: 2, Y2: 3, Width: 4}, got)
}

func TestDecodeSegmentMalformed(t *testing.T) {
	tests := []struct {
		name string
		wire string
	}{
		{"empty", ""},
		{"too few tokens", "0 0 10 10"},
		{"non-numeric coordinate", "a 0 10 10 6 #000000"},
		{"non-numeric width", "0 0 10 10 thick #000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSegment(tt.wire)
			require.ErrorIs(t, err, ErrMalformedSegment)
		})
	}
}

func TestIsDot(t *testing.T) {
	assert.True(t, Segment{X1: 3, Y1: 4, X2: 3, Y2: 4}.IsDot())
	assert.False(t, Segment{X1: 3, Y1: 4, X2: 3, Y2: 5}.IsDot())
}
