package protocol

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedSegment is returned when a PAINT payload cannot be decoded.
var ErrMalformedSegment = errors.New("malformed segment")

// Segment is one atomic drawing primitive: a line from (X1,Y1) to (X2,Y2),
// or a single dot when both endpoints coincide. Segments are immutable once
// appended to a paint log.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
	Width  float64
	Color  string
}

// IsDot reports whether the segment is degenerate. Renderers paint a dot as a
// filled circle of diameter Width rather than a zero-length line.
func (s Segment) IsDot() bool {
	return s.X1 == s.X2 && s.Y1 == s.Y2
}

// EncodeSegment writes a segment in the wire format
// "x1 y1 x2 y2 width color". The color field is emitted verbatim.
func EncodeSegment(s Segment) string {
	var b strings.Builder
	b.WriteString(formatNum(s.X1))
	b.WriteByte(' ')
	b.WriteString(formatNum(s.Y1))
	b.WriteByte(' ')
	b.WriteString(formatNum(s.X2))
	b.WriteByte(' ')
	b.WriteString(formatNum(s.Y2))
	b.WriteByte(' ')
	b.WriteString(formatNum(s.Width))
	b.WriteByte(' ')
	b.WriteString(s.Color)
	return b.String()
}

// DecodeSegment parses the wire format "x1 y1 x2 y2 width color...". The
// color is everything after the fifth token, so clients may append extra
// opaque tokens (some older clients send a trailing timestamp); they are kept
// as part of the color string and ignored downstream.
func DecodeSegment(wire string) (Segment, error) {
	parts := strings.SplitN(wire, " ", 6)
	if len(parts) < 5 {
		return Segment{}, errors.Wrapf(ErrMalformedSegment, "want at least 5 tokens, got %d", len(parts))
	}

	nums := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return Segment{}, errors.Wrapf(ErrMalformedSegment, "token %q is not a number", parts[i])
		}
		nums[i] = v
	}

	seg := Segment{
		X1:    nums[0],
		Y1:    nums[1],
		X2:    nums[2],
		Y2:    nums[3],
		Width: nums[4],
	}
	if len(parts) == 6 {
		seg.Color = parts[5]
	}
	return seg, nil
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
