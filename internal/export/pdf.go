// Package export renders a canvas snapshot to a document clients can save.
package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"paintchat/internal/protocol"
)

// PDF draws the given segments onto a single landscape A4 page, in log
// order. Zero-length segments are filled circles of diameter Width, the rest
// round-capped lines of thickness Width, matching how the live clients
// render them.
func PDF(w io.Writer, segments []protocol.Segment) error {
	p := gofpdf.New("L", "pt", "A4", "")
	p.AddPage()
	p.SetLineCapStyle("round")

	for _, seg := range segments {
		r, g, b := colorRGB(seg.Color)
		if seg.IsDot() {
			p.SetFillColor(r, g, b)
			p.Circle(seg.X1, seg.Y1, seg.Width/2, "F")
			continue
		}
		p.SetDrawColor(r, g, b)
		p.SetLineWidth(seg.Width)
		p.Line(seg.X1, seg.Y1, seg.X2, seg.Y2)
	}
	return p.Output(w)
}

// colorRGB parses a "#rrggbb" color, defaulting to black for anything it
// does not understand. The wire color field may carry extra trailing tokens;
// only the first one is the color.
func colorRGB(color string) (int, int, int) {
	if i := strings.IndexByte(color, ' '); i >= 0 {
		color = color[:i]
	}
	if len(color) != 7 || color[0] != '#' {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(color[1:], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
