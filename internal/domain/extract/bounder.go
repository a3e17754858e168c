package extract

import (
	"strings"

	"github.com/FACorreiaa/fatura-engine/pkg/textutil"
)

// Markers bounding the transaction-listing region, in normalized form
// (accents stripped, lowercased, whitespace removed).
const (
	startMarker = "lancamentos:comprasesaques"
	stopMarker  = "comprasparceladas"
)

// cmToPt converts the layout offset constants, which are specified in
// centimeters, to PDF points.
const cmToPt = 28.35

// splitOffsetsCm maps a layout to the column-split adjustment applied to the
// base split coordinate, first page vs. subsequent pages. The first page
// carries a summary box that shifts the gutter.
var splitOffsetsCm = map[Layout][2]float64{
	LayoutModern: {-1.0, 1.0},
	LayoutLegacy: {0.0, 1.5},
}

// SplitOffset returns the split adjustment in points for a page of the given
// layout. Unknown layouts fall back to modern offsets.
func SplitOffset(layout Layout, firstPage bool) float64 {
	offsets, ok := splitOffsetsCm[layout]
	if !ok {
		offsets = splitOffsetsCm[LayoutModern]
	}
	if firstPage {
		return offsets[0] * cmToPt
	}
	return offsets[1] * cmToPt
}

// Bounder filters per-page column lines down to the transaction region. It is
// stateful across pages: start markers are tracked per column, and a stop
// marker anywhere ends extraction for the rest of the document.
type Bounder struct {
	layout    Layout
	startSeen map[Column]bool
	stopped   bool
}

// NewBounder creates a bounder for one document.
func NewBounder(layout Layout) *Bounder {
	return &Bounder{layout: layout, startSeen: make(map[Column]bool)}
}

// Stopped reports whether a stop marker has been seen. Once true, no further
// pages should be read.
func (b *Bounder) Stopped() bool { return b.stopped }

// BoundPage returns the in-scope lines for one page's columns. A stop marker
// in the left column discards the right column of the same page outright; a
// stop marker in the right column truncates only the right column. Either way
// the whole document stops there.
func (b *Bounder) BoundPage(left, right []Line) (inLeft, inRight []Line) {
	if b.stopped {
		return nil, nil
	}

	inLeft, stopInLeft := b.boundColumn(ColumnLeft, left)
	if stopInLeft {
		b.stopped = true
		return inLeft, nil
	}

	inRight, stopInRight := b.boundColumn(ColumnRight, right)
	if stopInRight {
		b.stopped = true
	}
	return inLeft, inRight
}

// boundColumn scans one column, honoring the start-marker requirement of the
// modern layout (legacy considers everything before the stop marker in
// scope). The second return is true when the stop marker was hit.
func (b *Bounder) boundColumn(col Column, lines []Line) ([]Line, bool) {
	var in []Line
	for _, line := range lines {
		normalized := textutil.Normalize(line.Text)
		if !b.startSeen[col] && strings.Contains(normalized, startMarker) {
			b.startSeen[col] = true
			continue
		}
		if b.layout == LayoutModern && !b.startSeen[col] {
			continue
		}
		if strings.Contains(normalized, stopMarker) {
			return in, true
		}
		in = append(in, line)
	}
	return in, false
}
