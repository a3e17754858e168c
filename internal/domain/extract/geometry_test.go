package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(x0, y0, x1, y1 float64, text string) Word {
	return Word{X0: x0, Y0: y0, X1: x1, Y1: y1, Text: text}
}

func TestXSplit_UsesLargestGap(t *testing.T) {
	// Left column words around x=50..80, right column around x=300..330.
	words := []Word{
		word(50, 10, 80, 20, "a"),
		word(60, 30, 90, 40, "b"),
		word(80, 50, 110, 60, "c"),
		word(300, 10, 330, 20, "d"),
		word(310, 30, 340, 40, "e"),
		word(330, 50, 360, 60, "f"),
	}

	split := XSplit(words)
	assert.InDelta(t, 190.0, split, 0.001) // midpoint of the 80..300 gap
}

func TestXSplit_RejectsGapOutsideMiddleBand(t *testing.T) {
	// Largest gap hugs the left edge of the x-range: its midpoint (15) is
	// below the middle-band floor (20), so fall back to the range midpoint.
	words := []Word{
		word(0, 10, 10, 20, "a"),
		word(30, 10, 40, 20, "b"),
		word(40, 10, 50, 20, "c"),
		word(50, 10, 60, 20, "d"),
		word(60, 10, 70, 20, "e"),
		word(70, 10, 80, 20, "f"),
		word(75, 10, 85, 20, "g"),
		word(80, 10, 90, 20, "h"),
	}

	split := XSplit(words)
	assert.InDelta(t, 40.0, split, 0.001)
}

func TestXSplit_RejectsSmallGap(t *testing.T) {
	words := []Word{
		word(10, 10, 20, 20, "a"),
		word(25, 10, 35, 20, "b"),
		word(40, 10, 50, 20, "c"),
	}

	// Max gap is 15pt (< 20pt minimum): midpoint fallback.
	split := XSplit(words)
	assert.InDelta(t, 25.0, split, 0.001)
}

func TestXSplit_DegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, XSplit(nil))
	assert.InDelta(t, 42.0, XSplit([]Word{word(42, 0, 50, 10, "only")}), 0.001)
}

func TestSplitColumns_AssignmentIsStable(t *testing.T) {
	words := []Word{
		word(10, 0, 20, 10, "left"),
		word(199.9, 0, 210, 10, "edge-left"),
		word(200, 0, 210, 10, "edge-right"),
		word(400, 0, 410, 10, "right"),
	}

	left, right := SplitColumns(words, 200)
	require.Len(t, left, 2)
	require.Len(t, right, 2)
	assert.Equal(t, "left", left[0].Text)
	assert.Equal(t, "edge-left", left[1].Text)
	assert.Equal(t, "edge-right", right[0].Text)
	assert.Equal(t, "right", right[1].Text)
	// Every word lands in exactly one column.
	assert.Equal(t, len(words), len(left)+len(right))
}

func TestLineTolerance(t *testing.T) {
	// Median height 10 -> tolerance 3.0.
	words := []Word{
		word(0, 0, 10, 8, "a"),
		word(0, 0, 10, 10, "b"),
		word(0, 0, 10, 12, "c"),
	}
	assert.InDelta(t, 3.0, LineTolerance(words), 0.001)

	// Tiny glyphs clamp to the 2pt floor.
	small := []Word{word(0, 0, 10, 1, "a"), word(0, 0, 10, 1, "b")}
	assert.Equal(t, 2.0, LineTolerance(small))
}

func TestGroupLines(t *testing.T) {
	words := []Word{
		word(100, 10.5, 140, 20, "Trip"),
		word(50, 10, 90, 20, "Uber"),
		word(50, 30, 100, 40, "10,00"),
	}

	lines := GroupLines(words, 2.0)
	require.Len(t, lines, 2)
	assert.Equal(t, "Uber Trip", lines[0].Text)
	assert.Equal(t, 50.0, lines[0].X0)
	assert.Equal(t, 140.0, lines[0].X1)
	assert.Equal(t, 10.0, lines[0].Y0)
	assert.Equal(t, "10,00", lines[1].Text)
}

func TestGroupLines_DropsEmptyText(t *testing.T) {
	words := []Word{
		word(50, 10, 60, 20, "  "),
		word(50, 30, 60, 40, "kept"),
	}

	lines := GroupLines(words, 2.0)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0].Text)
}

func TestGroupLines_ToleranceSplitsLines(t *testing.T) {
	words := []Word{
		word(50, 10, 60, 20, "a"),
		word(70, 11.9, 80, 20, "b"), // within tolerance of the line's y0
		word(90, 14.5, 100, 20, "c"),
	}

	// Reference y0 stays at the line minimum, so "c" at 14.5 is out of the
	// 2.0 tolerance and opens a new line.
	lines := GroupLines(words, 2.0)
	require.Len(t, lines, 2)
	assert.Equal(t, "a b", lines[0].Text)
	assert.Equal(t, "c", lines[1].Text)
}
