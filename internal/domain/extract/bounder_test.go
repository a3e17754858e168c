package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func textLines(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = Line{Text: t, Y0: float64(10 * i)}
	}
	return lines
}

func lineTexts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestBounder_ModernRequiresStartMarker(t *testing.T) {
	b := NewBounder(LayoutModern)

	left := textLines(
		"header noise",
		"Lançamentos: compras e saques",
		"01/02",
		"Coffee",
	)
	right := textLines("right noise before start")

	inLeft, inRight := b.BoundPage(left, right)
	assert.Equal(t, []string{"01/02", "Coffee"}, lineTexts(inLeft))
	// The right column has not seen its own start marker yet.
	assert.Empty(t, inRight)
}

func TestBounder_LegacyInScopeFromTop(t *testing.T) {
	b := NewBounder(LayoutLegacy)

	inLeft, inRight := b.BoundPage(textLines("01/02", "Coffee"), textLines("10,00"))
	assert.Equal(t, []string{"01/02", "Coffee"}, lineTexts(inLeft))
	assert.Equal(t, []string{"10,00"}, lineTexts(inRight))
}

func TestBounder_StopInLeftDiscardsRightColumn(t *testing.T) {
	b := NewBounder(LayoutLegacy)

	left := textLines("01/02", "Compras parceladas", "should not appear")
	right := textLines("right column row")

	inLeft, inRight := b.BoundPage(left, right)
	assert.Equal(t, []string{"01/02"}, lineTexts(inLeft))
	assert.Empty(t, inRight)
	assert.True(t, b.Stopped())

	// Subsequent pages yield nothing.
	nextLeft, nextRight := b.BoundPage(textLines("03/02"), textLines("20,00"))
	assert.Empty(t, nextLeft)
	assert.Empty(t, nextRight)
}

func TestBounder_StopInRightKeepsLeftColumn(t *testing.T) {
	b := NewBounder(LayoutLegacy)

	left := textLines("01/02", "Coffee", "10,00")
	right := textLines("05/02", "Compras parceladas", "dropped")

	inLeft, inRight := b.BoundPage(left, right)
	assert.Equal(t, []string{"01/02", "Coffee", "10,00"}, lineTexts(inLeft))
	assert.Equal(t, []string{"05/02"}, lineTexts(inRight))
	assert.True(t, b.Stopped())
}

func TestBounder_StartMarkerSurvivesAcrossPages(t *testing.T) {
	b := NewBounder(LayoutModern)

	b.BoundPage(textLines("Lançamentos: compras e saques"), nil)
	inLeft, _ := b.BoundPage(textLines("01/02", "Coffee"), nil)
	assert.Equal(t, []string{"01/02", "Coffee"}, lineTexts(inLeft))
}

func TestBounder_MarkerMatchesMangledText(t *testing.T) {
	b := NewBounder(LayoutModern)

	// Accent loss and reflowed whitespace must not hide the marker.
	inLeft, _ := b.BoundPage(textLines("LANCAMENTOS :  COMPRAS E SAQUES", "row"), nil)
	assert.Equal(t, []string{"row"}, lineTexts(inLeft))
}

func TestSplitOffset(t *testing.T) {
	assert.InDelta(t, -28.35, SplitOffset(LayoutModern, true), 0.001)
	assert.InDelta(t, 28.35, SplitOffset(LayoutModern, false), 0.001)
	assert.InDelta(t, 0.0, SplitOffset(LayoutLegacy, true), 0.001)
	assert.InDelta(t, 42.525, SplitOffset(LayoutLegacy, false), 0.001)
}
