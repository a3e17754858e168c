package pdfio

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeFragments_JoinsGlyphRuns(t *testing.T) {
	// "R$" rendered as two fragments almost touching, then "10,00" far right.
	items := []pdf.Text{
		{S: "R", X: 50, Y: 700, W: 6, FontSize: 10},
		{S: "$", X: 56.5, Y: 700, W: 6, FontSize: 10},
		{S: "10,00", X: 120, Y: 700, W: 30, FontSize: 10},
	}

	words := mergeFragments(items, 842)
	require.Len(t, words, 2)
	assert.Equal(t, "R$", words[0].Text)
	assert.Equal(t, "10,00", words[1].Text)
	assert.Equal(t, 50.0, words[0].X0)
	assert.Equal(t, 62.5, words[0].X1)
}

func TestMergeFragments_FlipsYAxis(t *testing.T) {
	// PDF y grows upward, so the fragment nearer the top has the larger Y.
	top := []pdf.Text{{S: "header", X: 50, Y: 800, W: 40, FontSize: 10}}
	bottom := []pdf.Text{{S: "footer", X: 50, Y: 40, W: 40, FontSize: 10}}

	topWords := mergeFragments(top, 842)
	bottomWords := mergeFragments(bottom, 842)
	require.Len(t, topWords, 1)
	require.Len(t, bottomWords, 1)
	assert.Less(t, topWords[0].Y0, bottomWords[0].Y0)
	assert.Equal(t, 10.0, topWords[0].Y1-topWords[0].Y0)
}

func TestMergeFragments_Empty(t *testing.T) {
	assert.Empty(t, mergeFragments(nil, 842))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(t.TempDir() + "/missing.pdf")
	assert.Error(t, err)
}
