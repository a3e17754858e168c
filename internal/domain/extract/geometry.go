package extract

import (
	"sort"
	"strings"
)

// Column inference tuning. The split candidate must clear minSplitGap and sit
// inside the middle half of the x-range, otherwise the gap is assumed to be
// table padding rather than the column gutter.
const (
	minSplitGap  = 20.0
	spanMargin   = 0.25
	minLineTol   = 2.0
	heightFactor = 0.3
)

// XSplit picks the vertical coordinate separating the two columns of a page.
// It takes the largest gap between word left edges, accepting it only when the
// gap is at least minSplitGap points and falls within the middle 50% of the
// x-range spanned by the words; otherwise it falls back to the midpoint of
// that range. This tracks column boundaries that drift from the geometric
// page center.
func XSplit(words []Word) float64 {
	if len(words) == 0 {
		return 0
	}

	xs := make([]float64, len(words))
	for i, w := range words {
		xs[i] = w.X0
	}
	sort.Float64s(xs)

	minX, maxX := xs[0], xs[len(xs)-1]
	span := maxX - minX
	if len(xs) < 2 || span <= 0 {
		return minX + span/2
	}

	maxGap, split := 0.0, minX+span/2
	for i := 1; i < len(xs); i++ {
		if gap := xs[i] - xs[i-1]; gap > maxGap {
			maxGap = gap
			split = (xs[i-1] + xs[i]) / 2
		}
	}

	lo := minX + span*spanMargin
	hi := maxX - span*spanMargin
	if maxGap >= minSplitGap && split >= lo && split <= hi {
		return split
	}
	return minX + span/2
}

// SplitColumns partitions words by their left edge relative to xSplit.
func SplitColumns(words []Word, xSplit float64) (left, right []Word) {
	for _, w := range words {
		if w.X0 < xSplit {
			left = append(left, w)
		} else {
			right = append(right, w)
		}
	}
	return left, right
}

// LineTolerance computes the adaptive y-grouping tolerance for a page:
// 30% of the median word height, no less than 2 points. It is derived from
// all words on the page so both columns group consistently.
func LineTolerance(words []Word) float64 {
	if len(words) == 0 {
		return minLineTol
	}
	heights := make([]float64, len(words))
	for i, w := range words {
		heights[i] = w.Y1 - w.Y0
	}
	sort.Float64s(heights)
	tol := heights[len(heights)/2] * heightFactor
	if tol < minLineTol {
		return minLineTol
	}
	return tol
}

// GroupLines clusters words into reading-order lines. Words are sorted by
// (y0, x0); a word opens a new line when its y0 differs from the current
// line's reference y0 by more than yTol. Within a line, words are ordered by
// x0 and joined with single spaces; lines whose text trims to empty are
// dropped.
func GroupLines(words []Word, yTol float64) []Line {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y0 != sorted[j].Y0 {
			return sorted[i].Y0 < sorted[j].Y0
		}
		return sorted[i].X0 < sorted[j].X0
	})

	type cluster struct {
		y0, y1 float64
		words  []Word
	}

	var clusters []cluster
	for _, w := range sorted {
		if len(clusters) == 0 || abs(w.Y0-clusters[len(clusters)-1].y0) > yTol {
			clusters = append(clusters, cluster{y0: w.Y0, y1: w.Y1, words: []Word{w}})
			continue
		}
		last := &clusters[len(clusters)-1]
		last.y0 = min(last.y0, w.Y0)
		last.y1 = max(last.y1, w.Y1)
		last.words = append(last.words, w)
	}

	lines := make([]Line, 0, len(clusters))
	for _, c := range clusters {
		sort.SliceStable(c.words, func(i, j int) bool { return c.words[i].X0 < c.words[j].X0 })

		parts := make([]string, len(c.words))
		for i, w := range c.words {
			parts[i] = w.Text
		}
		text := strings.TrimSpace(strings.Join(parts, " "))
		if text == "" {
			continue
		}

		lines = append(lines, Line{
			Y0:   c.y0,
			Y1:   c.y1,
			X0:   c.words[0].X0,
			X1:   c.words[len(c.words)-1].X1,
			Text: text,
		})
	}
	return lines
}

// PageLines runs the full geometry pass for one page: column split, then line
// grouping per column with a shared tolerance.
func PageLines(words []Word, xSplit float64) (left, right []Line) {
	tol := LineTolerance(words)
	lw, rw := SplitColumns(words, xSplit)
	return GroupLines(lw, tol), GroupLines(rw, tol)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
