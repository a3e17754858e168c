package extract

import (
	"fmt"
	"strings"
)

// Document is the output of the extraction stages for one statement PDF:
// reconstructed entries in reading order plus the context later stages need.
type Document struct {
	Raw    []RawStatement
	Meta   Metadata
	Layout Layout
	Text   string // full raw text, for the reconciler's total heuristics
}

// ExtractDocument runs geometry inference, region bounding, and statement
// reconstruction over one document. Word iteration stops as soon as the
// bounder sees a stop marker; raw text is still gathered from every page
// because the printed total and metadata can sit past the transaction region.
func ExtractDocument(src PageSource, ctx DocumentContext) (*Document, error) {
	numPages := src.NumPages()

	var sb strings.Builder
	for p := 1; p <= numPages; p++ {
		text, err := src.Text(p)
		if err != nil {
			return nil, fmt.Errorf("reading text of page %d: %w", p, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	fullText := sb.String()

	meta := ScanMetadata(fullText)
	layout := meta.ResolveLayout(ctx.Layout)

	bounder := NewBounder(layout)
	var (
		stream    []Line
		baseSplit float64
		baseSet   bool
	)
	for p := 1; p <= numPages && !bounder.Stopped(); p++ {
		words, err := src.Words(p)
		if err != nil {
			return nil, fmt.Errorf("reading words of page %d: %w", p, err)
		}
		if len(words) == 0 {
			continue
		}

		// The gap-based split is computed once, on the first page with
		// content; later pages reuse it with a per-layout offset.
		if !baseSet {
			baseSplit = XSplit(words)
			baseSet = true
		}
		split := baseSplit + SplitOffset(layout, p == 1)

		left, right := PageLines(words, split)
		inLeft, inRight := bounder.BoundPage(left, right)
		stream = append(stream, inLeft...)
		stream = append(stream, inRight...)
	}

	raw := NewReconstructor(ctx.Mode).Parse(stream)

	return &Document{
		Raw:    raw,
		Meta:   meta,
		Layout: layout,
		Text:   fullText,
	}, nil
}
