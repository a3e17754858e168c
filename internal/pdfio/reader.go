// Package pdfio adapts the pdf library to the word and text views the
// extraction pipeline consumes.
package pdfio

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/FACorreiaa/fatura-engine/internal/domain/extract"
)

// a4Height is the fallback page height when the media box is missing or
// inherited from an ancestor node the library does not resolve.
const a4Height = 842.0

// File is an open PDF exposed as an extract.PageSource.
type File struct {
	f *os.File
	r *pdf.Reader
}

// Open opens the PDF at path.
func Open(path string) (*File, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &File{f: f, r: r}, nil
}

// Close releases the underlying file.
func (p *File) Close() error {
	return p.f.Close()
}

// NumPages returns the page count.
func (p *File) NumPages() int {
	return p.r.NumPage()
}

// Words returns the positioned words of a page, with the y axis flipped so
// y grows downward and reading order sorts ascending. The library reports
// text as fragments, often single glyphs; fragments on the same baseline are
// merged into words unless the horizontal gap says they are separate.
func (p *File) Words(pageNum int) (words []extract.Word, err error) {
	// The library panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading page %d: %v", pageNum, r)
		}
	}()

	page := p.r.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}
	content := page.Content()
	if len(content.Text) == 0 {
		return nil, nil
	}

	height := pageHeight(page)

	rows := make(map[int][]pdf.Text)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		key := int(math.Round(t.Y))
		rows[key] = append(rows[key], t)
	}

	for _, items := range rows {
		sort.Slice(items, func(i, j int) bool { return items[i].X < items[j].X })
		words = append(words, mergeFragments(items, height)...)
	}

	sort.Slice(words, func(i, j int) bool {
		if words[i].Y0 != words[j].Y0 {
			return words[i].Y0 < words[j].Y0
		}
		return words[i].X0 < words[j].X0
	})
	return words, nil
}

// mergeFragments joins same-baseline fragments whose gap is within a fraction
// of the font size, producing one word per run.
func mergeFragments(items []pdf.Text, height float64) []extract.Word {
	var words []extract.Word
	var cur *extract.Word
	var endX float64

	for _, t := range items {
		gap := t.X - endX
		limit := math.Max(1.0, 0.3*t.FontSize)
		if cur != nil && gap <= limit {
			cur.Text += t.S
			cur.X1 = t.X + t.W
			endX = cur.X1
			continue
		}
		if cur != nil {
			words = append(words, *cur)
		}
		y0 := height - t.Y
		cur = &extract.Word{
			X0:   t.X,
			Y0:   y0,
			X1:   t.X + t.W,
			Y1:   y0 + t.FontSize,
			Text: t.S,
		}
		endX = cur.X1
	}
	if cur != nil {
		words = append(words, *cur)
	}
	return words
}

// Text returns the plain text of a page, one physical row per line.
func (p *File) Text(pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading page %d: %v", pageNum, r)
		}
	}()

	page := p.r.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("reading page %d: %w", pageNum, err)
	}

	var lines []string
	for _, row := range rows {
		var parts []string
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func pageHeight(page pdf.Page) float64 {
	mb := page.V.Key("MediaBox")
	if mb.Kind() != pdf.Array || mb.Len() < 4 {
		return a4Height
	}
	return mb.Index(3).Float64() - mb.Index(1).Float64()
}
