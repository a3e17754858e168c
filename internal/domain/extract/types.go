// Package extract implements the statement extraction engine for Itaú credit
// card PDFs: page geometry inference, transaction-region bounding, and the
// line state machine that reconstructs statement entries. The PDF byte format
// itself is out of scope; words and raw text arrive through the PageSource
// contract.
package extract

import "time"

// Word is one positioned token as reported by the PDF text extractor.
// Coordinates are in points with the origin at the top-left of the page.
type Word struct {
	X0   float64
	Y0   float64
	X1   float64
	Y1   float64
	Text string
}

// Line is a maximal run of words judged to lie on one visual text line,
// joined left-to-right by single spaces.
type Line struct {
	Y0   float64
	X0   float64
	Y1   float64
	X1   float64
	Text string
}

// Column identifies which half of the two-column statement page a word or
// line belongs to. Assignment is by left edge: Left iff x0 < xSplit.
type Column int

const (
	ColumnLeft Column = iota
	ColumnRight
)

func (c Column) String() string {
	if c == ColumnRight {
		return "right"
	}
	return "left"
}

// Layout names a historical revision of the statement's physical formatting.
// It selects marker rules and column-split offsets.
type Layout string

const (
	LayoutLegacy Layout = "legacy"
	LayoutModern Layout = "modern"
)

// modernCutoff is the first due date printed on modern-layout statements.
var modernCutoff = time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

// LayoutForDueDate infers the layout from the payment due date. Statements
// due August 2025 onwards use the modern layout.
func LayoutForDueDate(due time.Time) Layout {
	if !due.Before(modernCutoff) {
		return LayoutModern
	}
	return LayoutLegacy
}

// ParseLayout validates an explicit layout override.
func ParseLayout(s string) (Layout, bool) {
	switch Layout(s) {
	case LayoutLegacy, LayoutModern:
		return Layout(s), true
	}
	return "", false
}

// Mode selects the reconstruction strategy. Enhanced mode additionally
// captures the trailing category/location line some revisions print.
type Mode int

const (
	ModeBasic Mode = iota
	ModeEnhanced
)

// RawStatement is one reconstructed transaction entry before normalization.
// AmountText is the document's BRL-formatted amount with whitespace removed;
// DateDDMM is "D/M" with 1-2 digit components.
type RawStatement struct {
	DateDDMM       string
	Description    string
	InstallmentTag string
	AmountText     string
	Category       string
	Location       string
}

// PageSource is the contract with the external PDF text/word extractor.
// Pages are 1-based and iterate in physical document order.
type PageSource interface {
	NumPages() int
	Words(page int) ([]Word, error)
	Text(page int) (string, error)
}

// DocumentContext carries per-document extraction configuration, replacing
// the ambient defaults earlier revisions relied on.
type DocumentContext struct {
	Layout Layout // empty = infer from due date
	Mode   Mode
}
