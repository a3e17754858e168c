package extract

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/fatura-engine/pkg/textutil"
)

// Patterns are matched after whitespace removal, so reflowed text like
// "19/1 2" or "- 2.249,00" still matches.
var (
	dateLineRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	amountRe   = regexp.MustCompile(`^-?[\d.]+,\d{2}$`)
)

// IsDateLine reports whether a line is a bare DD/MM transaction date.
func IsDateLine(text string) bool {
	return dateLineRe.MatchString(textutil.StripSpace(text))
}

// NormalizeAmount returns the whitespace-stripped amount text and whether the
// line is a currency amount (optional minus, dot-grouped digits, comma and
// exactly two decimals).
func NormalizeAmount(text string) (string, bool) {
	stripped := textutil.StripSpace(text)
	if amountRe.MatchString(stripped) {
		return stripped, true
	}
	return "", false
}

// Reconstructor turns bounded lines into RawStatements. One instance handles
// one document's full line stream (left column, then right, page by page), so
// an entry whose amount wraps to the next column still closes correctly.
type Reconstructor struct {
	mode Mode
}

// NewReconstructor creates a reconstructor for the given mode.
func NewReconstructor(mode Mode) *Reconstructor {
	return &Reconstructor{mode: mode}
}

// Parse runs the state machine over the in-scope lines and returns the
// reconstructed entries in reading order.
//
// A date line opens an entry; subsequent lines accumulate into the
// description until an amount line closes it. A second date line closes the
// entry as an installment tag when the line after it is an amount, and
// otherwise aborts the unterminated entry and opens a new one. In enhanced
// mode closed entries join a FIFO queue; non-date lines seen between entries
// are category/location metadata for the oldest queued entry.
func (r *Reconstructor) Parse(lines []Line) []RawStatement {
	filtered := lines[:0:0]
	for _, line := range lines {
		if strings.TrimSpace(line.Text) != "" {
			filtered = append(filtered, line)
		}
	}

	var (
		statements []RawStatement
		pending    []int // indices into statements awaiting a category line
	)

	i := 0
	for i < len(filtered) {
		text := filtered[i].Text
		if !IsDateLine(text) {
			if r.mode == ModeEnhanced && len(pending) > 0 {
				assignCategory(&statements[pending[0]], strings.TrimSpace(text))
				pending = pending[1:]
			}
			i++
			continue
		}

		stmt := RawStatement{DateDDMM: textutil.StripSpace(text)}
		var descParts []string

		j := i + 1
		closed := false
		aborted := false
		for j < len(filtered) {
			lineText := strings.TrimSpace(filtered[j].Text)

			if amt, ok := NormalizeAmount(lineText); ok {
				stmt.AmountText = amt
				closed = true
				break
			}

			if IsDateLine(lineText) {
				if j+1 < len(filtered) {
					if amt, ok := NormalizeAmount(filtered[j+1].Text); ok {
						// Installment tag: folded into the description, the
						// following amount closes the entry.
						stmt.InstallmentTag = textutil.StripSpace(lineText)
						stmt.AmountText = amt
						j++
						closed = true
						break
					}
				}
				// New transaction began before this one found its amount.
				aborted = true
				break
			}

			descParts = append(descParts, lineText)
			j++
		}

		stmt.Description = strings.Join(descParts, " ")

		switch {
		case closed && stmt.Description != "":
			statements = append(statements, stmt)
			if r.mode == ModeEnhanced {
				pending = append(pending, len(statements)-1)
			}
			i = j + 1
		case aborted:
			i = j // restart at the aborting date line
		default:
			// Unterminated or descriptionless entry: drop it.
			i = j + 1
		}
	}

	return statements
}

// ParseBlock is the non-layout-aware path: it parses an already-concatenated
// text block, one physical line per row.
func (r *Reconstructor) ParseBlock(block string) []RawStatement {
	var lines []Line
	for _, text := range strings.Split(block, "\n") {
		lines = append(lines, Line{Text: text})
	}
	return r.Parse(lines)
}

// assignCategory splits a metadata line at its last space into category and
// location; a single token is wholly category.
func assignCategory(stmt *RawStatement, text string) {
	if idx := strings.LastIndex(text, " "); idx >= 0 {
		stmt.Category = strings.TrimSpace(text[:idx])
		stmt.Location = strings.TrimSpace(text[idx+1:])
		return
	}
	stmt.Category = text
}
