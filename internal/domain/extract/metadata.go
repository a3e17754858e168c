package extract

import (
	"regexp"
	"time"

	"github.com/FACorreiaa/fatura-engine/pkg/textutil"
)

// Metadata is the document-level information scanned from the full text:
// everything outside the transaction region the pipeline still needs.
type Metadata struct {
	Last4     string    // card's last four digits, "" if not found
	DueDate   time.Time // payment due date, zero if not found
	IssueDate time.Time // statement issue date, zero if not found
}

var (
	last4Re     = regexp.MustCompile(`(?i)x{4}\.(\d{4})`)
	dueDateRe   = regexp.MustCompile(`(?i)vencimento\D*?(\d{2}/\d{2}/\d{4})`)
	dueNormRe   = regexp.MustCompile(`vencimento.*?(\d{2}/\d{2}/\d{4})`)
	issueDateRe = regexp.MustCompile(`(?i)emiss[aã]o:?\s*(\d{2}/\d{2}/\d{4})`)
)

// ScanMetadata extracts card and date metadata from the raw document text.
// Missing fields are zero values; metadata absence is never an error.
func ScanMetadata(text string) Metadata {
	return Metadata{
		Last4:     extractLast4(text),
		DueDate:   extractDueDate(text),
		IssueDate: extractIssueDate(text),
	}
}

// ResolveLayout returns the explicit layout when set, otherwise infers it
// from the due date. Without a due date the document is assumed legacy.
func (m Metadata) ResolveLayout(override Layout) Layout {
	if override != "" {
		return override
	}
	if m.DueDate.IsZero() {
		return LayoutLegacy
	}
	return LayoutForDueDate(m.DueDate)
}

// RefYear picks the year used to complete bare DD/MM dates: the due date's
// year when known, else the issue year, else the supplied fallback.
func (m Metadata) RefYear(fallback int) int {
	if !m.DueDate.IsZero() {
		return m.DueDate.Year()
	}
	if !m.IssueDate.IsZero() {
		return m.IssueDate.Year()
	}
	return fallback
}

// extractLast4 finds the masked card number ("XXXX.1234"); the last match
// wins because earlier pages repeat the account holder's other cards.
func extractLast4(text string) string {
	matches := last4Re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}

func extractDueDate(text string) time.Time {
	m := dueDateRe.FindStringSubmatch(text)
	if m == nil {
		// Reflow can scatter the label; retry against normalized text.
		m = dueNormRe.FindStringSubmatch(textutil.Normalize(text))
	}
	if m == nil {
		return time.Time{}
	}
	return parseFullDate(m[1])
}

func extractIssueDate(text string) time.Time {
	m := issueDateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}
	}
	return parseFullDate(m[1])
}

func parseFullDate(s string) time.Time {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
