package reconcile

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/fatura-engine/pkg/money"
	"github.com/FACorreiaa/fatura-engine/pkg/textutil"
)

// Printed-total heuristics, tried in order against the raw document text.
// "Total da fatura anterior" names the previous statement's balance; the
// regexp captures the word so matches carrying it can be skipped (RE2 has no
// negative lookahead).
var totalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)total\s+desta\s+fatura()\s*\n?\s*(?:r\$)?\s*([\d.]+,\d{2})`),
	regexp.MustCompile(`(?im)o\s+total\s+da\s+sua\s+fatura\s+[eé]:?()\s*\n?\s*r\$\s*([\d.]+,\d{2})`),
	regexp.MustCompile(`(?im)total\s+da\s+fatura(\s+anterior)?\s*\n?\s*(?:r\$)?\s*([\d.]+,\d{2})`),
}

// Fallback anchors matched against fully normalized text. Page-break
// artifacts can push the amount up to 200 characters past its label.
var normalizedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`totaldestafatura().{0,200}?(?:r\$)?([\d.]+,\d{2})`),
	regexp.MustCompile(`ototaldasuafaturae().{0,200}?(?:r\$)?([\d.]+,\d{2})`),
	regexp.MustCompile(`totaldafatura(anterior)?.{0,200}?(?:r\$)?([\d.]+,\d{2})`),
}

// ExtractPrintedTotal locates the statement total the document prints. The
// raw-text patterns run first; if none hit, the normalized-text anchors
// tolerate labels torn apart by PDF reflow. Returns false when no heuristic
// matches.
func ExtractPrintedTotal(text string) (decimal.Decimal, bool) {
	if total, ok := matchTotal(totalPatterns, text); ok {
		return total, true
	}
	return matchTotal(normalizedPatterns, textutil.Normalize(text))
}

// matchTotal returns the first match whose "anterior" group is empty. The
// two-capture convention (anterior marker, then amount) keeps the skip rule
// uniform across patterns.
func matchTotal(patterns []*regexp.Regexp, text string) (decimal.Decimal, bool) {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if m[1] != "" {
				continue // previous statement's total
			}
			total, err := money.Parse(m[2])
			if err != nil {
				continue
			}
			return total, true
		}
	}
	return decimal.Zero, false
}
