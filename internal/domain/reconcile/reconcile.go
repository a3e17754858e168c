// Package reconcile verifies parsed statements against the total the
// document itself prints. Mismatches are warnings, never processing errors:
// the parsed rows are always emitted alongside the result.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Result compares the document's printed total with the sum of reconstructed
// amounts. Both sides use the document's sign convention (purchases
// positive); reconciliation runs before the ledger sign flip.
type Result struct {
	Expected *decimal.Decimal // nil when no printed total was found
	Computed decimal.Decimal
	Matches  bool
}

// Check sums the parsed amounts and compares against expected at two-decimal
// precision. A nil expected yields Matches=false with Expected=nil, letting
// callers distinguish "couldn't verify" from "verified and wrong".
func Check(amounts []decimal.Decimal, expected *decimal.Decimal) Result {
	computed := decimal.Zero
	for _, a := range amounts {
		computed = computed.Add(a)
	}
	computed = computed.Round(2)

	r := Result{Expected: expected, Computed: computed}
	if expected != nil {
		r.Matches = computed.Equal(expected.Round(2))
	}
	return r
}

// Warning renders the operator-facing message for a failed reconciliation,
// or "" when there is nothing to report.
func (r Result) Warning() string {
	if r.Expected == nil {
		return "no printed total found; could not verify statement sum"
	}
	if r.Matches {
		return ""
	}
	diff := r.Computed.Sub(*r.Expected)
	return fmt.Sprintf("total mismatch: expected %s, got %s (difference %s)",
		r.Expected.StringFixed(2), r.Computed.StringFixed(2), diff.StringFixed(2))
}
