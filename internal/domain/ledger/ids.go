package ledger

import (
	"fmt"
	"strings"
	"time"
)

// AssignIDs stamps deterministic, human-legible IDs over the final ordered
// statement list: "{YYYY}-{MMM}-{n}". Year and month come from the payment
// date when present, else the transaction date; n is the 1-based position in
// the list. IDs are assigned per merge run, over the combined (and possibly
// sorted) rows, so a stable input order always yields the same IDs.
func AssignIDs(statements []Statement) {
	for i := range statements {
		base := statements[i].PaymentDate
		if base.IsZero() {
			base = statements[i].TransactionDate
		}
		statements[i].ID = FormatID(base, i+1)
	}
}

// FormatID renders one statement ID, e.g. "2024-MAR-1".
func FormatID(base time.Time, n int) string {
	return fmt.Sprintf("%d-%s-%d", base.Year(), strings.ToUpper(base.Format("Jan")), n)
}
