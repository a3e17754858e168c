package ledger

import (
	"fmt"
	"sort"
	"strings"
)

// SortStatements orders statements by a CLI-style sort spec:
// "<column>" or "<column> <ASC|DESC>". Valid columns are transaction_date,
// payment_date, description, and amount. An empty spec keeps reading order.
// The sort is stable so equal keys preserve reconstruction order.
func SortStatements(statements []Statement, spec string) error {
	if strings.TrimSpace(spec) == "" {
		return nil
	}

	parts := strings.Fields(spec)
	if len(parts) > 2 {
		return fmt.Errorf("sort must be %q or %q", "<column>", "<column> <ASC|DESC>")
	}
	column := strings.ToLower(parts[0])
	direction := "asc"
	if len(parts) == 2 {
		direction = strings.ToLower(parts[1])
	}
	if direction != "asc" && direction != "desc" {
		return fmt.Errorf("sort direction must be ASC or DESC, got %q", parts[1])
	}

	var less func(a, b Statement) bool
	switch column {
	case "transaction_date":
		less = func(a, b Statement) bool { return a.TransactionDate.Before(b.TransactionDate) }
	case "payment_date":
		less = func(a, b Statement) bool { return a.PaymentDate.Before(b.PaymentDate) }
	case "description":
		less = func(a, b Statement) bool { return a.Description < b.Description }
	case "amount":
		less = func(a, b Statement) bool { return a.Amount.LessThan(b.Amount) }
	default:
		return fmt.Errorf("sort column must be one of: transaction_date, payment_date, description, amount; got %q", column)
	}

	sort.SliceStable(statements, func(i, j int) bool {
		if direction == "desc" {
			return less(statements[j], statements[i])
		}
		return less(statements[i], statements[j])
	})
	return nil
}
