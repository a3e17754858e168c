// Package ledger turns reconstructed statement entries into normalized,
// identified ledger rows and merges them idempotently into CSV tables.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/fatura-engine/internal/domain/extract"
	"github.com/FACorreiaa/fatura-engine/pkg/money"
)

// Statement is one finalized ledger entry. Amounts are signed with the
// ledger convention (negative = money spent) once FlipSigns has run; dates
// are plain civil dates in UTC.
type Statement struct {
	ID              string
	TransactionDate time.Time
	PaymentDate     time.Time // zero when the document had no due date
	Description     string
	Amount          decimal.Decimal
	Category        string
	Location        string
}

// RefDate anchors DD/MM completion: the document's due date when known,
// otherwise a bare fallback year.
type RefDate struct {
	Due  time.Time
	Year int
}

// FromRaw normalizes one reconstructed entry into a Statement: BRL amount
// parsing, year completion with December/January rollover, and installment
// tags folded into the description. The returned amount still carries the
// document's sign convention; FlipSigns applies the ledger convention later.
func FromRaw(raw extract.RawStatement, ref RefDate) (Statement, error) {
	amount, err := money.Parse(raw.AmountText)
	if err != nil {
		return Statement{}, fmt.Errorf("statement %q on %s: %w", raw.Description, raw.DateDDMM, err)
	}

	txnDate, err := CompleteDate(raw.DateDDMM, ref)
	if err != nil {
		return Statement{}, fmt.Errorf("statement %q: %w", raw.Description, err)
	}

	description := raw.Description
	if raw.InstallmentTag != "" {
		description += " " + raw.InstallmentTag
	}

	return Statement{
		TransactionDate: txnDate,
		PaymentDate:     ref.Due,
		Description:     description,
		Amount:          amount,
		Category:        raw.Category,
		Location:        raw.Location,
	}, nil
}

// CompleteDate expands a bare DD/MM to a full date. A December transaction on
// a statement due in January belongs to the prior year.
func CompleteDate(ddmm string, ref RefDate) (time.Time, error) {
	parts := strings.SplitN(ddmm, "/", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid transaction date %q", ddmm)
	}
	day, errD := parseComponent(parts[0])
	month, errM := parseComponent(parts[1])
	if errD != nil || errM != nil || day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid transaction date %q", ddmm)
	}

	year := ref.Year
	if !ref.Due.IsZero() {
		year = ref.Due.Year()
		if month == 12 && ref.Due.Month() == time.January {
			year--
		}
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func parseComponent(s string) (int, error) {
	n := 0
	if s == "" || len(s) > 2 {
		return 0, fmt.Errorf("invalid date component %q", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid date component %q", s)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// FlipSigns negates every amount in place: the document prints purchases as
// positive, the ledger stores expenses as negative. Called exactly once per
// document, after reconciliation.
func FlipSigns(statements []Statement) {
	for i := range statements {
		statements[i].Amount = statements[i].Amount.Neg()
	}
}

// Amounts returns the statements' amounts in order, for reconciliation.
func Amounts(statements []Statement) []decimal.Decimal {
	out := make([]decimal.Decimal, len(statements))
	for i, s := range statements {
		out[i] = s.Amount
	}
	return out
}
