package ledger

import (
	"strings"
	"time"

	"github.com/FACorreiaa/fatura-engine/pkg/money"
)

// Row is the CSV projection of a Statement. All values are already
// locale-formatted strings; the canonical column order is
// id,transaction_date,payment_date,description,amount and the enhanced
// variant appends category,location. Extra tags are tolerated on read so
// both variants load into the same struct.
type Row struct {
	ID              string `csv:"id"`
	TransactionDate string `csv:"transaction_date"`
	PaymentDate     string `csv:"payment_date"`
	Description     string `csv:"description"`
	Amount          string `csv:"amount"`
	Category        string `csv:"category"`
	Location        string `csv:"location"`
}

// Headers returns the CSV header list for the chosen variant.
func Headers(enhanced bool) []string {
	base := []string{"id", "transaction_date", "payment_date", "description", "amount"}
	if enhanced {
		return append(base, "category", "location")
	}
	return base
}

// Fields returns the row's values in canonical column order.
func (r Row) Fields(enhanced bool) []string {
	base := []string{r.ID, r.TransactionDate, r.PaymentDate, r.Description, r.Amount}
	if enhanced {
		return append(base, r.Category, r.Location)
	}
	return base
}

// Key identifies a row for merge dedup: the ID when present, else the full
// row content (earlier table variants were written without IDs).
func (r Row) Key(enhanced bool) string {
	if r.ID != "" {
		return r.ID
	}
	return strings.Join(r.Fields(enhanced), ",")
}

// FormatRows renders statements as locale-formatted rows. Internally dates
// and amounts stay typed; this is the only place presentation formatting
// happens.
func FormatRows(statements []Statement, locale money.Locale) []Row {
	rows := make([]Row, len(statements))
	for i, s := range statements {
		rows[i] = Row{
			ID:              s.ID,
			TransactionDate: FormatDate(s.TransactionDate, locale),
			PaymentDate:     FormatDate(s.PaymentDate, locale),
			Description:     s.Description,
			Amount:          money.Format(s.Amount, locale),
			Category:        s.Category,
			Location:        s.Location,
		}
	}
	return rows
}

// FormatDate renders a civil date for the locale: MM/DD/YY for en-us,
// DD/MM/YY for pt-br. Zero dates render empty.
func FormatDate(t time.Time, locale money.Locale) string {
	if t.IsZero() {
		return ""
	}
	if locale == money.LocalePtBR {
		return t.Format("02/01/06")
	}
	return t.Format("01/02/06")
}
