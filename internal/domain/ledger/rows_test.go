package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/fatura-engine/pkg/money"
)

func TestFormatRows(t *testing.T) {
	statements := []Statement{{
		ID:              "2024-MAR-1",
		TransactionDate: date(2024, time.February, 23),
		PaymentDate:     date(2024, time.March, 15),
		Description:     "AMAZON BR",
		Amount:          decimal.RequireFromString("-1234.5"),
		Category:        "compras",
		Location:        "sao paulo",
	}}

	ptbr := FormatRows(statements, money.LocalePtBR)
	assert.Equal(t, Row{
		ID:              "2024-MAR-1",
		TransactionDate: "23/02/24",
		PaymentDate:     "15/03/24",
		Description:     "AMAZON BR",
		Amount:          "-1.234,50",
		Category:        "compras",
		Location:        "sao paulo",
	}, ptbr[0])

	enus := FormatRows(statements, money.LocaleEnUS)
	assert.Equal(t, "02/23/24", enus[0].TransactionDate)
	assert.Equal(t, "-1234.50", enus[0].Amount)
}

func TestFormatDate_ZeroIsEmpty(t *testing.T) {
	assert.Equal(t, "", FormatDate(time.Time{}, money.LocalePtBR))
}

func TestHeadersAndFields(t *testing.T) {
	r := Row{ID: "id1", TransactionDate: "d1", PaymentDate: "d2", Description: "desc", Amount: "9,99", Category: "cat", Location: "loc"}

	assert.Equal(t, []string{"id", "transaction_date", "payment_date", "description", "amount"}, Headers(false))
	assert.Equal(t, []string{"id", "transaction_date", "payment_date", "description", "amount", "category", "location"}, Headers(true))
	assert.Equal(t, []string{"id1", "d1", "d2", "desc", "9,99"}, r.Fields(false))
	assert.Equal(t, []string{"id1", "d1", "d2", "desc", "9,99", "cat", "loc"}, r.Fields(true))
}

func TestRowKey(t *testing.T) {
	withID := Row{ID: "2024-MAR-1", Description: "x"}
	assert.Equal(t, "2024-MAR-1", withID.Key(false))

	noID := Row{TransactionDate: "23/02/24", Description: "x", Amount: "1,00"}
	assert.Equal(t, ",23/02/24,,x,1,00", noID.Key(false))
}
