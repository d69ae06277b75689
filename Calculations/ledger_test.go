package Calculations

import (
	"testing"

	"Himal/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerFixture() []Models.Transaction {
	return []Models.Transaction{
		{TxnType: Models.TxnReceipt, Date: "2024-03-05", Amount: 2000, Description: "advance"},
		{TxnType: Models.TxnSales, Date: "2024-03-01", Amount: 5000, Description: "invoice 101"},
		{TxnType: Models.TxnPayment, Date: "2024-03-10", Amount: 1500, Description: "freight paid"},
		{TxnType: Models.TxnPurchase, Date: "2024-03-08", Amount: 700, Description: "raw paper"},
	}
}

func TestBuildLedgerPolarity(t *testing.T) {
	result := BuildLedger(ledgerFixture())
	require.Len(t, result.Rows, 4)

	// Sorted by date: Sales, Receipt, Purchase, Payment.
	assert.Equal(t, Models.TxnSales, result.Rows[0].Transaction.TxnType)
	assert.InDelta(t, 5000, result.Rows[0].Debit, 1e-9)
	assert.Zero(t, result.Rows[0].Credit)

	assert.Equal(t, Models.TxnReceipt, result.Rows[1].Transaction.TxnType)
	assert.InDelta(t, 2000, result.Rows[1].Credit, 1e-9)

	assert.Equal(t, Models.TxnPurchase, result.Rows[2].Transaction.TxnType)
	assert.InDelta(t, 700, result.Rows[2].Credit, 1e-9)

	// Payment posts to debit for the party's ledger; this is intentional.
	assert.Equal(t, Models.TxnPayment, result.Rows[3].Transaction.TxnType)
	assert.InDelta(t, 1500, result.Rows[3].Debit, 1e-9)
}

func TestBuildLedgerRunningBalancePrefixSums(t *testing.T) {
	result := BuildLedger(ledgerFixture())

	running := 0.0
	for i, row := range result.Rows {
		running += row.Debit - row.Credit
		assert.InDeltaf(t, running, row.Balance, 1e-9, "row %d", i)
	}

	assert.InDelta(t, result.TotalDebit-result.TotalCredit, result.ClosingBalance, 1e-9)
	assert.InDelta(t, 6500, result.TotalDebit, 1e-9)
	assert.InDelta(t, 2700, result.TotalCredit, 1e-9)
	assert.InDelta(t, 3800, result.ClosingBalance, 1e-9)
}

func TestBuildLedgerIdempotent(t *testing.T) {
	input := ledgerFixture()
	first := BuildLedger(input)
	second := BuildLedger(input)
	assert.Equal(t, first, second)

	// Input order is untouched.
	assert.Equal(t, Models.TxnReceipt, input[0].TxnType)
}

func TestBuildLedgerStableOnEqualDates(t *testing.T) {
	input := []Models.Transaction{
		{TxnType: Models.TxnSales, Date: "2024-03-01", Amount: 100, Description: "first"},
		{TxnType: Models.TxnSales, Date: "2024-03-01", Amount: 200, Description: "second"},
		{TxnType: Models.TxnSales, Date: "2024-03-01", Amount: 300, Description: "third"},
	}

	result := BuildLedger(input)
	require.Len(t, result.Rows, 3)
	assert.Equal(t, "first", result.Rows[0].Transaction.Description)
	assert.Equal(t, "second", result.Rows[1].Transaction.Description)
	assert.Equal(t, "third", result.Rows[2].Transaction.Description)
}

func TestBuildLedgerEmpty(t *testing.T) {
	result := BuildLedger(nil)
	assert.Empty(t, result.Rows)
	assert.Zero(t, result.ClosingBalance)
}
