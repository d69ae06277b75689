package Calculations

import (
	"Himal/Models"

	"golang.org/x/exp/slices"
)

// LedgerRow is one line of a party ledger: the transaction posted to its
// debit or credit column plus the cumulative balance after it.
type LedgerRow struct {
	Transaction Models.Transaction `json:"transaction"`
	Debit       float64            `json:"debit"`
	Credit      float64            `json:"credit"`
	Balance     float64            `json:"balance"`
}

type LedgerResult struct {
	Rows           []LedgerRow `json:"rows"`
	TotalDebit     float64     `json:"total_debit"`
	TotalCredit    float64     `json:"total_credit"`
	ClosingBalance float64     `json:"closing_balance"`
}

// BuildLedger computes the running balance for one party's transactions.
// Sales and Payment post to debit; Receipt and Purchase post to credit. That
// polarity reflects the party's side of each transaction type and must not be
// "corrected" toward textbook double-entry.
//
// The sort is stable and ascending by date, so equal-dated rows keep their
// input order and repeated calls over the same input produce identical rows.
func BuildLedger(transactions []Models.Transaction) LedgerResult {
	sorted := make([]Models.Transaction, len(transactions))
	copy(sorted, transactions)
	slices.SortStableFunc(sorted, func(a, b Models.Transaction) int {
		switch {
		case a.Date < b.Date:
			return -1
		case a.Date > b.Date:
			return 1
		default:
			return 0
		}
	})

	var result LedgerResult
	balance := 0.0
	for _, txn := range sorted {
		row := LedgerRow{Transaction: txn}
		switch txn.TxnType {
		case Models.TxnSales, Models.TxnPayment:
			row.Debit = txn.Amount
		case Models.TxnReceipt, Models.TxnPurchase:
			row.Credit = txn.Amount
		}
		balance += row.Debit - row.Credit
		row.Balance = balance

		result.Rows = append(result.Rows, row)
		result.TotalDebit += row.Debit
		result.TotalCredit += row.Credit
	}
	result.ClosingBalance = balance
	return result
}
