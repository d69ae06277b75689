package Models

import (
	"gorm.io/gorm"
)

// Transaction types. Sales and Payment post to the debit column of a party
// ledger; Receipt and Purchase post to credit. The asymmetry reflects the
// party's side of each transaction and is intentional.
const (
	TxnSales    = "Sales"
	TxnPurchase = "Purchase"
	TxnPayment  = "Payment"
	TxnReceipt  = "Receipt"
)

type Transaction struct {
	gorm.Model
	TxnType     string  `json:"txn_type" gorm:"index;not null"`
	Date        string  `json:"date" gorm:"index"` // YYYY-MM-DD
	Amount      float64 `json:"amount"`
	PartyID     uint    `json:"party_id" gorm:"index"`
	VehicleID   uint    `json:"vehicle_id" gorm:"index"`
	VoucherNo   string  `json:"voucher_no" gorm:"index"` // groups Payment/Receipt rows created together
	TripID      uint    `json:"trip_id" gorm:"index"`    // set on rows generated from a trip
	Description string  `json:"description"`

	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
}

type TransactionRequest struct {
	TxnType     string  `json:"txn_type" validate:"oneof=Sales Purchase Payment Receipt"`
	Date        string  `json:"date" validate:"required"`
	Amount      float64 `json:"amount"`
	PartyID     uint    `json:"party_id"`
	VehicleID   uint    `json:"vehicle_id"`
	VoucherNo   string  `json:"voucher_no"`
	Description string  `json:"description"`
}

// VoucherRequest rewrites every transaction under one voucher number in a
// single batch: existing rows are deleted and the given rows recreated.
type VoucherRequest struct {
	VoucherNo    string               `json:"voucher_no" validate:"required"`
	Transactions []TransactionRequest `json:"transactions" validate:"required,min=1,dive"`
}
