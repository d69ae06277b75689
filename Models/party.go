package Models

import (
	"gorm.io/gorm"
)

// Party is a customer or supplier of the packaging business. Transactions,
// cheques, estimates and trips reference parties by plain ID; a missing
// reference renders as "N/A" rather than failing.
type Party struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null;index"`
	Address   string `json:"address"`
	PAN       string `json:"pan"`
	Phone     string `json:"phone"`
	PartyType string `json:"party_type"` // "Customer" or "Supplier"

	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
}

type Account struct {
	gorm.Model
	Name           string  `json:"name" gorm:"not null;uniqueIndex"`
	AccountType    string  `json:"account_type"` // "Bank", "Cash", "Other"
	OpeningBalance float64 `json:"opening_balance"`
}

type PartyRequest struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address"`
	PAN       string `json:"pan"`
	Phone     string `json:"phone"`
	PartyType string `json:"party_type" validate:"oneof=Customer Supplier"`
}
