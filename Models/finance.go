package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Cheque struct {
	gorm.Model
	PartyID       uint    `json:"party_id" gorm:"index"`
	Bank          string  `json:"bank"`
	ChequeNo      string  `json:"cheque_no"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	AmountInWords string  `json:"amount_in_words"`
	Status        string  `json:"status"` // Draft, Issued, Cleared, Bounced

	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
}

type Estimate struct {
	gorm.Model
	PartyID uint           `json:"party_id" gorm:"index"`
	Date    string         `json:"date"`
	Items   datatypes.JSON `json:"items"`
	Total   float64        `json:"total"`

	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
}

type TDSRecord struct {
	gorm.Model
	PartyID    uint    `json:"party_id" gorm:"index"`
	Date       string  `json:"date"`
	BaseAmount float64 `json:"base_amount"`
	Rate       float64 `json:"rate"`
	Deducted   float64 `json:"deducted"`
	Reference  string  `json:"reference"`

	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
}

type ChequeRequest struct {
	PartyID  uint    `json:"party_id"`
	Bank     string  `json:"bank" validate:"required"`
	ChequeNo string  `json:"cheque_no" validate:"required"`
	Date     string  `json:"date" validate:"required"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Status   string  `json:"status"`
}
