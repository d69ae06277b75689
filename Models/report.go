package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report is a packaging test report: a snapshot of the product under test plus
// the measured values. SuggestedChart is filled by the Gemini helper (or by
// hand) and only drives how the frontend plots the measurements.
type Report struct {
	gorm.Model
	PartyID      uint           `json:"party_id" gorm:"index"`
	ProductName  string         `json:"product_name" gorm:"not null"`
	ProductGrade string         `json:"product_grade"`
	GSM          float64        `json:"gsm"`
	InvoiceNo    string         `json:"invoice_no"`
	Date         string         `json:"date"` // YYYY-MM-DD
	Measurements datatypes.JSON `json:"measurements"`

	SuggestedChart string `json:"suggested_chart"`

	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
}

type Measurement struct {
	TestName  string  `json:"test_name"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	SpecLimit float64 `json:"spec_limit"`
}

type ReportRequest struct {
	PartyID        uint          `json:"party_id"`
	ProductName    string        `json:"product_name" validate:"required"`
	ProductGrade   string        `json:"product_grade"`
	GSM            float64       `json:"gsm"`
	InvoiceNo      string        `json:"invoice_no"`
	Date           string        `json:"date" validate:"required"`
	Measurements   []Measurement `json:"measurements"`
	SuggestedChart string        `json:"suggested_chart"`
}
