package Calculations

import (
	"time"

	"Himal/Models"
)

// ComputePurchaseTotals returns subtotal, VAT and grand total for a set of
// purchase-order line items. VAT applies only to Taxable invoices.
func ComputePurchaseTotals(items []Models.POItem, invoiceType string) (float64, float64, float64) {
	settings := Models.GetSettings()

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Quantity * item.Rate
	}

	vat := 0.0
	if invoiceType == "Taxable" {
		vat = subtotal * settings.VATRate
	}
	return subtotal, vat, subtotal + vat
}

// LeadTimeDays is the number of days between a PO's date and its delivery
// date. The second return is false when either date is missing or malformed.
func LeadTimeDays(poDate, deliveryDate string) (int, bool) {
	if poDate == "" || deliveryDate == "" {
		return 0, false
	}
	from, err := time.Parse("2006-01-02", poDate)
	if err != nil {
		return 0, false
	}
	to, err := time.Parse("2006-01-02", deliveryDate)
	if err != nil {
		return 0, false
	}
	return int(to.Sub(from).Hours() / 24), true
}
