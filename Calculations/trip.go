package Calculations

import (
	"time"

	"Himal/Models"
)

// TripBreakdown carries every intermediate figure of the trip pay calculation
// so audit views can show the full working, not just the payout.
type TripBreakdown struct {
	TotalFreight    float64 `json:"total_freight"`
	DetentionDays   int     `json:"detention_days"`
	DropOffCharge   float64 `json:"drop_off_charge"`
	DetentionCharge float64 `json:"detention_charge"`
	Taxable         float64 `json:"taxable"`
	VAT             float64 `json:"vat"`
	Gross           float64 `json:"gross"`
	TDS             float64 `json:"tds"`
	NetPay          float64 `json:"net_pay"`
}

// ComputeTripPay derives the pay breakdown of one trip. Rates left at zero
// fall back to the configured defaults. No rounding is applied; display
// formatting decides decimal places.
func ComputeTripPay(destinations []Models.Destination, detentionStart, detentionEnd string, partyCount int, dropOffRate, detentionRate float64) TripBreakdown {
	settings := Models.GetSettings()
	if dropOffRate == 0 {
		dropOffRate = settings.DropOffRate
	}
	if detentionRate == 0 {
		detentionRate = settings.DetentionRate
	}

	var breakdown TripBreakdown
	for _, leg := range destinations {
		breakdown.TotalFreight += leg.Freight
	}

	breakdown.DetentionDays = detentionDays(detentionStart, detentionEnd)

	extraDrops := partyCount - settings.FreeDropOffs
	if extraDrops < 0 {
		extraDrops = 0
	}
	breakdown.DropOffCharge = float64(extraDrops) * dropOffRate
	breakdown.DetentionCharge = float64(breakdown.DetentionDays) * detentionRate

	breakdown.Taxable = breakdown.TotalFreight + breakdown.DropOffCharge + breakdown.DetentionCharge
	breakdown.VAT = breakdown.Taxable * settings.VATRate
	breakdown.Gross = breakdown.Taxable + breakdown.VAT
	breakdown.TDS = breakdown.Gross * settings.TDSRate
	breakdown.NetPay = breakdown.Gross - breakdown.TDS
	return breakdown
}

// detentionDays is inclusive of both end days. Missing or unparseable dates
// count as no detention.
func detentionDays(start, end string) int {
	if start == "" || end == "" {
		return 0
	}
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return 0
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return 0
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// ApplyBreakdown copies the computed figures onto the trip row for storage.
func ApplyBreakdown(trip *Models.Trip, breakdown TripBreakdown) {
	trip.TotalFreight = breakdown.TotalFreight
	trip.DropOffCharge = breakdown.DropOffCharge
	trip.DetentionCharge = breakdown.DetentionCharge
	trip.Taxable = breakdown.Taxable
	trip.VAT = breakdown.VAT
	trip.Gross = breakdown.Gross
	trip.TDS = breakdown.TDS
	trip.NetPay = breakdown.NetPay
}
