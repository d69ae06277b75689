package Calculations

import (
	"testing"

	"Himal/Models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTripPayReferenceCase(t *testing.T) {
	// freight=10000, partyCount=5, default rates, no detention
	breakdown := ComputeTripPay(
		[]Models.Destination{
			{Name: "Birgunj", Freight: 6000},
			{Name: "Hetauda", Freight: 4000},
		},
		"", "", 5, 0, 0,
	)

	assert.InDelta(t, 10000, breakdown.TotalFreight, 1e-9)
	assert.Equal(t, 0, breakdown.DetentionDays)
	assert.InDelta(t, 1600, breakdown.DropOffCharge, 1e-9)
	assert.InDelta(t, 11600, breakdown.Taxable, 1e-9)
	assert.InDelta(t, 1508, breakdown.VAT, 1e-9)
	assert.InDelta(t, 13108, breakdown.Gross, 1e-9)
	assert.InDelta(t, 196.62, breakdown.TDS, 1e-9)
	assert.InDelta(t, 12911.38, breakdown.NetPay, 1e-9)
}

func TestComputeTripPayNoDropOffChargeUpToThreeParties(t *testing.T) {
	for partyCount := 0; partyCount <= 3; partyCount++ {
		breakdown := ComputeTripPay([]Models.Destination{{Freight: 5000}}, "", "", partyCount, 0, 0)
		assert.Zerof(t, breakdown.DropOffCharge, "party count %d", partyCount)
	}

	breakdown := ComputeTripPay([]Models.Destination{{Freight: 5000}}, "", "", 4, 0, 0)
	assert.InDelta(t, 800, breakdown.DropOffCharge, 1e-9)
}

func TestComputeTripPayDetention(t *testing.T) {
	// Both bounds inclusive: 10th through 12th is three days.
	breakdown := ComputeTripPay([]Models.Destination{{Freight: 1000}},
		"2024-05-10", "2024-05-12", 1, 0, 0)

	assert.Equal(t, 3, breakdown.DetentionDays)
	assert.InDelta(t, 9000, breakdown.DetentionCharge, 1e-9)
	assert.InDelta(t, 10000, breakdown.Taxable, 1e-9)
}

func TestComputeTripPayCustomRates(t *testing.T) {
	breakdown := ComputeTripPay([]Models.Destination{{Freight: 1000}},
		"2024-05-10", "2024-05-10", 5, 500, 2000)

	assert.InDelta(t, 1000, breakdown.DropOffCharge, 1e-9)
	assert.InDelta(t, 2000, breakdown.DetentionCharge, 1e-9)
}

func TestComputeTripPayNetPayIdentity(t *testing.T) {
	// netPay = taxable * 1.13 * 0.985 for any input
	cases := [][]Models.Destination{
		{{Freight: 1}},
		{{Freight: 12345.67}, {Freight: 89.01}},
		{},
	}
	for _, destinations := range cases {
		breakdown := ComputeTripPay(destinations, "", "", 10, 0, 0)
		assert.InDelta(t, breakdown.Taxable*1.13*0.985, breakdown.NetPay, 1e-9)
	}
}

func TestComputeTripPayMalformedDetentionDatesIgnored(t *testing.T) {
	breakdown := ComputeTripPay([]Models.Destination{{Freight: 1000}},
		"yesterday", "2024-05-12", 1, 0, 0)
	assert.Equal(t, 0, breakdown.DetentionDays)
	assert.Zero(t, breakdown.DetentionCharge)
}
