package Calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	cases := map[float64]string{
		0:        "Rupees Zero Only",
		5:        "Rupees Five Only",
		40:       "Rupees Forty Only",
		105:      "Rupees One Hundred Five Only",
		1500:     "Rupees One Thousand Five Hundred Only",
		100000:   "Rupees One Lakh Only",
		2350000:  "Rupees Twenty Three Lakh Fifty Thousand Only",
		10000000: "Rupees One Crore Only",
		12911.38: "Rupees Twelve Thousand Nine Hundred Eleven and Thirty Eight Paisa Only",
	}
	for amount, expected := range cases {
		assert.Equalf(t, expected, AmountInWords(amount), "amount %v", amount)
	}
}

func TestAmountInWordsNegativeTreatedAsZero(t *testing.T) {
	assert.Equal(t, "Rupees Zero Only", AmountInWords(-12))
}
