package Calculations

import (
	"fmt"
	"math"
	"strings"
)

var ones = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen",
	"Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}

var tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty",
	"Seventy", "Eighty", "Ninety"}

func below100(n int) string {
	if n < 20 {
		return ones[n]
	}
	word := tens[n/10]
	if n%10 != 0 {
		word += " " + ones[n%10]
	}
	return word
}

func below1000(n int) string {
	if n < 100 {
		return below100(n)
	}
	word := ones[n/100] + " Hundred"
	if n%100 != 0 {
		word += " " + below100(n%100)
	}
	return word
}

// AmountInWords renders a rupee amount in the Nepali/Indian numbering system
// (crore, lakh, thousand) for cheque printing. Paisa are rendered when the
// amount has a fractional part. Negative amounts are treated as zero.
func AmountInWords(amount float64) string {
	if amount < 0 {
		amount = 0
	}
	rupees := int(amount)
	paisa := int(math.Round((amount - float64(rupees)) * 100))
	if paisa == 100 {
		rupees++
		paisa = 0
	}

	var parts []string
	if crore := rupees / 10000000; crore > 0 {
		parts = append(parts, below1000(crore)+" Crore")
	}
	if lakh := (rupees / 100000) % 100; lakh > 0 {
		parts = append(parts, below100(lakh)+" Lakh")
	}
	if thousand := (rupees / 1000) % 100; thousand > 0 {
		parts = append(parts, below100(thousand)+" Thousand")
	}
	if rest := rupees % 1000; rest > 0 {
		parts = append(parts, below1000(rest))
	}
	if len(parts) == 0 {
		parts = append(parts, "Zero")
	}

	words := fmt.Sprintf("Rupees %s", strings.Join(parts, " "))
	if paisa > 0 {
		words += fmt.Sprintf(" and %s Paisa", below100(paisa))
	}
	return words + " Only"
}
