package Calculations

import (
	"time"

	"Himal/Models"
	"Himal/NepaliDate"
)

// QualifyingDays counts the attendance statuses that pay: Present, Public
// Holiday, Saturday and EXTRAOK.
func QualifyingDays(records []Models.AttendanceRecord) int {
	count := 0
	for _, record := range records {
		switch record.Status {
		case Models.AttendancePresent,
			Models.AttendancePublicHoliday,
			Models.AttendanceSaturday,
			Models.AttendanceExtraOK:
			count++
		}
	}
	return count
}

// WholeYearsBetween is the completed years from one date to another, the way
// a person states tenure: the year ticks over on the anniversary day.
func WholeYearsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}
	return years
}

// BonusEligible reports whether an employee qualifies for the bonus of the
// given BS month: tenure of at least one whole year at that month's end AND
// at least minDays qualifying attendance days in the month. The month end is
// a Bikram Sambat boundary converted to AD for the tenure comparison.
// An unparseable joining date counts as zero tenure, not an error.
func BonusEligible(joiningDate string, bsYear, bsMonth, qualifyingDays, minDays int) bool {
	joined, err := time.Parse("2006-01-02", joiningDate)
	if err != nil {
		return false
	}
	_, monthEnd, err := NepaliDate.MonthBounds(bsYear, bsMonth)
	if err != nil {
		return false
	}
	if WholeYearsBetween(joined, monthEnd) < 1 {
		return false
	}
	return qualifyingDays >= minDays
}

// PayrollFigures are the computed pay components for one employee-month.
type PayrollFigures struct {
	PresentDays  int     `json:"present_days"`
	PayableDays  int     `json:"payable_days"`
	BasicPay     float64 `json:"basic_pay"`
	Bonus        float64 `json:"bonus"`
	NetPay       float64 `json:"net_pay"`
	BonusGranted bool    `json:"bonus_granted"`
}

// ComputePayroll derives the pay of one employee for one BS month from that
// month's attendance. Monthly staff draw the flat wage; daily staff draw
// wage x payable days. When withBonus is set the bonus column is filled per
// the eligibility rule, equal to the wage amount or zero.
func ComputePayroll(employee Models.Employee, bsYear, bsMonth int, records []Models.AttendanceRecord, withBonus bool) PayrollFigures {
	settings := Models.GetSettings()

	var figures PayrollFigures
	figures.PayableDays = QualifyingDays(records)
	for _, record := range records {
		if record.Status == Models.AttendancePresent {
			figures.PresentDays++
		}
	}

	switch employee.WageBasis {
	case "Daily":
		figures.BasicPay = employee.WageAmount * float64(figures.PayableDays)
	default: // Monthly
		figures.BasicPay = employee.WageAmount
	}

	if withBonus && BonusEligible(employee.JoiningDate, bsYear, bsMonth, figures.PayableDays, settings.BonusMinDays) {
		figures.Bonus = employee.WageAmount
		figures.BonusGranted = true
	}

	figures.NetPay = figures.BasicPay + figures.Bonus
	return figures
}
