package Calculations

import (
	"testing"
	"time"

	"Himal/Models"

	"github.com/stretchr/testify/assert"
)

func attendanceMonth(employeeID uint, present, holidays, absents int) []Models.AttendanceRecord {
	var records []Models.AttendanceRecord
	day := 1
	add := func(status string, count int) {
		for i := 0; i < count; i++ {
			records = append(records, Models.AttendanceRecord{
				EmployeeID: employeeID, BSYear: 2080, BSMonth: 4, BSDay: day, Status: status,
			})
			day++
		}
	}
	add(Models.AttendancePresent, present)
	add(Models.AttendancePublicHoliday, holidays)
	add(Models.AttendanceAbsent, absents)
	return records
}

func TestQualifyingDays(t *testing.T) {
	records := []Models.AttendanceRecord{
		{Status: Models.AttendancePresent},
		{Status: Models.AttendancePublicHoliday},
		{Status: Models.AttendanceSaturday},
		{Status: Models.AttendanceExtraOK},
		{Status: Models.AttendanceAbsent},
		{Status: Models.AttendanceLeave},
	}
	assert.Equal(t, 4, QualifyingDays(records))
}

func TestWholeYearsBetween(t *testing.T) {
	from := time.Date(2022, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, WholeYearsBetween(from, time.Date(2023, time.June, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, WholeYearsBetween(from, time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, WholeYearsBetween(from, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, WholeYearsBetween(from, from.AddDate(0, 0, -1)))
}

func TestBonusRequiresTenure(t *testing.T) {
	// BS 2080-04 ends mid-2023 AD; an employee joined weeks earlier never
	// qualifies, regardless of perfect attendance.
	assert.False(t, BonusEligible("2023-06-01", 2080, 4, 31, 26))

	// Long tenure but thin attendance also fails.
	assert.False(t, BonusEligible("2015-01-01", 2080, 4, 25, 26))

	// Both conditions met.
	assert.True(t, BonusEligible("2015-01-01", 2080, 4, 26, 26))
}

func TestBonusUnparseableJoiningDateIneligible(t *testing.T) {
	assert.False(t, BonusEligible("", 2080, 4, 30, 26))
	assert.False(t, BonusEligible("15/01/2015", 2080, 4, 30, 26))
}

func TestComputePayrollMonthly(t *testing.T) {
	employee := Models.Employee{Name: "Ram", JoiningDate: "2015-01-01", WageBasis: "Monthly", WageAmount: 18000}
	records := attendanceMonth(1, 24, 4, 2)

	figures := ComputePayroll(employee, 2080, 4, records, true)
	assert.Equal(t, 24, figures.PresentDays)
	assert.Equal(t, 28, figures.PayableDays)
	assert.InDelta(t, 18000, figures.BasicPay, 1e-9)
	assert.True(t, figures.BonusGranted)
	assert.InDelta(t, 18000, figures.Bonus, 1e-9)
	assert.InDelta(t, 36000, figures.NetPay, 1e-9)
}

func TestComputePayrollDaily(t *testing.T) {
	employee := Models.Employee{Name: "Sita", JoiningDate: "2015-01-01", WageBasis: "Daily", WageAmount: 700}
	records := attendanceMonth(2, 20, 0, 6)

	figures := ComputePayroll(employee, 2080, 4, records, true)
	assert.Equal(t, 20, figures.PayableDays)
	assert.InDelta(t, 14000, figures.BasicPay, 1e-9)
	// 20 qualifying days is under the 26-day bar.
	assert.False(t, figures.BonusGranted)
	assert.Zero(t, figures.Bonus)
	assert.InDelta(t, 14000, figures.NetPay, 1e-9)
}

func TestComputePayrollWithoutBonusPass(t *testing.T) {
	employee := Models.Employee{Name: "Hari", JoiningDate: "2010-01-01", WageBasis: "Monthly", WageAmount: 20000}
	records := attendanceMonth(3, 28, 0, 0)

	figures := ComputePayroll(employee, 2080, 4, records, false)
	assert.False(t, figures.BonusGranted)
	assert.InDelta(t, 20000, figures.NetPay, 1e-9)
}
