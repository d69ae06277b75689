package Models

import (
	"gorm.io/gorm"
)

// Attendance statuses. Present, Public Holiday, Saturday and EXTRAOK all count
// toward payable days and bonus qualification.
const (
	AttendancePresent       = "Present"
	AttendanceAbsent        = "Absent"
	AttendancePublicHoliday = "Public Holiday"
	AttendanceSaturday      = "Saturday"
	AttendanceExtraOK       = "EXTRAOK"
	AttendanceLeave         = "Leave"
)

type Employee struct {
	gorm.Model
	Name        string  `json:"name" gorm:"not null"`
	JoiningDate string  `json:"joining_date"` // YYYY-MM-DD (AD)
	WageBasis   string  `json:"wage_basis"`   // "Monthly" or "Daily"
	WageAmount  float64 `json:"wage_amount"`
	Active      bool    `json:"active" gorm:"default:true"`

	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
}

// AttendanceRecord is one day of one employee. The period an entry belongs to
// is its Bikram Sambat year/month, not the Gregorian month of ADDate.
type AttendanceRecord struct {
	gorm.Model
	EmployeeID uint   `json:"employee_id" gorm:"index;not null"`
	BSYear     int    `json:"bs_year" gorm:"index"`
	BSMonth    int    `json:"bs_month" gorm:"index"`
	BSDay      int    `json:"bs_day"`
	ADDate     string `json:"ad_date"` // YYYY-MM-DD
	Status     string `json:"status"`
}

type Payroll struct {
	gorm.Model
	EmployeeID  uint    `json:"employee_id" gorm:"index;not null"`
	BSYear      int     `json:"bs_year" gorm:"index"`
	BSMonth     int     `json:"bs_month" gorm:"index"`
	PresentDays int     `json:"present_days"`
	PayableDays int     `json:"payable_days"`
	BasicPay    float64 `json:"basic_pay"`
	Bonus       float64 `json:"bonus"`
	NetPay      float64 `json:"net_pay"`
	PostedBy    string  `json:"posted_by"`
}

type AttendanceRequest struct {
	EmployeeID uint   `json:"employee_id" validate:"required"`
	BSYear     int    `json:"bs_year" validate:"required"`
	BSMonth    int    `json:"bs_month" validate:"required,gte=1,lte=12"`
	BSDay      int    `json:"bs_day" validate:"required,gte=1,lte=32"`
	Status     string `json:"status" validate:"required"`
}
