package Apis

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"Himal/Calculations"
	"Himal/Models"
	"Himal/NepaliDate"
	"Himal/Notifications"
	"Himal/email"
	"Himal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var validate = validator.New()

func FetchEmployees(c *fiber.Ctx) error {
	query := Models.DB.Model(&Models.Employee{})
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}
	var employees []Models.Employee
	if err := query.Order("name").Find(&employees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employees"})
	}
	return c.JSON(employees)
}

func CreateEmployee(c *fiber.Ctx) error {
	var employee Models.Employee
	if err := c.BodyParser(&employee); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if employee.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Employee name is required"})
	}
	if employee.WageBasis != "Monthly" && employee.WageBasis != "Daily" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Wage basis must be Monthly or Daily"})
	}
	employee.Active = true
	employee.CreatedBy = middleware.CurrentUserName(c)
	employee.LastModifiedBy = employee.CreatedBy
	if err := Models.DB.Create(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create employee"})
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

func UpdateEmployee(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var employee Models.Employee
	if err := Models.DB.First(&employee, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	var input struct {
		Name        string   `json:"name"`
		JoiningDate string   `json:"joining_date"`
		WageBasis   string   `json:"wage_basis"`
		WageAmount  *float64 `json:"wage_amount"`
		Active      *bool    `json:"active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	if input.Name != "" {
		employee.Name = input.Name
	}
	if input.JoiningDate != "" {
		employee.JoiningDate = input.JoiningDate
	}
	if input.WageBasis != "" {
		employee.WageBasis = input.WageBasis
	}
	if input.WageAmount != nil {
		employee.WageAmount = *input.WageAmount
	}
	if input.Active != nil {
		employee.Active = *input.Active
	}
	employee.LastModifiedBy = middleware.CurrentUserName(c)

	if err := Models.DB.Save(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update employee"})
	}
	return c.JSON(employee)
}

// RecordAttendance upserts one day of one employee. Re-submitting a day
// replaces its status.
func RecordAttendance(c *fiber.Ctx) error {
	var req Models.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	daysInMonth, err := NepaliDate.DaysInMonth(req.BSYear, req.BSMonth)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.BSDay > daysInMonth {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Day does not exist in that month"})
	}

	adDate := ""
	if converted, err := NepaliDate.ToAD(req.BSYear, req.BSMonth, req.BSDay); err == nil {
		adDate = converted.Format("2006-01-02")
	}

	var record Models.AttendanceRecord
	err = Models.DB.Where("employee_id = ? AND bs_year = ? AND bs_month = ? AND bs_day = ?",
		req.EmployeeID, req.BSYear, req.BSMonth, req.BSDay).First(&record).Error
	if err == nil {
		record.Status = req.Status
		record.ADDate = adDate
		if err := Models.DB.Save(&record).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update attendance"})
		}
		return c.JSON(record)
	}

	record = Models.AttendanceRecord{
		EmployeeID: req.EmployeeID,
		BSYear:     req.BSYear,
		BSMonth:    req.BSMonth,
		BSDay:      req.BSDay,
		ADDate:     adDate,
		Status:     req.Status,
	}
	if err := Models.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record attendance"})
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func FetchAttendance(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("bs_year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bs_year is required"})
	}
	month, err := strconv.Atoi(c.Query("bs_month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bs_month is required"})
	}

	query := Models.DB.Where("bs_year = ? AND bs_month = ?", year, month)
	if employee := c.Query("employee_id"); employee != "" {
		query = query.Where("employee_id = ?", employee)
	}

	var records []Models.AttendanceRecord
	if err := query.Order("employee_id, bs_day").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	return c.JSON(records)
}

// ImportAttendance loads a month of attendance from an uploaded xlsx sheet.
// Layout: first column employee name, one column per BS day, statuses in the
// cells. The first row is the day header.
func ImportAttendance(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.FormValue("bs_year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bs_year is required"})
	}
	month, err := strconv.Atoi(c.FormValue("bs_month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bs_month is required"})
	}
	daysInMonth, err := NepaliDate.DaysInMonth(year, month)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Month is out of the supported range"})
	}

	upload, err := c.FormFile("sheet")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No sheet uploaded"})
	}
	opened, err := upload.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot open uploaded sheet"})
	}
	defer opened.Close()

	workbook, err := excelize.OpenReader(opened)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Not a valid xlsx file"})
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(workbook.GetSheetName(0))
	if err != nil || len(rows) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Sheet has no data rows"})
	}

	writer := Models.NewBatchWriter(Models.DB)
	imported := 0
	var skipped []string

	for _, row := range rows[1:] {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		name := row[0]

		var employee Models.Employee
		if err := Models.DB.Where("name = ?", name).First(&employee).Error; err != nil {
			skipped = append(skipped, name)
			continue
		}

		// Replace the month wholesale for this employee; partial imports of
		// the same sheet should not duplicate days.
		if err := Models.DB.Where("employee_id = ? AND bs_year = ? AND bs_month = ?",
			employee.ID, year, month).Delete(&Models.AttendanceRecord{}).Error; err != nil {
			logrus.WithError(err).Warn("clearing prior attendance")
		}

		for day := 1; day <= daysInMonth && day < len(row); day++ {
			status := row[day]
			if status == "" {
				continue
			}
			adDate := ""
			if converted, convErr := NepaliDate.ToAD(year, month, day); convErr == nil {
				adDate = converted.Format("2006-01-02")
			}
			record := Models.AttendanceRecord{
				EmployeeID: employee.ID,
				BSYear:     year,
				BSMonth:    month,
				BSDay:      day,
				ADDate:     adDate,
				Status:     status,
			}
			if err := writer.Create(&record); err != nil {
				logrus.WithError(err).Error("queueing attendance row")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Import failed"})
			}
			imported++
		}
	}

	if err := writer.Flush(); err != nil {
		logrus.WithError(err).Error("flushing attendance import")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Import failed"})
	}

	return c.JSON(fiber.Map{
		"message":  "Attendance Imported Successfully",
		"imported": imported,
		"skipped":  skipped,
	})
}

type GeneratePayrollRequest struct {
	BSYear    int  `json:"bs_year" validate:"required"`
	BSMonth   int  `json:"bs_month" validate:"required,gte=1,lte=12"`
	WithBonus bool `json:"with_bonus"`
}

// GeneratePayroll computes and stores the pay of every active employee for
// one BS month. Re-running a month replaces its rows.
func GeneratePayroll(c *fiber.Ctx) error {
	var req GeneratePayrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var employees []Models.Employee
	if err := Models.DB.Where("active = ?", true).Find(&employees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employees"})
	}

	postedBy := middleware.CurrentUserName(c)
	writer := Models.NewBatchWriter(Models.DB)

	var existing []Models.Payroll
	if err := Models.DB.Where("bs_year = ? AND bs_month = ?", req.BSYear, req.BSMonth).Find(&existing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load existing payroll"})
	}
	for i := range existing {
		if err := writer.Delete(&existing[i]); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payroll generation failed"})
		}
	}

	type payslip struct {
		Employee string                      `json:"employee"`
		Figures  Calculations.PayrollFigures `json:"figures"`
	}
	var payslips []payslip
	totalPay := 0.0

	for _, employee := range employees {
		var records []Models.AttendanceRecord
		if err := Models.DB.Where("employee_id = ? AND bs_year = ? AND bs_month = ?",
			employee.ID, req.BSYear, req.BSMonth).Find(&records).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load attendance"})
		}

		figures := Calculations.ComputePayroll(employee, req.BSYear, req.BSMonth, records, req.WithBonus)
		row := Models.Payroll{
			EmployeeID:  employee.ID,
			BSYear:      req.BSYear,
			BSMonth:     req.BSMonth,
			PresentDays: figures.PresentDays,
			PayableDays: figures.PayableDays,
			BasicPay:    figures.BasicPay,
			Bonus:       figures.Bonus,
			NetPay:      figures.NetPay,
			PostedBy:    postedBy,
		}
		if err := writer.Create(&row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payroll generation failed"})
		}

		payslips = append(payslips, payslip{Employee: employee.Name, Figures: figures})
		totalPay += figures.NetPay
	}

	if err := writer.Flush(); err != nil {
		logrus.WithError(err).Error("flushing payroll")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payroll generation failed"})
	}

	Notifications.NotifyPayrollPosted(req.BSYear, req.BSMonth, len(payslips))

	if recipients := os.Getenv("PAYROLL_NOTIFY_EMAILS"); recipients != "" {
		message := email.PayrollSummaryMessage(strings.Split(recipients, ","), req.BSYear, req.BSMonth, len(payslips), totalPay)
		if err := email.Send(Models.LoadEmailConfig(), message); err != nil {
			logrus.WithError(err).Warn("payroll summary email not sent")
		}
	}

	return c.JSON(fiber.Map{
		"message":   "Payroll Generated Successfully",
		"bs_year":   req.BSYear,
		"bs_month":  req.BSMonth,
		"payslips":  payslips,
		"total_pay": totalPay,
	})
}

func FetchPayroll(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("bs_year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bs_year is required"})
	}
	month, err := strconv.Atoi(c.Query("bs_month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bs_month is required"})
	}

	var rows []Models.Payroll
	if err := Models.DB.Where("bs_year = ? AND bs_month = ?", year, month).Order("employee_id").Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payroll"})
	}

	type namedRow struct {
		Models.Payroll
		EmployeeName string `json:"employee_name"`
	}
	named := make([]namedRow, 0, len(rows))
	for _, row := range rows {
		named = append(named, namedRow{Payroll: row, EmployeeName: Models.ResolveEmployeeName(row.EmployeeID)})
	}
	return c.JSON(named)
}

// ExportPayroll writes one BS month's payroll to an xlsx workbook.
func ExportPayroll(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("bs_year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bs_year is required"})
	}
	month, err := strconv.Atoi(c.Query("bs_month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bs_month is required"})
	}

	var rows []Models.Payroll
	if err := Models.DB.Where("bs_year = ? AND bs_month = ?", year, month).Order("employee_id").Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payroll"})
	}

	file := excelize.NewFile()
	defer file.Close()
	sheet := "Payroll"
	file.SetSheetName("Sheet1", sheet)

	file.SetCellValue(sheet, "A1", fmt.Sprintf("Payroll %d-%02d (BS)", year, month))
	headers := []string{"Employee", "Present Days", "Payable Days", "Basic Pay", "Bonus", "Net Pay"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		file.SetCellValue(sheet, cell, header)
	}

	total := 0.0
	for i, row := range rows {
		rowNo := i + 3
		file.SetCellValue(sheet, fmt.Sprintf("A%d", rowNo), Models.ResolveEmployeeName(row.EmployeeID))
		file.SetCellValue(sheet, fmt.Sprintf("B%d", rowNo), row.PresentDays)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", rowNo), row.PayableDays)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", rowNo), row.BasicPay)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", rowNo), row.Bonus)
		file.SetCellValue(sheet, fmt.Sprintf("F%d", rowNo), row.NetPay)
		total += row.NetPay
	}
	totalsRow := len(rows) + 3
	file.SetCellValue(sheet, fmt.Sprintf("E%d", totalsRow), "Total")
	file.SetCellValue(sheet, fmt.Sprintf("F%d", totalsRow), total)

	buf, err := file.WriteToBuffer()
	if err != nil {
		logrus.WithError(err).Error("writing payroll workbook")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export payroll"})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll_%d_%02d.xlsx"`, year, month))
	return c.Send(buf.Bytes())
}

// PreviewBonus lists every active employee with the figures the bonus run
// would produce, without writing anything.
func PreviewBonus(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("bs_year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bs_year is required"})
	}
	month, err := strconv.Atoi(c.Query("bs_month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bs_month is required"})
	}

	var employees []Models.Employee
	if err := Models.DB.Where("active = ?", true).Find(&employees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch employees"})
	}

	type preview struct {
		Employee    string  `json:"employee"`
		PayableDays int     `json:"payable_days"`
		Eligible    bool    `json:"eligible"`
		BonusAmount float64 `json:"bonus_amount"`
		JoiningDate string  `json:"joining_date"`
		WageBasis   string  `json:"wage_basis"`
	}
	var previews []preview

	for _, employee := range employees {
		var records []Models.AttendanceRecord
		Models.DB.Where("employee_id = ? AND bs_year = ? AND bs_month = ?",
			employee.ID, year, month).Find(&records)

		figures := Calculations.ComputePayroll(employee, year, month, records, true)
		previews = append(previews, preview{
			Employee:    employee.Name,
			PayableDays: figures.PayableDays,
			Eligible:    figures.BonusGranted,
			BonusAmount: figures.Bonus,
			JoiningDate: employee.JoiningDate,
			WageBasis:   employee.WageBasis,
		})
	}
	return c.JSON(previews)
}
