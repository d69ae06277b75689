package Controllers

import (
	"encoding/json"
	"strconv"

	"Himal/Gemini"
	"Himal/Models"
	"Himal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReportController handles packaging test reports.
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func (ctl *ReportController) GetAll(c *fiber.Ctx) error {
	query := ctl.DB.Model(&Models.Report{})
	if party := c.Query("party_id"); party != "" {
		query = query.Where("party_id = ?", party)
	}
	if product := c.Query("product"); product != "" {
		query = query.Where("product_name LIKE ?", "%"+product+"%")
	}

	var reports []Models.Report
	if err := query.Order("date DESC").Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve reports"})
	}
	return c.JSON(reports)
}

func (ctl *ReportController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	var report Models.Report
	if err := ctl.DB.First(&report, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}

	return c.JSON(fiber.Map{
		"report":     report,
		"party_name": Models.ResolvePartyName(report.PartyID),
	})
}

func (ctl *ReportController) Create(c *fiber.Ctx) error {
	var req Models.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	measurements, err := json.Marshal(req.Measurements)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid measurements"})
	}

	report := Models.Report{
		PartyID:        req.PartyID,
		ProductName:    req.ProductName,
		ProductGrade:   req.ProductGrade,
		GSM:            req.GSM,
		InvoiceNo:      req.InvoiceNo,
		Date:           req.Date,
		Measurements:   measurements,
		SuggestedChart: req.SuggestedChart,
		CreatedBy:      middleware.CurrentUserName(c),
		LastModifiedBy: middleware.CurrentUserName(c),
	}
	if err := ctl.DB.Create(&report).Error; err != nil {
		logrus.WithError(err).Error("creating report")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create report"})
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (ctl *ReportController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	var report Models.Report
	if err := ctl.DB.First(&report, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}

	var req Models.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	measurements, err := json.Marshal(req.Measurements)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid measurements"})
	}

	report.PartyID = req.PartyID
	report.ProductName = req.ProductName
	report.ProductGrade = req.ProductGrade
	report.GSM = req.GSM
	report.InvoiceNo = req.InvoiceNo
	report.Date = req.Date
	report.Measurements = measurements
	report.SuggestedChart = req.SuggestedChart
	report.LastModifiedBy = middleware.CurrentUserName(c)

	if err := ctl.DB.Save(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update report"})
	}
	return c.JSON(report)
}

func (ctl *ReportController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report ID"})
	}
	if err := ctl.DB.Delete(&Models.Report{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete report"})
	}
	return c.JSON(fiber.Map{"message": "Report Deleted Successfully"})
}

// SuggestChart asks the generative model which chart type best fits the
// report's measurements and stores the answer on the report.
func (ctl *ReportController) SuggestChart(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report ID"})
	}

	var report Models.Report
	if err := ctl.DB.First(&report, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}

	var measurements []Models.Measurement
	if len(report.Measurements) > 0 {
		if err := json.Unmarshal(report.Measurements, &measurements); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read measurements"})
		}
	}
	if len(measurements) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Report has no measurements"})
	}

	chart, err := Gemini.SuggestChartType(c.Context(), report.ProductName, measurements)
	if err != nil {
		logrus.WithError(err).Error("suggesting chart type")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Chart suggestion failed"})
	}

	report.SuggestedChart = chart
	if err := ctl.DB.Save(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save suggestion"})
	}
	return c.JSON(fiber.Map{"suggested_chart": chart})
}
