package Controllers

import (
	"encoding/json"
	"strconv"

	"Himal/Calculations"
	"Himal/Models"
	"Himal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FinanceController handles cheques, estimates and TDS records.
type FinanceController struct {
	DB *gorm.DB
}

func NewFinanceController(db *gorm.DB) *FinanceController {
	return &FinanceController{DB: db}
}

func (ctl *FinanceController) GetCheques(c *fiber.Ctx) error {
	query := ctl.DB.Model(&Models.Cheque{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if party := c.Query("party_id"); party != "" {
		query = query.Where("party_id = ?", party)
	}

	var cheques []Models.Cheque
	if err := query.Order("date DESC").Find(&cheques).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve cheques"})
	}
	return c.JSON(cheques)
}

// CreateCheque stores a cheque with its amount spelled out, ready for the
// print view.
func (ctl *FinanceController) CreateCheque(c *fiber.Ctx) error {
	var req Models.ChequeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	status := req.Status
	if status == "" {
		status = "Draft"
	}

	cheque := Models.Cheque{
		PartyID:        req.PartyID,
		Bank:           req.Bank,
		ChequeNo:       req.ChequeNo,
		Date:           req.Date,
		Amount:         req.Amount,
		AmountInWords:  Calculations.AmountInWords(req.Amount),
		Status:         status,
		CreatedBy:      middleware.CurrentUserName(c),
		LastModifiedBy: middleware.CurrentUserName(c),
	}
	if err := ctl.DB.Create(&cheque).Error; err != nil {
		logrus.WithError(err).Error("creating cheque")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create cheque"})
	}
	return c.Status(fiber.StatusCreated).JSON(cheque)
}

func (ctl *FinanceController) UpdateCheque(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid cheque ID"})
	}

	var cheque Models.Cheque
	if err := ctl.DB.First(&cheque, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cheque not found"})
	}

	var req Models.ChequeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cheque.PartyID = req.PartyID
	cheque.Bank = req.Bank
	cheque.ChequeNo = req.ChequeNo
	cheque.Date = req.Date
	cheque.Amount = req.Amount
	cheque.AmountInWords = Calculations.AmountInWords(req.Amount)
	if req.Status != "" {
		cheque.Status = req.Status
	}
	cheque.LastModifiedBy = middleware.CurrentUserName(c)

	if err := ctl.DB.Save(&cheque).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update cheque"})
	}
	return c.JSON(cheque)
}

func (ctl *FinanceController) DeleteCheque(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid cheque ID"})
	}
	if err := ctl.DB.Delete(&Models.Cheque{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete cheque"})
	}
	return c.JSON(fiber.Map{"message": "Cheque Deleted Successfully"})
}

func (ctl *FinanceController) GetEstimates(c *fiber.Ctx) error {
	query := ctl.DB.Model(&Models.Estimate{})
	if party := c.Query("party_id"); party != "" {
		query = query.Where("party_id = ?", party)
	}

	var estimates []Models.Estimate
	if err := query.Order("date DESC").Find(&estimates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve estimates"})
	}
	return c.JSON(estimates)
}

func (ctl *FinanceController) CreateEstimate(c *fiber.Ctx) error {
	var req struct {
		PartyID uint            `json:"party_id"`
		Date    string          `json:"date"`
		Items   []Models.POItem `json:"items"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if req.Date == "" || len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date and items are required"})
	}

	items, err := json.Marshal(req.Items)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid items"})
	}

	total := 0.0
	for _, item := range req.Items {
		total += item.Quantity * item.Rate
	}

	estimate := Models.Estimate{
		PartyID:        req.PartyID,
		Date:           req.Date,
		Items:          items,
		Total:          total,
		CreatedBy:      middleware.CurrentUserName(c),
		LastModifiedBy: middleware.CurrentUserName(c),
	}
	if err := ctl.DB.Create(&estimate).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create estimate"})
	}
	return c.Status(fiber.StatusCreated).JSON(estimate)
}

func (ctl *FinanceController) DeleteEstimate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid estimate ID"})
	}
	if err := ctl.DB.Delete(&Models.Estimate{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete estimate"})
	}
	return c.JSON(fiber.Map{"message": "Estimate Deleted Successfully"})
}

func (ctl *FinanceController) GetTDSRecords(c *fiber.Ctx) error {
	query := ctl.DB.Model(&Models.TDSRecord{})
	if party := c.Query("party_id"); party != "" {
		query = query.Where("party_id = ?", party)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var records []Models.TDSRecord
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve TDS records"})
	}

	total := 0.0
	for _, record := range records {
		total += record.Deducted
	}
	return c.JSON(fiber.Map{"records": records, "total_deducted": total})
}

// CreateTDSRecord computes the deduction from the base amount. A zero rate
// falls back to the configured default.
func (ctl *FinanceController) CreateTDSRecord(c *fiber.Ctx) error {
	var req struct {
		PartyID    uint    `json:"party_id"`
		Date       string  `json:"date"`
		BaseAmount float64 `json:"base_amount"`
		Rate       float64 `json:"rate"`
		Reference  string  `json:"reference"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if req.Date == "" || req.BaseAmount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date and a positive base amount are required"})
	}

	rate := req.Rate
	if rate == 0 {
		rate = Models.GetSettings().TDSRate
	}

	record := Models.TDSRecord{
		PartyID:        req.PartyID,
		Date:           req.Date,
		BaseAmount:     req.BaseAmount,
		Rate:           rate,
		Deducted:       req.BaseAmount * rate,
		Reference:      req.Reference,
		CreatedBy:      middleware.CurrentUserName(c),
		LastModifiedBy: middleware.CurrentUserName(c),
	}
	if err := ctl.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create TDS record"})
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}
