package Controllers

import (
	"fmt"
	"strconv"

	"Himal/Calculations"
	"Himal/Models"
	"Himal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// PartyController handles parties, accounts and the party ledger views.
type PartyController struct {
	DB *gorm.DB
}

func NewPartyController(db *gorm.DB) *PartyController {
	return &PartyController{DB: db}
}

func (ctl *PartyController) GetAll(c *fiber.Ctx) error {
	query := ctl.DB.Model(&Models.Party{})
	if partyType := c.Query("type"); partyType != "" {
		query = query.Where("party_type = ?", partyType)
	}

	var parties []Models.Party
	if err := query.Order("name").Find(&parties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve parties"})
	}
	return c.JSON(parties)
}

func (ctl *PartyController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid party ID"})
	}

	var party Models.Party
	if err := ctl.DB.First(&party, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Party not found"})
	}
	return c.JSON(party)
}

func (ctl *PartyController) Create(c *fiber.Ctx) error {
	var req Models.PartyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	party := Models.Party{
		Name:           req.Name,
		Address:        req.Address,
		PAN:            req.PAN,
		Phone:          req.Phone,
		PartyType:      req.PartyType,
		CreatedBy:      middleware.CurrentUserName(c),
		LastModifiedBy: middleware.CurrentUserName(c),
	}
	if err := ctl.DB.Create(&party).Error; err != nil {
		logrus.WithError(err).Error("creating party")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create party"})
	}
	return c.Status(fiber.StatusCreated).JSON(party)
}

func (ctl *PartyController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid party ID"})
	}

	var party Models.Party
	if err := ctl.DB.First(&party, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Party not found"})
	}

	var req Models.PartyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	party.Name = req.Name
	party.Address = req.Address
	party.PAN = req.PAN
	party.Phone = req.Phone
	party.PartyType = req.PartyType
	party.LastModifiedBy = middleware.CurrentUserName(c)

	if err := ctl.DB.Save(&party).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update party"})
	}
	return c.JSON(party)
}

func (ctl *PartyController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid party ID"})
	}

	var count int64
	ctl.DB.Model(&Models.Transaction{}).Where("party_id = ?", id).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Party has transactions and cannot be deleted"})
	}

	if err := ctl.DB.Delete(&Models.Party{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete party"})
	}
	return c.JSON(fiber.Map{"message": "Party Deleted Successfully"})
}

// GetLedger builds the running-balance ledger for one party, optionally
// limited to a date range.
func (ctl *PartyController) GetLedger(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid party ID"})
	}

	var party Models.Party
	if err := ctl.DB.First(&party, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Party not found"})
	}

	transactions, err := ctl.partyTransactions(uint(id), c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transactions"})
	}

	ledger := Calculations.BuildLedger(transactions)
	return c.JSON(fiber.Map{
		"party":  party,
		"ledger": ledger,
	})
}

// ExportLedger writes the party ledger to an xlsx workbook and streams it.
func (ctl *PartyController) ExportLedger(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid party ID"})
	}

	var party Models.Party
	if err := ctl.DB.First(&party, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Party not found"})
	}

	transactions, err := ctl.partyTransactions(uint(id), c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transactions"})
	}
	ledger := Calculations.BuildLedger(transactions)

	file := excelize.NewFile()
	defer file.Close()
	sheet := "Ledger"
	file.SetSheetName("Sheet1", sheet)

	file.SetCellValue(sheet, "A1", fmt.Sprintf("Ledger - %s", party.Name))
	headers := []string{"Date", "Type", "Voucher", "Description", "Debit", "Credit", "Balance"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		file.SetCellValue(sheet, cell, header)
	}

	for i, row := range ledger.Rows {
		rowNo := i + 3
		file.SetCellValue(sheet, fmt.Sprintf("A%d", rowNo), row.Transaction.Date)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", rowNo), row.Transaction.TxnType)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", rowNo), row.Transaction.VoucherNo)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", rowNo), row.Transaction.Description)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", rowNo), row.Debit)
		file.SetCellValue(sheet, fmt.Sprintf("F%d", rowNo), row.Credit)
		file.SetCellValue(sheet, fmt.Sprintf("G%d", rowNo), row.Balance)
	}

	totalsRow := len(ledger.Rows) + 3
	file.SetCellValue(sheet, fmt.Sprintf("D%d", totalsRow), "Totals")
	file.SetCellValue(sheet, fmt.Sprintf("E%d", totalsRow), ledger.TotalDebit)
	file.SetCellValue(sheet, fmt.Sprintf("F%d", totalsRow), ledger.TotalCredit)
	file.SetCellValue(sheet, fmt.Sprintf("G%d", totalsRow), ledger.ClosingBalance)

	buf, err := file.WriteToBuffer()
	if err != nil {
		logrus.WithError(err).Error("writing ledger workbook")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export ledger"})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="ledger_%d.xlsx"`, party.ID))
	return c.Send(buf.Bytes())
}

func (ctl *PartyController) partyTransactions(partyID uint, from, to string) ([]Models.Transaction, error) {
	query := ctl.DB.Where("party_id = ?", partyID)
	if from != "" {
		query = query.Where("date >= ?", from)
	}
	if to != "" {
		query = query.Where("date <= ?", to)
	}
	var transactions []Models.Transaction
	err := query.Find(&transactions).Error
	return transactions, err
}

func FetchAccounts(c *fiber.Ctx) error {
	var accounts []Models.Account
	if err := Models.DB.Order("name").Find(&accounts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch accounts"})
	}
	return c.JSON(accounts)
}

func CreateAccount(c *fiber.Ctx) error {
	var account Models.Account
	if err := c.BodyParser(&account); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if account.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Account name is required"})
	}
	if err := Models.DB.Create(&account).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account"})
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}
