package Controllers

import (
	"strconv"

	"Himal/Models"
	"Himal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TransactionController handles transaction and voucher endpoints.
type TransactionController struct {
	DB *gorm.DB
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{DB: db}
}

func (ctl *TransactionController) GetAll(c *fiber.Ctx) error {
	query := ctl.DB.Model(&Models.Transaction{})
	if txnType := c.Query("type"); txnType != "" {
		query = query.Where("txn_type = ?", txnType)
	}
	if party := c.Query("party_id"); party != "" {
		query = query.Where("party_id = ?", party)
	}
	if voucher := c.Query("voucher_no"); voucher != "" {
		query = query.Where("voucher_no = ?", voucher)
	}

	var transactions []Models.Transaction
	if err := query.Order("date DESC").Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transactions"})
	}
	return c.JSON(transactions)
}

func (ctl *TransactionController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.Transaction
	if err := ctl.DB.First(&transaction, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	return c.JSON(fiber.Map{
		"transaction":   transaction,
		"party_name":    Models.ResolvePartyName(transaction.PartyID),
		"vehicle_plate": Models.ResolveVehiclePlate(transaction.VehicleID),
	})
}

func (ctl *TransactionController) Create(c *fiber.Ctx) error {
	var req Models.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	transaction := Models.Transaction{
		TxnType:        req.TxnType,
		Date:           req.Date,
		Amount:         req.Amount,
		PartyID:        req.PartyID,
		VehicleID:      req.VehicleID,
		VoucherNo:      req.VoucherNo,
		Description:    req.Description,
		CreatedBy:      middleware.CurrentUserName(c),
		LastModifiedBy: middleware.CurrentUserName(c),
	}
	if err := ctl.DB.Create(&transaction).Error; err != nil {
		logrus.WithError(err).Error("creating transaction")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction"})
	}
	return c.Status(fiber.StatusCreated).JSON(transaction)
}

func (ctl *TransactionController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.Transaction
	if err := ctl.DB.First(&transaction, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	var req Models.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	transaction.TxnType = req.TxnType
	transaction.Date = req.Date
	transaction.Amount = req.Amount
	transaction.PartyID = req.PartyID
	transaction.VehicleID = req.VehicleID
	transaction.VoucherNo = req.VoucherNo
	transaction.Description = req.Description
	transaction.LastModifiedBy = middleware.CurrentUserName(c)

	if err := ctl.DB.Save(&transaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update transaction"})
	}
	return c.JSON(transaction)
}

func (ctl *TransactionController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.Transaction
	if err := ctl.DB.First(&transaction, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	ctl.DB.Delete(&transaction)
	return c.JSON(fiber.Map{"message": "Transaction Deleted Successfully"})
}

// RewriteVoucher replaces every transaction under one voucher number: the
// existing rows are deleted and the submitted rows recreated, all through the
// bounded write buffer so the rewrite commits in chunks but reads as one edit.
func (ctl *TransactionController) RewriteVoucher(c *fiber.Ctx) error {
	var req Models.VoucherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	editor := middleware.CurrentUserName(c)
	writer := Models.NewBatchWriter(ctl.DB)

	var existing []Models.Transaction
	if err := ctl.DB.Where("voucher_no = ?", req.VoucherNo).Find(&existing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load voucher"})
	}
	for i := range existing {
		if err := writer.Delete(&existing[i]); err != nil {
			logrus.WithError(err).Error("queueing voucher delete")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to rewrite voucher"})
		}
	}

	created := make([]Models.Transaction, 0, len(req.Transactions))
	for _, row := range req.Transactions {
		created = append(created, Models.Transaction{
			TxnType:        row.TxnType,
			Date:           row.Date,
			Amount:         row.Amount,
			PartyID:        row.PartyID,
			VehicleID:      row.VehicleID,
			VoucherNo:      req.VoucherNo,
			Description:    row.Description,
			CreatedBy:      editor,
			LastModifiedBy: editor,
		})
	}
	for i := range created {
		if err := writer.Create(&created[i]); err != nil {
			logrus.WithError(err).Error("queueing voucher create")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to rewrite voucher"})
		}
	}

	if err := writer.Flush(); err != nil {
		logrus.WithError(err).Error("flushing voucher rewrite")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to rewrite voucher"})
	}

	return c.JSON(fiber.Map{
		"message":       "Voucher Rewritten Successfully",
		"deleted_count": len(existing),
		"created_count": len(created),
	})
}
