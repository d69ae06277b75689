package Controllers

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"Himal/Calculations"
	"Himal/Gemini"
	"Himal/Models"
	"Himal/Notifications"
	"Himal/email"
	"Himal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PurchaseOrderController handles PO endpoints, including the append-only
// amendment history.
type PurchaseOrderController struct {
	DB *gorm.DB
}

func NewPurchaseOrderController(db *gorm.DB) *PurchaseOrderController {
	return &PurchaseOrderController{DB: db}
}

func (ctl *PurchaseOrderController) GetAll(c *fiber.Ctx) error {
	query := ctl.DB.Model(&Models.PurchaseOrder{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if party := c.Query("party_id"); party != "" {
		query = query.Where("party_id = ?", party)
	}

	var orders []Models.PurchaseOrder
	if err := query.Order("date DESC").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve purchase orders"})
	}
	return c.JSON(orders)
}

func (ctl *PurchaseOrderController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	var order Models.PurchaseOrder
	if err := ctl.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
	}

	return c.JSON(fiber.Map{
		"purchase_order": order,
		"party_name":     Models.ResolvePartyName(order.PartyID),
	})
}

func (ctl *PurchaseOrderController) Create(c *fiber.Ctx) error {
	var req Models.PurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	items, err := json.Marshal(req.Items)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid items"})
	}

	subtotal, vat, grand := Calculations.ComputePurchaseTotals(req.Items, req.InvoiceType)

	order := Models.PurchaseOrder{
		PONumber:       req.PONumber,
		Date:           req.Date,
		PartyID:        req.PartyID,
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		PAN:            req.PAN,
		InvoiceType:    req.InvoiceType,
		Status:         req.Status,
		DeliveryDate:   req.DeliveryDate,
		Items:          items,
		Subtotal:       subtotal,
		VAT:            vat,
		GrandTotal:     grand,
		CreatedBy:      middleware.CurrentUserName(c),
		LastModifiedBy: middleware.CurrentUserName(c),
	}

	if err := ctl.DB.Create(&order).Error; err != nil {
		logrus.WithError(err).Error("creating purchase order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create purchase order"})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// Update snapshots the current mutable fields into the versions array before
// applying the new values. The history only ever grows.
func (ctl *PurchaseOrderController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	var order Models.PurchaseOrder
	if err := ctl.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
	}

	var req Models.PurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	editor := middleware.CurrentUserName(c)
	snapshot := Models.SnapshotVersion(&order, editor, time.Now())
	versions, err := Models.AppendVersion(order.Versions, snapshot)
	if err != nil {
		logrus.WithError(err).Error("appending PO version")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update purchase order"})
	}

	items, err := json.Marshal(req.Items)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid items"})
	}
	subtotal, vat, grand := Calculations.ComputePurchaseTotals(req.Items, req.InvoiceType)

	statusChanged := order.Status != req.Status

	order.Versions = versions
	order.Date = req.Date
	order.PartyID = req.PartyID
	order.CompanyName = req.CompanyName
	order.CompanyAddress = req.CompanyAddress
	order.PAN = req.PAN
	order.InvoiceType = req.InvoiceType
	order.Status = req.Status
	order.DeliveryDate = req.DeliveryDate
	order.Items = items
	order.Subtotal = subtotal
	order.VAT = vat
	order.GrandTotal = grand
	order.LastModifiedBy = editor

	if err := ctl.DB.Save(&order).Error; err != nil {
		logrus.WithError(err).Error("saving purchase order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update purchase order"})
	}

	if statusChanged {
		Notifications.NotifyPOStatusChange(order.PONumber, order.Status)
		if recipients := os.Getenv("PO_NOTIFY_EMAILS"); recipients != "" {
			message := email.POStatusMessage(strings.Split(recipients, ","), order.PONumber, order.Status)
			if err := email.Send(Models.LoadEmailConfig(), message); err != nil {
				logrus.WithError(err).Warn("purchase order status email not sent")
			}
		}
	}

	return c.JSON(order)
}

func (ctl *PurchaseOrderController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	var order Models.PurchaseOrder
	if err := ctl.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
	}

	ctl.DB.Delete(&order)
	return c.JSON(fiber.Map{"message": "Purchase Order Deleted Successfully"})
}

// GetVersions returns the amendment history, newest last.
func (ctl *PurchaseOrderController) GetVersions(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	var order Models.PurchaseOrder
	if err := ctl.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
	}

	var versions []Models.POVersion
	if len(order.Versions) > 0 {
		if err := json.Unmarshal(order.Versions, &versions); err != nil {
			logrus.WithError(err).Error("decoding PO versions")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read version history"})
		}
	}
	return c.JSON(fiber.Map{"po_number": order.PONumber, "versions": versions})
}

// CompareSummary passes two PO snapshots to the generative model and returns
// its text. No deterministic contract; purely a convenience for reviewers.
func (ctl *PurchaseOrderController) CompareSummary(c *fiber.Ctx) error {
	var req struct {
		Before Models.POVersion `json:"before"`
		After  Models.POVersion `json:"after"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	summary, err := Gemini.ComparePOSnapshots(c.Context(), req.Before, req.After)
	if err != nil {
		logrus.WithError(err).Error("generating comparison summary")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Summary generation failed"})
	}
	return c.JSON(fiber.Map{"summary": summary})
}
