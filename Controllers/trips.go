package Controllers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"Himal/Calculations"
	"Himal/Models"
	"Himal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TripController handles trip sheets and the transactions derived from them.
type TripController struct {
	DB *gorm.DB
}

func NewTripController(db *gorm.DB) *TripController {
	return &TripController{DB: db}
}

func (ctl *TripController) GetAll(c *fiber.Ctx) error {
	query := ctl.DB.Model(&Models.Trip{})
	if vehicle := c.Query("vehicle_id"); vehicle != "" {
		query = query.Where("vehicle_id = ?", vehicle)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var trips []Models.Trip
	if err := query.Order("date DESC").Find(&trips).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve trips"})
	}
	return c.JSON(trips)
}

func (ctl *TripController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trip ID"})
	}

	var trip Models.Trip
	if err := ctl.DB.First(&trip, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trip not found"})
	}

	return c.JSON(fiber.Map{
		"trip":          trip,
		"vehicle_plate": Models.ResolveVehiclePlate(trip.VehicleID),
		"driver_name":   Models.ResolveDriverName(trip.DriverID),
	})
}

func (ctl *TripController) Create(c *fiber.Ctx) error {
	var req Models.TripRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	trip, err := tripFromRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	trip.CreatedBy = middleware.CurrentUserName(c)
	trip.LastModifiedBy = trip.CreatedBy

	breakdown := Calculations.ComputeTripPay(req.Destinations, req.DetentionStart, req.DetentionEnd, req.PartyCount, req.DropOffRate, req.DetentionRate)
	Calculations.ApplyBreakdown(trip, breakdown)

	if err := ctl.DB.Create(trip).Error; err != nil {
		logrus.WithError(err).Error("creating trip")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create trip"})
	}

	if err := ctl.rewriteDerived(trip, req.FuelEntries, trip.CreatedBy); err != nil {
		logrus.WithError(err).Error("writing trip transactions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Trip saved but its transactions failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"trip":      trip,
		"breakdown": breakdown,
	})
}

func (ctl *TripController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trip ID"})
	}

	var trip Models.Trip
	if err := ctl.DB.First(&trip, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trip not found"})
	}

	var req Models.TripRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := tripFromRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	editor := middleware.CurrentUserName(c)
	trip.VehicleID = updated.VehicleID
	trip.DriverID = updated.DriverID
	trip.Date = updated.Date
	trip.PartyCount = updated.PartyCount
	trip.Destinations = updated.Destinations
	trip.FuelEntries = updated.FuelEntries
	trip.DetentionStart = updated.DetentionStart
	trip.DetentionEnd = updated.DetentionEnd
	trip.DropOffRate = updated.DropOffRate
	trip.DetentionRate = updated.DetentionRate
	trip.LastModifiedBy = editor

	breakdown := Calculations.ComputeTripPay(req.Destinations, req.DetentionStart, req.DetentionEnd, req.PartyCount, req.DropOffRate, req.DetentionRate)
	Calculations.ApplyBreakdown(&trip, breakdown)

	if err := ctl.DB.Save(&trip).Error; err != nil {
		logrus.WithError(err).Error("saving trip")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update trip"})
	}

	if err := ctl.rewriteDerived(&trip, req.FuelEntries, editor); err != nil {
		logrus.WithError(err).Error("rewriting trip transactions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Trip saved but its transactions failed"})
	}

	return c.JSON(fiber.Map{
		"trip":      trip,
		"breakdown": breakdown,
	})
}

func (ctl *TripController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trip ID"})
	}

	var trip Models.Trip
	if err := ctl.DB.First(&trip, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trip not found"})
	}

	if err := ctl.DB.Where("trip_id = ?", trip.ID).Delete(&Models.Transaction{}).Error; err != nil {
		logrus.WithError(err).Warn("deleting derived trip transactions")
	}
	ctl.DB.Delete(&trip)
	return c.JSON(fiber.Map{"message": "Trip Deleted Successfully"})
}

// Recalculate recomputes and stores the breakdown of every trip in a date
// range. Used after a rate change in settings.
func (ctl *TripController) Recalculate(c *fiber.Ctx) error {
	var req struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	query := ctl.DB.Model(&Models.Trip{})
	if req.From != "" {
		query = query.Where("date >= ?", req.From)
	}
	if req.To != "" {
		query = query.Where("date <= ?", req.To)
	}

	var trips []Models.Trip
	if err := query.Find(&trips).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load trips"})
	}

	updated := 0
	for i := range trips {
		var destinations []Models.Destination
		if err := json.Unmarshal(trips[i].Destinations, &destinations); err != nil {
			logrus.WithField("trip_id", trips[i].ID).Warn("trip has malformed destinations")
			continue
		}
		breakdown := Calculations.ComputeTripPay(destinations, trips[i].DetentionStart, trips[i].DetentionEnd, trips[i].PartyCount, trips[i].DropOffRate, trips[i].DetentionRate)
		Calculations.ApplyBreakdown(&trips[i], breakdown)
		if err := ctl.DB.Save(&trips[i]).Error; err != nil {
			logrus.WithError(err).WithField("trip_id", trips[i].ID).Warn("recalculated trip not saved")
			continue
		}
		updated++
	}
	return c.JSON(fiber.Map{"message": "Trips Recalculated Successfully", "updated": updated})
}

func tripFromRequest(req *Models.TripRequest) (*Models.Trip, error) {
	destinations, err := json.Marshal(req.Destinations)
	if err != nil {
		return nil, fmt.Errorf("invalid destinations")
	}
	fuel, err := json.Marshal(req.FuelEntries)
	if err != nil {
		return nil, fmt.Errorf("invalid fuel entries")
	}
	return &Models.Trip{
		VehicleID:      req.VehicleID,
		DriverID:       req.DriverID,
		Date:           req.Date,
		PartyCount:     req.PartyCount,
		Destinations:   destinations,
		FuelEntries:    fuel,
		DetentionStart: req.DetentionStart,
		DetentionEnd:   req.DetentionEnd,
		DropOffRate:    req.DropOffRate,
		DetentionRate:  req.DetentionRate,
	}, nil
}

// rewriteDerived replaces the transactions generated from a trip: one Sales
// row for the gross billed amount and one Purchase row per fuel fill. The old
// derived rows are dropped first so edits never double-post.
func (ctl *TripController) rewriteDerived(trip *Models.Trip, fuel []Models.FuelEntry, editor string) error {
	writer := Models.NewBatchWriter(ctl.DB)

	var existing []Models.Transaction
	if err := ctl.DB.Where("trip_id = ?", trip.ID).Find(&existing).Error; err != nil {
		return err
	}
	for i := range existing {
		if err := writer.Delete(&existing[i]); err != nil {
			return err
		}
	}

	sales := Models.Transaction{
		TxnType:        Models.TxnSales,
		Date:           trip.Date,
		Amount:         trip.Gross,
		VehicleID:      trip.VehicleID,
		TripID:         trip.ID,
		Description:    fmt.Sprintf("Trip #%d freight", trip.ID),
		CreatedBy:      editor,
		LastModifiedBy: editor,
	}
	if err := writer.Create(&sales); err != nil {
		return err
	}

	for _, fill := range fuel {
		purchase := Models.Transaction{
			TxnType:        Models.TxnPurchase,
			Date:           trip.Date,
			Amount:         fill.Amount,
			VehicleID:      trip.VehicleID,
			TripID:         trip.ID,
			Description:    fmt.Sprintf("Fuel at %s (%.2f L)", fill.Station, fill.Liters),
			CreatedBy:      editor,
			LastModifiedBy: editor,
		}
		if err := writer.Create(&purchase); err != nil {
			return err
		}
	}

	return writer.Flush()
}
