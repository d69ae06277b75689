package Controllers

import (
	"encoding/json"
	"strconv"

	"Himal/Calculations"
	"Himal/Models"

	"github.com/gofiber/fiber/v2"
)

// RenderTripSheet renders the printable trip sheet with the stored breakdown.
func RenderTripSheet(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trip ID"})
	}

	var trip Models.Trip
	if err := Models.DB.First(&trip, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trip not found"})
	}

	var destinations []Models.Destination
	json.Unmarshal(trip.Destinations, &destinations)
	var fuel []Models.FuelEntry
	json.Unmarshal(trip.FuelEntries, &fuel)

	return c.Render("trip_sheet", fiber.Map{
		"Trip":         trip,
		"VehiclePlate": Models.ResolveVehiclePlate(trip.VehicleID),
		"DriverName":   Models.ResolveDriverName(trip.DriverID),
		"Destinations": destinations,
		"FuelEntries":  fuel,
	})
}

// RenderLedger renders the printable party ledger.
func RenderLedger(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid party ID"})
	}

	var party Models.Party
	if err := Models.DB.First(&party, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Party not found"})
	}

	query := Models.DB.Where("party_id = ?", party.ID)
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}
	var transactions []Models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transactions"})
	}

	ledger := Calculations.BuildLedger(transactions)
	return c.Render("ledger", fiber.Map{
		"Party":  party,
		"Ledger": ledger,
	})
}

// RenderCheque renders the printable cheque with its amount in words.
func RenderCheque(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid cheque ID"})
	}

	var cheque Models.Cheque
	if err := Models.DB.First(&cheque, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cheque not found"})
	}

	return c.Render("cheque", fiber.Map{
		"Cheque":    cheque,
		"PartyName": Models.ResolvePartyName(cheque.PartyID),
	})
}
