package Apis

import (
	"encoding/json"

	"Himal/Calculations"
	"Himal/Models"

	"github.com/gofiber/fiber/v2"
)

type LeadTimeStat struct {
	PartyID     uint    `json:"party_id"`
	PartyName   string  `json:"party_name"`
	OrderCount  int     `json:"order_count"`
	AvgLeadDays float64 `json:"avg_lead_days"`
	MinLeadDays int     `json:"min_lead_days"`
	MaxLeadDays int     `json:"max_lead_days"`
}

// FetchLeadTimeStats averages the order-to-delivery lead time per party over
// delivered purchase orders. Orders without both dates are skipped.
func FetchLeadTimeStats(c *fiber.Ctx) error {
	var orders []Models.PurchaseOrder
	if err := Models.DB.Where("status = ?", "Delivered").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch purchase orders"})
	}

	byParty := make(map[uint][]int)
	for _, order := range orders {
		days, ok := Calculations.LeadTimeDays(order.Date, order.DeliveryDate)
		if !ok {
			continue
		}
		byParty[order.PartyID] = append(byParty[order.PartyID], days)
	}

	var stats []LeadTimeStat
	for partyID, leadTimes := range byParty {
		stat := LeadTimeStat{
			PartyID:     partyID,
			PartyName:   Models.ResolvePartyName(partyID),
			OrderCount:  len(leadTimes),
			MinLeadDays: leadTimes[0],
			MaxLeadDays: leadTimes[0],
		}
		sum := 0
		for _, days := range leadTimes {
			sum += days
			if days < stat.MinLeadDays {
				stat.MinLeadDays = days
			}
			if days > stat.MaxLeadDays {
				stat.MaxLeadDays = days
			}
		}
		stat.AvgLeadDays = float64(sum) / float64(len(leadTimes))
		stats = append(stats, stat)
	}
	return c.JSON(stats)
}

type MonthlyTotal struct {
	Month    string  `json:"month"` // YYYY-MM
	Sales    float64 `json:"sales"`
	Purchase float64 `json:"purchase"`
	Payment  float64 `json:"payment"`
	Receipt  float64 `json:"receipt"`
}

// FetchMonthlyTotals sums transaction amounts per Gregorian month and type.
func FetchMonthlyTotals(c *fiber.Ctx) error {
	query := Models.DB.Model(&Models.Transaction{})
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var transactions []Models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}

	byMonth := make(map[string]*MonthlyTotal)
	var order []string
	for _, txn := range transactions {
		if len(txn.Date) < 7 {
			continue
		}
		month := txn.Date[:7]
		total, ok := byMonth[month]
		if !ok {
			total = &MonthlyTotal{Month: month}
			byMonth[month] = total
			order = append(order, month)
		}
		switch txn.TxnType {
		case Models.TxnSales:
			total.Sales += txn.Amount
		case Models.TxnPurchase:
			total.Purchase += txn.Amount
		case Models.TxnPayment:
			total.Payment += txn.Amount
		case Models.TxnReceipt:
			total.Receipt += txn.Amount
		}
	}

	totals := make([]MonthlyTotal, 0, len(order))
	for _, month := range order {
		totals = append(totals, *byMonth[month])
	}
	return c.JSON(totals)
}

// FetchDashboard returns the headline numbers for the landing page widgets.
func FetchDashboard(c *fiber.Ctx) error {
	var pendingPOs int64
	Models.DB.Model(&Models.PurchaseOrder{}).Where("status IN ?", []string{"Pending", "Partial"}).Count(&pendingPOs)

	var partyCount int64
	Models.DB.Model(&Models.Party{}).Count(&partyCount)

	var activeEmployees int64
	Models.DB.Model(&Models.Employee{}).Where("active = ?", true).Count(&activeEmployees)

	var recentTrips []Models.Trip
	Models.DB.Order("date DESC").Limit(5).Find(&recentTrips)

	type tripSummary struct {
		ID           uint     `json:"id"`
		Date         string   `json:"date"`
		VehiclePlate string   `json:"vehicle_plate"`
		Destinations []string `json:"destinations"`
		NetPay       float64  `json:"net_pay"`
	}
	trips := make([]tripSummary, 0, len(recentTrips))
	for _, trip := range recentTrips {
		summary := tripSummary{
			ID:           trip.ID,
			Date:         trip.Date,
			VehiclePlate: Models.ResolveVehiclePlate(trip.VehicleID),
			NetPay:       trip.NetPay,
		}
		var destinations []Models.Destination
		if json.Unmarshal(trip.Destinations, &destinations) == nil {
			for _, leg := range destinations {
				summary.Destinations = append(summary.Destinations, leg.Name)
			}
		}
		trips = append(trips, summary)
	}

	var chequeTotal float64
	Models.DB.Model(&Models.Cheque{}).Where("status = ?", "Issued").Select("COALESCE(SUM(amount), 0)").Scan(&chequeTotal)

	return c.JSON(fiber.Map{
		"pending_purchase_orders": pendingPOs,
		"party_count":             partyCount,
		"active_employees":        activeEmployees,
		"recent_trips":            trips,
		"issued_cheque_total":     chequeTotal,
	})
}
