package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Trip is one trip-sheet of the trucking arm. The pay breakdown is computed
// on every create/update and stored alongside the inputs, so figures shown
// later always match what was paid out at the time.
type Trip struct {
	gorm.Model
	VehicleID  uint   `json:"vehicle_id" gorm:"index"`
	DriverID   uint   `json:"driver_id" gorm:"index"`
	Date       string `json:"date" gorm:"index"` // YYYY-MM-DD
	PartyCount int    `json:"party_count"`

	Destinations datatypes.JSON `json:"destinations"`
	FuelEntries  datatypes.JSON `json:"fuel_entries"`

	DetentionStart string `json:"detention_start"` // YYYY-MM-DD, optional
	DetentionEnd   string `json:"detention_end"`

	// Per-unit rates; zero means "use the configured default".
	DropOffRate   float64 `json:"drop_off_rate"`
	DetentionRate float64 `json:"detention_rate"`

	// Stored breakdown, recomputed on every write.
	TotalFreight    float64 `json:"total_freight"`
	DropOffCharge   float64 `json:"drop_off_charge"`
	DetentionCharge float64 `json:"detention_charge"`
	Taxable         float64 `json:"taxable"`
	VAT             float64 `json:"vat"`
	Gross           float64 `json:"gross"`
	TDS             float64 `json:"tds"`
	NetPay          float64 `json:"net_pay"`

	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
}

type Destination struct {
	Name    string  `json:"name"`
	Freight float64 `json:"freight"`
}

type FuelEntry struct {
	Station string  `json:"station"`
	Liters  float64 `json:"liters"`
	Amount  float64 `json:"amount"`
}

type TripRequest struct {
	VehicleID      uint          `json:"vehicle_id"`
	DriverID       uint          `json:"driver_id"`
	Date           string        `json:"date" validate:"required"`
	PartyCount     int           `json:"party_count"`
	Destinations   []Destination `json:"destinations" validate:"required,min=1"`
	FuelEntries    []FuelEntry   `json:"fuel_entries"`
	DetentionStart string        `json:"detention_start"`
	DetentionEnd   string        `json:"detention_end"`
	DropOffRate    float64       `json:"drop_off_rate"`
	DetentionRate  float64       `json:"detention_rate"`
}
