package Models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PurchaseOrder struct {
	gorm.Model
	PONumber       string         `json:"po_number" gorm:"uniqueIndex;not null"`
	Date           string         `json:"date"` // YYYY-MM-DD
	PartyID        uint           `json:"party_id" gorm:"index"`
	CompanyName    string         `json:"company_name"`
	CompanyAddress string         `json:"company_address"`
	PAN            string         `json:"pan"`
	InvoiceType    string         `json:"invoice_type"` // "Taxable" or "Non-Taxable"
	Status         string         `json:"status"`       // Pending, Partial, Delivered, Cancelled
	DeliveryDate   string         `json:"delivery_date"`
	Items          datatypes.JSON `json:"items"`

	// Denormalized at write time so displayed figures match stored figures.
	Subtotal   float64 `json:"subtotal"`
	VAT        float64 `json:"vat"`
	GrandTotal float64 `json:"grand_total"`

	// Append-only amendment history. Entries are never removed.
	Versions datatypes.JSON `json:"versions"`

	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
}

type POItem struct {
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// POVersion is the snapshot of the mutable fields of a purchase order as they
// were immediately before an update was applied.
type POVersion struct {
	VersionID string   `json:"version_id"`
	EditedBy  string   `json:"edited_by"`
	EditedAt  string   `json:"edited_at"`
	Date      string   `json:"date"`
	Items     []POItem `json:"items"`
	Company   string   `json:"company"`
	Address   string   `json:"address"`
	PAN       string   `json:"pan"`
	Status    string   `json:"status"`
}

// SnapshotVersion captures the pre-update state of a purchase order. The
// version id is derived from the clock so entries sort naturally.
func SnapshotVersion(po *PurchaseOrder, editor string, now time.Time) POVersion {
	var items []POItem
	if len(po.Items) > 0 {
		// Tolerate malformed stored JSON; the snapshot keeps an empty item list.
		_ = json.Unmarshal(po.Items, &items)
	}
	return POVersion{
		VersionID: fmt.Sprintf("v%d", now.UnixNano()),
		EditedBy:  editor,
		EditedAt:  now.Format(time.RFC3339),
		Date:      po.Date,
		Items:     items,
		Company:   po.CompanyName,
		Address:   po.CompanyAddress,
		PAN:       po.PAN,
		Status:    po.Status,
	}
}

// AppendVersion appends a snapshot to the stored versions array and returns
// the new array. The history only ever grows.
func AppendVersion(stored datatypes.JSON, version POVersion) (datatypes.JSON, error) {
	var versions []POVersion
	if len(stored) > 0 {
		if err := json.Unmarshal(stored, &versions); err != nil {
			return stored, err
		}
	}
	versions = append(versions, version)
	raw, err := json.Marshal(versions)
	if err != nil {
		return stored, err
	}
	return datatypes.JSON(raw), nil
}

type PurchaseOrderRequest struct {
	PONumber       string   `json:"po_number" validate:"required"`
	Date           string   `json:"date" validate:"required"`
	PartyID        uint     `json:"party_id"`
	CompanyName    string   `json:"company_name"`
	CompanyAddress string   `json:"company_address"`
	PAN            string   `json:"pan"`
	InvoiceType    string   `json:"invoice_type" validate:"oneof=Taxable Non-Taxable"`
	Status         string   `json:"status" validate:"oneof=Pending Partial Delivered Cancelled"`
	DeliveryDate   string   `json:"delivery_date"`
	Items          []POItem `json:"items" validate:"required,min=1"`
}
