package Models

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	PlateNo      string `json:"plate_no" gorm:"not null;uniqueIndex"`
	VehicleModel string `json:"vehicle_model"`
	OwnerType    string `json:"owner_type"` // "Own" or "Hired"

	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
}

type Driver struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	LicenseNo string `json:"license_no"`
	Phone     string `json:"phone"`
	VehicleID uint   `json:"vehicle_id" gorm:"index"` // currently assigned vehicle

	CreatedBy      string `json:"created_by"`
	LastModifiedBy string `json:"last_modified_by"`
}
