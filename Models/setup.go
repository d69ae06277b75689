package Models

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// connectionWaitTimeout gates startup only; individual queries are not bounded.
const connectionWaitTimeout = 30 * time.Second

func Connect() {
	dialect := os.Getenv("DB_DIALECT")

	var err error
	var connection *gorm.DB

	deadline := time.Now().Add(connectionWaitTimeout)
	for {
		if dialect == "mysql" {
			dsn := os.Getenv("DB_DSN")
			if dsn == "" {
				logrus.Fatal("DB_DIALECT=mysql requires DB_DSN")
			}
			connection, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		} else {
			path := os.Getenv("DB_PATH")
			if path == "" {
				path = "database.db"
			}
			connection, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		}
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			logrus.WithError(err).Fatal("database not reachable within 30s")
		}
		logrus.WithError(err).Warn("waiting for database...")
		time.Sleep(2 * time.Second)
	}

	DB = connection

	// 1. Reference data and auth first, nothing depends on them
	DB.AutoMigrate(
		&User{},
		&Party{},
		&Account{},
		&Vehicle{},
		&Driver{},
		&Employee{},
		&DeviceToken{},
		&RequestLog{},
	)

	// 2. Documents with plain ID references
	DB.AutoMigrate(
		&Report{},
		&PurchaseOrder{},
		&Transaction{},
		&AttendanceRecord{},
		&Cheque{},
		&Estimate{},
		&TDSRecord{},
	)

	// 3. Documents that rewrite children of the above on save
	DB.AutoMigrate(
		&Trip{},
		&Payroll{},
	)

	logrus.Info("database migrated")
}

// ResolvePartyName returns the party name for display, or "N/A" when the
// reference does not resolve. Orphaned references are tolerated, not errors.
func ResolvePartyName(id uint) string {
	if id == 0 {
		return "N/A"
	}
	var party Party
	if err := DB.First(&party, id).Error; err != nil {
		return "N/A"
	}
	return party.Name
}

func ResolveVehiclePlate(id uint) string {
	if id == 0 {
		return "N/A"
	}
	var vehicle Vehicle
	if err := DB.First(&vehicle, id).Error; err != nil {
		return "N/A"
	}
	return vehicle.PlateNo
}

func ResolveDriverName(id uint) string {
	if id == 0 {
		return "N/A"
	}
	var driver Driver
	if err := DB.First(&driver, id).Error; err != nil {
		return "N/A"
	}
	return driver.Name
}

func ResolveEmployeeName(id uint) string {
	if id == 0 {
		return "N/A"
	}
	var employee Employee
	if err := DB.First(&employee, id).Error; err != nil {
		return "N/A"
	}
	return employee.Name
}

// EnsureUploadDirs creates the static upload directories served by fiber.
func EnsureUploadDirs() error {
	for _, dir := range []string{"PartyDocuments", "VehicleDocuments", "Thumbnails"} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
