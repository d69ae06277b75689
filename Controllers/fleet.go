package Controllers

import (
	"strconv"

	"Himal/Models"
	"Himal/middleware"

	"github.com/gofiber/fiber/v2"
)

func FetchVehicles(c *fiber.Ctx) error {
	var vehicles []Models.Vehicle
	if err := Models.DB.Order("plate_no").Find(&vehicles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch vehicles"})
	}
	return c.JSON(vehicles)
}

func CreateVehicle(c *fiber.Ctx) error {
	var vehicle Models.Vehicle
	if err := c.BodyParser(&vehicle); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if vehicle.PlateNo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Plate number is required"})
	}
	vehicle.CreatedBy = middleware.CurrentUserName(c)
	vehicle.LastModifiedBy = vehicle.CreatedBy
	if err := Models.DB.Create(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create vehicle"})
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

func UpdateVehicle(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle ID"})
	}

	var vehicle Models.Vehicle
	if err := Models.DB.First(&vehicle, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}

	var input Models.Vehicle
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	if input.PlateNo != "" {
		vehicle.PlateNo = input.PlateNo
	}
	if input.VehicleModel != "" {
		vehicle.VehicleModel = input.VehicleModel
	}
	if input.OwnerType != "" {
		vehicle.OwnerType = input.OwnerType
	}
	vehicle.LastModifiedBy = middleware.CurrentUserName(c)

	if err := Models.DB.Save(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vehicle"})
	}
	return c.JSON(vehicle)
}

func DeleteVehicle(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vehicle ID"})
	}

	var count int64
	Models.DB.Model(&Models.Trip{}).Where("vehicle_id = ?", id).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Vehicle has trips and cannot be deleted"})
	}

	if err := Models.DB.Delete(&Models.Vehicle{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete vehicle"})
	}
	return c.JSON(fiber.Map{"message": "Vehicle Deleted Successfully"})
}

func FetchDrivers(c *fiber.Ctx) error {
	var drivers []Models.Driver
	if err := Models.DB.Order("name").Find(&drivers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch drivers"})
	}
	return c.JSON(drivers)
}

func CreateDriver(c *fiber.Ctx) error {
	var driver Models.Driver
	if err := c.BodyParser(&driver); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if driver.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Driver name is required"})
	}
	driver.CreatedBy = middleware.CurrentUserName(c)
	driver.LastModifiedBy = driver.CreatedBy
	if err := Models.DB.Create(&driver).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create driver"})
	}
	return c.Status(fiber.StatusCreated).JSON(driver)
}

func UpdateDriver(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid driver ID"})
	}

	var driver Models.Driver
	if err := Models.DB.First(&driver, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Driver not found"})
	}

	var input Models.Driver
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	if input.Name != "" {
		driver.Name = input.Name
	}
	if input.LicenseNo != "" {
		driver.LicenseNo = input.LicenseNo
	}
	if input.Phone != "" {
		driver.Phone = input.Phone
	}
	driver.VehicleID = input.VehicleID
	driver.LastModifiedBy = middleware.CurrentUserName(c)

	if err := Models.DB.Save(&driver).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update driver"})
	}
	return c.JSON(driver)
}

func DeleteDriver(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid driver ID"})
	}
	if err := Models.DB.Delete(&Models.Driver{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete driver"})
	}
	return c.JSON(fiber.Map{"message": "Driver Deleted Successfully"})
}
