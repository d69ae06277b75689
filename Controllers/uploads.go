package Controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var uploadDirs = map[string]string{
	"party":   "PartyDocuments",
	"vehicle": "VehicleDocuments",
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadDocument stores a document for a party or vehicle under its ID. Image
// uploads get a 200px thumbnail for the list views; other files are stored
// as-is.
func UploadDocument(c *fiber.Ctx) error {
	kind := c.Params("kind")
	dir, ok := uploadDirs[kind]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown document kind"})
	}
	id := c.Params("id")

	file, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("%s_%d%s", id, time.Now().UnixNano(), ext)
	path := filepath.Join(dir, name)

	if err := c.SaveFile(file, path); err != nil {
		logrus.WithError(err).Error("saving uploaded document")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save document"})
	}

	response := fiber.Map{
		"message": "Document Uploaded Successfully",
		"path":    "/" + filepath.ToSlash(path),
	}

	if imageExtensions[ext] {
		thumb, err := makeThumbnail(path, name)
		if err != nil {
			// The document itself saved fine; a missing thumbnail is cosmetic.
			logrus.WithError(err).Warn("thumbnail not generated")
		} else {
			response["thumbnail"] = "/" + filepath.ToSlash(thumb)
		}
	}

	return c.JSON(response)
}

func makeThumbnail(sourcePath, name string) (string, error) {
	img, err := imaging.Open(sourcePath)
	if err != nil {
		return "", err
	}
	thumb := imaging.Resize(img, 200, 0, imaging.Lanczos)
	thumbPath := filepath.Join("Thumbnails", name)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", err
	}
	return thumbPath, nil
}

// ListDocuments returns the stored documents for one party or vehicle.
func ListDocuments(c *fiber.Ctx) error {
	kind := c.Params("kind")
	dir, ok := uploadDirs[kind]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown document kind"})
	}
	id := c.Params("id")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list documents"})
	}

	var documents []fiber.Map
	prefix := id + "_"
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		doc := fiber.Map{
			"name": entry.Name(),
			"path": "/" + filepath.ToSlash(filepath.Join(dir, entry.Name())),
		}
		if _, err := os.Stat(filepath.Join("Thumbnails", entry.Name())); err == nil {
			doc["thumbnail"] = "/" + filepath.ToSlash(filepath.Join("Thumbnails", entry.Name()))
		}
		documents = append(documents, doc)
	}
	return c.JSON(documents)
}

// DeleteDocument removes one stored document and its thumbnail if present.
func DeleteDocument(c *fiber.Ctx) error {
	kind := c.Params("kind")
	dir, ok := uploadDirs[kind]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown document kind"})
	}

	name := filepath.Base(c.Params("name"))
	if name == "" || name == "." || name == ".." {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document name"})
	}

	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
	}
	os.Remove(filepath.Join("Thumbnails", name))

	return c.JSON(fiber.Map{"message": "Document Deleted Successfully"})
}
