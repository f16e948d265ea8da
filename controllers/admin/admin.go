package adminController

import (
	"bytes"
	"chalkboard/database"
	"chalkboard/earnings"
	"chalkboard/middleware"
	courseModels "chalkboard/models/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Authenticate checks the shared platform key supplied by the metrics
// client.
func Authenticate(c *fiber.Ctx) error {
	reqData := new(struct {
		AdminKey string `json:"adminKey"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if !middleware.AdminKeyMatches(reqData.AdminKey) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Forbidden - Invalid admin key", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Authenticated", nil)
}

// GetMetrics returns the most recent daily platform snapshots.
func GetMetrics(c *fiber.Ctx) error {
	var metrics []courseModels.PlatformMetric
	if err := database.Database.Db.
		Order("day desc").
		Limit(90).
		Find(&metrics).Error; err != nil {
		log.Printf("Error fetching platform metrics: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch metrics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Metrics fetched successfully!", fiber.Map{
		"metrics": metrics,
	})
}

// ExportMetrics streams every platform sale as a CSV attachment.
func ExportMetrics(c *fiber.Ctx) error {
	records, err := earnings.QueryPlatform(database.Database.Db)
	if err != nil {
		log.Printf("Error querying platform sales: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export metrics!", nil)
	}

	var buf bytes.Buffer
	if err := earnings.WritePlatformCSV(&buf, records); err != nil {
		log.Printf("Error writing platform metrics CSV: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export metrics!", nil)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="platform_metrics_export.csv"`)
	return c.Send(buf.Bytes())
}
