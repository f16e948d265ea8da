package controllers

import (
	"bytes"
	"chalkboard/database"
	"chalkboard/earnings"
	"chalkboard/middleware"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetEarnings returns the caller's sale records, optionally filtered by
// timeframe and grouped by calendar date for charting.
func GetEarnings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	timeframe, _ := c.Locals("earningsTimeframe").(string)
	groupBy, _ := c.Locals("earningsGroupBy").(string)

	records, err := earnings.Query(database.Database.Db, userID)
	if err != nil {
		log.Printf("Error querying earnings for instructor %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch earnings!", nil)
	}

	records = earnings.FilterTimeframe(records, timeframe, time.Now())

	if groupBy == "date" {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Earnings fetched successfully!", fiber.Map{
			"daily": earnings.GroupByDate(records),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Earnings fetched successfully!", fiber.Map{
		"earnings": records,
	})
}

// ExportEarnings streams the caller's earnings as a CSV attachment.
func ExportEarnings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	timeframe, _ := c.Locals("earningsTimeframe").(string)

	records, err := earnings.Query(database.Database.Db, userID)
	if err != nil {
		log.Printf("Error querying earnings for instructor %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch earnings!", nil)
	}

	records = earnings.FilterTimeframe(records, timeframe, time.Now())

	var buf bytes.Buffer
	if err := earnings.WriteCSV(&buf, records); err != nil {
		log.Printf("Error writing earnings CSV for instructor %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export earnings!", nil)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="earnings_export.csv"`)
	return c.Send(buf.Bytes())
}
