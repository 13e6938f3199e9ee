package handlers

import (
	"log"
	"time"

	"app/chart"
	"app/dasha"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleGetDashaTimeline returns the paginated Mahadasha timeline and the
// MD/AD/PD chain current at an optional query date.
func HandleGetDashaTimeline(c *fiber.Ctx) error {
	birthUTC, lat, lon, timeKnown, ok, errResp := birthParams(c)
	if !ok {
		return errResp
	}

	bc, err := chart.Build(provider, birthUTC, lat, lon, timeKnown)
	if err != nil {
		return predictionError(c, err)
	}

	cycles := c.QueryInt("cycles", 1)
	if cycles < 1 {
		cycles = 1
	}
	if cycles > 3 {
		cycles = 3
	}

	periods := make([]models.DashaPeriod, 0, cycles*9)
	for cy := 0; cy < cycles; cy++ {
		cyclePeriods, err := dasha.MahadashaTimeline(bc, birthUTC, cy)
		if err != nil {
			return predictionError(c, err)
		}
		periods = append(periods, cyclePeriods...)
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 9)
	pagination := utils.CreatePagination(len(periods), page, pageSize)
	startIdx := (pagination.CurrentPage - 1) * pagination.PageSize
	if startIdx > len(periods) {
		startIdx = len(periods)
	}
	endIdx := startIdx + pagination.PageSize
	if endIdx > len(periods) {
		endIdx = len(periods)
	}

	data := fiber.Map{
		"timeline":   periods[startIdx:endIdx],
		"pagination": pagination,
	}

	if dateStr := c.Query("date"); dateStr != "" {
		at, err := utils.ParseDate(dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid date format"})
		}
		target := time.Date(at.Year(), at.Month(), at.Day(), 12, 0, 0, 0, time.UTC)
		snap, err := dasha.SnapshotAt(bc, birthUTC, target)
		if err != nil {
			return predictionError(c, err)
		}
		data["current"] = snap
	}

	log.Printf("🕰️  [DASHA] Timeline served - %d period(s), %d cycle(s)", endIdx-startIdx, cycles)
	return c.JSON(fiber.Map{"success": true, "data": data})
}
