package handlers

import (
	"log"
	"time"

	"app/chart"
	"app/locale"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
)

// birthParams pulls the shared birth-detail query parameters.
func birthParams(c *fiber.Ctx) (birthUTC time.Time, lat, lon float64, timeKnown bool, ok bool, errResp error) {
	birthDateStr := c.Query("birthDate")
	if birthDateStr == "" {
		return time.Time{}, 0, 0, false, false,
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "birthDate is required"})
	}
	birthDate, err := utils.ParseDate(birthDateStr)
	if err != nil {
		return time.Time{}, 0, 0, false, false,
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid birthDate format"})
	}

	hour, minute := 12, 0
	timeKnown = false
	if clock := c.Query("birthTime"); clock != "" {
		hour, minute, err = utils.ParseClock(clock)
		if err != nil {
			return time.Time{}, 0, 0, false, false,
				c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid birthTime format"})
		}
		timeKnown = true
	}

	lat = c.QueryFloat("latitude")
	lon = c.QueryFloat("longitude")
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return time.Time{}, 0, 0, false, false,
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "latitude/longitude out of range"})
	}

	local := time.Date(birthDate.Year(), birthDate.Month(), birthDate.Day(), hour, minute, 0, 0, time.UTC)
	birthUTC = local.Add(-time.Duration(lon / 15 * float64(time.Hour)))
	return birthUTC, lat, lon, timeKnown, true, nil
}

// HandleGetBirthChart builds and returns the D1/D9 chart for birth details.
func HandleGetBirthChart(c *fiber.Ctx) error {
	birthUTC, lat, lon, timeKnown, ok, errResp := birthParams(c)
	if !ok {
		return errResp
	}

	bc, err := chart.Build(provider, birthUTC, lat, lon, timeKnown)
	if err != nil {
		return predictionError(c, err)
	}

	vargottamas := make([]string, 0)
	for _, p := range bc.Planets {
		if p.Vargottama {
			vargottamas = append(vargottamas, p.PlanetName)
		}
	}

	log.Printf("📜 [CHART] Built chart - lagna %s, moon %s", bc.LagnaSign, bc.MoonSign)
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"chart":      bc,
		"vargottama": vargottamas,
	}})
}

// HandleGetLabels returns the full label table for a language, for the report
// layer to bulk-load.
func HandleGetLabels(c *fiber.Ctx) error {
	lang := models.Language(c.Query("language", string(models.LangEnglish)))
	if !lang.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Unsupported language"})
	}
	return c.JSON(fiber.Map{"success": true, "data": locale.All(lang)})
}
