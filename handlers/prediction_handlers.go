package handlers

import (
	"errors"
	"log"
	"time"

	"app/locale"
	"app/models"

	"github.com/gofiber/fiber/v2"
)

// HandlePredictionScore computes the full prediction for a birth chart and
// target date. The engine returns a structured error rather than a fabricated
// score when the chart or ephemeris is unusable; this handler only translates
// that error, it never substitutes fallback content.
func HandlePredictionScore(c *fiber.Ctx) error {
	var req models.PredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	if req.LifeArea == "" {
		req.LifeArea = models.AreaGeneral
	}
	if req.Language == "" {
		req.Language = models.LangEnglish
	}
	if !req.Language.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Unsupported language"})
	}

	log.Printf("🔮 [PREDICTION] Request - Birth: %s %s, Target: %s, Area: %s, Hint: %q",
		req.BirthDate, req.BirthTime, req.TargetDate, req.LifeArea, req.ModeHint)

	result, err := scoringEngine.Predict(req, time.Now().UTC())
	if err != nil {
		return predictionError(c, err)
	}

	log.Printf("✅ [PREDICTION] mode=%s score=%d confidence=%d",
		result.TimeMode, result.FinalScore, result.Confidence.Score)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"result": result,
			"labels": fiber.Map{
				"time_mode": locale.Label("time_mode."+string(result.TimeMode), req.Language),
				"life_area": locale.Label("life_area."+string(result.LifeArea), req.Language),
			},
		},
	})
}

// predictionError maps the core error taxonomy onto HTTP statuses.
func predictionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidBirthChart):
		log.Printf("❌ [PREDICTION] Invalid birth chart: %v", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, models.ErrEphemerisUnavailable):
		log.Printf("❌ [PREDICTION] Ephemeris unavailable: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": err.Error()})
	default:
		log.Printf("❌ [PREDICTION] Engine error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to compute prediction"})
	}
}
