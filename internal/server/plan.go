package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"vietfit/internal/metrics"
	"vietfit/internal/plan"
)

// parsePlanForm reads the biometric form fields, applying the same
// defaults for the optional selects that the form itself offers.
func parsePlanForm(c echo.Context) (metrics.Input, error) {
	weight, err := strconv.ParseFloat(c.FormValue("weight"), 64)
	if err != nil {
		return metrics.Input{}, fmt.Errorf("invalid weight: %q", c.FormValue("weight"))
	}
	height, err := strconv.ParseFloat(c.FormValue("height"), 64)
	if err != nil {
		return metrics.Input{}, fmt.Errorf("invalid height: %q", c.FormValue("height"))
	}
	age, err := strconv.Atoi(c.FormValue("age"))
	if err != nil {
		return metrics.Input{}, fmt.Errorf("invalid age: %q", c.FormValue("age"))
	}

	return metrics.Input{
		Weight:   weight,
		Height:   height,
		Age:      age,
		Sex:      formValueOr(c, "sex", "male"),
		Activity: formValueOr(c, "activity", "sedentary"),
		Goal:     formValueOr(c, "goal", metrics.GoalAuto),
		Units:    formValueOr(c, "units", "metric"),
		Diet:     formValueOr(c, "diet", "none"),
	}, nil
}

func formValueOr(c echo.Context, name, fallback string) string {
	if v := c.FormValue(name); v != "" {
		return v
	}
	return fallback
}

// planHandler orchestrates one request: parse the form, derive the
// metrics, build the prompt, obtain the model (or mock) text, and render
// the formatted plan page. Validation failures surface as 400s; model
// failures never surface because the client degrades to the offline
// generator.
func (s *Server) planHandler(c echo.Context) error {
	in, err := parsePlanForm(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	derived, err := metrics.Compute(in)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prompt := plan.BuildPrompt(derived, in.Diet, in.Activity)

	text, err := s.gemini.Generate(c.Request().Context(), prompt)
	if err != nil {
		log.Error().Err(err).Msg("planHandler: plan generation failed")
		return echo.NewHTTPError(http.StatusBadGateway, "plan generation failed")
	}

	return c.Render(http.StatusOK, "plan.html", map[string]interface{}{
		"BMI":       math.Round(derived.BMI*10) / 10,
		"TDEE":      int(derived.TDEE),
		"TargetCal": int(derived.TargetCalories),
		"Goal":      derived.Goal,
		"PlanHTML":  plan.FormatHTML(text),
	})
}
