package openmeteo_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/minaretapp/minaret/internal/app/openmeteo"
)

func TestForecast(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	c := openmeteo.New(http.DefaultClient)
	ctx := context.Background()
	t.Run("can fetch current weather and forecast", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://api\.open-meteo\.com/v1/forecast`,
			httpmock.NewJsonResponderOrPanic(200, map[string]any{
				"current": map[string]any{
					"time":                 "2026-08-25T12:00",
					"temperature_2m":       31.5,
					"apparent_temperature": 33.0,
					"relative_humidity_2m": 40,
					"wind_speed_10m":       12.5,
					"weather_code":         1,
				},
				"daily": map[string]any{
					"time":               []string{"2026-08-25", "2026-08-26"},
					"temperature_2m_min": []float64{24.0, 23.5},
					"temperature_2m_max": []float64{33.0, 32.0},
					"weather_code":       []int{1, 3},
				},
			}),
		)
		// when
		w, ff, err := c.Forecast(ctx, 30.0444, 31.2357, 2)
		// then
		if assert.NoError(t, err) {
			assert.InDelta(t, 31.5, w.TemperatureC, 0.01)
			assert.InDelta(t, 33.0, w.FeelsLikeC.ValueOrZero(), 0.01)
			assert.Equal(t, 40, w.HumidityPct.ValueOrZero())
			assert.Equal(t, "Mainly clear", w.Conditions)
			if assert.Len(t, ff, 2) {
				assert.Equal(t, "Overcast", ff[1].Conditions)
			}
		}
	})
	t.Run("should return error when current temperature is missing", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://api\.open-meteo\.com/v1/forecast`,
			httpmock.NewJsonResponderOrPanic(200, map[string]any{}),
		)
		// when
		_, _, err := c.Forecast(ctx, 30.0444, 31.2357, 1)
		// then
		assert.Error(t, err)
	})
	t.Run("should return error on HTTP error", func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://api\.open-meteo\.com/v1/forecast`,
			httpmock.NewStringResponder(500, ""),
		)
		_, _, err := c.Forecast(ctx, 30.0444, 31.2357, 1)
		assert.ErrorIs(t, err, openmeteo.ErrHTTPError)
	})
}

func TestConditions(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, "Clear sky"},
		{95, "Thunderstorm"},
		{42, "Unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, openmeteo.Conditions(tc.code))
	}
}
