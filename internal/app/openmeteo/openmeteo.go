// Package openmeteo provides a client for the Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/optional"
)

const baseURLDefault = "https://api.open-meteo.com/v1/forecast"

// ErrHTTPError is returned when the API responds with an HTTP error.
var ErrHTTPError = errors.New("HTTP error")

// weather codes mapped to simple descriptions, per the Open-Meteo docs
var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// Conditions returns a human readable description for an Open-Meteo weather code.
func Conditions(code int) string {
	if s, ok := weatherCodes[code]; ok {
		return s
	}
	return "Unknown"
}

// Client is a client for the Open-Meteo API.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a new Client. Panics when hc is nil.
func New(hc *http.Client) *Client {
	if hc == nil {
		panic("openmeteo client needs http client")
	}
	return &Client{baseURL: baseURLDefault, hc: hc}
}

// NewWithBaseURL returns a new Client with a custom base URL.
func NewWithBaseURL(hc *http.Client, baseURL string) *Client {
	c := New(hc)
	c.baseURL = baseURL
	return c
}

type forecastPayload struct {
	Current struct {
		Time               string   `json:"time"`
		Temperature2m      *float64 `json:"temperature_2m"`
		ApparentTemp       *float64 `json:"apparent_temperature"`
		RelativeHumidity2m *int     `json:"relative_humidity_2m"`
		WindSpeed10m       *float64 `json:"wind_speed_10m"`
		WeatherCode        *int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		Time             []string  `json:"time"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		WeatherCode      []int     `json:"weather_code"`
	} `json:"daily"`
}

// Forecast fetches current conditions and a daily forecast for the given coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, days int) (app.WeatherInfo, []app.DailyForecast, error) {
	var zero app.WeatherInfo
	if days < 1 {
		days = 1
	}
	v := url.Values{}
	v.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	v.Set("current", "temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,weather_code")
	v.Set("daily", "temperature_2m_min,temperature_2m_max,weather_code")
	v.Set("forecast_days", strconv.Itoa(days))
	v.Set("timezone", "UTC")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+v.Encode(), nil)
	if err != nil {
		return zero, nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return zero, nil, fmt.Errorf("forecast: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return zero, nil, fmt.Errorf("forecast: %s: %w", resp.Status, ErrHTTPError)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, nil, err
	}
	var payload forecastPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return zero, nil, fmt.Errorf("forecast: %w", err)
	}
	if payload.Current.Temperature2m == nil {
		return zero, nil, fmt.Errorf("forecast: missing current temperature")
	}
	w := app.WeatherInfo{
		TemperatureC: *payload.Current.Temperature2m,
	}
	if payload.Current.ApparentTemp != nil {
		w.FeelsLikeC = optional.New(*payload.Current.ApparentTemp)
	}
	if payload.Current.RelativeHumidity2m != nil {
		w.HumidityPct = optional.New(*payload.Current.RelativeHumidity2m)
	}
	if payload.Current.WindSpeed10m != nil {
		w.WindSpeedKmh = optional.New(*payload.Current.WindSpeed10m)
	}
	if payload.Current.WeatherCode != nil {
		w.Conditions = Conditions(*payload.Current.WeatherCode)
	}
	if t, err := time.Parse("2006-01-02T15:04", payload.Current.Time); err == nil {
		w.ObservedAt = t.UTC()
	}
	var ff []app.DailyForecast
	d := payload.Daily
	for i, day := range d.Time {
		if i >= len(d.Temperature2mMin) || i >= len(d.Temperature2mMax) || i >= len(d.WeatherCode) {
			break
		}
		t, err := time.Parse(time.DateOnly, day)
		if err != nil {
			continue
		}
		ff = append(ff, app.DailyForecast{
			Date:        t,
			MinC:        d.Temperature2mMin[i],
			MaxC:        d.Temperature2mMax[i],
			WeatherCode: d.WeatherCode[i],
			Conditions:  Conditions(d.WeatherCode[i]),
		})
	}
	return w, ff, nil
}
