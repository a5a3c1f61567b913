// Package aladhan provides a client for the AlAdhan prayer times API.
package aladhan

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

const baseURLDefault = "https://api.aladhan.com/v1"

// ErrHTTPError is returned when the API responds with an HTTP error.
var ErrHTTPError = errors.New("HTTP error")

// Client is a client for the AlAdhan API.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a new Client. Panics when hc is nil.
func New(hc *http.Client) *Client {
	if hc == nil {
		panic("aladhan client needs http client")
	}
	return &Client{baseURL: baseURLDefault, hc: hc}
}

// NewWithBaseURL returns a new Client with a custom base URL.
func NewWithBaseURL(hc *http.Client, baseURL string) *Client {
	c := New(hc)
	c.baseURL = baseURL
	return c
}

// TimingsRequest are the parameters for fetching a daily schedule.
//
// When coordinates are set they take precedence over city and country.
type TimingsRequest struct {
	Date      time.Time
	City      string
	Country   string
	Latitude  optional.Optional[float64]
	Longitude optional.Optional[float64]
	Method    int
	School    int
}

// Timings is the parsed result of a timings request.
type Timings struct {
	Times         map[app.PrayerName]string
	HijriDate     string
	GregorianDate string // DD-MM-YYYY
	Latitude      optional.Optional[float64]
	Longitude     optional.Optional[float64]
	Timezone      string
}

type timingsPayload struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings map[string]string `json:"timings"`
		Date    struct {
			Hijri struct {
				Date  string `json:"date"`
				Day   string `json:"day"`
				Month struct {
					En string `json:"en"`
				} `json:"month"`
				Year string `json:"year"`
			} `json:"hijri"`
			Gregorian struct {
				Date string `json:"date"`
			} `json:"gregorian"`
		} `json:"date"`
		Meta struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Timezone  string  `json:"timezone"`
		} `json:"meta"`
	} `json:"data"`
}

// Timings fetches the prayer schedule for one date.
// It uses the by-city endpoint unless the request has coordinates.
func (c *Client) Timings(ctx context.Context, arg TimingsRequest) (Timings, error) {
	var zero Timings
	if arg.Date.IsZero() {
		return zero, fmt.Errorf("timings: missing date")
	}
	v := url.Values{}
	v.Set("method", strconv.Itoa(arg.Method))
	v.Set("school", strconv.Itoa(arg.School))
	v.Set("date", arg.Date.Format("02-01-2006"))
	var path string
	if !arg.Latitude.IsEmpty() && !arg.Longitude.IsEmpty() {
		path = "/timings"
		v.Set("latitude", strconv.FormatFloat(arg.Latitude.ValueOrZero(), 'f', -1, 64))
		v.Set("longitude", strconv.FormatFloat(arg.Longitude.ValueOrZero(), 'f', -1, 64))
	} else {
		if arg.City == "" || arg.Country == "" {
			return zero, fmt.Errorf("timings: missing city or country")
		}
		path = "/timingsByCity"
		v.Set("city", arg.City)
		v.Set("country", arg.Country)
	}
	var payload timingsPayload
	if err := c.getJSON(ctx, path, v, &payload); err != nil {
		return zero, err
	}
	if payload.Code != http.StatusOK {
		return zero, fmt.Errorf("timings: unexpected API response: %s", payload.Status)
	}
	t := Timings{
		Times:         make(map[app.PrayerName]string),
		GregorianDate: payload.Data.Date.Gregorian.Date,
		Timezone:      payload.Data.Meta.Timezone,
	}
	for _, n := range app.PrayerNames() {
		s, ok := payload.Data.Timings[string(n)]
		if !ok {
			return zero, fmt.Errorf("timings: incomplete schedule: missing %s", n)
		}
		t.Times[n] = s
	}
	h := payload.Data.Date.Hijri
	if h.Day != "" && h.Month.En != "" && h.Year != "" {
		t.HijriDate = fmt.Sprintf("%s %s %s AH", h.Day, h.Month.En, h.Year)
	} else {
		t.HijriDate = h.Date
	}
	if payload.Data.Meta.Latitude != 0 || payload.Data.Meta.Longitude != 0 {
		t.Latitude = optional.New(payload.Data.Meta.Latitude)
		t.Longitude = optional.New(payload.Data.Meta.Longitude)
	}
	return t, nil
}

type countriesPayload struct {
	Code int `json:"code"`
	Data []struct {
		Name string `json:"name"`
		Code string `json:"code"`
	} `json:"data"`
}

// Countries fetches the list of countries the API supports.
func (c *Client) Countries(ctx context.Context) ([]app.Country, error) {
	var payload countriesPayload
	if err := c.getJSON(ctx, "/countries", nil, &payload); err != nil {
		return nil, err
	}
	if payload.Code != http.StatusOK {
		return nil, fmt.Errorf("countries: unexpected API response code: %d", payload.Code)
	}
	cc := make([]app.Country, 0, len(payload.Data))
	for _, r := range payload.Data {
		if r.Name == "" {
			continue
		}
		cc = append(cc, app.Country{Name: r.Name, Code: r.Code})
	}
	return cc, nil
}

type citiesPayload struct {
	Code int `json:"code"`
	Data []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"data"`
}

// Cities fetches the supported cities of a country.
func (c *Client) Cities(ctx context.Context, country string) ([]app.City, error) {
	if country == "" {
		return nil, fmt.Errorf("cities: missing country")
	}
	v := url.Values{}
	v.Set("country", country)
	var payload citiesPayload
	if err := c.getJSON(ctx, "/cities", v, &payload); err != nil {
		return nil, err
	}
	if payload.Code != http.StatusOK {
		return nil, fmt.Errorf("cities: unexpected API response code: %d", payload.Code)
	}
	cc := make([]app.City, 0, len(payload.Data))
	for _, r := range payload.Data {
		if r.Name == "" {
			continue
		}
		city := app.City{Name: r.Name}
		if r.Latitude != 0 || r.Longitude != 0 {
			city.Latitude = optional.New(r.Latitude)
			city.Longitude = optional.New(r.Longitude)
		}
		cc = append(cc, city)
	}
	return cc, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v url.Values, result any) error {
	u := c.baseURL + path
	if len(v) > 0 {
		u += "?" + v.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s: %s: %w", path, resp.Status, ErrHTTPError)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, result)
}
