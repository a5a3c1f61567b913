// Package geoip resolves the user's approximate location from their IP address.
package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/optional"
)

const lookupURLDefault = "https://ipinfo.io/json"

// ErrHTTPError is returned when the service responds with an HTTP error.
var ErrHTTPError = errors.New("HTTP error")

// Client is a client for the ipinfo.io geolocation service.
//
// A lookup is a single attempt. Falling back to a saved location
// on failure is the caller's responsibility.
type Client struct {
	hc        *http.Client
	lookupURL string
}

// New returns a new Client. Panics when hc is nil.
func New(hc *http.Client) *Client {
	if hc == nil {
		panic("geoip client needs http client")
	}
	return &Client{hc: hc, lookupURL: lookupURLDefault}
}

// NewWithURL returns a new Client with a custom lookup URL.
func NewWithURL(hc *http.Client, lookupURL string) *Client {
	c := New(hc)
	c.lookupURL = lookupURL
	return c
}

type lookupPayload struct {
	City     string `json:"city"`
	Country  string `json:"country"`
	Loc      string `json:"loc"`
	Timezone string `json:"timezone"`
}

// Lookup detects the current location from the caller's IP address.
func (c *Client) Lookup(ctx context.Context) (app.Location, error) {
	var zero app.Location
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.lookupURL, nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return zero, fmt.Errorf("geoip lookup: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return zero, fmt.Errorf("geoip lookup: %s: %w", resp.Status, ErrHTTPError)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, err
	}
	var payload lookupPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return zero, fmt.Errorf("geoip lookup: %w", err)
	}
	loc := app.Location{
		City:        payload.City,
		CountryCode: payload.Country,
		Country:     payload.Country,
		Timezone:    resolveTimezone(payload.Timezone),
	}
	if lat, lon, err := parseLoc(payload.Loc); err == nil {
		loc.Latitude = optional.New(lat)
		loc.Longitude = optional.New(lon)
	}
	return loc, nil
}

// parseLoc splits an ipinfo "lat,lon" token into coordinates.
func parseLoc(s string) (float64, float64, error) {
	before, after, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, fmt.Errorf("malformed loc token: %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(before), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed loc token: %q", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(after), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed loc token: %q", s)
	}
	return lat, lon, nil
}

// resolveTimezone validates an IANA timezone name and falls back
// to the system's timezone and finally UTC.
func resolveTimezone(name string) string {
	if name != "" {
		if _, err := time.LoadLocation(name); err == nil {
			return name
		}
	}
	if tz := time.Local.String(); tz != "" && tz != "Local" {
		return tz
	}
	return "UTC"
}
