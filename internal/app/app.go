// Package app is the root package of all domain related packages.
//
// All entity types are defined in this package.
package app

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/minaretapp/minaret/internal/optional"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoLocation is returned when no usable location can be resolved.
	ErrNoLocation = errors.New("no location configured")
)

// Titler converts a string into a title for english language.
var Titler = cases.Title(language.English)

// PrayerName identifies one of the five daily prayers.
type PrayerName string

const (
	Fajr    PrayerName = "Fajr"
	Dhuhr   PrayerName = "Dhuhr"
	Asr     PrayerName = "Asr"
	Maghrib PrayerName = "Maghrib"
	Isha    PrayerName = "Isha"
)

// PrayerNames returns the five daily prayers in chronological order.
func PrayerNames() []PrayerName {
	return []PrayerName{Fajr, Dhuhr, Asr, Maghrib, Isha}
}

// ParsePrayerName returns the PrayerName for s or an error when s is not a prayer.
func ParsePrayerName(s string) (PrayerName, error) {
	n := PrayerName(Titler.String(s))
	for _, p := range PrayerNames() {
		if p == n {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown prayer name: %s", s)
}

// Location is a place prayer times can be calculated for.
//
// Either city and country or coordinates are sufficient to request a schedule.
type Location struct {
	City        string
	Country     string
	CountryCode string
	Latitude    optional.Optional[float64]
	Longitude   optional.Optional[float64]
	Timezone    string
}

// HasCoordinates reports whether both latitude and longitude are set.
func (l Location) HasCoordinates() bool {
	return !l.Latitude.IsEmpty() && !l.Longitude.IsEmpty()
}

// IsValid reports whether the location is sufficient for a schedule request.
func (l Location) IsValid() bool {
	return (l.City != "" && l.Country != "") || l.HasCoordinates()
}

func (l Location) String() string {
	if l.City == "" && l.Country == "" {
		return l.Timezone
	}
	if l.City == "" {
		return l.Country
	}
	if l.Country == "" {
		return l.City
	}
	return fmt.Sprintf("%s, %s", l.City, l.Country)
}

// Prayer is a single prayer with its absolute start time.
type Prayer struct {
	Name PrayerName
	Time time.Time
}

// PrayerDay is the prayer schedule for one location and date.
//
// A PrayerDay is immutable after it has been fetched
// and is only replaced as a whole by the next refresh.
type PrayerDay struct {
	Location      Location
	HijriDate     string
	GregorianDate time.Time
	Prayers       []Prayer
	RetrievedAt   time.Time
}

// NextPrayer returns the first prayer strictly after now
// and reports whether one exists.
func (pd PrayerDay) NextPrayer(now time.Time) (Prayer, bool) {
	for _, p := range pd.Prayers {
		if p.Time.After(now) {
			return p, true
		}
	}
	return Prayer{}, false
}

// PrayerAt returns the prayer with the given name.
func (pd PrayerDay) PrayerAt(name PrayerName) (Prayer, bool) {
	for _, p := range pd.Prayers {
		if p.Name == name {
			return p, true
		}
	}
	return Prayer{}, false
}

// WeatherInfo is a snapshot of current weather conditions.
type WeatherInfo struct {
	TemperatureC float64
	FeelsLikeC   optional.Optional[float64]
	HumidityPct  optional.Optional[int]
	WindSpeedKmh optional.Optional[float64]
	Conditions   string
	ObservedAt   time.Time
}

// TemperatureF returns the temperature in Fahrenheit.
func (w WeatherInfo) TemperatureF() float64 {
	return w.TemperatureC*9.0/5.0 + 32.0
}

// DailyForecast is a single day of forecasted weather.
type DailyForecast struct {
	Date        time.Time
	MinC        float64
	MaxC        float64
	WeatherCode int
	Conditions  string
}

// Country is an entry of the city catalog.
type Country struct {
	Name string
	Code string // ISO 3166-1 alpha-2
}

// City is a city of a catalog country with its coordinates.
type City struct {
	Name      string
	Latitude  optional.Optional[float64]
	Longitude optional.Optional[float64]
}
