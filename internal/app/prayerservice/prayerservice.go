// Package prayerservice provides the prayer schedule for the current location.
//
// It combines the location resolver, the AlAdhan client and local storage
// into a daily refresh with an offline fallback.
package prayerservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maniartech/signals"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/aladhan"
	"github.com/minaretapp/minaret/internal/app/geoip"
	"github.com/minaretapp/minaret/internal/app/locations"
	"github.com/minaretapp/minaret/internal/app/openmeteo"
	"github.com/minaretapp/minaret/internal/app/storage"
)

const (
	forecastDays     = 5
	keepScheduleDays = 30
)

// Result is the outcome of a schedule refresh.
type Result struct {
	Day      app.PrayerDay
	Weather  *app.WeatherInfo // nil when no weather could be fetched
	Forecast []app.DailyForecast
	Offline  bool // true when the schedule was served from local storage
}

// PrayerService fetches, stores and publishes daily prayer schedules.
type PrayerService struct {
	// ScheduleUpdated is emitted after every successful refresh.
	ScheduleUpdated signals.Signal[Result]

	// GeoIPClient enables automatic location detection when set.
	GeoIPClient *geoip.Client
	// WeatherClient enables the weather supplement when set.
	WeatherClient *openmeteo.Client
	// Catalog is used to expand country codes from the IP lookup.
	Catalog *locations.Catalog

	ac       *aladhan.Client
	settings app.Settings
	sf       singleflight.Group
	st       *storage.Storage
}

// New returns a new PrayerService.
func New(st *storage.Storage, ac *aladhan.Client, settings app.Settings) *PrayerService {
	s := &PrayerService{
		ScheduleUpdated: signals.New[Result](),
		ac:              ac,
		settings:        settings,
		st:              st,
	}
	return s
}

// RefreshDay fetches the schedule for today and, when coordinates are known,
// the current weather. Concurrent calls are collapsed into one refresh.
//
// When the API is unavailable the most recent stored schedule for the
// location is returned with Offline set.
func (s *PrayerService) RefreshDay(ctx context.Context) (Result, error) {
	x, err, _ := s.sf.Do("refresh", func() (any, error) {
		return s.refreshDay(ctx, time.Now())
	})
	if err != nil {
		return Result{}, err
	}
	return x.(Result), nil
}

func (s *PrayerService) refreshDay(ctx context.Context, now time.Time) (Result, error) {
	loc, err := s.ResolveLocation(ctx)
	if err != nil {
		return Result{}, err
	}
	slog.Info("Refreshing prayer schedule", "location", loc)
	var r Result
	g, ctx2 := errgroup.WithContext(ctx)
	g.Go(func() error {
		day, err := s.fetchDay(ctx2, loc, now)
		if err != nil {
			day, err2 := s.storedFallback(ctx2, loc, now)
			if err2 != nil {
				return err
			}
			slog.Warn("Serving stored schedule after fetch failure", "error", err)
			r.Day = day
			r.Offline = true
			return nil
		}
		if err := s.st.UpdateOrCreatePrayerDay(ctx2, day); err != nil {
			slog.Error("Failed to store schedule", "error", err)
		}
		if err := s.st.DeletePrayerDaysBefore(ctx2, now.AddDate(0, 0, -keepScheduleDays)); err != nil {
			slog.Error("Failed to prune stored schedules", "error", err)
		}
		r.Day = day
		return nil
	})
	if s.WeatherClient != nil && loc.HasCoordinates() {
		g.Go(func() error {
			w, ff, err := s.WeatherClient.Forecast(
				ctx2,
				loc.Latitude.ValueOrZero(),
				loc.Longitude.ValueOrZero(),
				forecastDays,
			)
			if err != nil {
				// weather is a nice-to-have
				slog.Warn("Weather fetch failed", "location", loc, "error", err)
				return nil
			}
			r.Weather = &w
			r.Forecast = ff
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	s.ScheduleUpdated.Emit(context.Background(), r)
	return r, nil
}

// ResolveLocation determines the location to fetch the schedule for.
//
// With auto location enabled it queries the geolocation service once and
// falls back to the last known and then the manual location. With auto
// location disabled only the manual location is used and no geolocation
// request is made.
func (s *PrayerService) ResolveLocation(ctx context.Context) (app.Location, error) {
	if !s.settings.AutoLocation() {
		loc, ok := s.settings.ManualLocation()
		if !ok || loc.City == "" || loc.Country == "" {
			return app.Location{}, fmt.Errorf("manual location: %w", app.ErrNoLocation)
		}
		return loc, nil
	}
	if s.GeoIPClient == nil {
		return app.Location{}, fmt.Errorf("auto location without geoip client: %w", app.ErrNoLocation)
	}
	loc, err := s.GeoIPClient.Lookup(ctx)
	if err != nil {
		slog.Warn("Location detection failed, using saved location", "error", err)
		if loc, ok := s.settings.LastLocation(); ok && loc.IsValid() {
			return loc, nil
		}
		if loc, ok := s.settings.ManualLocation(); ok && loc.IsValid() {
			return loc, nil
		}
		return app.Location{}, fmt.Errorf("auto location: %w", app.ErrNoLocation)
	}
	if s.Catalog != nil {
		if c, ok := s.Catalog.Country(loc.CountryCode); ok {
			loc.Country = c.Name
		}
	}
	s.settings.SetLastLocation(loc)
	return loc, nil
}

func (s *PrayerService) fetchDay(ctx context.Context, loc app.Location, now time.Time) (app.PrayerDay, error) {
	t, err := s.ac.Timings(ctx, aladhan.TimingsRequest{
		Date:      now,
		City:      loc.City,
		Country:   loc.Country,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Method:    s.settings.CalculationMethod(),
		School:    s.settings.School(),
	})
	if err != nil {
		return app.PrayerDay{}, err
	}
	return buildPrayerDay(loc, t, now)
}

func (s *PrayerService) storedFallback(ctx context.Context, loc app.Location, now time.Time) (app.PrayerDay, error) {
	day, err := s.st.GetPrayerDay(ctx, loc, now)
	if err == nil {
		return day, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return app.PrayerDay{}, err
	}
	return s.st.GetLatestPrayerDay(ctx, loc)
}

// NextRefreshAt returns when the schedule for the next day should be fetched,
// which is shortly after midnight in the schedule's timezone.
func NextRefreshAt(day app.PrayerDay) time.Time {
	tz := time.UTC
	if len(day.Prayers) > 0 {
		tz = day.Prayers[0].Time.Location()
	}
	d := day.GregorianDate
	return time.Date(d.Year(), d.Month(), d.Day()+1, 0, 5, 0, 0, tz)
}

// buildPrayerDay converts an API result into the domain type.
func buildPrayerDay(loc app.Location, t aladhan.Timings, now time.Time) (app.PrayerDay, error) {
	tzName := t.Timezone
	if tzName == "" {
		tzName = loc.Timezone
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil || tzName == "" {
		slog.Warn("Unknown schedule timezone, falling back to UTC", "timezone", tzName)
		tzName = "UTC"
		tz = time.UTC
	}
	date := now
	if d, err := time.ParseInLocation("02-01-2006", t.GregorianDate, tz); err == nil {
		date = d
	}
	pd := app.PrayerDay{
		HijriDate:     t.HijriDate,
		GregorianDate: date,
		RetrievedAt:   now.UTC(),
	}
	for _, n := range app.PrayerNames() {
		hour, minute, err := parseClock(t.Times[n])
		if err != nil {
			return app.PrayerDay{}, fmt.Errorf("build prayer day: %s: %w", n, err)
		}
		pd.Prayers = append(pd.Prayers, app.Prayer{
			Name: n,
			Time: time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, tz),
		})
	}
	loc.Timezone = tzName
	if !t.Latitude.IsEmpty() {
		loc.Latitude = t.Latitude
	}
	if !t.Longitude.IsEmpty() {
		loc.Longitude = t.Longitude
	}
	pd.Location = loc
	return pd, nil
}

// parseClock extracts hour and minute from an API time string.
// Strings may carry a timezone suffix like "05:31 (EET)".
func parseClock(s string) (int, int, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ':' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if len(clean) > 5 {
		clean = clean[:5]
	}
	t, err := time.Parse("15:04", clean)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed time string: %q", s)
	}
	return t.Hour(), t.Minute(), nil
}
