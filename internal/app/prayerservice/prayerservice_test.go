package prayerservice_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/aladhan"
	"github.com/minaretapp/minaret/internal/app/geoip"
	"github.com/minaretapp/minaret/internal/app/prayerservice"
	"github.com/minaretapp/minaret/internal/app/testutil"
)

func makeTimingsPayload() map[string]any {
	now := time.Now()
	return map[string]any{
		"code":   200,
		"status": "OK",
		"data": map[string]any{
			"timings": map[string]string{
				"Fajr":    "05:31 (EET)",
				"Sunrise": "06:58",
				"Dhuhr":   "12:51",
				"Asr":     "16:22",
				"Maghrib": "18:45",
				"Isha":    "20:03",
			},
			"date": map[string]any{
				"hijri": map[string]any{
					"date": "11-03-1448",
					"day":  "11",
					"month": map[string]any{
						"en": "Rabi Al-Awwal",
					},
					"year": "1448",
				},
				"gregorian": map[string]any{
					"date": now.Format("02-01-2006"),
				},
			},
			"meta": map[string]any{
				"latitude":  30.0444,
				"longitude": 31.2357,
				"timezone":  "Africa/Cairo",
			},
		},
	}
}

func TestRefreshDay(t *testing.T) {
	db, st, factory := testutil.NewDBInMemory()
	defer db.Close()
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	ac := aladhan.New(http.DefaultClient)
	ctx := context.Background()
	t.Run("can refresh with a manual location without contacting geolocation", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://api\.aladhan\.com/v1/timings`,
			httpmock.NewJsonResponderOrPanic(200, makeTimingsPayload()),
		)
		httpmock.RegisterResponder("GET", "https://ipinfo.io/json",
			httpmock.NewJsonResponderOrPanic(200, map[string]any{"city": "Nowhere"}))
		settings := testutil.NewFakeSettings()
		settings.SetAutoLocation(false)
		settings.SetManualLocation(factory.CreateLocation())
		s := prayerservice.New(st, ac, settings)
		s.GeoIPClient = geoip.New(http.DefaultClient)
		// when
		r, err := s.RefreshDay(ctx)
		// then
		if assert.NoError(t, err) {
			assert.False(t, r.Offline)
			assert.Equal(t, "Cairo", r.Day.Location.City)
			assert.Len(t, r.Day.Prayers, 5)
			assert.Equal(t, "11 Rabi Al-Awwal 1448 AH", r.Day.HijriDate)
		}
		info := httpmock.GetCallCountInfo()
		assert.Equal(t, 0, info["GET https://ipinfo.io/json"])
	})
	t.Run("can detect the location when auto location is enabled", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://api\.aladhan\.com/v1/timings`,
			httpmock.NewJsonResponderOrPanic(200, makeTimingsPayload()),
		)
		httpmock.RegisterResponder("GET", "https://ipinfo.io/json",
			httpmock.NewJsonResponderOrPanic(200, map[string]any{
				"city":     "Cairo",
				"country":  "EG",
				"loc":      "30.0444,31.2357",
				"timezone": "Africa/Cairo",
			}))
		settings := testutil.NewFakeSettings()
		settings.SetAutoLocation(true)
		s := prayerservice.New(st, ac, settings)
		s.GeoIPClient = geoip.New(http.DefaultClient)
		// when
		r, err := s.RefreshDay(ctx)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, "Cairo", r.Day.Location.City)
			last, ok := settings.LastLocation()
			assert.True(t, ok)
			assert.Equal(t, "Cairo", last.City)
		}
	})
	t.Run("should serve the stored schedule when the API is unavailable", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://api\.aladhan\.com/v1/timings`,
			httpmock.NewStringResponder(500, ""),
		)
		stored := factory.CreatePrayerDay()
		settings := testutil.NewFakeSettings()
		settings.SetAutoLocation(false)
		settings.SetManualLocation(stored.Location)
		s := prayerservice.New(st, ac, settings)
		// when
		r, err := s.RefreshDay(ctx)
		// then
		if assert.NoError(t, err) {
			assert.True(t, r.Offline)
			assert.Equal(t, stored.HijriDate, r.Day.HijriDate)
		}
	})
	t.Run("should return error when API fails and nothing is stored", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://api\.aladhan\.com/v1/timings`,
			httpmock.NewStringResponder(500, ""),
		)
		settings := testutil.NewFakeSettings()
		settings.SetAutoLocation(false)
		settings.SetManualLocation(app.Location{City: "Cairo", Country: "Egypt"})
		s := prayerservice.New(st, ac, settings)
		// when
		_, err := s.RefreshDay(ctx)
		// then
		assert.Error(t, err)
	})
	t.Run("should report missing location", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		httpmock.Reset()
		settings := testutil.NewFakeSettings()
		settings.SetAutoLocation(false)
		s := prayerservice.New(st, ac, settings)
		// when
		_, err := s.RefreshDay(ctx)
		// then
		assert.ErrorIs(t, err, app.ErrNoLocation)
	})
	t.Run("should emit signal after a successful refresh", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			`=~^https://api\.aladhan\.com/v1/timings`,
			httpmock.NewJsonResponderOrPanic(200, makeTimingsPayload()),
		)
		settings := testutil.NewFakeSettings()
		settings.SetAutoLocation(false)
		settings.SetManualLocation(factory.CreateLocation())
		s := prayerservice.New(st, ac, settings)
		received := make(chan prayerservice.Result, 1)
		s.ScheduleUpdated.AddListener(func(_ context.Context, r prayerservice.Result) {
			received <- r
		})
		// when
		_, err := s.RefreshDay(ctx)
		// then
		if assert.NoError(t, err) {
			select {
			case r := <-received:
				assert.Len(t, r.Day.Prayers, 5)
			case <-time.After(5 * time.Second):
				t.Fatal("no signal received")
			}
		}
	})
}

func TestResolveLocation(t *testing.T) {
	db, st, factory := testutil.NewDBInMemory()
	defer db.Close()
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	ac := aladhan.New(http.DefaultClient)
	ctx := context.Background()
	t.Run("should fall back to the last known location when detection fails", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder("GET", "https://ipinfo.io/json",
			httpmock.NewStringResponder(500, ""))
		settings := testutil.NewFakeSettings()
		settings.SetAutoLocation(true)
		settings.SetLastLocation(factory.CreateLocation())
		s := prayerservice.New(st, ac, settings)
		s.GeoIPClient = geoip.New(http.DefaultClient)
		// when
		got, err := s.ResolveLocation(ctx)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, "Cairo", got.City)
		}
	})
	t.Run("should fall back to the manual location when detection fails", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder("GET", "https://ipinfo.io/json",
			httpmock.NewStringResponder(500, ""))
		settings := testutil.NewFakeSettings()
		settings.SetAutoLocation(true)
		settings.SetManualLocation(factory.CreateLocation())
		s := prayerservice.New(st, ac, settings)
		s.GeoIPClient = geoip.New(http.DefaultClient)
		// when
		got, err := s.ResolveLocation(ctx)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, "Cairo", got.City)
		}
	})
	t.Run("should report missing location when detection fails without fallback", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder("GET", "https://ipinfo.io/json",
			httpmock.NewStringResponder(500, ""))
		settings := testutil.NewFakeSettings()
		settings.SetAutoLocation(true)
		s := prayerservice.New(st, ac, settings)
		s.GeoIPClient = geoip.New(http.DefaultClient)
		// when
		_, err := s.ResolveLocation(ctx)
		// then
		assert.ErrorIs(t, err, app.ErrNoLocation)
	})
}
