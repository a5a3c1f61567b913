package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/storage"
	"github.com/minaretapp/minaret/internal/app/testutil"
)

func TestLocationKey(t *testing.T) {
	cases := []struct {
		name string
		in   app.Location
		want string
	}{
		{"simple", app.Location{City: "Cairo", Country: "Egypt"}, "cairo|egypt"},
		{"trims and lowers", app.Location{City: " Cairo ", Country: "EGYPT"}, "cairo|egypt"},
		{"empty", app.Location{}, "|"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, storage.LocationKey(tc.in))
		})
	}
}

func TestPrayerDay(t *testing.T) {
	db, st, factory := testutil.NewDBInMemory()
	defer db.Close()
	ctx := context.Background()
	t.Run("can store and retrieve a schedule", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		pd := factory.CreatePrayerDay()
		// when
		got, err := st.GetPrayerDay(ctx, pd.Location, pd.GregorianDate)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, pd.HijriDate, got.HijriDate)
			assert.Equal(t, pd.Location.City, got.Location.City)
			assert.Len(t, got.Prayers, 5)
		}
	})
	t.Run("replaces an existing schedule for the same day", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		pd := factory.CreatePrayerDay()
		pd.HijriDate = "2 Muharram 1447 AH"
		// when
		err := st.UpdateOrCreatePrayerDay(ctx, pd)
		// then
		if assert.NoError(t, err) {
			got, err := st.GetPrayerDay(ctx, pd.Location, pd.GregorianDate)
			if assert.NoError(t, err) {
				assert.Equal(t, "2 Muharram 1447 AH", got.HijriDate)
			}
		}
	})
	t.Run("should return error when schedule does not exist", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		// when
		_, err := st.GetPrayerDay(ctx, app.Location{City: "Cairo", Country: "Egypt"}, time.Now())
		// then
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
	t.Run("can return the latest schedule for a location", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		loc := factory.CreateLocation()
		factory.CreatePrayerDay(app.PrayerDay{
			Location:      loc,
			GregorianDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		})
		latest := factory.CreatePrayerDay(app.PrayerDay{
			Location:      loc,
			GregorianDate: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		})
		// when
		got, err := st.GetLatestPrayerDay(ctx, loc)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, latest.GregorianDate.Format(time.DateOnly), got.GregorianDate.Format(time.DateOnly))
		}
	})
	t.Run("can delete old schedules", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		loc := factory.CreateLocation()
		old := factory.CreatePrayerDay(app.PrayerDay{
			Location:      loc,
			GregorianDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		})
		current := factory.CreatePrayerDay(app.PrayerDay{
			Location:      loc,
			GregorianDate: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		})
		// when
		err := st.DeletePrayerDaysBefore(ctx, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
		// then
		if assert.NoError(t, err) {
			_, err := st.GetPrayerDay(ctx, loc, old.GregorianDate)
			assert.ErrorIs(t, err, storage.ErrNotFound)
			_, err = st.GetPrayerDay(ctx, loc, current.GregorianDate)
			assert.NoError(t, err)
		}
	})
	t.Run("keeps coordinates through a storage round trip", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		pd := factory.CreatePrayerDay()
		// when
		got, err := st.GetPrayerDay(ctx, pd.Location, pd.GregorianDate)
		// then
		if assert.NoError(t, err) {
			assert.InDelta(t, 30.0444, got.Location.Latitude.ValueOrZero(), 0.001)
			assert.InDelta(t, 31.2357, got.Location.Longitude.ValueOrZero(), 0.001)
		}
	})
}
