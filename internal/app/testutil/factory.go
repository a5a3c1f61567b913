package testutil

import (
	"context"
	"time"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/storage"
	"github.com/minaretapp/minaret/internal/optional"
)

// Factory creates test objects in the repository.
type Factory struct {
	st *storage.Storage
}

func NewFactory(st *storage.Storage) Factory {
	return Factory{st: st}
}

// CreateLocation is a test factory for Location objects.
func (f Factory) CreateLocation(args ...app.Location) app.Location {
	var l app.Location
	if len(args) > 0 {
		l = args[0]
	}
	if l.City == "" {
		l.City = "Cairo"
	}
	if l.Country == "" {
		l.Country = "Egypt"
	}
	if l.CountryCode == "" {
		l.CountryCode = "EG"
	}
	if l.Latitude.IsEmpty() {
		l.Latitude = optional.New(30.0444)
	}
	if l.Longitude.IsEmpty() {
		l.Longitude = optional.New(31.2357)
	}
	if l.Timezone == "" {
		l.Timezone = "Africa/Cairo"
	}
	return l
}

// CreatePrayerDay is a test factory for stored PrayerDay objects.
func (f Factory) CreatePrayerDay(args ...app.PrayerDay) app.PrayerDay {
	ctx := context.Background()
	var pd app.PrayerDay
	if len(args) > 0 {
		pd = args[0]
	}
	if pd.Location.City == "" {
		pd.Location = f.CreateLocation()
	}
	if pd.GregorianDate.IsZero() {
		pd.GregorianDate = time.Now()
	}
	if pd.HijriDate == "" {
		pd.HijriDate = "1 Muharram 1447 AH"
	}
	if len(pd.Prayers) == 0 {
		d := pd.GregorianDate
		hours := map[app.PrayerName]int{
			app.Fajr:    5,
			app.Dhuhr:   12,
			app.Asr:     15,
			app.Maghrib: 18,
			app.Isha:    20,
		}
		for _, n := range app.PrayerNames() {
			pd.Prayers = append(pd.Prayers, app.Prayer{
				Name: n,
				Time: time.Date(d.Year(), d.Month(), d.Day(), hours[n], 0, 0, 0, time.UTC),
			})
		}
	}
	if pd.RetrievedAt.IsZero() {
		pd.RetrievedAt = time.Now().UTC()
	}
	if err := f.st.UpdateOrCreatePrayerDay(ctx, pd); err != nil {
		panic(err)
	}
	return pd
}
