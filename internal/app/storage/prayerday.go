package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/optional"
)

// LocationKey returns the canonical storage key for a location.
func LocationKey(l app.Location) string {
	return strings.ToLower(strings.TrimSpace(l.City) + "|" + strings.TrimSpace(l.Country))
}

// prayerDayJSON is the stored representation of an app.PrayerDay.
type prayerDayJSON struct {
	City        string            `json:"city"`
	Country     string            `json:"country"`
	CountryCode string            `json:"country_code,omitempty"`
	Latitude    *float64          `json:"latitude,omitempty"`
	Longitude   *float64          `json:"longitude,omitempty"`
	Timezone    string            `json:"timezone,omitempty"`
	Hijri       string            `json:"hijri"`
	Gregorian   time.Time         `json:"gregorian"`
	Prayers     []prayerTimeJSON  `json:"prayers"`
	RetrievedAt time.Time         `json:"retrieved_at"`
}

type prayerTimeJSON struct {
	Name string    `json:"name"`
	Time time.Time `json:"time"`
}

// UpdateOrCreatePrayerDay stores the schedule for its location and date,
// replacing any previous row.
func (st *Storage) UpdateOrCreatePrayerDay(ctx context.Context, pd app.PrayerDay) error {
	o := prayerDayJSON{
		City:        pd.Location.City,
		Country:     pd.Location.Country,
		CountryCode: pd.Location.CountryCode,
		Timezone:    pd.Location.Timezone,
		Hijri:       pd.HijriDate,
		Gregorian:   pd.GregorianDate,
		RetrievedAt: pd.RetrievedAt,
	}
	if v, err := pd.Location.Latitude.Value(); err == nil {
		o.Latitude = &v
	}
	if v, err := pd.Location.Longitude.Value(); err == nil {
		o.Longitude = &v
	}
	for _, p := range pd.Prayers {
		o.Prayers = append(o.Prayers, prayerTimeJSON{Name: string(p.Name), Time: p.Time})
	}
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("update or create prayer day: %w", err)
	}
	_, err = st.db.ExecContext(
		ctx,
		`INSERT INTO prayer_days (location_key, day, hijri_date, data, retrieved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (location_key, day) DO UPDATE
		SET hijri_date = excluded.hijri_date, data = excluded.data, retrieved_at = excluded.retrieved_at`,
		LocationKey(pd.Location),
		pd.GregorianDate.Format(time.DateOnly),
		pd.HijriDate,
		data,
		pd.RetrievedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("update or create prayer day: %w", err)
	}
	return nil
}

// GetPrayerDay returns the stored schedule for a location and date
// or ErrNotFound when none exists.
func (st *Storage) GetPrayerDay(ctx context.Context, loc app.Location, day time.Time) (app.PrayerDay, error) {
	row := st.db.QueryRowContext(
		ctx,
		"SELECT data FROM prayer_days WHERE location_key = ? AND day = ?",
		LocationKey(loc),
		day.Format(time.DateOnly),
	)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return app.PrayerDay{}, fmt.Errorf("get prayer day: %w", err)
	}
	return unmarshalPrayerDay(data)
}

// GetLatestPrayerDay returns the most recently stored schedule for a location
// or ErrNotFound when none exists.
func (st *Storage) GetLatestPrayerDay(ctx context.Context, loc app.Location) (app.PrayerDay, error) {
	row := st.db.QueryRowContext(
		ctx,
		"SELECT data FROM prayer_days WHERE location_key = ? ORDER BY day DESC LIMIT 1",
		LocationKey(loc),
	)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return app.PrayerDay{}, fmt.Errorf("get latest prayer day: %w", err)
	}
	return unmarshalPrayerDay(data)
}

// DeletePrayerDaysBefore removes stored schedules older then the given day.
func (st *Storage) DeletePrayerDaysBefore(ctx context.Context, day time.Time) error {
	_, err := st.db.ExecContext(
		ctx,
		"DELETE FROM prayer_days WHERE day < ?",
		day.Format(time.DateOnly),
	)
	if err != nil {
		return fmt.Errorf("delete prayer days: %w", err)
	}
	return nil
}

func unmarshalPrayerDay(data []byte) (app.PrayerDay, error) {
	var o prayerDayJSON
	if err := json.Unmarshal(data, &o); err != nil {
		return app.PrayerDay{}, fmt.Errorf("unmarshal prayer day: %w", err)
	}
	loc := app.Location{
		City:        o.City,
		Country:     o.Country,
		CountryCode: o.CountryCode,
		Timezone:    o.Timezone,
	}
	if o.Latitude != nil {
		loc.Latitude = optional.New(*o.Latitude)
	}
	if o.Longitude != nil {
		loc.Longitude = optional.New(*o.Longitude)
	}
	pd := app.PrayerDay{
		Location:      loc,
		HijriDate:     o.Hijri,
		GregorianDate: o.Gregorian,
		RetrievedAt:   o.RetrievedAt,
	}
	for _, p := range o.Prayers {
		name, err := app.ParsePrayerName(p.Name)
		if err != nil {
			return app.PrayerDay{}, fmt.Errorf("unmarshal prayer day: %w", err)
		}
		pd.Prayers = append(pd.Prayers, app.Prayer{Name: name, Time: p.Time})
	}
	return pd, nil
}
