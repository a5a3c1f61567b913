// Package scheduler triggers callbacks at prayer times and daily refreshes.
//
// It is a thin wrapper around the gocron job scheduler. All jobs are
// one-shot: each refresh replaces the jobs of the previous schedule.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/minaretapp/minaret/internal/app"
)

const (
	tagPrayer  = "prayer"
	tagRefresh = "refresh"
)

// PrayerScheduler manages the one-shot jobs for one daily schedule.
type PrayerScheduler struct {
	s  gocron.Scheduler
	tz *time.Location
}

// New returns a new started PrayerScheduler for a timezone.
func New(tz *time.Location) (*PrayerScheduler, error) {
	if tz == nil {
		tz = time.UTC
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(tz))
	if err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}
	s.Start()
	return &PrayerScheduler{s: s, tz: tz}, nil
}

// Timezone returns the timezone the scheduler runs in.
func (ps *PrayerScheduler) Timezone() *time.Location {
	return ps.tz
}

// Shutdown stops the scheduler and removes all jobs.
func (ps *PrayerScheduler) Shutdown() {
	if err := ps.s.Shutdown(); err != nil {
		slog.Error("Failed to shut down scheduler", "error", err)
	}
}

// SchedulePrayers registers a callback for each upcoming prayer,
// replacing all previously scheduled prayer jobs.
// Prayers that are not strictly in the future are skipped.
func (ps *PrayerScheduler) SchedulePrayers(prayers []app.Prayer, callback func(app.PrayerName)) error {
	ps.s.RemoveByTags(tagPrayer)
	now := time.Now().In(ps.tz)
	for _, p := range prayers {
		if !p.Time.After(now) {
			continue
		}
		j, err := ps.s.NewJob(
			gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(p.Time)),
			gocron.NewTask(callback, p.Name),
			gocron.WithName(string(p.Name)),
			gocron.WithTags(tagPrayer),
		)
		if err != nil {
			return fmt.Errorf("schedule prayer %s: %w", p.Name, err)
		}
		slog.Debug("Scheduled prayer job", "id", j.ID(), "prayer", p.Name, "at", p.Time)
	}
	return nil
}

// ScheduleRefresh registers a one-shot refresh callback,
// replacing any previously scheduled refresh job.
func (ps *PrayerScheduler) ScheduleRefresh(at time.Time, callback func()) error {
	ps.s.RemoveByTags(tagRefresh)
	j, err := ps.s.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
		gocron.NewTask(callback),
		gocron.WithName("daily refresh"),
		gocron.WithTags(tagRefresh),
	)
	if err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}
	slog.Debug("Scheduled refresh job", "id", j.ID(), "at", at)
	return nil
}

// ClearPrayers removes all scheduled prayer jobs.
func (ps *PrayerScheduler) ClearPrayers() {
	ps.s.RemoveByTags(tagPrayer)
}

// Jobs returns the names of all currently scheduled jobs.
func (ps *PrayerScheduler) Jobs() []string {
	jj := ps.s.Jobs()
	names := make([]string, 0, len(jj))
	for _, j := range jj {
		names = append(names, j.Name())
	}
	return names
}
