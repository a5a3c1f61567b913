package ui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/ui"
)

func TestLocalization(t *testing.T) {
	t.Run("defaults to english for unknown languages", func(t *testing.T) {
		l := ui.NewLocalization("xx")
		assert.Equal(t, "en", l.CurrentLanguage())
		assert.False(t, l.IsRTL())
	})
	t.Run("can switch to arabic", func(t *testing.T) {
		l := ui.NewLocalization("en")
		l.SetLanguage("ar")
		assert.Equal(t, "ar", l.CurrentLanguage())
		assert.True(t, l.IsRTL())
		assert.Equal(t, "تحديث", l.GetText(ui.KeyRefresh))
	})
	t.Run("ignores switching to an unknown language", func(t *testing.T) {
		l := ui.NewLocalization("ar")
		l.SetLanguage("xx")
		assert.Equal(t, "ar", l.CurrentLanguage())
	})
	t.Run("toggles between english and arabic", func(t *testing.T) {
		l := ui.NewLocalization("en")
		assert.Equal(t, "ar", l.NextLanguage())
		l.SetLanguage("ar")
		assert.Equal(t, "en", l.NextLanguage())
	})
	t.Run("unknown keys fall back to the key itself", func(t *testing.T) {
		l := ui.NewLocalization("ar")
		assert.Equal(t, "no_such_key", l.GetText("no_such_key"))
	})
	t.Run("lists available languages", func(t *testing.T) {
		l := ui.NewLocalization("en")
		got := l.AvailableLanguages()
		assert.Equal(t, "English", got["en"])
		assert.Equal(t, "العربية", got["ar"])
	})
}

func TestLocalizationPrayerName(t *testing.T) {
	t.Run("english uses the plain name", func(t *testing.T) {
		l := ui.NewLocalization("en")
		assert.Equal(t, "Fajr", l.PrayerName(app.Fajr))
	})
	t.Run("arabic uses the translated name", func(t *testing.T) {
		l := ui.NewLocalization("ar")
		assert.Equal(t, "الفجر", l.PrayerName(app.Fajr))
		assert.Equal(t, "المغرب", l.PrayerName(app.Maghrib))
	})
}

func TestLocalizationFormatDate(t *testing.T) {
	d := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC) // a Tuesday
	t.Run("english date", func(t *testing.T) {
		l := ui.NewLocalization("en")
		assert.Equal(t, "Tuesday, 25 August 2026", l.FormatDate(d))
	})
	t.Run("arabic date", func(t *testing.T) {
		l := ui.NewLocalization("ar")
		assert.Equal(t, "الثلاثاء، 25 أغسطس 2026", l.FormatDate(d))
	})
}
