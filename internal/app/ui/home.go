package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/prayerservice"
)

// homeArea renders the prayer schedule for the current day.
type homeArea struct {
	content fyne.CanvasObject
	u       *UI

	location   *widget.Label
	date       *widget.Label
	hijri      *widget.Label
	nextPrayer *widget.Label
	weather    *ttwidget.Label
	status     *widget.Label

	prayerNames [5]*widget.Label
	prayerTimes [5]*widget.Label

	refreshBtn  *widget.Button
	languageBtn *widget.Button
	settingsBtn *widget.Button
}

func newHomeArea(u *UI) *homeArea {
	a := &homeArea{u: u}

	a.location = widget.NewLabel("")
	a.location.TextStyle.Bold = true
	a.location.Alignment = fyne.TextAlignCenter

	a.date = widget.NewLabel("")
	a.date.Alignment = fyne.TextAlignCenter
	a.hijri = widget.NewLabel("")
	a.hijri.Alignment = fyne.TextAlignCenter

	a.nextPrayer = widget.NewLabel("")
	a.nextPrayer.Alignment = fyne.TextAlignCenter
	a.nextPrayer.TextStyle.Bold = true

	a.weather = ttwidget.NewLabel("")
	a.weather.Alignment = fyne.TextAlignCenter

	a.status = widget.NewLabel("")
	a.status.Alignment = fyne.TextAlignCenter
	a.status.Importance = widget.LowImportance

	rows := make([]fyne.CanvasObject, 0, 5)
	for i := range a.prayerNames {
		name := widget.NewLabel("")
		name.TextStyle.Bold = true
		t := widget.NewLabel("")
		t.Alignment = fyne.TextAlignTrailing
		a.prayerNames[i] = name
		a.prayerTimes[i] = t
		rows = append(rows, container.NewGridWithColumns(2, name, t))
	}

	a.refreshBtn = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		go u.RefreshSchedule()
	})
	a.languageBtn = widget.NewButton("", func() {
		u.SetLanguage(u.Loc.NextLanguage())
	})
	a.settingsBtn = widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		u.showSettingsWindow()
	})

	buttons := container.NewHBox(a.refreshBtn, a.languageBtn, a.settingsBtn)
	a.content = container.NewVBox(
		a.location,
		a.date,
		a.hijri,
		widget.NewSeparator(),
		container.NewVBox(rows...),
		widget.NewSeparator(),
		a.nextPrayer,
		a.weather,
		a.status,
		container.NewCenter(buttons),
	)
	a.applyLanguage()
	return a
}

// applyLanguage re-renders all static texts in the current language.
func (a *homeArea) applyLanguage() {
	loc := a.u.Loc
	a.languageBtn.SetText(loc.GetText(KeyLanguageToggle))
	for i, n := range app.PrayerNames() {
		a.prayerNames[i].SetText(loc.PrayerName(n))
	}
}

// refresh renders a new schedule. Must be called from the fyne main loop.
func (a *homeArea) refresh(r prayerservice.Result) {
	loc := a.u.Loc
	day := r.Day
	a.location.SetText(day.Location.String())
	a.date.SetText(loc.FormatDate(day.GregorianDate))
	a.hijri.SetText(fmt.Sprintf("%s: %s", loc.GetText(KeyHijriLabel), day.HijriDate))
	now := time.Now()
	for i, n := range app.PrayerNames() {
		p, ok := day.PrayerAt(n)
		if !ok {
			a.prayerTimes[i].SetText("-")
			continue
		}
		a.prayerTimes[i].SetText(p.Time.Format("15:04"))
		next, hasNext := day.NextPrayer(now)
		if hasNext && next.Name == n {
			a.prayerTimes[i].Importance = widget.SuccessImportance
		} else {
			a.prayerTimes[i].Importance = widget.MediumImportance
		}
		a.prayerTimes[i].Refresh()
	}
	a.updateCountdown(day, now)
	a.refreshWeather(r)
	if r.Offline {
		a.setStatus(loc.GetText(KeyOffline))
	} else {
		a.setStatus(fmt.Sprintf("%s: %s", loc.GetText(KeyUpdated), day.RetrievedAt.Local().Format("15:04")))
	}
}

// updateCountdown re-renders the next prayer line for the current time.
func (a *homeArea) updateCountdown(day app.PrayerDay, now time.Time) {
	loc := a.u.Loc
	next, ok := day.NextPrayer(now)
	if !ok {
		a.nextPrayer.SetText(loc.GetText(KeyPrayerPassed))
		return
	}
	until := next.Time.Sub(now)
	var s string
	if until < time.Minute {
		s = fmt.Sprintf("%s: %s %s", loc.GetText(KeyNextPrayer), loc.PrayerName(next.Name), loc.GetText(KeyPrayerNow))
	} else {
		s = fmt.Sprintf(
			"%s: %s %s %s",
			loc.GetText(KeyNextPrayer),
			loc.PrayerName(next.Name),
			loc.GetText(KeyUntil),
			formatDuration(until),
		)
	}
	a.nextPrayer.SetText(s)
}

func (a *homeArea) refreshWeather(r prayerservice.Result) {
	if r.Weather == nil {
		a.weather.SetText("")
		a.weather.SetToolTip("")
		return
	}
	w := r.Weather
	a.weather.SetText(fmt.Sprintf("%.0f°C  %s", w.TemperatureC, w.Conditions))
	tt := fmt.Sprintf(
		"%s: %s°C\n%s: %s%%\n%s: %s km/h",
		a.u.Loc.GetText(KeyWeatherFeelsLike), w.FeelsLikeC.StringFunc("?", func(v float64) string {
			return fmt.Sprintf("%.0f", v)
		}),
		a.u.Loc.GetText(KeyWeatherHumidity), w.HumidityPct.StringFunc("?", func(v int) string {
			return humanize.Comma(int64(v))
		}),
		a.u.Loc.GetText(KeyWeatherWind), w.WindSpeedKmh.StringFunc("?", func(v float64) string {
			return fmt.Sprintf("%.0f", v)
		}),
	)
	a.weather.SetToolTip(tt)
}

func (a *homeArea) setStatus(s string) {
	a.status.SetText(s)
}

// formatDuration renders a duration as hours and minutes, e.g. "2h 05m".
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}
