// Package ui contains the code for rendering the desktop UI.
package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/audio"
	"github.com/minaretapp/minaret/internal/app/locations"
	"github.com/minaretapp/minaret/internal/app/prayerservice"
	"github.com/minaretapp/minaret/internal/app/scheduler"
	"github.com/minaretapp/minaret/internal/app/startup"
)

const countdownInterval = 30 * time.Second

// The UI is the root object of the UI and contains all UI areas.
//
// Each UI area holds a pointer of the UI instance, so that areas can
// call methods on other UI areas and access shared variables in the UI.
type UI struct {
	App      fyne.App
	DeskApp  desktop.App
	Window   fyne.Window
	Settings *AppSettings
	Loc      *Localization

	PrayerService *prayerservice.PrayerService
	Scheduler     *scheduler.PrayerScheduler
	Player        *audio.AdhanPlayer
	Catalog       *locations.Catalog

	// AppVersion is shown in the about dialog and used for update checks.
	AppVersion string

	homeArea       *homeArea
	settingsWindow fyne.Window

	trayRefresh *fyne.MenuItem
	trayStartup *fyne.MenuItem
	trayStop    *fyne.MenuItem
	trayMenu    *fyne.Menu

	current prayerservice.Result
	hasDay  bool
}

// NewUI builds the UI and returns it.
func NewUI(
	fyneApp fyne.App,
	settings *AppSettings,
	ps *prayerservice.PrayerService,
	sched *scheduler.PrayerScheduler,
	player *audio.AdhanPlayer,
	catalog *locations.Catalog,
) *UI {
	u := &UI{
		App:           fyneApp,
		Settings:      settings,
		Loc:           NewLocalization(settings.Language()),
		PrayerService: ps,
		Scheduler:     sched,
		Player:        player,
		Catalog:       catalog,
	}
	deskApp, ok := fyneApp.(desktop.App)
	if !ok {
		panic("Could not start in desktop mode")
	}
	u.DeskApp = deskApp

	u.applyTheme()
	u.Window = fyneApp.NewWindow(u.Loc.GetText(KeyAppTitle))
	u.homeArea = newHomeArea(u)
	u.Window.SetContent(container.NewPadded(u.homeArea.content))
	u.Window.SetMaster()

	u.makeTrayMenu()
	u.Window.SetCloseIntercept(func() {
		u.Window.Hide()
	})

	u.PrayerService.ScheduleUpdated.AddListener(func(_ context.Context, r prayerservice.Result) {
		fyne.Do(func() {
			u.current = r
			u.hasDay = true
			u.homeArea.refresh(r)
		})
	})
	u.Player.PlaybackStarted.AddListener(func(_ context.Context, _ string) {
		fyne.Do(func() {
			u.trayStop.Disabled = false
			u.trayMenu.Refresh()
		})
	})
	u.Player.PlaybackFinished.AddListener(func(_ context.Context, _ struct{}) {
		fyne.Do(func() {
			u.trayStop.Disabled = true
			u.trayMenu.Refresh()
		})
	})
	return u
}

// ShowAndRun displays the main window and runs the app.
// It blocks until the app is closed.
func (u *UI) ShowAndRun() {
	u.Window.Resize(u.Settings.WindowSize())
	u.App.Lifecycle().SetOnStarted(func() {
		slog.Info("App started")
		go u.RefreshSchedule()
		go u.startCountdownTicker()
	})
	u.App.Lifecycle().SetOnStopped(func() {
		u.saveAppState()
		u.Scheduler.Shutdown()
		u.Player.Stop()
		slog.Info("App stopped")
	})
	u.Window.ShowAndRun()
}

// RefreshSchedule fetches today's schedule in the background and
// updates the display. Must not be called from the fyne main loop.
func (u *UI) RefreshSchedule() {
	fyne.Do(func() {
		u.homeArea.setStatus(u.Loc.GetText(KeyUpdating))
	})
	_, err := u.PrayerService.RefreshDay(context.Background())
	if err != nil {
		slog.Error("Schedule refresh failed", "error", err)
		key := KeyErrorFetch
		if errors.Is(err, app.ErrNoLocation) {
			key = KeyErrorLocation
		}
		fyne.Do(func() {
			u.homeArea.setStatus(u.Loc.GetText(key))
		})
	}
}

func (u *UI) startCountdownTicker() {
	ticker := time.NewTicker(countdownInterval)
	defer ticker.Stop()
	for {
		<-ticker.C
		fyne.Do(func() {
			if u.hasDay {
				u.homeArea.updateCountdown(u.current.Day, time.Now())
			}
		})
	}
}

// SetLanguage switches the display language and re-renders all texts.
func (u *UI) SetLanguage(lang string) {
	u.Loc.SetLanguage(lang)
	u.Settings.SetLanguage(u.Loc.CurrentLanguage())
	u.Window.SetTitle(u.Loc.GetText(KeyAppTitle))
	u.homeArea.applyLanguage()
	if u.hasDay {
		u.homeArea.refresh(u.current)
	}
	u.remakeTrayMenu()
}

func (u *UI) applyTheme() {
	u.App.Settings().SetTheme(myTheme{mode: u.Settings.Theme()})
}

func (u *UI) saveAppState() {
	if u.Window == nil {
		slog.Warn("Failed to save app state")
		return
	}
	u.Settings.SetWindowSize(u.Window.Canvas().Size())
	slog.Info("Saved app state")
}

func (u *UI) makeTrayMenu() {
	u.trayRefresh = fyne.NewMenuItem(u.Loc.GetText(KeyTrayRefresh), func() {
		go u.RefreshSchedule()
	})
	u.trayStop = fyne.NewMenuItem(u.Loc.GetText(KeyStopAdhan), func() {
		u.Player.Stop()
	})
	u.trayStop.Disabled = !u.Player.IsPlaying()
	u.trayStartup = fyne.NewMenuItem(u.startupMenuLabel(), func() {
		u.toggleStartup()
	})
	if !startup.IsSupported() {
		u.trayStartup.Disabled = true
	}
	u.trayMenu = fyne.NewMenu(
		u.Loc.GetText(KeyTrayTooltip),
		fyne.NewMenuItem(u.Loc.GetText(KeyTrayShow), func() {
			u.Window.Show()
		}),
		fyne.NewMenuItem(u.Loc.GetText(KeyTrayHide), func() {
			u.Window.Hide()
		}),
		fyne.NewMenuItemSeparator(),
		u.trayRefresh,
		u.trayStop,
		u.trayStartup,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(u.Loc.GetText(KeyAbout), func() {
			u.Window.Show()
			u.ShowAboutDialog()
		}),
		fyne.NewMenuItem(u.Loc.GetText(KeyTrayQuit), func() {
			u.App.Quit()
		}),
	)
	u.DeskApp.SetSystemTrayMenu(u.trayMenu)
}

func (u *UI) remakeTrayMenu() {
	u.makeTrayMenu()
}

func (u *UI) startupMenuLabel() string {
	if u.Settings.LaunchOnStartup() {
		return u.Loc.GetText(KeyTrayStartupOff)
	}
	return u.Loc.GetText(KeyTrayStartupOn)
}

func (u *UI) toggleStartup() {
	var err error
	enable := !u.Settings.LaunchOnStartup()
	if enable {
		err = startup.Enable()
	} else {
		err = startup.Disable()
	}
	if err != nil {
		slog.Error("Failed to change startup registration", "enable", enable, "error", err)
		return
	}
	u.Settings.SetLaunchOnStartup(enable)
	u.trayStartup.Label = u.startupMenuLabel()
	u.trayMenu.Refresh()
}
