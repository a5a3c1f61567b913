package ui

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	kxmodal "github.com/ErikKalkoken/fyne-kx/modal"
	kxwidget "github.com/ErikKalkoken/fyne-kx/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/startup"
)

// calculationMethods are the supported AlAdhan calculation methods
// in display order.
var calculationMethods = []struct {
	id   int
	name string
}{
	{3, "Muslim World League"},
	{2, "Islamic Society of North America"},
	{5, "Egyptian General Authority of Survey"},
	{4, "Umm Al-Qura University, Makkah"},
	{1, "University of Islamic Sciences, Karachi"},
	{8, "Gulf Region"},
	{9, "Kuwait"},
	{10, "Qatar"},
	{11, "Majlis Ugama Islam Singapura"},
	{12, "Union Organization Islamic de France"},
	{13, "Diyanet İşleri Başkanlığı, Turkey"},
	{15, "Moonsighting Committee Worldwide"},
}

var schools = []struct {
	id   int
	name string
}{
	{0, "Shafi, Maliki, Hanbali"},
	{1, "Hanafi"},
}

type settingsWindow struct {
	content fyne.CanvasObject
	u       *UI
	window  fyne.Window
}

func (u *UI) showSettingsWindow() {
	if u.settingsWindow != nil {
		u.settingsWindow.Show()
		return
	}
	w := u.App.NewWindow(u.Loc.GetText(KeySettingsTitle))
	sw := u.newSettingsWindow()
	sw.window = w
	w.SetContent(fynetooltip.AddWindowToolTipLayer(sw.content, w.Canvas()))
	w.Resize(fyne.Size{Width: 500, Height: 450})
	w.SetOnClosed(func() {
		fynetooltip.DestroyWindowToolTipLayer(w.Canvas())
		u.settingsWindow = nil
	})
	u.settingsWindow = w
	w.Show()
}

func (u *UI) newSettingsWindow() *settingsWindow {
	sw := &settingsWindow{u: u}
	tabs := container.NewAppTabs(
		container.NewTabItem(u.Loc.GetText(KeySettingsGeneral), sw.makeGeneralPage()),
		container.NewTabItem(u.Loc.GetText(KeyLocationLabel), sw.makeLocationPage()),
		container.NewTabItem(u.Loc.GetText(KeySettingsAudio), sw.makeAdhanPage()),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	sw.content = tabs
	return sw
}

func (w *settingsWindow) makeGeneralPage() fyne.CanvasObject {
	loc := w.u.Loc

	languages := w.u.Loc.AvailableLanguages()
	codes := slices.Sorted(maps.Keys(languages))
	names := make([]string, 0, len(codes))
	for _, c := range codes {
		names = append(names, languages[c])
	}
	language := widget.NewSelect(names, func(s string) {
		for _, c := range codes {
			if languages[c] == s {
				w.u.SetLanguage(c)
				return
			}
		}
	})
	language.SetSelected(languages[loc.CurrentLanguage()])

	themeNames := []string{
		loc.GetText(KeyThemeLight),
		loc.GetText(KeyThemeDark),
		loc.GetText(KeyThemeSystem),
	}
	themeChoices := []app.ThemeChoice{app.ThemeLight, app.ThemeDark, app.ThemeSystem}
	themeSelect := widget.NewSelect(themeNames, func(s string) {
		for i, n := range themeNames {
			if n == s {
				w.u.Settings.SetTheme(themeChoices[i])
				w.u.applyTheme()
				return
			}
		}
	})
	themeSelect.SetSelected(themeNames[slices.Index(themeChoices, w.u.Settings.Theme())])

	startupCheck := kxwidget.NewSwitch(func(on bool) {
		var err error
		if on {
			err = startup.Enable()
		} else {
			err = startup.Disable()
		}
		if err != nil {
			slog.Error("Failed to change startup registration", "enable", on, "error", err)
			d := dialog.NewInformation(loc.GetText(KeyErrorTitle), loc.GetText(KeyStartupUnsupported), w.window)
			d.Show()
			return
		}
		w.u.Settings.SetLaunchOnStartup(on)
	})
	startupCheck.SetState(w.u.Settings.LaunchOnStartup())
	if !startup.IsSupported() {
		startupCheck.Disable()
	}

	methodNames := make([]string, 0, len(calculationMethods))
	for _, m := range calculationMethods {
		methodNames = append(methodNames, m.name)
	}
	method := widget.NewSelect(methodNames, func(s string) {
		for _, m := range calculationMethods {
			if m.name == s {
				w.u.Settings.SetCalculationMethod(m.id)
				go w.u.RefreshSchedule()
				return
			}
		}
	})
	for _, m := range calculationMethods {
		if m.id == w.u.Settings.CalculationMethod() {
			method.SetSelected(m.name)
		}
	}

	schoolNames := make([]string, 0, len(schools))
	for _, s := range schools {
		schoolNames = append(schoolNames, s.name)
	}
	school := widget.NewSelect(schoolNames, func(s string) {
		for _, x := range schools {
			if x.name == s {
				w.u.Settings.SetSchool(x.id)
				go w.u.RefreshSchedule()
				return
			}
		}
	})
	for _, x := range schools {
		if x.id == w.u.Settings.School() {
			school.SetSelected(x.name)
		}
	}

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: loc.GetText(KeySettingsLanguage), Widget: language},
			{Text: loc.GetText(KeyTheme), Widget: themeSelect},
			{Text: loc.GetText(KeySettingsStartup), Widget: startupCheck},
			{Text: loc.GetText(KeyCalculationMethod), Widget: method},
			{Text: loc.GetText(KeySchool), Widget: school},
		},
	}
	return container.NewVScroll(form)
}

func (w *settingsWindow) makeLocationPage() fyne.CanvasObject {
	loc := w.u.Loc

	citySelect := widget.NewSelect([]string{}, nil)
	citySelect.PlaceHolder = loc.GetText(KeySelectCity)

	countrySelect := widget.NewSelect([]string{}, func(s string) {
		go func() {
			cities := w.u.Catalog.Cities(context.Background(), s)
			names := make([]string, 0, len(cities))
			for _, c := range cities {
				names = append(names, c.Name)
			}
			fyne.Do(func() {
				citySelect.SetOptions(names)
				citySelect.ClearSelected()
			})
		}()
	})
	countrySelect.PlaceHolder = loc.GetText(KeySelectCountry)
	go func() {
		countries := w.u.Catalog.Countries(context.Background())
		names := make([]string, 0, len(countries))
		for _, c := range countries {
			names = append(names, c.Name)
		}
		fyne.Do(func() {
			countrySelect.SetOptions(names)
			if l, ok := w.u.Settings.ManualLocation(); ok {
				countrySelect.SetSelected(l.Country)
				citySelect.SetSelected(l.City)
			}
		})
	}()

	autoCheck := kxwidget.NewSwitch(func(on bool) {
		w.u.Settings.SetAutoLocation(on)
		if on {
			go w.u.RefreshSchedule()
		}
	})
	autoCheck.SetState(w.u.Settings.AutoLocation())

	save := widget.NewButton(loc.GetText(KeySave), func() {
		country := countrySelect.Selected
		city := citySelect.Selected
		if country == "" || city == "" {
			d := dialog.NewInformation(loc.GetText(KeyErrorTitle), loc.GetText(KeyErrorCityCountry), w.window)
			d.Show()
			return
		}
		m := kxmodal.NewProgressInfinite(
			loc.GetText(KeySettingsApplying),
			"",
			func() error {
				found, err := w.u.Catalog.FindCity(context.Background(), country, city)
				if err != nil {
					return err
				}
				l := app.Location{
					City:      found.Name,
					Country:   country,
					Latitude:  found.Latitude,
					Longitude: found.Longitude,
				}
				if c, ok := w.u.Catalog.Country(country); ok {
					l.Country = c.Name
					l.CountryCode = c.Code
				}
				w.u.Settings.SetManualLocation(l)
				return nil
			},
			w.window,
		)
		m.OnSuccess = func() {
			go w.u.RefreshSchedule()
		}
		m.OnError = func(err error) {
			slog.Error("Failed to apply manual location", "error", err)
			d := dialog.NewInformation(loc.GetText(KeyErrorTitle), loc.GetText(KeyErrorCityCountry), w.window)
			d.Show()
		}
		m.Start()
	})
	save.Importance = widget.HighImportance

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: loc.GetText(KeySettingsAutoLoc), Widget: autoCheck},
			{Text: loc.GetText(KeyCountry), Widget: countrySelect, HintText: loc.GetText(KeySettingsLocHint)},
			{Text: loc.GetText(KeyCity), Widget: citySelect},
		},
	}
	return container.NewVScroll(container.NewVBox(form, container.NewHBox(save)))
}

func (w *settingsWindow) makeAdhanPage() fyne.CanvasObject {
	loc := w.u.Loc

	fullEntry := widget.NewEntry()
	fullEntry.SetText(w.u.Settings.AdhanFullPath())
	fullEntry.OnChanged = func(s string) {
		w.u.Settings.SetAdhanFullPath(s)
	}
	shortEntry := widget.NewEntry()
	shortEntry.SetText(w.u.Settings.AdhanShortPath())
	shortEntry.OnChanged = func(s string) {
		w.u.Settings.SetAdhanShortPath(s)
	}

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: loc.GetText(KeyAdhanFull), Widget: fullEntry},
			{Text: loc.GetText(KeyAdhanShort), Widget: shortEntry},
		},
	}

	hint := widget.NewLabel(loc.GetText(KeySettingsShortHint))
	hint.Importance = widget.LowImportance
	short := w.u.Settings.ShortAdhanPrayers()
	rows := make([]fyne.CanvasObject, 0, 5)
	for _, n := range app.PrayerNames() {
		name := n
		check := kxwidget.NewSwitch(func(on bool) {
			s := w.u.Settings.ShortAdhanPrayers()
			if on {
				s.Add(string(name))
			} else {
				s.Delete(string(name))
			}
			w.u.Settings.SetShortAdhanPrayers(s)
		})
		check.SetState(short.Contains(string(name)))
		rows = append(rows, container.NewHBox(
			widget.NewLabel(loc.PrayerName(name)),
			check,
		))
	}
	return container.NewVScroll(container.NewVBox(
		form,
		widget.NewSeparator(),
		hint,
		container.NewVBox(rows...),
	))
}
