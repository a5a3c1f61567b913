package ui

import (
	"fmt"
	"log/slog"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/minaretapp/minaret/internal/github"
)

const websiteURL = "https://github.com/minaretapp/minaret"

// ShowAboutDialog displays the about dialog with an update check.
func (u *UI) ShowAboutDialog() {
	d := dialog.NewCustom(u.Loc.GetText(KeyAbout), u.Loc.GetText(KeyCancel), u.makeAboutPage(), u.Window)
	d.Show()
}

func (u *UI) makeAboutPage() fyne.CanvasObject {
	title := widget.NewLabel(u.Loc.GetText(KeyAppTitle))
	title.SizeName = theme.SizeNameSubHeadingText
	title.TextStyle.Bold = true

	v := u.AppVersion
	if v == "" {
		v = "?"
	}
	currentVersion := widget.NewLabel(fmt.Sprintf("Version %s", v))

	updateInfo := widget.NewLabel("")
	go func() {
		info, err := github.AvailableUpdate("minaretapp", "minaret", u.AppVersion)
		if err != nil {
			slog.Warn("Update check failed", "error", err)
			return
		}
		var s string
		if info.IsRemoteNewer {
			s = fmt.Sprintf("%s: %s", u.Loc.GetText(KeyUpdateAvailable), info.Remote)
		} else {
			s = u.Loc.GetText(KeyUpdateCurrent)
		}
		fyne.Do(func() {
			updateInfo.SetText(s)
		})
	}()

	website, _ := url.Parse(websiteURL)
	downloads, _ := url.Parse(websiteURL + "/releases")
	return container.NewVBox(
		title,
		currentVersion,
		updateInfo,
		container.NewHBox(
			widget.NewHyperlink("Website", website),
			widget.NewHyperlink("Downloads", downloads),
		),
	)
}
