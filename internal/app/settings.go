package app

import (
	"github.com/ErikKalkoken/go-set"
)

// ThemeChoice is the user's theme preference.
type ThemeChoice string

const (
	ThemeLight  ThemeChoice = "light"
	ThemeDark   ThemeChoice = "dark"
	ThemeSystem ThemeChoice = "system"
)

// ParseThemeChoice normalizes s into a valid ThemeChoice, defaulting to system.
func ParseThemeChoice(s string) ThemeChoice {
	switch ThemeChoice(s) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	}
	return ThemeSystem
}

// Settings is the interface to the persisted user preferences.
type Settings interface {
	AdhanFullPath() string
	AdhanShortPath() string
	AutoLocation() bool
	CalculationMethod() int
	Language() string
	LastLocation() (Location, bool)
	LaunchOnStartup() bool
	ManualLocation() (Location, bool)
	School() int
	SetAdhanFullPath(string)
	SetAdhanShortPath(string)
	SetAutoLocation(bool)
	SetCalculationMethod(int)
	SetLanguage(string)
	SetLastLocation(Location)
	SetLaunchOnStartup(bool)
	SetManualLocation(Location)
	SetSchool(int)
	SetShortAdhanPrayers(set.Set[string])
	SetTheme(ThemeChoice)
	ShortAdhanPrayers() set.Set[string]
	Theme() ThemeChoice
}
