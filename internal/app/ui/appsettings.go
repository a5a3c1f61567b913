package ui

import (
	"encoding/json"
	"log/slog"
	"maps"
	"slices"

	"fyne.io/fyne/v2"
	"github.com/ErikKalkoken/go-set"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/optional"
)

const (
	settingAdhanFullPath            = "settingAdhanFullPath"
	settingAdhanShortPath           = "settingAdhanShortPath"
	settingAutoLocation             = "settingAutoLocation"
	settingAutoLocationDefault      = true
	settingCalculationMethod        = "settingCalculationMethod"
	settingCalculationMethodDefault = 3 // Muslim World League
	settingLanguage                 = "settingLanguage"
	settingLanguageDefault          = "en"
	settingLastLocation             = "settingLastLocation"
	settingLaunchOnStartup          = "settingLaunchOnStartup"
	settingLaunchOnStartupDefault   = false
	settingLogLevel                 = "logLevel"
	settingLogLevelDefault          = "info"
	settingManualLocation           = "settingManualLocation"
	settingSchool                   = "settingSchool"
	settingSchoolDefault            = 0 // Shafi
	settingShortAdhanPrayers        = "settingShortAdhanPrayers"
	settingTheme                    = "settingTheme"
	settingWindowHeightDefault      = 640
	settingWindowsSize              = "window-size"
	settingWindowWidthDefault       = 420
)

// AppSettings are the persisted user preferences,
// stored through fyne's JSON preferences file.
type AppSettings struct {
	p fyne.Preferences
}

var _ app.Settings = (*AppSettings)(nil)

func NewAppSettings(p fyne.Preferences) *AppSettings {
	x := &AppSettings{p: p}
	return x
}

func (s AppSettings) AdhanFullPath() string {
	return s.p.String(settingAdhanFullPath)
}

func (s AppSettings) SetAdhanFullPath(v string) {
	s.p.SetString(settingAdhanFullPath, v)
}

func (s AppSettings) AdhanShortPath() string {
	return s.p.String(settingAdhanShortPath)
}

func (s AppSettings) SetAdhanShortPath(v string) {
	s.p.SetString(settingAdhanShortPath, v)
}

func (s AppSettings) AutoLocation() bool {
	return s.p.BoolWithFallback(settingAutoLocation, settingAutoLocationDefault)
}

func (s AppSettings) SetAutoLocation(v bool) {
	s.p.SetBool(settingAutoLocation, v)
}

func (s AppSettings) CalculationMethod() int {
	return s.p.IntWithFallback(settingCalculationMethod, settingCalculationMethodDefault)
}

func (s AppSettings) SetCalculationMethod(v int) {
	s.p.SetInt(settingCalculationMethod, v)
}

func (s AppSettings) Language() string {
	return s.p.StringWithFallback(settingLanguage, settingLanguageDefault)
}

func (s AppSettings) SetLanguage(v string) {
	s.p.SetString(settingLanguage, v)
}

func (s AppSettings) LastLocation() (app.Location, bool) {
	return s.location(settingLastLocation)
}

func (s AppSettings) SetLastLocation(v app.Location) {
	s.setLocation(settingLastLocation, v)
}

func (s AppSettings) LaunchOnStartup() bool {
	return s.p.BoolWithFallback(settingLaunchOnStartup, settingLaunchOnStartupDefault)
}

func (s AppSettings) SetLaunchOnStartup(v bool) {
	s.p.SetBool(settingLaunchOnStartup, v)
}

func (s AppSettings) ManualLocation() (app.Location, bool) {
	return s.location(settingManualLocation)
}

func (s AppSettings) SetManualLocation(v app.Location) {
	s.setLocation(settingManualLocation, v)
}

func (s AppSettings) School() int {
	return s.p.IntWithFallback(settingSchool, settingSchoolDefault)
}

func (s AppSettings) SetSchool(v int) {
	s.p.SetInt(settingSchool, v)
}

func (s AppSettings) ShortAdhanPrayers() set.Set[string] {
	return set.Of(s.p.StringList(settingShortAdhanPrayers)...)
}

func (s AppSettings) SetShortAdhanPrayers(v set.Set[string]) {
	s.p.SetStringList(settingShortAdhanPrayers, slices.Collect(v.All()))
}

func (s AppSettings) Theme() app.ThemeChoice {
	return app.ParseThemeChoice(s.p.StringWithFallback(settingTheme, string(app.ThemeSystem)))
}

func (s AppSettings) SetTheme(v app.ThemeChoice) {
	s.p.SetString(settingTheme, string(v))
}

func (s AppSettings) WindowSize() fyne.Size {
	x := s.p.FloatList(settingWindowsSize)
	if len(x) < 2 {
		return fyne.NewSize(settingWindowWidthDefault, settingWindowHeightDefault)
	}
	return fyne.NewSize(float32(x[0]), float32(x[1]))
}

func (s AppSettings) SetWindowSize(v fyne.Size) {
	s.p.SetFloatList(settingWindowsSize, []float64{float64(v.Width), float64(v.Height)})
}

var logLevelName2Level = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"error":   slog.LevelError,
	"info":    slog.LevelInfo,
	"warning": slog.LevelWarn,
}

func (s AppSettings) LogLevel() string {
	return s.p.StringWithFallback(settingLogLevel, settingLogLevelDefault)
}

func (s AppSettings) SetLogLevel(l string) {
	s.p.SetString(settingLogLevel, l)
}

func (s AppSettings) LogLevelNames() []string {
	x := slices.Collect(maps.Keys(logLevelName2Level))
	slices.Sort(x)
	return x
}

func (s AppSettings) LogLevelSlog() slog.Level {
	l, ok := logLevelName2Level[s.LogLevel()]
	if !ok {
		l = logLevelName2Level[settingLogLevelDefault]
	}
	return l
}

// locationDTO is the JSON shape locations are persisted in.
type locationDTO struct {
	City        string                     `json:"city"`
	Country     string                     `json:"country"`
	CountryCode string                     `json:"country_code,omitempty"`
	Latitude    optional.Optional[float64] `json:"latitude"`
	Longitude   optional.Optional[float64] `json:"longitude"`
	Timezone    string                     `json:"timezone,omitempty"`
}

func (s AppSettings) location(key string) (app.Location, bool) {
	v := s.p.String(key)
	if v == "" {
		return app.Location{}, false
	}
	var d locationDTO
	if err := json.Unmarshal([]byte(v), &d); err != nil {
		slog.Error("Failed to read stored location", "key", key, "error", err)
		return app.Location{}, false
	}
	return app.Location{
		City:        d.City,
		Country:     d.Country,
		CountryCode: d.CountryCode,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		Timezone:    d.Timezone,
	}, true
}

func (s AppSettings) setLocation(key string, v app.Location) {
	d := locationDTO{
		City:        v.City,
		Country:     v.Country,
		CountryCode: v.CountryCode,
		Latitude:    v.Latitude,
		Longitude:   v.Longitude,
		Timezone:    v.Timezone,
	}
	b, err := json.Marshal(d)
	if err != nil {
		slog.Error("Failed to store location", "key", key, "error", err)
		return
	}
	s.p.SetString(key, string(b))
}
