package testutil

import (
	"github.com/ErikKalkoken/go-set"

	"github.com/minaretapp/minaret/internal/app"
)

// FakeSettings is an in-memory Settings implementation for tests.
type FakeSettings struct {
	adhanFull    string
	adhanShort   string
	autoLocation bool
	calcMethod   int
	language     string
	lastLoc      app.Location
	hasLast      bool
	launch       bool
	manualLoc    app.Location
	hasManual    bool
	school       int
	shortPrayers set.Set[string]
	theme        app.ThemeChoice
}

var _ app.Settings = (*FakeSettings)(nil)

func NewFakeSettings() *FakeSettings {
	return &FakeSettings{
		calcMethod:   3,
		language:     "en",
		shortPrayers: set.Of[string](),
		theme:        app.ThemeSystem,
	}
}

func (s *FakeSettings) AdhanFullPath() string                  { return s.adhanFull }
func (s *FakeSettings) AdhanShortPath() string                 { return s.adhanShort }
func (s *FakeSettings) AutoLocation() bool                     { return s.autoLocation }
func (s *FakeSettings) CalculationMethod() int                 { return s.calcMethod }
func (s *FakeSettings) Language() string                       { return s.language }
func (s *FakeSettings) LastLocation() (app.Location, bool)     { return s.lastLoc, s.hasLast }
func (s *FakeSettings) LaunchOnStartup() bool                  { return s.launch }
func (s *FakeSettings) ManualLocation() (app.Location, bool)   { return s.manualLoc, s.hasManual }
func (s *FakeSettings) School() int                            { return s.school }
func (s *FakeSettings) SetAdhanFullPath(v string)              { s.adhanFull = v }
func (s *FakeSettings) SetAdhanShortPath(v string)             { s.adhanShort = v }
func (s *FakeSettings) SetAutoLocation(v bool)                 { s.autoLocation = v }
func (s *FakeSettings) SetCalculationMethod(v int)             { s.calcMethod = v }
func (s *FakeSettings) SetLanguage(v string)                   { s.language = v }
func (s *FakeSettings) SetLastLocation(v app.Location)         { s.lastLoc, s.hasLast = v, true }
func (s *FakeSettings) SetLaunchOnStartup(v bool)              { s.launch = v }
func (s *FakeSettings) SetManualLocation(v app.Location)       { s.manualLoc, s.hasManual = v, true }
func (s *FakeSettings) SetSchool(v int)                        { s.school = v }
func (s *FakeSettings) SetShortAdhanPrayers(v set.Set[string]) { s.shortPrayers = v }
func (s *FakeSettings) SetTheme(v app.ThemeChoice)             { s.theme = v }
func (s *FakeSettings) ShortAdhanPrayers() set.Set[string]     { return s.shortPrayers }
func (s *FakeSettings) Theme() app.ThemeChoice                 { return s.theme }
