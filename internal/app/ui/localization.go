package ui

import (
	"fmt"
	"time"

	"github.com/minaretapp/minaret/internal/app"
)

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeyRefresh             = "refresh"
	KeyLanguageToggle      = "language_toggle"
	KeySettingsButton      = "settings_button"
	KeyLocationLabel       = "location_label"
	KeyTodayLabel          = "today_label"
	KeyHijriLabel          = "hijri_label"
	KeyNextPrayer          = "next_prayer"
	KeyUntil               = "until"
	KeyPrayerNow           = "prayer_now"
	KeyPrayerPassed        = "prayer_passed"
	KeyUpdating            = "updating"
	KeyUpdated             = "updated"
	KeyOffline             = "offline"
	KeyErrorTitle          = "error_title"
	KeyErrorFetch          = "error_fetch"
	KeyErrorLocation       = "error_location"
	KeyErrorCityCountry    = "error_city_country"
	KeySettingsTitle       = "settings_title"
	KeySettingsGeneral     = "settings_general"
	KeySettingsAudio       = "settings_audio"
	KeySettingsLanguage    = "settings_language_label"
	KeySettingsAutoLoc     = "settings_auto_location"
	KeySettingsStartup     = "settings_launch_on_startup"
	KeySettingsLocHint     = "settings_location_hint"
	KeySettingsShortHint   = "settings_short_adhan_hint"
	KeySettingsSaved       = "settings_saved"
	KeySettingsApplying    = "settings_applying"
	KeySettingsError       = "settings_error"
	KeySelectCountry       = "select_country_placeholder"
	KeySelectCity          = "select_city_placeholder"
	KeyCountry             = "country"
	KeyCity                = "city"
	KeyTheme               = "theme"
	KeyThemeLight          = "theme_light"
	KeyThemeDark           = "theme_dark"
	KeyThemeSystem         = "theme_system"
	KeyCalculationMethod   = "calculation_method"
	KeySchool              = "school"
	KeyAdhanFull           = "adhan_full"
	KeyAdhanShort          = "adhan_short"
	KeyStopAdhan           = "stop_adhan"
	KeySave                = "save"
	KeyCancel              = "cancel"
	KeyTrayShow            = "tray_show"
	KeyTrayHide            = "tray_hide"
	KeyTrayRefresh         = "tray_refresh"
	KeyTrayStartupOn       = "tray_toggle_startup_on"
	KeyTrayStartupOff      = "tray_toggle_startup_off"
	KeyTrayQuit            = "tray_quit"
	KeyTrayTooltip         = "tray_tooltip"
	KeyStartupUnsupported  = "startup_unsupported"
	KeyWeatherTitle        = "weather_tab_title"
	KeyWeatherFeelsLike    = "weather_feels_like"
	KeyWeatherHumidity     = "weather_humidity"
	KeyWeatherWind         = "weather_wind"
	KeyAbout               = "about"
	KeyUpdateAvailable     = "update_available"
	KeyUpdateCurrent       = "update_current"
)

var arabicPrayerNames = map[app.PrayerName]string{
	app.Fajr:    "الفجر",
	app.Dhuhr:   "الظهر",
	app.Asr:     "العصر",
	app.Maghrib: "المغرب",
	app.Isha:    "العشاء",
}

// Weekday and month names for Arabic date formatting,
// indexed per time.Weekday and time.Month.
var (
	arabicWeekdays = [7]string{
		"الأحد",
		"الاثنين",
		"الثلاثاء",
		"الأربعاء",
		"الخميس",
		"الجمعة",
		"السبت",
	}
	arabicMonths = [12]string{
		"يناير",
		"فبراير",
		"مارس",
		"أبريل",
		"مايو",
		"يونيو",
		"يوليو",
		"أغسطس",
		"سبتمبر",
		"أكتوبر",
		"نوفمبر",
		"ديسمبر",
	}
)

// Localization manages UI text translations.
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// NewLocalization returns a Localization set to the given language,
// falling back to English for unknown languages.
func NewLocalization(lang string) *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}
	l.initializeTexts()
	l.SetLanguage(lang)
	return l
}

// SetLanguage sets the current language. Unknown languages are ignored.
func (l *Localization) SetLanguage(lang string) {
	if _, ok := l.texts[lang]; ok {
		l.currentLanguage = lang
	}
}

// CurrentLanguage returns the current language code.
func (l *Localization) CurrentLanguage() string {
	return l.currentLanguage
}

// NextLanguage returns the language the toggle button switches to.
func (l *Localization) NextLanguage() string {
	if l.currentLanguage == "en" {
		return "ar"
	}
	return "en"
}

// IsRTL reports whether the current language reads right to left.
func (l *Localization) IsRTL() bool {
	return l.currentLanguage == "ar"
}

// AvailableLanguages returns the language codes with their display names.
func (l *Localization) AvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ar": "العربية",
	}
}

// GetText returns the localized text for the given key,
// falling back to English and finally to the key itself.
func (l *Localization) GetText(key string) string {
	if text, ok := l.texts[l.currentLanguage][key]; ok {
		return text
	}
	if text, ok := l.texts["en"][key]; ok {
		return text
	}
	return key
}

// PrayerName returns the localized display name for a prayer.
func (l *Localization) PrayerName(n app.PrayerName) string {
	if l.currentLanguage == "ar" {
		if s, ok := arabicPrayerNames[n]; ok {
			return s
		}
	}
	return string(n)
}

// FormatDate renders a gregorian date in the current language.
func (l *Localization) FormatDate(t time.Time) string {
	if l.currentLanguage == "ar" {
		weekday := arabicWeekdays[int(t.Weekday())]
		month := arabicMonths[int(t.Month())-1]
		return fmt.Sprintf("%s، %d %s %d", weekday, t.Day(), month, t.Year())
	}
	return t.Format("Monday, 2 January 2006")
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Minaret",
		KeyRefresh:            "Refresh",
		KeyLanguageToggle:     "العربية",
		KeySettingsButton:     "Settings",
		KeyLocationLabel:      "Location",
		KeyTodayLabel:         "Today",
		KeyHijriLabel:         "Hijri Date",
		KeyNextPrayer:         "Next Prayer",
		KeyUntil:              "in",
		KeyPrayerNow:          "now",
		KeyPrayerPassed:       "All prayers for today have passed",
		KeyUpdating:           "Updating prayer times...",
		KeyUpdated:            "Updated",
		KeyOffline:            "Offline - showing saved times",
		KeyErrorTitle:         "Error",
		KeyErrorFetch:         "Could not fetch prayer times",
		KeyErrorLocation:      "Could not determine your location",
		KeyErrorCityCountry:   "Unknown city and country combination",
		KeySettingsTitle:      "Settings",
		KeySettingsGeneral:    "General",
		KeySettingsAudio:      "Adhan",
		KeySettingsLanguage:   "Language",
		KeySettingsAutoLoc:    "Detect location automatically",
		KeySettingsStartup:    "Launch on startup",
		KeySettingsLocHint:    "Used when automatic detection is off or fails",
		KeySettingsShortHint:  "Play the short adhan for these prayers",
		KeySettingsSaved:      "Settings saved",
		KeySettingsApplying:   "Applying settings...",
		KeySettingsError:      "Could not apply settings",
		KeySelectCountry:      "Select a country",
		KeySelectCity:         "Select a city",
		KeyCountry:            "Country",
		KeyCity:               "City",
		KeyTheme:              "Theme",
		KeyThemeLight:         "Light",
		KeyThemeDark:          "Dark",
		KeyThemeSystem:        "System",
		KeyCalculationMethod:  "Calculation method",
		KeySchool:             "Asr juristic school",
		KeyAdhanFull:          "Full adhan file",
		KeyAdhanShort:         "Short adhan file",
		KeyStopAdhan:          "Stop adhan",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyTrayShow:           "Show window",
		KeyTrayHide:           "Hide window",
		KeyTrayRefresh:        "Refresh times",
		KeyTrayStartupOn:      "Enable launch on startup",
		KeyTrayStartupOff:     "Disable launch on startup",
		KeyTrayQuit:           "Quit",
		KeyTrayTooltip:        "Minaret prayer times",
		KeyStartupUnsupported: "Launch on startup is not supported on this system",
		KeyWeatherTitle:       "Weather",
		KeyWeatherFeelsLike:   "Feels like",
		KeyWeatherHumidity:    "Humidity",
		KeyWeatherWind:        "Wind",
		KeyAbout:              "About",
		KeyUpdateAvailable:    "Update available",
		KeyUpdateCurrent:      "You have the latest version",
	}
	l.texts["ar"] = map[string]string{
		KeyAppTitle:           "المئذنة",
		KeyRefresh:            "تحديث",
		KeyLanguageToggle:     "English",
		KeySettingsButton:     "الإعدادات",
		KeyLocationLabel:      "الموقع",
		KeyTodayLabel:         "اليوم",
		KeyHijriLabel:         "التاريخ الهجري",
		KeyNextPrayer:         "الصلاة القادمة",
		KeyUntil:              "بعد",
		KeyPrayerNow:          "الآن",
		KeyPrayerPassed:       "انتهت صلوات اليوم",
		KeyUpdating:           "جاري تحديث مواقيت الصلاة...",
		KeyUpdated:            "تم التحديث",
		KeyOffline:            "غير متصل - عرض المواقيت المحفوظة",
		KeyErrorTitle:         "خطأ",
		KeyErrorFetch:         "تعذر جلب مواقيت الصلاة",
		KeyErrorLocation:      "تعذر تحديد موقعك",
		KeyErrorCityCountry:   "المدينة والدولة غير معروفتين",
		KeySettingsTitle:      "الإعدادات",
		KeySettingsGeneral:    "عام",
		KeySettingsAudio:      "الأذان",
		KeySettingsLanguage:   "اللغة",
		KeySettingsAutoLoc:    "تحديد الموقع تلقائيًا",
		KeySettingsStartup:    "التشغيل عند بدء النظام",
		KeySettingsLocHint:    "يُستخدم عند تعطل التحديد التلقائي أو إيقافه",
		KeySettingsShortHint:  "تشغيل الأذان القصير لهذه الصلوات",
		KeySettingsSaved:      "تم حفظ الإعدادات",
		KeySettingsApplying:   "جاري تطبيق الإعدادات...",
		KeySettingsError:      "تعذر تطبيق الإعدادات",
		KeySelectCountry:      "اختر الدولة",
		KeySelectCity:         "اختر المدينة",
		KeyCountry:            "الدولة",
		KeyCity:               "المدينة",
		KeyTheme:              "المظهر",
		KeyThemeLight:         "فاتح",
		KeyThemeDark:          "داكن",
		KeyThemeSystem:        "النظام",
		KeyCalculationMethod:  "طريقة الحساب",
		KeySchool:             "مذهب العصر",
		KeyAdhanFull:          "ملف الأذان الكامل",
		KeyAdhanShort:         "ملف الأذان القصير",
		KeyStopAdhan:          "إيقاف الأذان",
		KeySave:               "حفظ",
		KeyCancel:             "إلغاء",
		KeyTrayShow:           "إظهار النافذة",
		KeyTrayHide:           "إخفاء النافذة",
		KeyTrayRefresh:        "تحديث المواقيت",
		KeyTrayStartupOn:      "تفعيل التشغيل عند البدء",
		KeyTrayStartupOff:     "تعطيل التشغيل عند البدء",
		KeyTrayQuit:           "خروج",
		KeyTrayTooltip:        "مواقيت الصلاة",
		KeyStartupUnsupported: "التشغيل عند بدء النظام غير مدعوم على هذا الجهاز",
		KeyWeatherTitle:       "الطقس",
		KeyWeatherFeelsLike:   "الإحساس",
		KeyWeatherHumidity:    "الرطوبة",
		KeyWeatherWind:        "الرياح",
		KeyAbout:              "حول",
		KeyUpdateAvailable:    "يتوفر تحديث",
		KeyUpdateCurrent:      "لديك أحدث إصدار",
	}
}
