package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/gohugoio/httpcache"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/aladhan"
	"github.com/minaretapp/minaret/internal/app/audio"
	"github.com/minaretapp/minaret/internal/app/geoip"
	"github.com/minaretapp/minaret/internal/app/locations"
	"github.com/minaretapp/minaret/internal/app/openmeteo"
	"github.com/minaretapp/minaret/internal/app/pcache"
	"github.com/minaretapp/minaret/internal/app/prayerservice"
	"github.com/minaretapp/minaret/internal/app/scheduler"
	"github.com/minaretapp/minaret/internal/app/storage"
	"github.com/minaretapp/minaret/internal/app/ui"
)

const (
	appID = "io.github.minaretapp.minaret"

	cacheCleanUpTimeout = 30 * time.Minute
	webCacheTimeout     = 24 * time.Hour
)

// defined flags
var (
	levelFlag     logLevelFlag
	logFileFlag   = flag.Bool("logfile", true, "Write logs to a file instead of the console")
	uninstallFlag = flag.Bool("uninstall", false, "Uninstalls the app by deleting all user files")
	showDirsFlag  = flag.Bool("show-dirs", false, "Show directories where user data is stored")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(levelFlag.value)
	fyneApp := fyneapp.NewWithID(appID)
	ad := newAppDirs(fyneApp)
	if *showDirsFlag {
		fmt.Printf("Database: %s\n", ad.data)
		fmt.Printf("Logs: %s\n", ad.log)
		fmt.Printf("Settings: %s\n", ad.settings)
		return
	}
	if *uninstallFlag {
		fmt.Print("Are you sure you want to uninstall this app and delete all user files (y/N)?")
		var input string
		fmt.Scanln(&input)
		if strings.ToLower(input) == "y" {
			if err := ad.deleteAll(); err != nil {
				log.Fatal(err)
			}
			fmt.Println("App uninstalled")
		} else {
			fmt.Println("Aborted")
		}
		return
	}
	if *logFileFlag {
		fn, err := ad.initLogFile()
		if err != nil {
			log.Fatal(err)
		}
		log.SetOutput(&lumberjack.Logger{
			Filename:   fn,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		})
	}
	dsn, err := ad.initDSN()
	if err != nil {
		log.Fatal(err)
	}
	db, err := storage.InitDB(dsn)
	if err != nil {
		log.Fatalf("Failed to initialize database %s: %s", dsn, err)
	}
	defer db.Close()
	st := storage.New(db)
	cache := pcache.New(st, cacheCleanUpTimeout)
	defer cache.Close()

	settings := ui.NewAppSettings(fyneApp.Preferences())

	rhc := retryablehttp.NewClient()
	rhc.Logger = slog.Default()
	rhc.ResponseLogHook = logResponse
	httpClient := rhc.StandardClient()

	// The prayer times client is rate limited, the weather and catalog
	// clients serve from the HTTP cache where possible.
	aladhanClient := aladhan.New(&http.Client{
		Transport: newRateLimitedTransport(httpClient.Transport, rate.NewLimiter(rate.Every(time.Second), 2)),
	})
	ct := &httpcache.Transport{Cache: newCacheAdapter(cache, "web-", webCacheTimeout), MarkCachedResponses: true}
	ct.Transport = httpClient.Transport
	cachedClient := &http.Client{Transport: ct}

	catalog, err := locations.New(aladhanClient, cache)
	if err != nil {
		log.Fatalf("Failed to load location catalog: %s", err)
	}

	ps := prayerservice.New(st, aladhanClient, settings)
	ps.GeoIPClient = geoip.New(httpClient)
	ps.WeatherClient = openmeteo.New(cachedClient)
	ps.Catalog = catalog

	sched, err := scheduler.New(time.Local)
	if err != nil {
		log.Fatal(err)
	}
	player := audio.New(settings)

	ps.ScheduleUpdated.AddListener(func(_ context.Context, r prayerservice.Result) {
		if err := sched.SchedulePrayers(r.Day.Prayers, func(n app.PrayerName) {
			if err := player.PlayForPrayer(n); err != nil {
				slog.Error("Failed to play adhan", "prayer", n, "error", err)
			}
		}); err != nil {
			slog.Error("Failed to schedule prayers", "error", err)
		}
		at := prayerservice.NextRefreshAt(r.Day)
		if err := sched.ScheduleRefresh(at, func() {
			if _, err := ps.RefreshDay(context.Background()); err != nil {
				slog.Error("Scheduled refresh failed", "error", err)
			}
		}); err != nil {
			slog.Error("Failed to schedule refresh", "error", err)
		}
	})

	u := ui.NewUI(fyneApp, settings, ps, sched, player, catalog)
	u.AppVersion = fyneApp.Metadata().Version
	u.ShowAndRun()
}
