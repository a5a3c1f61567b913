// Package locations provides the city catalog used for manual location entry.
//
// The catalog is loaded from a bundled asset and refreshed from the
// AlAdhan catalog endpoints when the network allows it. Remote results are
// kept in the persistent cache so the app degrades gracefully when offline.
package locations

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/aladhan"
	"github.com/minaretapp/minaret/internal/app/pcache"
	"github.com/minaretapp/minaret/internal/optional"
)

//go:embed catalog.yaml
var catalogYAML []byte

const (
	cacheKeyCountries   = "catalog-countries"
	cacheKeyCitiesBase  = "catalog-cities-"
	cacheTimeoutCatalog = 7 * 24 * time.Hour
)

type bundledCity struct {
	Name      string   `yaml:"name"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

type bundledCountry struct {
	Name   string        `yaml:"name"`
	Code   string        `yaml:"code"`
	Cities []bundledCity `yaml:"cities"`
}

type bundledCatalog struct {
	Countries []bundledCountry `yaml:"countries"`
}

// Catalog is the country and city catalog.
type Catalog struct {
	client *aladhan.Client // optional, nil disables remote refresh
	cache  *pcache.PCache  // optional, nil disables caching

	byCode map[string]bundledCountry
	byName map[string]bundledCountry
	sorted []app.Country
}

// New returns a new Catalog from the bundled asset.
//
// client and cache may be nil, which limits the catalog to the bundled data.
func New(client *aladhan.Client, cache *pcache.PCache) (*Catalog, error) {
	var data bundledCatalog
	if err := yaml.Unmarshal(catalogYAML, &data); err != nil {
		return nil, fmt.Errorf("parse bundled catalog: %w", err)
	}
	c := &Catalog{
		client: client,
		cache:  cache,
		byCode: make(map[string]bundledCountry),
		byName: make(map[string]bundledCountry),
	}
	for _, entry := range data.Countries {
		if entry.Name == "" {
			continue
		}
		if entry.Code != "" {
			c.byCode[strings.ToUpper(entry.Code)] = entry
		}
		c.byName[strings.ToLower(entry.Name)] = entry
		c.sorted = append(c.sorted, app.Country{Name: entry.Name, Code: entry.Code})
	}
	sort.Slice(c.sorted, func(i, j int) bool {
		return c.sorted[i].Name < c.sorted[j].Name
	})
	return c, nil
}

// Countries returns the known countries, refreshed from the API when possible.
func (c *Catalog) Countries(ctx context.Context) []app.Country {
	if c.client == nil {
		return c.sorted
	}
	var cc []app.Country
	if err := c.fetchCached(ctx, cacheKeyCountries, &cc, func() (any, error) {
		return c.client.Countries(ctx)
	}); err != nil {
		slog.Warn("Falling back to bundled country catalog", "error", err)
		return c.sorted
	}
	sort.Slice(cc, func(i, j int) bool { return cc[i].Name < cc[j].Name })
	return cc
}

// Cities returns the known cities of a country, refreshed from the API when possible.
// The country can be given by ISO code or name.
func (c *Catalog) Cities(ctx context.Context, country string) []app.City {
	if c.client != nil {
		var cc []app.City
		key := cacheKeyCitiesBase + strings.ToUpper(country)
		err := c.fetchCached(ctx, key, &cc, func() (any, error) {
			return c.client.Cities(ctx, country)
		})
		if err == nil {
			sort.Slice(cc, func(i, j int) bool { return cc[i].Name < cc[j].Name })
			return cc
		}
		slog.Warn("Falling back to bundled city catalog", "country", country, "error", err)
	}
	entry, ok := c.lookupCountry(country)
	if !ok {
		return nil
	}
	cc := make([]app.City, 0, len(entry.Cities))
	for _, x := range entry.Cities {
		cc = append(cc, bundledToCity(x))
	}
	sort.Slice(cc, func(i, j int) bool { return cc[i].Name < cc[j].Name })
	return cc
}

// Country returns the catalog country for an ISO code or name.
func (c *Catalog) Country(ref string) (app.Country, bool) {
	entry, ok := c.lookupCountry(ref)
	if !ok {
		return app.Country{}, false
	}
	return app.Country{Name: entry.Name, Code: entry.Code}, true
}

// FindCity returns the catalog record for a city in a country.
// It reports app.ErrNotFound when the pair is not in the catalog.
//
// Manual location entries must resolve through this method
// so that invalid city and country pairs are rejected at the form.
func (c *Catalog) FindCity(ctx context.Context, country, city string) (app.City, error) {
	if city == "" || country == "" {
		return app.City{}, fmt.Errorf("find city: missing city or country: %w", app.ErrNotFound)
	}
	for _, x := range c.Cities(ctx, country) {
		if strings.EqualFold(x.Name, city) {
			return x, nil
		}
	}
	return app.City{}, fmt.Errorf("find city %s, %s: %w", city, country, app.ErrNotFound)
}

func (c *Catalog) lookupCountry(ref string) (bundledCountry, bool) {
	if entry, ok := c.byCode[strings.ToUpper(ref)]; ok {
		return entry, true
	}
	entry, ok := c.byName[strings.ToLower(ref)]
	return entry, ok
}

// fetchCached runs fetch and stores the JSON encoded result in the cache.
// On fetch failure it falls back to the cached value when one exists.
func (c *Catalog) fetchCached(ctx context.Context, key string, result any, fetch func() (any, error)) error {
	v, err := fetch()
	if err == nil {
		data, err2 := json.Marshal(v)
		if err2 == nil {
			if c.cache != nil {
				c.cache.Set(key, data, cacheTimeoutCatalog)
			}
			return json.Unmarshal(data, result)
		}
		return err2
	}
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			slog.Info("Using cached catalog data", "key", key)
			return json.Unmarshal(data, result)
		}
	}
	return err
}

func bundledToCity(x bundledCity) app.City {
	city := app.City{Name: x.Name}
	if x.Latitude != nil {
		city.Latitude = optional.New(*x.Latitude)
	}
	if x.Longitude != nil {
		city.Longitude = optional.New(*x.Longitude)
	}
	return city
}
