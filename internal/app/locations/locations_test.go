package locations_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/aladhan"
	"github.com/minaretapp/minaret/internal/app/locations"
	"github.com/minaretapp/minaret/internal/app/pcache"
	"github.com/minaretapp/minaret/internal/app/testutil"
)

func TestCatalogBundled(t *testing.T) {
	c, err := locations.New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	t.Run("can list bundled countries", func(t *testing.T) {
		got := c.Countries(ctx)
		assert.NotEmpty(t, got)
		assert.True(t, len(got) >= 20)
	})
	t.Run("can list cities by country name", func(t *testing.T) {
		got := c.Cities(ctx, "Egypt")
		names := make([]string, 0, len(got))
		for _, x := range got {
			names = append(names, x.Name)
		}
		assert.Contains(t, names, "Cairo")
	})
	t.Run("can list cities by ISO code", func(t *testing.T) {
		got := c.Cities(ctx, "EG")
		assert.NotEmpty(t, got)
	})
	t.Run("can look up a country by code", func(t *testing.T) {
		got, ok := c.Country("EG")
		if assert.True(t, ok) {
			assert.Equal(t, "Egypt", got.Name)
		}
	})
	t.Run("should report unknown country", func(t *testing.T) {
		_, ok := c.Country("XX")
		assert.False(t, ok)
	})
	t.Run("can find a known city", func(t *testing.T) {
		got, err := c.FindCity(ctx, "Egypt", "cairo")
		if assert.NoError(t, err) {
			assert.Equal(t, "Cairo", got.Name)
			assert.False(t, got.Latitude.IsEmpty())
		}
	})
	t.Run("should reject an invalid city and country pair", func(t *testing.T) {
		_, err := c.FindCity(ctx, "Egypt", "Springfield")
		assert.ErrorIs(t, err, app.ErrNotFound)
	})
	t.Run("should reject missing city", func(t *testing.T) {
		_, err := c.FindCity(ctx, "Egypt", "")
		assert.ErrorIs(t, err, app.ErrNotFound)
	})
}

func TestCatalogRemote(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	ctx := context.Background()
	ac := aladhan.New(http.DefaultClient)
	t.Run("prefers the remote catalog when available", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder("GET", "https://api.aladhan.com/v1/countries",
			httpmock.NewJsonResponderOrPanic(200, map[string]any{
				"code": 200,
				"data": []map[string]string{
					{"name": "Atlantis", "code": "AT"},
				},
			}))
		c, err := locations.New(ac, nil)
		if err != nil {
			t.Fatal(err)
		}
		// when
		got := c.Countries(ctx)
		// then
		if assert.Len(t, got, 1) {
			assert.Equal(t, "Atlantis", got[0].Name)
		}
	})
	t.Run("serves the cached catalog when the API fails", func(t *testing.T) {
		// given
		db, st, _ := testutil.NewDBInMemory()
		defer db.Close()
		cache := pcache.New(st, 0)
		defer cache.Close()
		httpmock.Reset()
		httpmock.RegisterResponder("GET", "https://api.aladhan.com/v1/countries",
			httpmock.NewJsonResponderOrPanic(200, map[string]any{
				"code": 200,
				"data": []map[string]string{
					{"name": "Atlantis", "code": "AT"},
				},
			}))
		c, err := locations.New(ac, cache)
		if err != nil {
			t.Fatal(err)
		}
		c.Countries(ctx) // warm the cache
		httpmock.Reset()
		httpmock.RegisterResponder("GET", "https://api.aladhan.com/v1/countries",
			httpmock.NewStringResponder(500, ""))
		// when
		got := c.Countries(ctx)
		// then
		if assert.Len(t, got, 1) {
			assert.Equal(t, "Atlantis", got[0].Name)
		}
	})
	t.Run("falls back to the bundled catalog when the API fails", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder("GET", "https://api.aladhan.com/v1/countries",
			httpmock.NewStringResponder(500, ""))
		c, err := locations.New(ac, nil)
		if err != nil {
			t.Fatal(err)
		}
		// when
		got := c.Countries(ctx)
		// then
		assert.True(t, len(got) >= 20)
	})
}
