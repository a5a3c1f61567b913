package audio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minaretapp/minaret/internal/app"
	"github.com/minaretapp/minaret/internal/app/audio"
	"github.com/minaretapp/minaret/internal/app/testutil"
)

func TestPlay(t *testing.T) {
	t.Run("should return error when no clip is configured", func(t *testing.T) {
		// given
		settings := testutil.NewFakeSettings()
		p := audio.New(settings)
		// when
		err := p.Play(audio.VariantFull)
		// then
		assert.Error(t, err)
		assert.False(t, p.IsPlaying())
	})
	t.Run("should return error when the clip does not exist", func(t *testing.T) {
		// given
		settings := testutil.NewFakeSettings()
		settings.SetAdhanFullPath(filepath.Join(t.TempDir(), "missing.mp3"))
		p := audio.New(settings)
		// when
		err := p.Play(audio.VariantFull)
		// then
		assert.Error(t, err)
	})
	t.Run("should return error when the clip is not valid audio", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "adhan.mp3")
		if err := os.WriteFile(path, []byte("not an mp3"), 0644); err != nil {
			t.Fatal(err)
		}
		settings := testutil.NewFakeSettings()
		settings.SetAdhanShortPath(path)
		p := audio.New(settings)
		// when
		err := p.Play(audio.VariantShort)
		// then
		assert.Error(t, err)
	})
}

func TestPlayForPrayer(t *testing.T) {
	t.Run("should pick the short clip for a short prayer", func(t *testing.T) {
		// given
		settings := testutil.NewFakeSettings()
		s := settings.ShortAdhanPrayers()
		s.Add(string(app.Fajr))
		settings.SetShortAdhanPrayers(s)
		settings.SetAdhanFullPath(filepath.Join(t.TempDir(), "full.mp3"))
		p := audio.New(settings)
		// when
		err := p.PlayForPrayer(app.Fajr)
		// then
		// the short clip is unset, so the full path must not be used
		assert.ErrorContains(t, err, "short")
	})
	t.Run("should pick the full clip by default", func(t *testing.T) {
		// given
		settings := testutil.NewFakeSettings()
		settings.SetAdhanShortPath(filepath.Join(t.TempDir(), "short.mp3"))
		p := audio.New(settings)
		// when
		err := p.PlayForPrayer(app.Dhuhr)
		// then
		assert.ErrorContains(t, err, "full")
	})
}

func TestStop(t *testing.T) {
	t.Run("stopping without playback is a no-op", func(t *testing.T) {
		// given
		settings := testutil.NewFakeSettings()
		p := audio.New(settings)
		// when/then
		assert.NotPanics(t, p.Stop)
		assert.False(t, p.IsPlaying())
	})
}
