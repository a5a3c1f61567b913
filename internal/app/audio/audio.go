// Package audio plays the Adhan audio clips.
//
// Playback failures are reported to the caller and must not disrupt
// the schedule; the UI decides whether to surface them.
package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/maniartech/signals"

	"github.com/minaretapp/minaret/internal/app"
)

// Variant selects which Adhan clip to play.
type Variant uint

const (
	VariantFull Variant = iota
	VariantShort
)

func (v Variant) String() string {
	if v == VariantShort {
		return "short"
	}
	return "full"
}

// AdhanPlayer plays one of the two configured Adhan clips.
//
// Only one clip plays at a time. Starting a new clip stops the current one.
type AdhanPlayer struct {
	// PlaybackStarted is emitted with the file path when a clip starts.
	PlaybackStarted signals.Signal[string]
	// PlaybackFinished is emitted when a clip finishes or is stopped.
	PlaybackFinished signals.Signal[struct{}]

	settings app.Settings

	mu      sync.Mutex
	playing bool
}

// New returns a new AdhanPlayer.
func New(settings app.Settings) *AdhanPlayer {
	p := &AdhanPlayer{
		PlaybackStarted:  signals.New[string](),
		PlaybackFinished: signals.New[struct{}](),
		settings:         settings,
	}
	return p
}

// PlayForPrayer plays the clip configured for the given prayer.
func (p *AdhanPlayer) PlayForPrayer(name app.PrayerName) error {
	v := VariantFull
	if p.settings.ShortAdhanPrayers().Contains(string(name)) {
		v = VariantShort
	}
	return p.Play(v)
}

// Play plays an Adhan clip, stopping any clip that is already playing.
func (p *AdhanPlayer) Play(v Variant) error {
	path := p.settings.AdhanFullPath()
	if v == VariantShort {
		path = p.settings.AdhanShortPath()
	}
	if path == "" {
		return fmt.Errorf("no %s adhan clip configured", v)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("adhan clip: %w", err)
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode adhan clip %s: %w", path, err)
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return fmt.Errorf("init speaker: %w", err)
	}
	p.mu.Lock()
	p.playing = true
	p.mu.Unlock()
	done := func() {
		streamer.Close()
		p.mu.Lock()
		wasPlaying := p.playing
		p.playing = false
		p.mu.Unlock()
		if wasPlaying {
			p.PlaybackFinished.Emit(context.Background(), struct{}{})
		}
	}
	speaker.Play(beep.Seq(streamer, beep.Callback(done)))
	slog.Info("Playing adhan", "variant", v, "path", path)
	p.PlaybackStarted.Emit(context.Background(), path)
	return nil
}

// Stop stops the current playback if there is any.
func (p *AdhanPlayer) Stop() {
	p.mu.Lock()
	wasPlaying := p.playing
	p.playing = false
	p.mu.Unlock()
	if !wasPlaying {
		return
	}
	speaker.Clear()
	slog.Debug("Stopped adhan playback")
	p.PlaybackFinished.Emit(context.Background(), struct{}{})
}

// IsPlaying reports whether a clip is currently playing.
func (p *AdhanPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
