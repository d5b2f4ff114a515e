package overlay

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"

	"github.com/oukeidos/caplet/internal/catalog"
	"github.com/oukeidos/caplet/internal/language"
)

// RefreshInterval is the cadence of the simulated caption stream.
const RefreshInterval = 3 * time.Second

// maxCaptionGraphemes bounds the rendered caption width. Sample sets are
// short, but the limit keeps externally supplied catalogs in check.
const maxCaptionGraphemes = 120

// Subtitle sizes offered by the panel.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// PlaybackState is the UI-local playback configuration. It is
// independent of identity and never persisted.
type PlaybackState struct {
	SubtitlesEnabled bool
	AudioEnabled     bool
	SubtitleSize     string
	Stopped          bool
}

// DefaultPlayback matches a fresh overlay: subtitles on, audio off.
func DefaultPlayback() PlaybackState {
	return PlaybackState{SubtitlesEnabled: true, SubtitleSize: SizeMedium}
}

// Feed simulates the caption stream. It is Active iff an identity is
// present, subtitles are enabled, and playback is not stopped; while
// Active it emits a placeholder immediately and then a random sample
// caption every RefreshInterval.
type Feed struct {
	clock Clock

	mu        sync.Mutex
	identity  bool
	playback  PlaybackState
	lang      language.Code
	timer     Timer
	seq       uint64
	pick      func(n int) int
	onCaption func(string)
}

func NewFeed(clock Clock) *Feed {
	return &Feed{
		clock:    clock,
		playback: DefaultPlayback(),
		lang:     language.Default,
		pick:     rand.IntN,
	}
}

// SetOnCaption registers the render callback. An empty string means the
// caption display should clear.
func (f *Feed) SetOnCaption(fn func(string)) {
	f.mu.Lock()
	f.onCaption = fn
	f.mu.Unlock()
}

// SetIdentityPresent updates the auth input of the activation state.
func (f *Feed) SetIdentityPresent(present bool) {
	f.mu.Lock()
	was := f.activeLocked()
	f.identity = present
	f.maybeReconcileLocked(was)
}

// SetPlayback updates the playback inputs of the activation state.
// Changes that leave the activation conjunction intact (audio, subtitle
// size) do not restart the stream.
func (f *Feed) SetPlayback(state PlaybackState) {
	f.mu.Lock()
	was := f.activeLocked()
	f.playback = state
	f.maybeReconcileLocked(was)
}

// SetLanguage switches the sample-caption set. Restarts the interval so
// no stale timer keeps feeding the old language.
func (f *Feed) SetLanguage(code language.Code) {
	f.mu.Lock()
	if f.lang == code {
		f.mu.Unlock()
		return
	}
	f.lang = code
	f.reconcileLocked()
}

// Playback returns the current playback state.
func (f *Feed) Playback() PlaybackState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playback
}

func (f *Feed) activeLocked() bool {
	return f.identity && f.playback.SubtitlesEnabled && !f.playback.Stopped
}

func (f *Feed) maybeReconcileLocked(wasActive bool) {
	if f.activeLocked() == wasActive {
		f.mu.Unlock()
		return
	}
	f.reconcileLocked()
}

// reconcileLocked tears down the current timer and, when active,
// restarts the stream. Callers hold f.mu; it is released here so the
// emit callback runs unlocked.
func (f *Feed) reconcileLocked() {
	f.seq++
	seq := f.seq
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}

	if !f.activeLocked() {
		fn := f.onCaption
		f.mu.Unlock()
		if fn != nil {
			fn("")
		}
		return
	}

	fn := f.onCaption
	placeholder := catalog.String(f.lang, catalog.KeyCaptionsActive)
	f.timer = f.clock.AfterFunc(RefreshInterval, func() { f.tick(seq) })
	f.mu.Unlock()
	if fn != nil {
		fn(clampCaption(placeholder))
	}
}

func (f *Feed) tick(seq uint64) {
	f.mu.Lock()
	if seq != f.seq || !f.activeLocked() {
		f.mu.Unlock()
		return
	}
	samples := catalog.Captions(f.lang)
	var caption string
	if len(samples) > 0 {
		caption = samples[f.pick(len(samples))]
	}
	fn := f.onCaption
	f.timer = f.clock.AfterFunc(RefreshInterval, func() { f.tick(seq) })
	f.mu.Unlock()

	if fn != nil && caption != "" {
		fn(clampCaption(caption))
	}
}

func clampCaption(s string) string {
	if uniseg.GraphemeClusterCount(s) <= maxCaptionGraphemes {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < maxCaptionGraphemes-1 && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	b.WriteString("…")
	return b.String()
}
