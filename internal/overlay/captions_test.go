package overlay

import (
	"slices"
	"testing"

	"github.com/oukeidos/caplet/internal/catalog"
)

func activeFeed(t *testing.T, clock *fakeClock) (*Feed, *[]string) {
	t.Helper()
	f := NewFeed(clock)
	f.pick = func(n int) int { return 0 }
	var emitted []string
	f.SetOnCaption(func(c string) { emitted = append(emitted, c) })
	return f, &emitted
}

func TestFeed_PlaceholderThenSamples(t *testing.T) {
	clock := newFakeClock()
	f, emitted := activeFeed(t, clock)

	f.SetIdentityPresent(true)
	if len(*emitted) != 1 || (*emitted)[0] != "Translated captions active" {
		t.Fatalf("expected immediate placeholder, got %q", *emitted)
	}

	clock.Advance(RefreshInterval)
	samples := catalog.Captions("en")
	if len(*emitted) != 2 || !slices.Contains(samples, (*emitted)[1]) {
		t.Fatalf("tick did not emit a sample caption: %q", *emitted)
	}

	clock.Advance(RefreshInterval)
	if len(*emitted) != 3 {
		t.Fatalf("stream did not keep ticking: %d emissions", len(*emitted))
	}
}

func TestFeed_InactiveWithoutIdentity(t *testing.T) {
	clock := newFakeClock()
	f, emitted := activeFeed(t, clock)

	f.SetPlayback(DefaultPlayback())
	clock.Advance(10 * RefreshInterval)
	if len(*emitted) != 0 {
		t.Fatalf("feed emitted without an identity: %q", *emitted)
	}
}

func TestFeed_DisablingSubtitlesClearsCaption(t *testing.T) {
	clock := newFakeClock()
	f, emitted := activeFeed(t, clock)
	f.SetIdentityPresent(true)

	pb := f.Playback()
	pb.SubtitlesEnabled = false
	f.SetPlayback(pb)

	if last := (*emitted)[len(*emitted)-1]; last != "" {
		t.Fatalf("caption not cleared on disable, last = %q", last)
	}
	if clock.pending() != 0 {
		t.Fatalf("stale caption timer left running")
	}
}

func TestFeed_StopSuspendsAndResumeRestarts(t *testing.T) {
	clock := newFakeClock()
	f, emitted := activeFeed(t, clock)
	f.SetIdentityPresent(true)

	pb := f.Playback()
	pb.Stopped = true
	f.SetPlayback(pb)
	n := len(*emitted)
	clock.Advance(10 * RefreshInterval)
	if len(*emitted) != n {
		t.Fatalf("stopped feed kept emitting")
	}

	pb.Stopped = false
	f.SetPlayback(pb)
	if last := (*emitted)[len(*emitted)-1]; last != "Translated captions active" {
		t.Fatalf("resume did not re-emit the placeholder, last = %q", last)
	}
}

func TestFeed_LanguageChangeSwitchesSampleSet(t *testing.T) {
	clock := newFakeClock()
	f, emitted := activeFeed(t, clock)
	f.SetIdentityPresent(true)

	f.SetLanguage("pt")
	clock.Advance(RefreshInterval)

	last := (*emitted)[len(*emitted)-1]
	if !slices.Contains(catalog.Captions("pt"), last) {
		t.Fatalf("caption %q not from the pt sample set", last)
	}
	if slices.Contains(catalog.Captions("en"), last) {
		t.Fatalf("stale timer still feeding the old language")
	}
}

func TestFeed_UnrelatedPlaybackChangeKeepsTimer(t *testing.T) {
	clock := newFakeClock()
	f, emitted := activeFeed(t, clock)
	f.SetIdentityPresent(true)
	n := len(*emitted)

	pb := f.Playback()
	pb.AudioEnabled = true
	pb.SubtitleSize = SizeLarge
	f.SetPlayback(pb)

	if len(*emitted) != n {
		t.Fatalf("audio toggle re-emitted the placeholder")
	}
	if clock.pending() != 1 {
		t.Fatalf("pending timers = %d, want 1", clock.pending())
	}
}

func TestClampCaption(t *testing.T) {
	short := "hello"
	if got := clampCaption(short); got != short {
		t.Fatalf("short caption altered: %q", got)
	}
	long := ""
	for range 200 {
		long += "a"
	}
	got := clampCaption(long)
	if len([]rune(got)) != maxCaptionGraphemes {
		t.Fatalf("clamped length = %d, want %d", len([]rune(got)), maxCaptionGraphemes)
	}
}
