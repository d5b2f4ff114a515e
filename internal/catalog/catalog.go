package catalog

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/asticode/go-astisub"

	"github.com/oukeidos/caplet/internal/language"
	"github.com/oukeidos/caplet/internal/logger"
)

//go:embed captions/*.srt
var captionFiles embed.FS

// Bundle holds the display strings and sample captions for one language.
type Bundle struct {
	Code     language.Code
	Strings  map[string]string
	Captions []string
}

var (
	loadOnce sync.Once
	bundles  map[language.Code]*Bundle
)

// Get returns the bundle for code, falling back to the default language's
// bundle when the code has no entry.
func Get(code language.Code) *Bundle {
	loadOnce.Do(load)
	if b, ok := bundles[code]; ok {
		return b
	}
	return bundles[language.Default]
}

// String looks up a display string by key, falling back first to the
// default bundle and finally to the key itself.
func String(code language.Code, key string) string {
	b := Get(code)
	if s, ok := b.Strings[key]; ok {
		return s
	}
	if def := bundles[language.Default]; def != nil {
		if s, ok := def.Strings[key]; ok {
			return s
		}
	}
	return key
}

// Captions returns the sample caption set for code, never empty as long
// as the default bundle loaded.
func Captions(code language.Code) []string {
	return Get(code).Captions
}

func load() {
	bundles = make(map[language.Code]*Bundle, len(language.Languages))
	for code := range language.Languages {
		caps, err := loadCaptions(code)
		if err != nil {
			logger.Warn("Sample captions missing for language", "language", string(code), "error", err)
		}
		bundles[code] = &Bundle{
			Code:     code,
			Strings:  uiStrings[code],
			Captions: caps,
		}
	}
}

func loadCaptions(code language.Code) ([]string, error) {
	f, err := captionFiles.Open(fmt.Sprintf("captions/%s.srt", code))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	subs, err := astisub.ReadFromSRT(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse caption file for %s: %w", code, err)
	}
	captions := make([]string, 0, len(subs.Items))
	for _, item := range subs.Items {
		lines := make([]string, 0, len(item.Lines))
		for _, l := range item.Lines {
			lines = append(lines, l.String())
		}
		text := strings.TrimSpace(strings.Join(lines, " "))
		if text != "" {
			captions = append(captions, text)
		}
	}
	return captions, nil
}
