package language

import (
	"sort"
	"strings"

	xlang "golang.org/x/text/language"
)

// Code identifies one of the supported display languages. Every Code must
// resolve to a catalog bundle; unknown codes fall back to Default.
type Code string

// Default is the system fallback language.
const Default Code = "en"

// Language represents a supported display language.
type Language struct {
	Code       Code
	Name       string
	NativeName string
}

// Languages is the closed set of supported display languages.
var Languages = map[Code]Language{
	"en":      {Code: "en", Name: "English", NativeName: "English"},
	"es":      {Code: "es", Name: "Spanish", NativeName: "Español"},
	"pt":      {Code: "pt", Name: "Portuguese", NativeName: "Português"},
	"fr":      {Code: "fr", Name: "French", NativeName: "Français"},
	"de":      {Code: "de", Name: "German", NativeName: "Deutsch"},
	"it":      {Code: "it", Name: "Italian", NativeName: "Italiano"},
	"ja":      {Code: "ja", Name: "Japanese", NativeName: "日本語"},
	"ko":      {Code: "ko", Name: "Korean", NativeName: "한국어"},
	"zh-Hans": {Code: "zh-Hans", Name: "Chinese (Simplified)", NativeName: "简体中文"},
	"ru":      {Code: "ru", Name: "Russian", NativeName: "Русский"},
	"hi":      {Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
	"ar":      {Code: "ar", Name: "Arabic", NativeName: "العربية"},
}

// aliases maps primary subtags that do not match a Code directly.
var aliases = map[string]Code{
	"zh": "zh-Hans",
}

// Get returns the language for an exact code.
func Get(code Code) (Language, bool) {
	lang, ok := Languages[code]
	return lang, ok
}

// Supported reports whether code is an exact member of the supported set.
func Supported(code Code) bool {
	_, ok := Languages[code]
	return ok
}

// FromTag maps an arbitrary BCP 47 tag (a stored preference, a runtime
// locale such as "pt-BR" or "en_US.UTF-8") to a supported Code via its
// primary subtag. Returns false when nothing in the tag is supported.
func FromTag(raw string) (Code, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	// POSIX locales carry encoding/modifier suffixes the BCP 47 parser rejects.
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if Supported(Code(raw)) {
		return Code(raw), true
	}

	tag, err := xlang.Parse(raw)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	sub := base.String()
	if alias, ok := aliases[sub]; ok {
		return alias, true
	}
	if Supported(Code(sub)) {
		return Code(sub), true
	}
	return "", false
}

// Sorted returns the supported languages ordered by English name.
func Sorted() []Language {
	entries := make([]Language, 0, len(Languages))
	for _, v := range Languages {
		entries = append(entries, v)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
