package config

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		IdentityURL:     "https://id.caplet.dev",
		DocstoreURL:     "https://store.caplet.dev",
		GeoipURL:        "https://ipwho.caplet.dev/country",
		DefaultLanguage: "en",
		CountryLanguages: map[string]string{
			"AR": "es",
			"AT": "de",
			"BR": "pt",
			"CL": "es",
			"CN": "zh-Hans",
			"CO": "es",
			"DE": "de",
			"EG": "ar",
			"ES": "es",
			"FR": "fr",
			"GB": "en",
			"IN": "hi",
			"IT": "it",
			"JP": "ja",
			"KR": "ko",
			"MX": "es",
			"PT": "pt",
			"RU": "ru",
			"SA": "ar",
			"US": "en",
		},
		LogLevel: "info",
	}
}
