package language

import "testing"

func TestSupported(t *testing.T) {
	if !Supported("pt") {
		t.Fatalf("pt should be supported")
	}
	if Supported("tlh") {
		t.Fatalf("tlh should not be supported")
	}
	if Supported("") {
		t.Fatalf("empty code should not be supported")
	}
}

func TestFromTag_ExactAndRegional(t *testing.T) {
	cases := []struct {
		in   string
		want Code
		ok   bool
	}{
		{"pt", "pt", true},
		{"pt-BR", "pt", true},
		{"en_US.UTF-8", "en", true},
		{"zh", "zh-Hans", true},
		{"zh-TW", "zh-Hans", true},
		{"ja-JP", "ja", true},
		{"xx-YY", "", false},
		{"", "", false},
		{"not a tag!!", "", false},
	}
	for _, tc := range cases {
		got, ok := FromTag(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("FromTag(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSorted_CoversAllLanguages(t *testing.T) {
	entries := Sorted()
	if len(entries) != len(Languages) {
		t.Fatalf("Sorted() returned %d entries, want %d", len(entries), len(Languages))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Name > entries[i].Name {
			t.Fatalf("entries not sorted: %q before %q", entries[i-1].Name, entries[i].Name)
		}
	}
}

func TestDefaultIsSupported(t *testing.T) {
	if !Supported(Default) {
		t.Fatalf("default code %q must be in the supported set", Default)
	}
}
