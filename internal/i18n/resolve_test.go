package i18n

import "testing"

type fakeTranslation struct {
	lang      string
	isDefault bool
	title     string
}

func (f fakeTranslation) Language() string { return f.lang }
func (f fakeTranslation) Default() bool    { return f.isDefault }

func TestResolve(t *testing.T) {
	items := []fakeTranslation{
		{lang: "en", isDefault: false, title: "English"},
		{lang: "ar", isDefault: true, title: "Arabic"},
		{lang: "fa", isDefault: false, title: "Persian"},
	}

	tests := []struct {
		name     string
		lang     string
		expected string
	}{
		{name: "ExactMatch", lang: "fa", expected: "Persian"},
		{name: "ExactMatchDefault", lang: "ar", expected: "Arabic"},
		{name: "MissingFallsBackToDefault", lang: "ur", expected: "Arabic"},
		{name: "EmptyLangFallsBackToDefault", lang: "", expected: "Arabic"},
		{name: "CaseInsensitive", lang: "EN", expected: "English"},
		{name: "WhitespaceTrimmed", lang: " en ", expected: "English"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(items, tt.lang)
			if !ok {
				t.Fatal("Resolve returned ok=false for a non-empty set")
			}
			if got.title != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.lang, got.title, tt.expected)
			}
		})
	}
}

func TestResolveNoDefault(t *testing.T) {
	items := []fakeTranslation{
		{lang: "en", title: "English"},
		{lang: "ar", title: "Arabic"},
	}

	got, ok := Resolve(items, "fa")
	if !ok {
		t.Fatal("Resolve returned ok=false for a non-empty set")
	}
	if got.title != "English" {
		t.Errorf("expected first item as last resort, got %q", got.title)
	}
}

func TestResolveEmpty(t *testing.T) {
	if _, ok := Resolve([]fakeTranslation{}, "en"); ok {
		t.Error("Resolve returned ok=true for an empty set")
	}
}

func TestIsValidLanguage(t *testing.T) {
	valid := []string{"en", "ar", "fa", "ur", "eng", "en-us", "AR", " en "}
	for _, code := range valid {
		if !IsValidLanguage(code) {
			t.Errorf("IsValidLanguage(%q) = false, want true", code)
		}
	}

	invalid := []string{"", "e", "english", "en-us-ca", "e1", "en_us", "-en"}
	for _, code := range invalid {
		if IsValidLanguage(code) {
			t.Errorf("IsValidLanguage(%q) = true, want false", code)
		}
	}
}
