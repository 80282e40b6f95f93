package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Simple", input: "Hello World", expected: "hello-world"},
		{name: "Punctuation", input: "Hello, World!", expected: "hello-world"},
		{name: "ExtraWhitespace", input: "  Hello   World  ", expected: "hello-world"},
		{name: "MixedCase", input: "The Quick BROWN Fox", expected: "the-quick-brown-fox"},
		{name: "Digits", input: "Top 10 Books of 2024", expected: "top-10-books-of-2024"},
		{name: "HyphensPreserved", input: "well-known title", expected: "well-known-title"},
		{name: "HyphenRuns", input: "a -- b", expected: "a-b"},
		{name: "LeadingTrailingHyphens", input: "-edge case-", expected: "edge-case"},
		{name: "ArabicOnly", input: "مقدمة في الفقه", expected: ""},
		{name: "Empty", input: "", expected: ""},
		{name: "SymbolsOnly", input: "!!! ???", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.expected {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMakeUnique(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		existing []string
		expected string
	}{
		{name: "NoCollision", base: "hello", existing: nil, expected: "hello"},
		{name: "SingleCollision", base: "hello", existing: []string{"hello"}, expected: "hello-1"},
		{name: "SequentialCollisions", base: "hello", existing: []string{"hello", "hello-1", "hello-2"}, expected: "hello-3"},
		{name: "GapInSuffixes", base: "hello", existing: []string{"hello", "hello-2"}, expected: "hello-1"},
		{name: "UnrelatedSlugs", base: "hello", existing: []string{"world", "hello-world"}, expected: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := make(map[string]struct{}, len(tt.existing))
			for _, s := range tt.existing {
				existing[s] = struct{}{}
			}
			if got := MakeUnique(tt.base, existing); got != tt.expected {
				t.Errorf("MakeUnique(%q) = %q, want %q", tt.base, got, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"hello", "hello-world", "a", "top-10-books", "x1-y2"}
	for _, s := range valid {
		if !IsValid(s) {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "-hello", "hello-", "hello--world", "Hello", "hello world", "héllo"}
	for _, s := range invalid {
		if IsValid(s) {
			t.Errorf("IsValid(%q) = true, want false", s)
		}
	}
}

func TestFallback(t *testing.T) {
	first := Fallback("article")
	second := Fallback("article")

	if !IsValid(first) {
		t.Errorf("Fallback produced an invalid slug: %q", first)
	}
	if first == second {
		t.Errorf("Fallback produced the same slug twice: %q", first)
	}
	if len(first) != len("article")+1+8 {
		t.Errorf("unexpected fallback length for %q", first)
	}
}
