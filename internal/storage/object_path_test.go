package storage

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestSanitizeKeyPart(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Lowercases", input: "Report", expected: "report"},
		{name: "SpacesBecomeDashes", input: "annual report", expected: "annual-report"},
		{name: "DropsSymbols", input: "fiqh (intro).v2", expected: "fiqh-introv2"},
		{name: "TrimsEdges", input: "--draft__", expected: "draft"},
		{name: "NonLatinEmpties", input: "مقدمة", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeKeyPart(tt.input); got != tt.expected {
				t.Errorf("sanitizeKeyPart(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildObjectPath(t *testing.T) {
	now := time.Now().UTC()
	monthDir := now.Format("2006/01")

	t.Run("Layout", func(t *testing.T) {
		got := buildObjectPath("attachments", "tafsir-notes", "pdf")
		expected := fmt.Sprintf("attachments/%s/tafsir-notes.pdf", monthDir)
		if got != expected {
			t.Errorf("expected %q, got %q", expected, got)
		}
	})

	t.Run("EmptyCategoryDefaults", func(t *testing.T) {
		got := buildObjectPath("", "notes", "pdf")
		if !strings.HasPrefix(got, attachmentCategory+"/") {
			t.Errorf("expected default category prefix, got %q", got)
		}
	})

	t.Run("EmptyExtensionDefaults", func(t *testing.T) {
		got := buildObjectPath("attachments", "notes", "")
		if !strings.HasSuffix(got, ".bin") {
			t.Errorf("expected .bin suffix, got %q", got)
		}
	})

	t.Run("EmptyBaseGetsTimestamp", func(t *testing.T) {
		got := buildObjectPath("attachments", "مقدمة", "pdf")
		parts := strings.Split(got, "/")
		name := parts[len(parts)-1]
		if name == ".pdf" || !strings.HasSuffix(name, ".pdf") {
			t.Errorf("expected generated base name, got %q", got)
		}
	})
}

func TestDetectContentType(t *testing.T) {
	if got := detectContentType("unknownext"); got != "application/octet-stream" {
		t.Errorf("expected octet-stream fallback, got %q", got)
	}
	if got := detectContentType("pdf"); !strings.Contains(got, "application/pdf") {
		t.Errorf("expected pdf content type, got %q", got)
	}
}

func TestJoinPrefix(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		key      string
		expected string
	}{
		{name: "NoPrefix", prefix: "", key: "attachments/a.pdf", expected: "attachments/a.pdf"},
		{name: "TrimsSlashes", prefix: "/uploads/", key: "/attachments/a.pdf", expected: "uploads/attachments/a.pdf"},
		{name: "PlainPrefix", prefix: "maktaba", key: "a.pdf", expected: "maktaba/a.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinPrefix(tt.prefix, tt.key); got != tt.expected {
				t.Errorf("joinPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.expected)
			}
		})
	}
}
