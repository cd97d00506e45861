package util

import (
	"strings"
	"testing"
)

func TestPkToHash(t *testing.T) {
	hash := PkToHash("ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAA")

	if len(hash) != 64 {
		t.Errorf("Expected hash length 64, got %d", len(hash))
	}
	if hash != PkToHash("ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAA") {
		t.Error("Hash should be deterministic")
	}
	if hash == PkToHash("some other key") {
		t.Error("Different keys should produce different hashes")
	}
}

func TestGetNameAndVersion(t *testing.T) {
	nv := GetNameAndVersion()
	if !strings.HasPrefix(nv, "trustnet / ") {
		t.Errorf("Expected 'trustnet / <version>', got '%s'", nv)
	}
	if GetVersion() == "" {
		t.Error("Embedded version should not be empty")
	}
}

func TestRandomString(t *testing.T) {
	s := RandomString(10)
	if len(s) != 10 {
		t.Errorf("Expected length 10, got %d", len(s))
	}
}

func TestNormalizeInput(t *testing.T) {
	normalized := NormalizeInput("line one\nline <two>")
	if strings.Contains(normalized, "\n") {
		t.Error("Newlines should be replaced")
	}
	if strings.Contains(normalized, "<") {
		t.Error("HTML should be escaped")
	}
}

func TestExtractMarkdownLinks(t *testing.T) {
	text := "read [this](https://a.example) and [that](https://b.example), plus plain text"
	urls := ExtractMarkdownLinks(text)

	if len(urls) != 2 {
		t.Fatalf("Expected 2 links, got %d", len(urls))
	}
	if urls[0] != "https://a.example" || urls[1] != "https://b.example" {
		t.Errorf("Unexpected urls: %v", urls)
	}

	if got := ExtractMarkdownLinks("no links here"); len(got) != 0 {
		t.Errorf("Expected no links, got %v", got)
	}
}

func TestMarkdownLinksToTerminal(t *testing.T) {
	text := "see [the docs](https://docs.example) for details"
	out := MarkdownLinksToTerminal(text)

	if !strings.Contains(out, "\033]8;;https://docs.example") {
		t.Error("Expected an OSC 8 hyperlink")
	}
	if !strings.Contains(out, "the docs") {
		t.Error("Link text should survive the conversion")
	}
	if strings.Contains(out, "[the docs]") {
		t.Error("Markdown syntax should be gone")
	}

	plain := "no links at all"
	if MarkdownLinksToTerminal(plain) != plain {
		t.Error("Text without links should pass through unchanged")
	}
}
