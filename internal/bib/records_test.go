package bib_test

import (
	"testing"

	"marcpd/internal/bib"
)

func TestLanguageOrDefault(t *testing.T) {
	r := &bib.InputRecord{Language: "fre"}
	if got := r.LanguageOrDefault(); got != "fre" {
		t.Fatalf("expected fre, got %q", got)
	}
	r = &bib.InputRecord{Language: "  "}
	if got := r.LanguageOrDefault(); got != "eng" {
		t.Fatalf("expected eng default, got %q", got)
	}
}

func TestHasAuthorData(t *testing.T) {
	r := &bib.InputRecord{MainAuthor: "Twain, Mark"}
	if !r.HasAuthorData() {
		t.Fatal("expected author data from main author field")
	}
	r = &bib.InputRecord{Author: "  "}
	if r.HasAuthorData() {
		t.Fatal("expected no author data from blank fields")
	}

	c := &bib.CandidateRecord{Author: "Twain, Mark"}
	if !c.HasAuthorData() {
		t.Fatal("expected candidate author data")
	}
}

func TestPublisherText(t *testing.T) {
	c := &bib.CandidateRecord{Publisher: "Viking Press", FullText: "full entry"}
	if got := c.PublisherText(); got != "Viking Press" {
		t.Fatalf("expected parsed publisher, got %q", got)
	}
	c = &bib.CandidateRecord{FullText: "© 1930 by The Viking Press, New York"}
	if got := c.PublisherText(); got != c.FullText {
		t.Fatalf("expected full text fallback, got %q", got)
	}
}
