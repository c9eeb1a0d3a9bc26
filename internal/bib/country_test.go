package bib_test

import (
	"testing"

	"marcpd/internal/bib"
)

func TestClassifyCountry(t *testing.T) {
	cases := []struct {
		code string
		want bib.CountryClass
	}{
		{"nyu", bib.CountryUS},
		{"xxu", bib.CountryUS},
		{"NYU", bib.CountryUS},
		{" cau ", bib.CountryUS},
		{"enk", bib.CountryNonUS},
		{"fr", bib.CountryNonUS},
		{"", bib.CountryUnknown},
		{"1uu", bib.CountryUnknown},
		{"abcd", bib.CountryUnknown},
		{"n-u", bib.CountryUnknown},
	}
	for _, tc := range cases {
		if got := bib.ClassifyCountry(tc.code); got != tc.want {
			t.Errorf("ClassifyCountry(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestInputRecordCountryClass(t *testing.T) {
	r := &bib.InputRecord{Country: "ilu"}
	if got := r.CountryClass(); got != bib.CountryUS {
		t.Fatalf("expected US classification, got %q", got)
	}
	r = &bib.InputRecord{}
	if got := r.CountryClass(); got != bib.CountryUnknown {
		t.Fatalf("expected unknown classification, got %q", got)
	}
}
