package bib_test

import (
	"testing"

	"marcpd/internal/bib"
)

func TestNormalizeLCCN(t *testing.T) {
	cases := map[string]string{
		"n78-890351":      "n78890351",
		"n78-89035":       "n78089035",
		" 75-425165//r75": "75425165",
		"30-12345":        "30012345",
		"a50-1":           "a50000001",
		"n7889035":        "n7889035",
		"":                "",
		// Non-numeric serial portions are joined without padding.
		"n78-89035x": "n7889035x",
	}
	for in, want := range cases {
		if got := bib.NormalizeLCCN(in); got != want {
			t.Errorf("NormalizeLCCN(%q) = %q, want %q", in, got, want)
		}
	}
}
