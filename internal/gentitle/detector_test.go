package gentitle_test

import (
	"testing"

	"marcpd/internal/gentitle"
)

func TestPatternDetection(t *testing.T) {
	d := gentitle.NewDetector(gentitle.DefaultOptions())

	cases := []struct {
		title string
		want  bool
	}{
		{"Collected Poems", true},
		{"ANNUAL REPORT", true},
		{"Annual report 1947", true},
		{"Short Stories", true},
		{"The Great Gatsby", false},
		{"Annual report of the board of directors", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := d.IsGeneric(tc.title, "eng"); got != tc.want {
			t.Errorf("IsGeneric(%q) = %v, want %v", tc.title, got, tc.want)
		}
	}
}

func TestNonEnglishSkipped(t *testing.T) {
	d := gentitle.NewDetector(gentitle.DefaultOptions())
	if d.IsGeneric("Poems", "fre") {
		t.Fatal("expected non-English titles to never be generic")
	}
	if !d.IsGeneric("Poems", "") {
		t.Fatal("expected empty language to be treated as English")
	}
}

func TestFrequencyDetection(t *testing.T) {
	opts := gentitle.DefaultOptions()
	opts.FrequencyThreshold = 3
	d := gentitle.NewDetector(opts)

	for i := 0; i < 3; i++ {
		d.AddTitle("History of the County")
	}
	d.AddTitle("One Off Title")

	if !d.IsGeneric("History of the County", "eng") {
		t.Fatal("expected frequent title to be generic")
	}
	if d.IsGeneric("One Off Title", "eng") {
		t.Fatal("expected rare title to stay distinctive")
	}
}

func TestExtraPatterns(t *testing.T) {
	opts := gentitle.DefaultOptions()
	opts.ExtraPatterns = []string{"Yearbook"}
	d := gentitle.NewDetector(opts)
	if !d.IsGeneric("Yearbook", "eng") {
		t.Fatal("expected extra pattern to register")
	}
}

func TestDetectionReason(t *testing.T) {
	d := gentitle.NewDetector(gentitle.DefaultOptions())
	cases := []struct {
		title    string
		language string
		want     string
	}{
		{"Collected Poems", "eng", "pattern"},
		{"The Great Gatsby", "eng", "none"},
		{"Poems", "fre", "skipped_non_english_fre"},
		{"", "eng", "empty"},
	}
	for _, tc := range cases {
		if got := d.DetectionReason(tc.title, tc.language); got != tc.want {
			t.Errorf("DetectionReason(%q, %q) = %q, want %q", tc.title, tc.language, got, tc.want)
		}
	}
}
