package bib

import "strings"

// InputRecord is a catalog record being classified. Fields are fixed once
// loaded; the matching pipeline only reads them.
type InputRecord struct {
	SourceID   string `json:"source_id"`
	Title      string `json:"title"`
	Author     string `json:"author,omitempty"`
	MainAuthor string `json:"main_author,omitempty"`
	Publisher  string `json:"publisher,omitempty"`
	Year       *int   `json:"year,omitempty"`
	LCCN       string `json:"lccn,omitempty"`
	Language   string `json:"language,omitempty"`
	Country    string `json:"country,omitempty"`
}

// CandidateRecord is a copyright registration or renewal entry. Renewal
// entries additionally carry the raw entry text, which often contains a
// richer publisher statement than the parsed field.
type CandidateRecord struct {
	SourceID  string `json:"source_id"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	PubDate   string `json:"pub_date,omitempty"`
	Year      *int   `json:"year,omitempty"`
	LCCN      string `json:"lccn,omitempty"`
	FullText  string `json:"full_text,omitempty"`
}

// LanguageOrDefault returns the record language code, defaulting to English
// when the record does not say.
func (r *InputRecord) LanguageOrDefault() string {
	if lang := strings.TrimSpace(r.Language); lang != "" {
		return lang
	}
	return "eng"
}

// CountryClass classifies the record's MARC country code.
func (r *InputRecord) CountryClass() CountryClass {
	return ClassifyCountry(r.Country)
}

// HasAuthorData reports whether either author field carries text.
func (r *InputRecord) HasAuthorData() bool {
	return strings.TrimSpace(r.Author) != "" || strings.TrimSpace(r.MainAuthor) != ""
}

// HasAuthorData reports whether the candidate carries an author statement.
func (c *CandidateRecord) HasAuthorData() bool {
	return strings.TrimSpace(c.Author) != ""
}

// PublisherText returns the best available publisher string: the parsed
// field when present, otherwise the full entry text for renewals.
func (c *CandidateRecord) PublisherText() string {
	if strings.TrimSpace(c.Publisher) != "" {
		return c.Publisher
	}
	return c.FullText
}
