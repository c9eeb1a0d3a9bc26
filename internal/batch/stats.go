package batch

// Stats counts what happened inside one batch. All fields are plain
// sums, so merging is commutative and associative: totals do not depend
// on batch completion order.
type Stats struct {
	Processed           int `json:"processed"`
	RegistrationMatches int `json:"registration_matches"`
	RenewalMatches      int `json:"renewal_matches"`
	LCCNMatches         int `json:"lccn_matches"`
	SkippedNoYear       int `json:"skipped_no_year"`

	// Country breakdown of processed records, from the MARC country code.
	USRecords             int `json:"us_records"`
	NonUSRecords          int `json:"non_us_records"`
	UnknownCountryRecords int `json:"unknown_country_records"`

	// Errors counts batches that failed outright and contributed no
	// other stats.
	Errors  int     `json:"errors"`
	Seconds float64 `json:"seconds"`
}

// Merge folds other into s.
func (s *Stats) Merge(other Stats) {
	s.Processed += other.Processed
	s.RegistrationMatches += other.RegistrationMatches
	s.RenewalMatches += other.RenewalMatches
	s.LCCNMatches += other.LCCNMatches
	s.SkippedNoYear += other.SkippedNoYear
	s.USRecords += other.USRecords
	s.NonUSRecords += other.NonUSRecords
	s.UnknownCountryRecords += other.UnknownCountryRecords
	s.Errors += other.Errors
	s.Seconds += other.Seconds
}

// Result describes one completed (or failed) batch. A failed batch has
// a non-empty Failure and zero-progress Stats, with only the error
// counter set.
type Result struct {
	BatchID    int    `json:"batch_id"`
	Stats      Stats  `json:"stats"`
	ResultPath string `json:"result_path,omitempty"`
	Failure    string `json:"failure,omitempty"`
}
