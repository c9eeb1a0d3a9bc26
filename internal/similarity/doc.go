// Package similarity scores the textual closeness of record fields on a
// 0-100 scale. Titles, authors, and publishers each run a field-specific
// pipeline: shared normalization from textnorm, then a fuzzy ratio tuned to
// the failure modes of that field (subtitle containment for titles, name
// reordering for authors, partial matching against renewal full text for
// publishers).
package similarity
