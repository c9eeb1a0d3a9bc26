// Package textnorm provides the text normalization pipeline used before
// similarity scoring: Unicode-to-ASCII folding, abbreviation expansion,
// number normalization, language- and field-specific stopword removal,
// and stemming.
//
// Every comparison in the matching engine runs both sides through the same
// pipeline, so the helpers here are deterministic and allocation-light.
package textnorm
