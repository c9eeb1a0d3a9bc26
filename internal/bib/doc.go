// Package bib defines the bibliographic record types flowing through the
// matching pipeline: input records under classification and the candidate
// registration/renewal entries they are compared against.
package bib
