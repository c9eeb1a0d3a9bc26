// Package candidatecache persists the registration and renewal candidate
// datasets in a local SQLite database. Importing the raw JSON dumps is
// slow; once cached, every run and every per-worker index build reads
// from the database instead of reparsing source files.
package candidatecache
