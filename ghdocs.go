// Package ghdocs provides a local, CLI-based search tool for markdown
// documentation hosted in GitHub repositories. It mirrors documentation
// collections to disk, keeps one JSON index per documentation source, and
// ranks index entries against free-text queries.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, sqlite/, github/).
package ghdocs

// MaxResults is the maximum number of entries a search returns.
const MaxResults = 50
