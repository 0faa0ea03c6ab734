// Package wikiextract extracts, filters, and simplifies Wikipedia articles
// from Wikipedia Enterprise HTML dumps (newline-delimited JSON, one article
// per line), keeping only the articles referenced by a map-data source such
// as OpenStreetMap wikidata/wikipedia tags.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, fs/) or concern (extract/,
// filter/).
package wikiextract
