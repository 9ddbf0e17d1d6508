// Package met handles meteorological grid datasets: ingestion, variable name
// normalization, and spatiotemporal subsetting.
//
// A [Dataset] is an in-memory grid with named dimensional coordinates (time,
// latitude, longitude) and named data variables. Variable names arriving from
// different weather model outputs are canonicalized to the standard keys
// u, v, w, t, z through an ordered [AliasTable]; first match across the alias
// list wins.
//
// Every transformation that produces a new dataset appends one line to the
// dataset's provenance history. The history is an ordered list of entries
// internally and only joined into a single newline-separated string at export
// time.
//
// [Open] reads a file with the native NetCDF decode engine and falls back
// once to the generic JSON grid decoder when that fails; after the fallback
// the error is surfaced unchanged.
package met
