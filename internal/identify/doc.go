// Package identify resolves ROM files to catalog entries.
//
// The Identifier computes a content fingerprint for each candidate file and
// resolves it through the catalog store's hash indexes; name matching is never
// part of this path. Directory scans fan out across a bounded worker pool --
// the store is read-only during identification, so concurrent lookups are
// safe. Per-file failures become per-file results; a batch always returns one
// result per candidate and never aborts early.
package identify
