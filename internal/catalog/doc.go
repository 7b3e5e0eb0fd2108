// Package catalog loads DAT reference databases and answers identification
// queries against them.
//
// Each loaded source becomes a Catalog holding four indexes over the same
// entries: by MD5, SHA-1, and CRC32 hash, plus a name index that contains
// every entry even when the source omitted its hashes. The Store owns the
// catalogs, guards them with a read-write lock, and searches them in load
// order so hash collisions across catalogs resolve deterministically.
//
// Sources parse into a staging structure and commit only on success; a
// malformed document never disturbs catalogs that are already loaded.
// Loading the same source path twice is a no-op.
package catalog
