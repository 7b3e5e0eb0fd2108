// Package rename applies canonical catalog names to identified ROM files.
//
// A rename never overwrites: when the destination already exists the file is
// left untouched and the result carries a collision error. Dry-run mode
// reports the intended outcome without touching the filesystem; Renamed=true
// then means the rename would have been applied.
//
// Directory runs take a lock file in the target directory so two competing
// processes cannot race past each other's destination-existence checks.
// Backup copies recognized ROM files into a mirrored tree before renaming;
// copies already made are not rolled back when a later one fails.
package rename
