// Package checksum computes content fingerprints for ROM files.
//
// A Fingerprint carries the MD5, SHA-1, and CRC32 digests plus the byte size
// of a file, computed in a single streaming pass. Hash values are lower-case
// hex with CRC32 zero-padded to eight digits so they can be compared directly
// against DAT catalog attributes.
package checksum
