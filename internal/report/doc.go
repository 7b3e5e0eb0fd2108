// Package report renders identification and rename reports to JSON, HTML,
// and CSV. It is pure presentation over already-computed result records; no
// identification logic lives here.
package report
