// Package services defines shared utilities consumed by the identification,
// catalog, and renaming engines.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that tag failures with a
//     stable classification (I/O, parse, validation, collision, not-found).
//   - Context helpers that stamp history run IDs for logging.
//
// Batch operations never abort on a tagged error; they fold the failure into
// a per-item result and continue. Use these helpers when wiring new engine
// logic so error handling stays uniform across commands.
package services
