// Package main hosts the romdex CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into catalog
// loading, identification scans, renames, backups, report rendering, and
// history queries. It centralizes configuration resolution and logger setup
// so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
