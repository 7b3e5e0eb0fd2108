// Package config loads, normalizes, and validates romdex configuration.
//
// Configuration is TOML with sections for paths, scanning, renaming, and
// logging. Load resolves the file from an explicit path, the user config
// directory, or a project-local romdex.toml, then applies defaults for any
// field left unset. A validated Config is passed by value to the engines;
// nothing reads configuration ambiently.
package config
