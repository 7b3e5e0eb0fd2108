// Package logging constructs zap loggers from application configuration.
//
// Loggers are built once at startup and passed explicitly to the components
// that need them; there is no package-level logger. Components attach a
// component field so batch output stays attributable.
package logging
