// Package logger wraps zap with a global console logger and context helpers.
//
// Services accept a context and extract the logger from it, so the strobe
// controller, the drivers and the relay all log under their own names
// (WithName, WithKV). WithLevel overrides the level of a derived logger and
// backs the --verbose flag; SetLevel applies log_level from the config file.
package logger
