// Package logger provides a structured logging interface for unsplash-dl.
//
// It wraps zerolog behind a small Logger interface with support for:
// - Log levels (Debug, Info, Warn, Error)
// - Structured fields
// - Pretty console output on stderr
// - Optional file output
// - A global logger for the command layer
//
// Basic Usage:
//
//	err := logger.Initialize(&cfg.Logging)
//
//	logger.Info("Application started")
//	logger.WithField("query", "mountains").Info("Searching")
//	logger.WithError(err).Error("Download failed")
//
// Components take a Logger in their constructor and fall back to
// GetLogger() when given nil. Tests use NewNopLogger or NewTestLogger.
package logger
