// Package log provides structured logging for the calculator.
//
// Package: log
// Title: Structured Logging
// Description: Levelled structured logging with persistent context fields,
//              JSON/text/console/logfmt output and integration with the
//              structured errors of the error package. Diagnostic output of
//              the interpreter (the !debug switch) goes through it.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Synchronous logger, coloured console format
//
// Usage:
//
//	import mdwlog "github.com/msto63/sccalc/foundation/core/log"
//
//	logger := mdwlog.NewWithConfig(mdwlog.Config{
//		Level:  mdwlog.LevelDebug,
//		Format: mdwlog.FormatConsole,
//	}).WithField("component", "calc-script")
//
//	logger.Debug("while condition true", mdwlog.Fields{"line": 4})
//	logger.LogError(err)
package log
