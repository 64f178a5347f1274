// Package error provides structured errors for the calculator.
//
// Package: error
// Title: Calculator Error Handling
// Description: Structured errors with codes, severities, operation names and
//              details. Codes classify failures of the expression pipeline,
//              the command grammar, script callbacks, file I/O and
//              configuration; severities decide whether a script run goes on.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Calculator error taxonomy
//
// Usage:
//
//	import mdwerror "github.com/msto63/sccalc/foundation/core/error"
//
//	err := mdwerror.New("Division by zero").
//		WithCode(mdwerror.CodeDivisionByZero).
//		WithDetail("position", 3)
//
//	wrapped := mdwerror.Wrap(err, "evaluation failed").
//		WithOperation("expr.Evaluate")
//
//	if mdwerror.HasCode(wrapped, mdwerror.CodeDivisionByZero) {
//		// report and carry on with the next line
//	}
package error
