// Package script runs calculator sessions and scripts.
//
// Package: script
// Title: Script Control-Flow Interpreter
// Description: A Session executes interactive lines against a store. An
//              Interpreter runs whole scripts through the same session with
//              !if/!endif blocks, !while/!endwhile loops and iterator
//              commands.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Scripts
//
//	i = 0
//	!while i < 3
//	  i = i + 1
//	  sq = i^2
//	  !yield squares sq
//	!endwhile
//	!iterout squares
//
// Blank lines and lines starting with '#' are ignored; error messages use
// the original line numbers.
//
// Errors
//
// Expression errors and unknown commands are counted and the script goes
// on, unless !strict was given. Invalid command arguments and failing
// commands always end the script. The exit code is the code given to
// !exit, 1 when any line failed, and 0 otherwise.
//
//	s := script.New(script.Options{Echo: true})
//	os.Exit(s.Run(ctx, source))
package script
