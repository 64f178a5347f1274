// Package store holds the variables and iterators of a calculator session.
//
// Package: store
// Title: Variable and Iterator Store
// Description: A Store maps names to decimal values and to ordered iterator
//              sequences, and remembers the previous answer. It is owned by
//              a single session and is not safe for concurrent use.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
package store
