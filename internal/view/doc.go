// Package view derives the visible page of a document from a ViewState.
//
// Derivation runs in a fixed order:
//
//  1. global search over every value of a record
//  2. per-field filters, all of which must match
//  3. an optional sort on one field
//  4. pagination
//
// Matching is a case-insensitive substring test. A record that lacks a
// filtered field is matched as the literal string "undefined".
//
// Sorting compares two values numerically when both start with a finite
// number ("3.14x" reads as 3.14) and falls back to locale-aware collation
// otherwise. Derive never clamps the page: a page past the end yields an
// empty slice of rows with the correct page count.
//
// State values are immutable; every mutation returns a new State.
package view
