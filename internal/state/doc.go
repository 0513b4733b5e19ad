// Package state holds the table state engine shared by every list view.
//
// # Overview
//
// A list view is one TableState: the canonical items last fetched from the
// API plus UI state (page, search query, selection, active dialog). Every
// change goes through Reduce, a pure function over a closed set of Action
// types. Store wraps Reduce behind a mutex so the UI loop and the network
// goroutines that report back into it see atomic transitions.
//
// # Derivation
//
// Derive never mutates state. It sorts newest first (stable, so equal
// timestamps keep their fetched order), filters by a case-insensitive title
// substring and slices out the requested page:
//
//	items ──sort──> newest first ──filter──> matching ──page──> Visible
//
// # Invariants
//
// After every Store.Dispatch:
//
//   - CurrentPage is within [1, TotalPages]. Reduce treats SetPage as a plain
//     setter; Store applies the corrective SetPage itself.
//   - Selected only holds ids present in Items once a LoadItems has run.
//   - A dialog target is always present in Items; a load that drops it
//     closes the dialog.
//   - Exactly one dialog mode is active (Dialog is a single value).
//
// # Selection
//
// Selection persists across pages and searches. SelectAll only ever adds or
// removes the ids of the visible page, so unchecking the header checkbox on
// page 2 keeps the rows selected on page 1.
//
// # Reload Ordering
//
// Reloads reserve a sequence number with NextLoadSeq and send it along in
// LoadItems. A response carrying an older number than the last applied one
// is discarded, so a slow reload can never overwrite fresher data.
package state
