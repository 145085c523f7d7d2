// Package reconcile maps the charts of a difficulty table onto chart folders.
//
// # Algorithm
//
// Reconcile receives the set of required chart hashes and, for every folder found in
// the song database, the hashes that folder contains. It then runs a greedy set
// cover:
//
//  1. Folders are sorted by descending coverage size.
//  2. A folder is selected if it covers at least one still-required hash; those
//     hashes are removed from the required set.
//  3. Folders whose hashes are already covered are skipped.
//  4. Whatever is left is reported as missing, sorted by level and title.
//
// Greedy cover is not guaranteed minimal, but in practice one folder holds one song
// with its charts, so the heuristic yields the natural folder set.
//
// # Level Ordering
//
// LevelOrder reproduces the table's own ordering when it publishes a level_order,
// and otherwise splits labels like "★12" or "sl3+" into prefix, number and suffix so
// that numeric levels sort numerically.
//
// # Session
//
// Session keeps the last result keyed by the (database path, table URL) pair it was
// computed from. The pack builder only accepts a result for the current inputs.
//
// # Usage
//
//	result := reconcile.Reconcile(required, coverage, charts, meta.LevelOrder)
//	result.Report(obs, meta.Symbol)
//	session.Store(reconcile.Inputs{DBPath: db, TableURL: url}, meta.Symbol, result)
package reconcile
