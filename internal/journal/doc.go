// Package journal records crafting executions and their phase events in
// SQLite.
//
// The journal is append-only apart from execution status updates. Reads
// are ordered by the logical seq assigned by crafting.Clock, so a journal
// written by a deterministic run reads back identically.
package journal
