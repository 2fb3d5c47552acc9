// Package runlog persists a history of dubbing runs in SQLite.
//
// The ledger is an append-style record, not a work queue: the CLI runs one
// pipeline at a time and writes a row when the run starts, then finalizes it
// with the output path or the failing stage. The "vodub history" command
// reads it back for display.
package runlog
