// Package common contains the sentinel errors shared by every layer of the
// PyHx shell, plus a few small helpers for handling secrets in memory.
//
// Callers match errors with errors.Is; services wrap the sentinels with
// context using fmt.Errorf("...: %w", err) and the dispatcher turns them
// into user-facing diagnostics.
package common
