// Package cli implements the interactive PyHx shell.
//
// An App authenticates a user against the credential store, then serves a
// read-dispatch loop over a fixed registry of commands grouped into System,
// File, User, App and Tools categories. Each input line is parsed (with
// optional > / >> redirection), looked up, checked against the caller's
// role and handed to the command's handler. Handler errors become printed
// diagnostics; only shutdown, restart, end of input or an interrupt leave
// the loop.
//
// The package lifecycle commands (convert, install, run, packages) are thin
// wrappers over services.PackageService.
package cli
