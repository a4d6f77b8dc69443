// Package registry holds the fixed table of shell commands.
//
// Each command is a Descriptor: a name, a category used to group the help
// listing, help and usage text, the role required to invoke it, whether it
// honors output redirection, and a Handler. The registry is built once at
// startup with New and never changes afterwards; duplicate names are a
// construction error.
//
// Handlers receive a Call carrying the arguments, the live session and the
// redirect (only for descriptors with AcceptsRedirect set) and return a
// Result telling the dispatch loop whether to keep going.
package registry
