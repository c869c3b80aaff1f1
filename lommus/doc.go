// Package lommus implements a single-guild Discord bot whose features live
// in Go source files loaded and interpreted at runtime, so behavior can be
// extended without rebuilding the binary.
//
// After the gateway authenticates, the bot resolves its home guild, sets a
// member-count presence, and scans the configured module directory once,
// interpreting each matching file with yaegi. A file that declares
// `package module` and exposes `func New() modapi.Module` is constructed,
// initialized with a capability client, and registered by name; anything
// else in the directory is treated as a shared utility file and skipped.
//
// Key components of the package include:
//
//   - Bot: The main struct that owns the session, runtime config, and the
//     module registry.
//   - Discord: Handles the gateway session and the slash-command surface.
//   - RuntimeConfig: Mutable settings commands and modules may flip while
//     running; process-scoped, lost on restart.
//   - ModuleLoadResult: The per-file outcome report produced by a module
//     directory scan.
//
// The bot supports three slash commands:
//
//   - /restart: Re-executes the process after confirming ephemerally.
//   - /say: Relays a message into the originating channel.
//   - /toggle: Flips a named runtime flag, currently color randomization.
//
// All state is in-memory. A restart replaces the process image wholesale
// and the new process re-runs bootstrap, including module loading, from
// scratch.
package lommus
