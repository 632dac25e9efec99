// Package fragment drives the fragment.com UI through the two workflows
// this process exists for: the TON wallet-pairing handshake (Connect +
// AwaitHandshake) and the one-time login code lookup for +888 numbers
// (LookupCode).
//
// Both workflows operate on the single shared page owned by the session
// manager. The Orchestrator serializes every page-touching operation behind
// one mutex, because navigation and modal state are page-global: two
// interleaved workflows would corrupt each other. Logout bypasses that
// mutex on purpose, so a reset can interrupt an in-flight wait; the waiting
// call then observes the invalidated handle as a call-scoped failure.
//
// The selectors and timeout budgets here are coupled to a live third-party
// page that can change without notice. That coupling is an explicit
// external dependency of this system, not a protocol it controls.
package fragment
