// Package hashengine is recache's dependency-resolution and hashing
// engine: the textual reference scanner, the path-resolution policy, the
// recursive Merkle-hash computation, and the rewrite-and-emit stage that
// produces output files whose names encode their own content hash.
//
// The package is organized leaves-first, matching the order data flows
// through the pipeline:
//
//   - asset.go        the Asset and Registry data model
//   - hash.go          the short content hash and its line-joined composition
//   - scanner.go       the textual reference scanner
//   - resolver.go      the path-resolution policy
//   - rewrite.go       the rewrite engine
//   - orchestrator.go  the dependency orchestrator (the core of the core)
//   - emitter.go        atomic write/copy to the output cache
//   - notfound.go      the not-found report
//
// The Orchestrator is single-threaded and synchronous by design: its
// recursion stack doubles as the dependency DFS stack, and cycle
// detection is a constant-time membership check. Callers must not invoke
// Process concurrently from multiple goroutines against the same
// Orchestrator.
package hashengine
