package hashengine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Status is the outcome of a single Process call.
type Status int

const (
	// StatusDone means the asset has a final merkle_hash and its output
	// file has been emitted (or was already emitted by the time this
	// call returned).
	StatusDone Status = iota

	// StatusPending means asset could not complete yet: either it was
	// already on the recursion stack (a cycle), or its own content
	// depends on a cycle that has not closed. Outcome.Placeholder tells
	// the caller whether it must defer and retry once asset completes.
	StatusPending

	// StatusEntry means the caller tried to descend into an entry point
	// from mid-recursion; entry points are reachable only as roots.
	StatusEntry
)

// Outcome is what Process returns.
type Outcome struct {
	Status Status
	// Hash is the merkle_hash when Status is StatusDone, or whatever
	// placeholder hash is available yet when Status is StatusPending
	// (empty if none is available yet).
	Hash string
	// Placeholder is true when Hash (on a Pending outcome) is a
	// plain_hash cycle-break placeholder that will be superseded once
	// the target finishes — the referrer must therefore defer its own
	// completion and come back later. It is false when Hash is a
	// special_hash already locked in by an earlier deferred pass: that
	// name is stable even though the target's content may still change,
	// so the referrer does not need to defer on its account.
	Placeholder bool
}

// MultiCycleError is returned when a deferred reprocessing run
// encounters a second, distinct in-progress ancestor: mutual cycles
// among three or more in-progress files are not guaranteed to resolve,
// so recache fails the run rather than emit an incorrect hash.
type MultiCycleError struct {
	Asset string
}

func (e *MultiCycleError) Error() string {
	return fmt.Sprintf("multi_cycle: %s re-entered a cycle during deferred reprocessing", e.Asset)
}

// Orchestrator drives the recursive descent from entry points through
// the reference graph, owning all processing state for one run.
type Orchestrator struct {
	registry   *Registry
	resolver   *Resolver
	emitter    *Emitter
	entrySet   map[string]bool
	entryOrder []string
	ignore     map[string]bool

	// Clock supplies the timestamp used in the "Updated:" comment line.
	// Pinning it to a fixed value makes output byte-for-byte
	// reproducible across runs.
	Clock func() time.Time

	Verbose bool
	Loops   bool

	inProgress  map[string]bool
	done        map[string]bool
	plainHash   map[string]string
	specialHash map[string]string
	merkleHash  map[string]string
	pending     map[string][]*Asset
	invPending  map[string]bool

	// drainDepth is >0 while a pending[*] drain (a pendingOk reprocess)
	// is on the call stack. A fresh cycle-detection hit while draining
	// indicates a second, distinct cycle — see MultiCycleError.
	drainDepth int
}

// New builds an Orchestrator for one run over registry, with entries
// (logical paths) as the Entry Set, ignore as the Ignore Set, resolving
// candidates with resolver, and emitting through emitter.
func New(registry *Registry, resolver *Resolver, emitter *Emitter, entries []string, ignore map[string]bool) *Orchestrator {
	entrySet := make(map[string]bool, len(entries))
	for _, e := range entries {
		entrySet[e] = true
	}
	return &Orchestrator{
		registry:    registry,
		resolver:    resolver,
		emitter:     emitter,
		entrySet:    entrySet,
		entryOrder:  append([]string(nil), entries...),
		ignore:      ignore,
		Clock:       time.Now,
		inProgress:  make(map[string]bool),
		done:        make(map[string]bool),
		plainHash:   make(map[string]string),
		specialHash: make(map[string]string),
		merkleHash:  make(map[string]string),
		pending:     make(map[string][]*Asset),
		invPending:  make(map[string]bool),
	}
}

// Run processes every entry, in order.
func (o *Orchestrator) Run() error {
	for _, logical := range o.orderedEntries() {
		asset, ok := o.registry.Lookup(logical)
		if !ok {
			continue
		}
		if _, err := o.process(asset, false); err != nil {
			return err
		}
	}
	return nil
}

// orderedEntries returns the entries exactly in the order the caller
// passed them to New; a Registry lookup of each name happens in Run.
func (o *Orchestrator) orderedEntries() []string {
	return o.entryOrder
}

// Process runs the public single-asset operation for callers outside the
// package. Within the package, the rewrite step calls process directly
// when it descends into a resolved dependency.
func (o *Orchestrator) Process(asset *Asset) (Outcome, error) {
	return o.process(asset, false)
}

func (o *Orchestrator) process(asset *Asset, pendingOk bool) (Outcome, error) {
	logical := asset.LogicalPath

	// 1. Entry guard.
	if len(o.inProgress) > 0 && o.entrySet[logical] {
		return Outcome{Status: StatusEntry}, nil
	}

	// 2. Cycle detection.
	if o.inProgress[logical] {
		if o.drainDepth > 0 {
			return Outcome{}, &MultiCycleError{Asset: logical}
		}
		if o.Loops {
			fmt.Printf("cycle: %s is already in progress; using its plain hash as a placeholder\n", logical)
		}
		hash, err := o.ensurePlainHash(asset)
		if err != nil {
			o.logf("read_error: %s: %v", logical, err)
		}
		return Outcome{Status: StatusPending, Hash: hash, Placeholder: true}, nil
	}

	// 3. Idempotence.
	if o.done[logical] {
		return Outcome{Status: StatusDone, Hash: o.merkleHash[logical]}, nil
	}

	// 4. Mark in progress.
	o.inProgress[logical] = true

	var outcome Outcome
	var err error
	if asset.IsTextual {
		outcome, err = o.processTextual(asset, pendingOk)
	} else {
		outcome, err = o.processOpaque(asset)
	}
	if err != nil {
		delete(o.inProgress, logical)
		return Outcome{}, err
	}

	// 8. Completion.
	if outcome.Status == StatusDone {
		delete(o.inProgress, logical)
		o.done[logical] = true
		if err := o.drainPending(logical); err != nil {
			return outcome, err
		}
	}

	return outcome, nil
}

func (o *Orchestrator) processTextual(asset *Asset, pendingOk bool) (Outcome, error) {
	logical := asset.LogicalPath

	data, err := os.ReadFile(asset.OriginalPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("read_error: %s: %w", asset.OriginalPath, err)
	}

	// CRLF line endings are normalized to LF before the line split.
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if comment, ok := o.updatedComment(asset, lines); ok {
		lines = append([]string{comment}, lines...)
	}

	comeBackLater := false
	rewritten := make([]string, len(lines))
	for i, line := range lines {
		out, deferred, err := o.rewriteLine(line, asset)
		if err != nil {
			return Outcome{}, err
		}
		rewritten[i] = out
		if deferred {
			comeBackLater = true
		}
	}
	out := strings.Join(rewritten, "\n")

	if comeBackLater {
		o.specialHash[logical] = LineJoinedHash(rewritten)
		return Outcome{Status: StatusPending, Hash: o.specialHash[logical]}, nil
	}

	var hash string
	if pendingOk {
		hash = o.specialHash[logical]
	} else if h, ok := o.specialHash[logical]; ok {
		hash = h
	} else {
		hash = LineJoinedHash(rewritten)
	}
	o.merkleHash[logical] = hash

	if err := o.emit(asset, hash, []byte(out)); err != nil {
		return Outcome{}, err
	}
	return Outcome{Status: StatusDone, Hash: hash}, nil
}

func (o *Orchestrator) processOpaque(asset *Asset) (Outcome, error) {
	hash, err := o.ensurePlainHash(asset)
	if err != nil {
		return Outcome{}, fmt.Errorf("read_error: %s: %w", asset.OriginalPath, err)
	}
	o.merkleHash[asset.LogicalPath] = hash

	dst := o.outputRelPath(asset, hash)
	if err := o.emitter.CopyBinary(asset.OriginalPath, dst); err != nil {
		o.logf("%v", err)
		return Outcome{}, err
	}
	return Outcome{Status: StatusDone, Hash: hash}, nil
}

// rewriteLine scans line for candidate references, resolves and
// recursively processes each, and substitutes resolved spans. It
// reports whether the line depends on a cycle that has not closed: a
// span left untouched because the dependency has no hash yet, or a span
// filled with a dependency's plain_hash placeholder. Either way the
// referrer is queued to be reprocessed once that dependency completes.
func (o *Orchestrator) rewriteLine(line string, referrer *Asset) (string, bool, error) {
	refs, blank := ScanLine(line, o.ignore)
	if blank {
		return "", false, nil
	}
	if len(refs) == 0 {
		return line, false, nil
	}

	deferred := false
	replacements := make([]spanReplacement, 0, len(refs))

	for _, ref := range refs {
		target := o.resolver.Resolve(ref.Match, referrer)
		if target == nil {
			replacements = append(replacements, spanReplacement{ref: ref, substitute: false})
			continue
		}

		outcome, err := o.process(target, false)
		if err != nil {
			return "", false, err
		}

		switch outcome.Status {
		case StatusEntry:
			replacements = append(replacements, spanReplacement{
				ref: ref, replacement: target.LogicalPath, substitute: true,
			})
		case StatusDone:
			replacements = append(replacements, spanReplacement{
				ref: ref, replacement: FormatHashedPath(target.LogicalPath, outcome.Hash), substitute: true,
			})
		case StatusPending:
			if outcome.Hash == "" {
				// No hash at all available yet: leave the span
				// untouched and flag this line for reprocessing.
				replacements = append(replacements, spanReplacement{ref: ref, substitute: false})
				deferred = true
				o.enqueuePending(target.LogicalPath, referrer)
				continue
			}
			replacements = append(replacements, spanReplacement{
				ref: ref, replacement: FormatHashedPath(target.LogicalPath, outcome.Hash), substitute: true,
			})
			if outcome.Placeholder {
				// The hash used is a cycle-break plain_hash, not the
				// target's final name; this referrer must come back
				// once the target actually completes.
				deferred = true
				o.enqueuePending(target.LogicalPath, referrer)
			}
			// A special_hash is already a stable, locked-in name even
			// though the target's content may still change later, so no
			// deferral is needed on its account.
		}
	}

	return ApplySpans(line, replacements), deferred, nil
}

func (o *Orchestrator) enqueuePending(target string, referrer *Asset) {
	for _, q := range o.pending[target] {
		if q.LogicalPath == referrer.LogicalPath {
			return
		}
	}
	o.pending[target] = append(o.pending[target], referrer)
	o.invPending[referrer.LogicalPath] = true
}

func (o *Orchestrator) drainPending(logical string) error {
	queue := o.pending[logical]
	delete(o.pending, logical)
	if len(queue) == 0 {
		return nil
	}

	o.drainDepth++
	defer func() { o.drainDepth-- }()

	for _, q := range queue {
		delete(o.inProgress, q.LogicalPath)
		delete(o.invPending, q.LogicalPath)
		delete(o.done, q.LogicalPath)
		if _, err := o.process(q, true); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) ensurePlainHash(asset *Asset) (string, error) {
	if h, ok := o.plainHash[asset.LogicalPath]; ok {
		return h, nil
	}
	data, err := os.ReadFile(asset.OriginalPath)
	if err != nil {
		return "", err
	}
	h := ShortHash(data)
	o.plainHash[asset.LogicalPath] = h
	return h, nil
}

func (o *Orchestrator) emit(asset *Asset, hash string, data []byte) error {
	dst := o.outputRelPath(asset, hash)
	if err := o.emitter.WriteText(dst, data); err != nil {
		o.logf("%v", err)
		return err
	}
	return nil
}

// outputRelPath computes the path (relative to the output cache root)
// an asset is emitted under.
func (o *Orchestrator) outputRelPath(asset *Asset, hash string) string {
	rel := strings.TrimPrefix(asset.LogicalPath, "/")
	if o.entrySet[asset.LogicalPath] {
		return filepath.FromSlash(rel)
	}
	return filepath.FromSlash(strings.TrimPrefix(hashedLogicalPath(asset.LogicalPath, hash), "/"))
}

// updatedComment returns the timestamp comment line to prepend to a
// textual asset's rewritten content. HTML/CSS/DAE always get the
// HTML-style comment. JS-like files get the "//" comment only
// when their first line does not begin with "{" — a JSON file (or a
// bare object literal) cannot carry a line comment, so it gets none.
func (o *Orchestrator) updatedComment(asset *Asset, lines []string) (string, bool) {
	ts := o.Clock().UTC().Format(time.RFC3339)
	switch strings.ToLower(asset.Extension) {
	case ".html", ".css", ".dae":
		return fmt.Sprintf("<!-- Updated: %s -->", ts), true
	default:
		if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "{") {
			return "", false
		}
		return fmt.Sprintf("// Updated: %s", ts), true
	}
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.Verbose {
		fmt.Printf(format+"\n", args...)
	}
}

// NotFound exposes the accumulated not-found report.
func (o *Orchestrator) NotFound() map[string]bool {
	return o.resolver.NotFound()
}

// Processed returns the number of assets that reached StatusDone during
// this run, for build summaries.
func (o *Orchestrator) Processed() int {
	return len(o.done)
}
