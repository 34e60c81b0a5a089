package hashengine

import (
	"path"
	"strings"
)

// hashedLogicalPath appends the hash suffix to a target's full logical
// path (extension and all): "app.js" hashes to "app.js_{H}__.js", not
// "app_{H}__.js" — the original extension is kept in place and a second
// copy of it follows the hash.
func hashedLogicalPath(logicalPath, hash string) string {
	return logicalPath + "_" + hash + "__" + path.Ext(logicalPath)
}

// FormatHashedPath builds the rewritten reference text for a non-entry
// target, with the leading slash inserted only if the target's logical
// path is not already absolute.
func FormatHashedPath(logicalPath, hash string) string {
	out := hashedLogicalPath(logicalPath, hash)
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	return out
}

// spanReplacement describes what to do with one scanned Reference once
// the Resolver and Orchestrator have weighed in.
type spanReplacement struct {
	ref         Reference
	replacement string
	substitute  bool
}

// ApplySpans rewrites line by substituting each reference's matched
// span with its replacement text, left to right, adjusting for the
// shifting offsets introduced by earlier substitutions on the same
// line. References whose substitute flag is false are left untouched.
func ApplySpans(line string, replacements []spanReplacement) string {
	var b strings.Builder
	last := 0
	for _, r := range replacements {
		if !r.substitute {
			continue
		}
		b.WriteString(line[last:r.ref.Start])
		b.WriteString(r.replacement)
		last = r.ref.End
	}
	b.WriteString(line[last:])
	return b.String()
}
