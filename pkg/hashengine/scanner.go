package hashengine

import (
	"regexp"
	"strings"
)

// referencePattern matches a single quoted path-shaped literal within a
// line of source text. The optional prefix tags (async:/module:/css:, any
// combination) are matched by a non-capturing group. The capture groups
// are:
//
//  1. the optional "= " marker, which disqualifies the match
//  2. the candidate path itself
var referencePattern = regexp.MustCompile(
	`['"` + "`" + `](?:(?:async:|module:|css:)*)(?:\$\{[^}]*\})?(= )?([A-Za-z0-9/._@% ()+,=\-]+\.[A-Za-z0-9_ ()\-]+)['"` + "`" + `\\]`,
)

// Reference is one textual candidate found by the Scanner: the matched
// text and its byte span within the line.
type Reference struct {
	Match string
	Start int
	End   int
}

// ScanLine extracts the ordered list of candidate references from a
// single line of source text, applying the comment, sourceMappingURL,
// and ignore-set suppressions. ignored is the ignore set; a nil map is
// treated as empty.
//
// The second return value, blank, distinguishes "drop this line's
// content from the output" (a sourceMappingURL line, which would
// otherwise point at a stale map after rewriting) from the ordinary
// "no references, keep the line as written" case (a comment line, or a
// line that just has no quoted paths in it): blank is true only for the
// former. Callers must check blank before treating a nil/empty refs
// slice as "leave the line untouched".
func ScanLine(line string, ignored map[string]bool) (refs []Reference, blank bool) {
	// Checked ahead of isCommentLine: a "//# sourceMappingURL=..." line
	// would otherwise match the comment check first and be kept as-is
	// instead of blanked, leaving a stale map reference behind.
	if strings.Contains(line, "sourceMappingURL=") {
		return nil, true
	}
	if isCommentLine(line) {
		return nil, false
	}

	matches := referencePattern.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return nil, false
	}

	for _, m := range matches {
		// m[0], m[1] = whole match span; m[2], m[3] = "= " group (may be
		// -1,-1 if absent); m[4], m[5] = candidate path group.
		if m[2] != -1 {
			// The "= " marker matched; discard the candidate.
			continue
		}
		candidate := line[m[4]:m[5]]
		if strings.HasPrefix(candidate, "//") || strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
			continue
		}
		if ignored[candidate] {
			continue
		}
		refs = append(refs, Reference{Match: candidate, Start: m[4], End: m[5]})
	}
	return refs, false
}

// isCommentLine reports whether line's first non-blank characters are
// "//".
func isCommentLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "//")
}
