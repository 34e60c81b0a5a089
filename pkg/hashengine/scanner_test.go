package hashengine

import "testing"

func TestScanLineSkipsCommentLine(t *testing.T) {
	refs, blank := ScanLine(`  // see "app.js" for details`, nil)
	if refs != nil {
		t.Errorf("expected no references on a comment line, got %v", refs)
	}
	if blank {
		t.Errorf("expected a comment line to be kept as-is, not blanked")
	}
}

func TestScanLineBlanksSourceMappingURL(t *testing.T) {
	refs, blank := ScanLine(`//# sourceMappingURL=app.js.map`, nil)
	if refs != nil {
		t.Errorf("expected no references on a sourceMappingURL line, got %v", refs)
	}
	if !blank {
		t.Errorf("expected a sourceMappingURL line to be blanked")
	}
}

func TestScanLineBlanksCSSSourceMappingURL(t *testing.T) {
	refs, blank := ScanLine(`/*# sourceMappingURL=x.css.map */`, nil)
	if refs != nil {
		t.Errorf("expected no references on a CSS sourceMappingURL line, got %v", refs)
	}
	if !blank {
		t.Errorf("expected a CSS-style (non-\"//\") sourceMappingURL line to be blanked too")
	}
}

func TestScanLineFindsQuotedPath(t *testing.T) {
	refs, blank := ScanLine(`<script src="/app.js"></script>`, nil)
	if blank {
		t.Fatalf("expected an ordinary reference line not to be blanked")
	}
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d: %v", len(refs), refs)
	}
	if refs[0].Match != "/app.js" {
		t.Errorf("expected /app.js, got %q", refs[0].Match)
	}
}

func TestScanLineDiscardsProtocolRelativeCandidates(t *testing.T) {
	refs, blank := ScanLine(`import "//cdn.example.com/lib.js"`, nil)
	if refs != nil {
		t.Errorf("expected protocol-relative candidate to be discarded, got %v", refs)
	}
	if blank {
		t.Errorf("expected a plain unresolved-candidate line not to be blanked")
	}
}

func TestScanLineDiscardsEqualsMarker(t *testing.T) {
	refs, _ := ScanLine(`const path = "= assets/foo.js"`, nil)
	if refs != nil {
		t.Errorf("expected '= ' marked candidate to be discarded, got %v", refs)
	}
}

func TestScanLineHonorsIgnoreSet(t *testing.T) {
	refs, _ := ScanLine(`import "/debug.js"`, map[string]bool{"/debug.js": true})
	if refs != nil {
		t.Errorf("expected ignored candidate to be discarded, got %v", refs)
	}
}

func TestScanLineFindsMultipleReferences(t *testing.T) {
	refs, _ := ScanLine(`import "/a.js"; import "/b.js"`, nil)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d: %v", len(refs), refs)
	}
	if refs[0].Match != "/a.js" || refs[1].Match != "/b.js" {
		t.Errorf("unexpected matches: %v", refs)
	}
}
