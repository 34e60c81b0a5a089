package hashengine

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteNotFoundReport writes the accumulated set of unresolved candidate
// references to path as JSON.
func WriteNotFoundReport(path string, notFound map[string]bool) error {
	if notFound == nil {
		notFound = map[string]bool{}
	}
	data, err := json.MarshalIndent(notFound, "", "  ")
	if err != nil {
		return fmt.Errorf("encode not-found report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write not-found report %s: %w", path, err)
	}
	return nil
}
