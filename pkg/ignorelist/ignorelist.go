// Package ignorelist loads the ignore set: a JSON file mapping candidate
// reference strings to true, for which the reference scanner must
// silently suppress any resolved match.
package ignorelist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Load reads the ignore list from path. A missing file is treated as an
// empty ignore set, not an error, since the file is optional.
func Load(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("read ignore list %s: %w", path, err)
	}

	var set map[string]bool
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decode ignore list %s: %w", path, err)
	}
	if set == nil {
		set = map[string]bool{}
	}
	return set, nil
}
