package hashengine

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// shortHashLen is the number of hex characters a ShortHash is truncated
// to.
const shortHashLen = 6

// ShortHash returns the lowercase hex MD5 of data, truncated to the
// first shortHashLen characters. MD5 is used here purely for its
// distribution properties; recache's content addressing is not a
// security boundary.
func ShortHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])[:shortHashLen]
}

// LineJoinedHash returns the ShortHash of lines concatenated with a
// single newline between them and no trailing newline.
func LineJoinedHash(lines []string) string {
	return ShortHash([]byte(strings.Join(lines, "\n")))
}
