// Package htmltags holds the dictionary of HTML tag names that the block
// scanner recognizes as starting a raw HTML block. A markdown document may
// use any of these without escaping.
package htmltags

var blockTags = map[string]bool{
	"p":          true,
	"dl":         true,
	"dt":         true,
	"dd":         true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"ol":         true,
	"ul":         true,
	"li":         true,
	"del":        true,
	"ins":        true,
	"div":        true,
	"pre":        true,
	"form":       true,
	"math":       true,
	"table":      true,
	"thead":      true,
	"tbody":      true,
	"tfoot":      true,
	"tr":         true,
	"td":         true,
	"th":         true,
	"iframe":     true,
	"script":     true,
	"style":      true,
	"fieldset":   true,
	"noscript":   true,
	"blockquote": true,
}

// Find returns the canonical (lowercased) block tag name matching the given
// bytes, or "" if they don't name a recognized block tag. This mirrors
// hoedown's hoedown_find_block_tag: a case-insensitive membership test
// against the dictionary above.
func Find(name []byte) string {
	if len(name) == 0 || len(name) > len("blockquote") {
		return ""
	}
	var buf [16]byte
	lower := buf[:0]
	for _, c := range name {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower = append(lower, c)
	}
	s := string(lower)
	if blockTags[s] {
		return s
	}
	return ""
}
