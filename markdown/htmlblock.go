package markdown

import (
	"bytes"

	"github.com/jcorbin/scanmark/internal/buffer"
	"github.com/jcorbin/scanmark/internal/htmltags"
)

// parseHTMLBlock implements spec.md §4.5's priority-2 raw HTML block
// recognizer, grounded on hoedown's parse_htmlblock / htmlblock_end: an
// HTML comment runs to its closing "-->"; a recognized block tag's body
// runs through the line holding a matching close tag (plus one blank line
// right after it, if present), tried first unindented and — unless the
// tag is ins/del — retried allowing an indented close tag (SUPPLEMENTED
// FEATURES in SPEC_FULL.md). With no close tag the block runs to the end
// of data.
func (md *Markdown) parseHTMLBlock(ob *buffer.Buffer, data []byte) int {
	line := firstLine(data)
	i := countLeadingSpaces(line, 3)
	if i >= len(line) || line[i] != '<' {
		return 0
	}

	if bytes.HasPrefix(line[i:], []byte("<!--")) {
		end := findCommentEnd(data, i)
		if end < 0 {
			return 0
		}
		md.emitBlockHTML(ob, data[:end])
		return end
	}

	name, ok := scanTagName(line[i+1:])
	if !ok {
		return 0
	}
	tag := htmltags.Find(name)
	if tag == "" {
		return 0
	}

	end := findHTMLBlockEnd(data, tag, false)
	if end < 0 && tag != "ins" && tag != "del" {
		end = findHTMLBlockEnd(data, tag, true)
	}
	if end < 0 {
		end = len(data)
	}
	md.emitBlockHTML(ob, data[:end])
	return end
}

func (md *Markdown) emitBlockHTML(ob *buffer.Buffer, text []byte) {
	if md.renderer.BlockHTML != nil {
		md.renderer.BlockHTML(ob, text)
	}
}

// scanTagName reads an optional '/' then an alphanumeric tag name from the
// bytes immediately following '<'.
func scanTagName(rest []byte) ([]byte, bool) {
	i := 0
	if i < len(rest) && rest[i] == '/' {
		i++
	}
	start := i
	for i < len(rest) && isAlnumByte(rest[i]) {
		i++
	}
	if i == start {
		return nil, false
	}
	return rest[start:i], true
}

// findCommentEnd returns the offset just past the end of the line
// containing the comment's closing "-->", or -1 if none is found.
func findCommentEnd(data []byte, start int) int {
	idx := bytes.Index(data[start:], []byte("-->"))
	if idx < 0 {
		return -1
	}
	end := start + idx + 3
	return end + len(firstLine(data[end:]))
}

// findHTMLBlockEnd searches line by line for a closing "</tag>", either
// only at column 0 (allowIndented false) or anywhere on the line
// (allowIndented true). Returns the offset just past the line holding it,
// or just past the following line when that line is blank, or -1 if no
// line holds the close tag. Nothing is required after the close tag.
func findHTMLBlockEnd(data []byte, tag string, allowIndented bool) int {
	closer := []byte("</" + tag + ">")
	lowerCloser := bytes.ToLower(closer)

	pos := 0
	for pos < len(data) {
		line := firstLine(data[pos:])
		lowerLine := bytes.ToLower(line)

		found := false
		if allowIndented {
			found = bytes.Contains(lowerLine, lowerCloser)
		} else {
			found = bytes.HasPrefix(lowerLine, lowerCloser)
		}

		if found {
			next := pos + len(line)
			if next >= len(data) {
				return next
			}
			nextLine := firstLine(data[next:])
			if isEmptyLineFull(nextLine) {
				return next + len(nextLine)
			}
			return next
		}
		pos += len(line)
	}
	return -1
}
