package markdown

import (
	"bytes"

	"github.com/jcorbin/scanmark/internal/buffer"
	"github.com/jcorbin/scanmark/internal/htmltags"
)

// parseBlock implements spec.md C5: the line-oriented predicate cascade,
// grounded on hoedown's parse_block. data holds zero or more complete
// lines (each terminated by '\n'); it dispatches to the first matching
// recognizer in priority order on every iteration until data is consumed.
func (md *Markdown) parseBlock(ob *buffer.Buffer, data []byte) {
	if !md.enter() {
		return
	}

	for len(data) > 0 {
		var consumed int

		switch {
		case isAtxHeader(data):
			consumed = md.parseAtxHeader(ob, data)
		case md.isHTMLBlockStart(data):
			consumed = md.parseHTMLBlock(ob, data)
		case isEmptyLineFull(firstLine(data)):
			consumed = lineLen(data)
		case isHRule(data):
			consumed = md.parseHRule(ob, data)
		case md.extensions&FencedCode != 0 && isCodeFence(data) >= 0:
			consumed = md.parseFencedCode(ob, data)
		case md.extensions&Tables != 0 && isTableHeader(data):
			consumed = md.parseTable(ob, data)
		case prefixQuote(data) >= 0:
			consumed = md.parseBlockquote(ob, data)
		case md.extensions&DisableIndentedCode == 0 && prefixCode(data):
			consumed = md.parseIndentedCode(ob, data)
		case prefixUli(data) >= 0:
			consumed = md.parseList(ob, data, false)
		case prefixOli(data) >= 0:
			consumed = md.parseList(ob, data, true)
		default:
			consumed = md.parseParagraph(ob, data)
		}

		if consumed <= 0 {
			consumed = lineLen(data)
			if consumed == 0 {
				break
			}
		}
		data = data[consumed:]
	}
}

// --- line helpers ---

func lineLen(data []byte) int {
	i := 0
	for i < len(data) && data[i] != '\n' {
		i++
	}
	if i < len(data) {
		i++
	}
	return i
}

func firstLine(data []byte) []byte {
	return data[:lineLen(data)]
}

func countLeadingSpaces(data []byte, max int) int {
	n := 0
	for n < len(data) && n < max && data[n] == ' ' {
		n++
	}
	return n
}

// isEmptyLineFull reports whether a (newline-inclusive) line holds only
// spaces.
func isEmptyLineFull(line []byte) bool {
	for _, c := range line {
		if c != ' ' && c != '\n' {
			return false
		}
	}
	return true
}

func isHRule(data []byte) bool {
	line := firstLine(data)
	i := countLeadingSpaces(line, 3)
	if i >= len(line) {
		return false
	}
	c := line[i]
	if c != '*' && c != '-' && c != '_' {
		return false
	}
	count := 0
	for ; i < len(line); i++ {
		switch line[i] {
		case c:
			count++
		case ' ', '\n', '\r':
		default:
			return false
		}
	}
	return count >= 3
}

func (md *Markdown) parseHRule(ob *buffer.Buffer, data []byte) int {
	n := lineLen(data)
	if md.renderer.HRule != nil {
		md.renderer.HRule(ob)
	}
	return n
}

// isAtxHeader reports whether data begins a `#`..`######` header line.
func isAtxHeader(data []byte) bool {
	line := firstLine(data)
	i := countLeadingSpaces(line, 3)
	return i < len(line) && line[i] == '#'
}

func (md *Markdown) parseAtxHeader(ob *buffer.Buffer, data []byte) int {
	line := firstLine(data)
	i := countLeadingSpaces(line, 3)
	level := 0
	for i < len(line) && line[i] == '#' && level < 6 {
		level++
		i++
	}
	if md.extensions&SpaceHeaders != 0 {
		if i < len(line) && line[i] != ' ' && line[i] != '\n' {
			return md.parseParagraph(ob, data)
		}
	}
	for i < len(line) && line[i] == ' ' {
		i++
	}
	end := len(line)
	for end > i && (line[end-1] == '\n' || line[end-1] == ' ') {
		end--
	}
	for end > i && line[end-1] == '#' {
		end--
	}
	for end > i && line[end-1] == ' ' {
		end--
	}
	text := line[i:end]

	work := md.pools.newbuf(spanBuf)
	md.parseInline(work, text)
	if md.renderer.Header != nil {
		md.renderer.Header(ob, work.Bytes(), level)
	}
	md.pools.popbuf(spanBuf)
	return len(line)
}

// prefixQuote returns the byte offset where a blockquote's content begins
// on this line (after "0-3 spaces, '>', optional space"), or -1.
func prefixQuote(data []byte) int {
	line := firstLine(data)
	i := countLeadingSpaces(line, 3)
	if i >= len(line) || line[i] != '>' {
		return -1
	}
	i++
	if i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}

func (md *Markdown) parseBlockquote(ob *buffer.Buffer, data []byte) int {
	work := md.pools.newbuf(blockBuf)
	pos := 0
	for pos < len(data) {
		line := firstLine(data[pos:])
		if off := prefixQuote(data[pos:]); off >= 0 {
			work.Write(line[off:])
			pos += len(line)
			continue
		}
		if isEmptyLineFull(line) {
			// a blank line continues the quote only if the next line is
			// also quoted; otherwise it ends the blockquote.
			next := data[pos+len(line):]
			if len(next) == 0 || prefixQuote(next) < 0 {
				pos += len(line)
				break
			}
			work.Write(line)
			pos += len(line)
			continue
		}
		break
	}

	inner := md.pools.newbuf(blockBuf)
	md.parseBlock(inner, work.Bytes())
	if md.renderer.BlockQuote != nil {
		md.renderer.BlockQuote(ob, inner.Bytes())
	}
	md.pools.popbuf(blockBuf)
	md.pools.popbuf(blockBuf)
	return pos
}

// prefixCode reports whether the line is indented by >= 4 spaces.
func prefixCode(data []byte) bool {
	line := firstLine(data)
	return countLeadingSpaces(line, 4) == 4
}

func (md *Markdown) parseIndentedCode(ob *buffer.Buffer, data []byte) int {
	work := md.pools.newbuf(blockBuf)
	pos := 0
	for pos < len(data) {
		line := firstLine(data[pos:])
		if prefixCode(line) {
			work.Write(line[4:])
			pos += len(line)
			continue
		}
		if isEmptyLineFull(line) {
			// a blank line is kept only when the line after it is still
			// indented code; otherwise the block ends before it.
			rest := data[pos+len(line):]
			if len(rest) > 0 && prefixCode(rest) {
				work.Write(line)
				pos += len(line)
				continue
			}
		}
		break
	}

	text := work.Bytes()
	for len(text) > 0 {
		if last, _ := peekLast(text); last == '\n' {
			if len(text) >= 2 && text[len(text)-2] == '\n' {
				text = text[:len(text)-1]
				continue
			}
		}
		break
	}

	if md.renderer.BlockCode != nil {
		md.renderer.BlockCode(ob, text, nil)
	}
	md.pools.popbuf(blockBuf)
	return pos
}

func peekLast(b []byte) (byte, bool) {
	if len(b) == 0 {
		return 0, false
	}
	return b[len(b)-1], true
}

// isCodeFence reports the fence marker run length at the start of data's
// first line (>= 3 of '`' or '~'), or -1 if none.
func isCodeFence(data []byte) int {
	line := firstLine(data)
	i := countLeadingSpaces(line, 3)
	if i >= len(line) {
		return -1
	}
	c := line[i]
	if c != '`' && c != '~' {
		return -1
	}
	n := 0
	for i < len(line) && line[i] == c {
		n++
		i++
	}
	if n < 3 {
		return -1
	}
	return n
}

func (md *Markdown) parseFencedCode(ob *buffer.Buffer, data []byte) int {
	line := firstLine(data)
	fenceLen := isCodeFence(data)
	i := countLeadingSpaces(line, 3)
	i += fenceLen
	for i < len(line) && line[i] == ' ' {
		i++
	}
	langStart := i
	langEnd := len(line)
	for langEnd > langStart && (line[langEnd-1] == '\n' || line[langEnd-1] == ' ') {
		langEnd--
	}
	if langEnd > langStart && line[langStart] == '{' && line[langEnd-1] == '}' {
		langStart++
		langEnd--
	}
	lang := line[langStart:langEnd]

	pos := len(line)
	bodyStart := pos
	for pos < len(data) {
		l := firstLine(data[pos:])
		if n := isCodeFence(l); n >= fenceLen {
			trimmed := l[countLeadingSpaces(l, 3)+n:]
			if isEmptyLineFull(trimmed) {
				body := data[bodyStart:pos]
				pos += len(l)
				if md.renderer.BlockCode != nil {
					md.renderer.BlockCode(ob, body, lang)
				}
				return pos
			}
		}
		pos += len(l)
		if len(l) == 0 {
			break
		}
	}

	body := data[bodyStart:pos]
	if md.renderer.BlockCode != nil {
		md.renderer.BlockCode(ob, body, lang)
	}
	return pos
}

// isHTMLBlockStart reports whether data's first line begins a raw HTML
// block per spec.md §4.5's priority-2 bullet. The full recognition
// (including the two-pass end-tag search) lives in htmlblock.go.
func (md *Markdown) isHTMLBlockStart(data []byte) bool {
	line := firstLine(data)
	i := countLeadingSpaces(line, 3)
	if i >= len(line) || line[i] != '<' {
		return false
	}
	if bytes.HasPrefix(line[i:], []byte("<!--")) {
		return findCommentEnd(data, i) >= 0
	}
	name, ok := scanTagName(line[i+1:])
	return ok && htmltags.Find(name) != ""
}

// prefixUli returns the offset where an unordered list item's content
// begins, or -1.
func prefixUli(data []byte) int {
	line := firstLine(data)
	i := countLeadingSpaces(line, 3)
	if i >= len(line) {
		return -1
	}
	c := line[i]
	if c != '*' && c != '+' && c != '-' {
		return -1
	}
	i++
	if i >= len(line) || (line[i] != ' ' && line[i] != '\n') {
		return -1
	}
	if line[i] == ' ' {
		i++
	}
	return i
}

// prefixOli returns the offset where an ordered list item's content
// begins, or -1.
func prefixOli(data []byte) int {
	line := firstLine(data)
	i := countLeadingSpaces(line, 3)
	start := i
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == start || i >= len(line) || line[i] != '.' {
		return -1
	}
	i++
	if i >= len(line) || (line[i] != ' ' && line[i] != '\n') {
		return -1
	}
	if line[i] == ' ' {
		i++
	}
	return i
}
