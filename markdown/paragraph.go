package markdown

import "github.com/jcorbin/scanmark/internal/buffer"

// setextLevel reports the header level (1 for '=', 2 for '-') if line is a
// Setext underline (0-3 leading spaces, a run of only the marker byte,
// optional trailing spaces), else 0.
func setextLevel(data []byte) int {
	line := firstLine(data)
	i := countLeadingSpaces(line, 3)
	if i >= len(line) {
		return 0
	}
	c := line[i]
	if c != '=' && c != '-' {
		return 0
	}
	n := 0
	for i < len(line) && line[i] == c {
		n++
		i++
	}
	for i < len(line) && (line[i] == ' ' || line[i] == '\n') {
		i++
	}
	if i != len(line) || n == 0 {
		return 0
	}
	if c == '=' {
		return 1
	}
	return 2
}

func trimNewline(data []byte) []byte {
	for len(data) > 0 && (data[len(data)-1] == '\n' || data[len(data)-1] == '\r') {
		data = data[:len(data)-1]
	}
	return data
}

// paragraphBreaksBefore reports whether line starts a construct that ends
// an in-progress paragraph (spec.md §4.5's "Paragraph termination"
// bullet).
func (md *Markdown) paragraphBreaksBefore(line []byte) bool {
	if isAtxHeader(line) || isHRule(line) || prefixQuote(line) >= 0 {
		return true
	}
	if md.extensions&LaxSpacing != 0 {
		if prefixUli(line) >= 0 || prefixOli(line) >= 0 {
			return true
		}
		if md.isHTMLBlockStart(line) {
			return true
		}
		if md.extensions&FencedCode != 0 && isCodeFence(line) >= 0 {
			i := countLeadingSpaces(line, 3)
			i += isCodeFence(line)
			if i < len(line) && !isAlnumByte(line[i]) && line[i] != '\n' {
				return true
			}
		}
	}
	return false
}

func (md *Markdown) emitParagraph(ob *buffer.Buffer, text []byte) {
	if len(text) == 0 {
		return
	}
	work := md.pools.newbuf(spanBuf)
	md.parseInline(work, text)
	if md.renderer.Paragraph != nil {
		md.renderer.Paragraph(ob, work.Bytes())
	}
	md.pools.popbuf(spanBuf)
}

func (md *Markdown) emitHeader(ob *buffer.Buffer, text []byte, level int) {
	work := md.pools.newbuf(spanBuf)
	md.parseInline(work, text)
	if md.renderer.Header != nil {
		md.renderer.Header(ob, work.Bytes(), level)
	}
	md.pools.popbuf(spanBuf)
}

// parseParagraph implements spec.md §4.5's Paragraph recognizer (priority
// 11, the default) including Setext promotion: if the preceding body is
// empty, the promotion still occurs (spec.md §9's Open Question,
// preserved — see DESIGN.md).
func (md *Markdown) parseParagraph(ob *buffer.Buffer, data []byte) int {
	pos := 0
	for pos < len(data) {
		line := firstLine(data[pos:])
		if isEmptyLineFull(line) {
			break
		}

		rest := data[pos+len(line):]
		if level := setextLevel(rest); level > 0 {
			body := trimNewline(data[:pos])
			headerText := trimNewline(line)
			consumed := pos + len(line) + lineLen(rest)
			md.emitParagraph(ob, body)
			md.emitHeader(ob, headerText, level)
			return consumed
		}

		if pos > 0 && md.paragraphBreaksBefore(line) {
			break
		}
		pos += len(line)
	}

	if pos == 0 {
		pos = lineLen(data)
	}
	md.emitParagraph(ob, trimNewline(data[:pos]))
	return pos
}
