package markdown

import "github.com/jcorbin/scanmark/internal/buffer"

var utf8BOM = [3]byte{0xEF, 0xBB, 0xBF}

// preprocess implements spec.md C3: it strips a leading BOM, pulls
// reference and footnote definitions out of the document line by line
// (populating md.refs / md.footnotesFound), expands tabs to 4-column
// stops, and normalizes line endings, returning the normalized text with
// a trailing newline (an empty result stays empty).
func (md *Markdown) preprocess(document []byte) []byte {
	text := &buffer.Buffer{}
	text.Grow(len(document))

	md.refs.reset()
	footnotesEnabled := md.extensions&Footnotes != 0
	if footnotesEnabled {
		md.footnotesFound.reset()
		md.footnotesUsed.reset()
	}

	beg := 0
	if len(document) >= 3 && document[0] == utf8BOM[0] && document[1] == utf8BOM[1] && document[2] == utf8BOM[2] {
		beg = 3
	}

	for beg < len(document) {
		if footnotesEnabled {
			if last, ok := isFootnote(document, beg, len(document), &md.footnotesFound); ok {
				beg = last
				continue
			}
		}
		if last, ok := isRef(document, beg, len(document), &md.refs); ok {
			beg = last
			continue
		}

		end := beg
		for end < len(document) && document[end] != '\n' && document[end] != '\r' {
			end++
		}
		if end > beg {
			expandTabs(text, document[beg:end])
		}
		for end < len(document) && (document[end] == '\n' || document[end] == '\r') {
			if document[end] == '\n' || (end+1 < len(document) && document[end+1] != '\n') {
				text.WriteByte('\n')
			}
			end++
		}
		beg = end
	}

	if n := text.Len(); n > 0 {
		if last, _ := text.Last(); last != '\n' {
			text.WriteByte('\n')
		}
	}

	return text.Bytes()
}

// expandTabs copies line into ob, expanding any tab byte to enough spaces
// to reach the next 4-column stop. The column counter advances for every
// byte copied, tab or not — so expansion tracks byte position within the
// line, not true display column (spec.md §9's "Tab expansion column
// tracking" note; this is preserved deliberately).
func expandTabs(ob *buffer.Buffer, line []byte) {
	i, tab := 0, 0
	for i < len(line) {
		org := i
		for i < len(line) && line[i] != '\t' {
			i++
			tab++
		}
		if i > org {
			ob.Write(line[org:i])
		}
		if i >= len(line) {
			break
		}
		for {
			ob.WriteByte(' ')
			tab++
			if tab%4 == 0 {
				break
			}
		}
		i++
	}
}

// isRef recognizes a `[id]: destination "title"` reference definition
// starting at data[beg], per spec.md §4.3's link-reference recognizer. On
// success it returns the offset just past the definition and adds the
// reference to refs (when non-nil); on failure it returns false and refs
// is untouched.
func isRef(data []byte, beg, end int, refs *refTable) (last int, ok bool) {
	i := beg
	if beg+3 >= end {
		return 0, false
	}
	if data[beg] == ' ' {
		i = beg + 1
		if data[beg+1] == ' ' {
			i = beg + 2
			if data[beg+2] == ' ' {
				i = beg + 3
				if data[beg+3] == ' ' {
					return 0, false
				}
			}
		}
	}

	if data[i] != '[' {
		return 0, false
	}
	i++
	idOffset := i
	for i < end && data[i] != '\n' && data[i] != '\r' && data[i] != ']' {
		i++
	}
	if i >= end || data[i] != ']' {
		return 0, false
	}
	idEnd := i

	i++
	if i >= end || data[i] != ':' {
		return 0, false
	}
	i++
	for i < end && data[i] == ' ' {
		i++
	}
	if i < end && (data[i] == '\n' || data[i] == '\r') {
		i++
		if i < end && data[i] == '\r' && data[i-1] == '\n' {
			i++
		}
	}
	for i < end && data[i] == ' ' {
		i++
	}
	if i >= end {
		return 0, false
	}

	if data[i] == '<' {
		i++
	}
	linkOffset := i
	for i < end && data[i] != ' ' && data[i] != '\n' && data[i] != '\r' {
		i++
	}
	var linkEnd int
	if i > 0 && data[i-1] == '>' {
		linkEnd = i - 1
	} else {
		linkEnd = i
	}

	for i < end && data[i] == ' ' {
		i++
	}
	if i < end && data[i] != '\n' && data[i] != '\r' && data[i] != '\'' && data[i] != '"' && data[i] != '(' {
		return 0, false
	}
	lineEnd := 0
	if i >= end || data[i] == '\r' || data[i] == '\n' {
		lineEnd = i
	}
	if i+1 < end && data[i] == '\n' && data[i+1] == '\r' {
		lineEnd = i + 1
	}

	if lineEnd != 0 {
		i = lineEnd + 1
		for i < end && data[i] == ' ' {
			i++
		}
	}

	titleOffset, titleEnd := 0, 0
	if i+1 < end && (data[i] == '\'' || data[i] == '"' || data[i] == '(') {
		i++
		titleOffset = i
		for i < end && data[i] != '\n' && data[i] != '\r' {
			i++
		}
		if i+1 < end && data[i] == '\n' && data[i+1] == '\r' {
			titleEnd = i + 1
		} else {
			titleEnd = i
		}
		i--
		for i > titleOffset && data[i] == ' ' {
			i--
		}
		if i > titleOffset && (data[i] == '\'' || data[i] == '"' || data[i] == ')') {
			lineEnd = titleEnd
			titleEnd = i
		}
	}

	if lineEnd == 0 || linkEnd == linkOffset {
		return 0, false
	}

	if refs != nil {
		var link, title []byte
		link = append(link, data[linkOffset:linkEnd]...)
		if titleEnd > titleOffset {
			title = append(title, data[titleOffset:titleEnd]...)
		}
		refs.add(data[idOffset:idEnd], link, title)
	}

	return lineEnd, true
}

// isFootnote recognizes a `[^id]: body` footnote definition starting at
// data[beg], per spec.md §4.3's footnote-definition recognizer.
func isFootnote(data []byte, beg, end int, list *footnoteList) (last int, ok bool) {
	i := beg
	if beg+3 >= end {
		return 0, false
	}
	if data[beg] == ' ' {
		i = beg + 1
		if data[beg+1] == ' ' {
			i = beg + 2
			if data[beg+2] == ' ' {
				i = beg + 3
				if data[beg+3] == ' ' {
					return 0, false
				}
			}
		}
	}

	if data[i] != '[' {
		return 0, false
	}
	i++
	if i >= end || data[i] != '^' {
		return 0, false
	}
	i++
	idOffset := i
	for i < end && data[i] != '\n' && data[i] != '\r' && data[i] != ']' {
		i++
	}
	if i >= end || data[i] != ']' {
		return 0, false
	}
	idEnd := i

	i++
	if i >= end || data[i] != ':' {
		return 0, false
	}
	i++

	contents := &buffer.Buffer{}
	contents.Grow(64)

	start := i
	inEmpty := false
	for i < end {
		for i < end && data[i] != '\n' && data[i] != '\r' {
			i++
		}

		if isEmptyLine(data[start:i]) {
			inEmpty = true
			if i < end && (data[i] == '\n' || data[i] == '\r') {
				i++
				if i < end && data[i] == '\n' && data[i-1] == '\r' {
					i++
				}
			}
			start = i
			continue
		}

		ind := 0
		for ind < 4 && start+ind < end && data[start+ind] == ' ' {
			ind++
		}

		if ind == 0 {
			break
		} else if inEmpty {
			contents.WriteByte('\n')
		}
		inEmpty = false

		contents.Write(data[start+ind : i])
		if i < end {
			contents.WriteByte('\n')
			if i < end && (data[i] == '\n' || data[i] == '\r') {
				i++
				if i < end && data[i] == '\n' && data[i-1] == '\r' {
					i++
				}
			}
		}
		start = i
	}

	if list != nil {
		ref := newFootnoteRef(data[idOffset:idEnd], append([]byte(nil), contents.Bytes()...))
		list.append(ref)
	}

	return start, true
}

// isEmptyLine reports whether line (excluding its terminator) holds only
// spaces.
func isEmptyLine(line []byte) bool {
	for _, c := range line {
		if c != ' ' {
			return false
		}
	}
	return true
}
