package markdown

import "github.com/jcorbin/scanmark/internal/buffer"

// charLink implements spec.md C4's Link/image bullet and C6's shared
// resolver. '[' is the single active character for both forms: an image
// is distinguished by a preceding '!' already present in ob's tail (that
// byte is trimmed via Truncate once the image is confirmed), grounded on
// hoedown's char_link.
func (md *Markdown) charLink(ob *buffer.Buffer, data []byte, i, n int) int {
	isImage := false
	if tail := ob.Bytes(); len(tail) > 0 && tail[len(tail)-1] == '!' {
		isImage = true
	}

	close, ok := findMatchingBracket(data, i, n)
	if !ok {
		return 0
	}
	text := data[i+1 : close]
	consumed := close + 1 - i

	// Footnote reference: [^id]
	if !isImage && len(text) > 0 && text[0] == '^' && md.extensions&Footnotes != 0 {
		if md.resolveFootnoteRef(ob, text[1:]) {
			return consumed
		}
		return 0
	}

	j := close + 1

	// Inline form: [text](dest "title")
	if j < n && data[j] == '(' {
		dest, title, end, ok := parseInlineLinkTail(data, j, n)
		if ok {
			if md.emitLinkOrImage(ob, isImage, dest, title, text) {
				return end - i
			}
			return 0
		}
	}

	// Reference form: [text][id] or [text][]
	if j < n && data[j] == '[' {
		refClose, ok := findMatchingBracket(data, j, n)
		if ok {
			id := data[j+1 : refClose]
			if len(id) == 0 {
				id = collapseNewlines(text)
			}
			if ref := md.refs.find(id); ref != nil {
				if md.emitLinkOrImage(ob, isImage, ref.link, ref.title, text) {
					return refClose + 1 - i
				}
			}
			return 0
		}
	}

	// Shortcut reference form: [text]
	id := collapseNewlines(text)
	if ref := md.refs.find(id); ref != nil {
		if md.emitLinkOrImage(ob, isImage, ref.link, ref.title, text) {
			return consumed
		}
	}
	return 0
}

// resolveFootnoteRef looks up text in footnotesFound, promotes it to
// footnotesUsed on first use with a sequential number, and invokes the
// FootnoteRef callback (spec.md C2, C4's footnote-link branch).
func (md *Markdown) resolveFootnoteRef(ob *buffer.Buffer, id []byte) bool {
	ref := md.footnotesFound.find(id)
	if ref == nil {
		return false
	}
	if !ref.used {
		ref.used = true
		ref.num = md.footnotesUsed.count + 1
		md.footnotesUsed.append(ref)
	}
	if md.renderer.FootnoteRef == nil {
		return false
	}
	return md.renderer.FootnoteRef(ob, ref.num)
}

// emitLinkOrImage re-parses link text inline (with insideLink set to
// suppress nested autolinking) or passes image alt text through verbatim,
// then invokes the Link or Image callback (spec.md §4.4).
func (md *Markdown) emitLinkOrImage(ob *buffer.Buffer, isImage bool, dest, title, text []byte) bool {
	if isImage {
		if md.renderer.Image == nil {
			return false
		}
		ob.Truncate(ob.Len() - 1) // drop the preceding '!'
		if md.renderer.Image(ob, dest, title, text) {
			return true
		}
		ob.WriteByte('!') // callback declined; restore for literal fallback
		return false
	}
	if md.renderer.Link == nil {
		return false
	}
	work := md.pools.newbuf(spanBuf)
	prevInsideLink := md.insideLink
	md.insideLink = true
	md.parseInline(work, text)
	md.insideLink = prevInsideLink
	content := append([]byte(nil), work.Bytes()...)
	md.pools.popbuf(spanBuf)
	return md.renderer.Link(ob, dest, title, content)
}

// findMatchingBracket finds the ']' matching the '[' at data[open],
// respecting nested '[' and backslash escapes.
func findMatchingBracket(data []byte, open, n int) (close int, ok bool) {
	depth := 1
	i := open + 1
	for i < n {
		switch data[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
		i++
	}
	return 0, false
}

// parseInlineLinkTail parses the "(dest \"title\")" tail of an inline
// link/image starting at data[open] == '(', implementing spec.md C6's
// tie-breaks: a '<'-prefixed destination extends to the matching '>'; a
// title is recognized only when its closing quote is the last non-space
// character before ')'.
func parseInlineLinkTail(data []byte, open, n int) (dest, title []byte, end int, ok bool) {
	i := open + 1
	for i < n && data[i] == ' ' {
		i++
	}

	var destStart, destEnd int
	if i < n && data[i] == '<' {
		i++
		destStart = i
		for i < n && data[i] != '>' {
			i++
		}
		if i >= n {
			return nil, nil, 0, false
		}
		destEnd = i
		i++
	} else {
		destStart = i
		depth := 0
		for i < n {
			switch data[i] {
			case '\\':
				i++
			case '(':
				depth++
			case ')':
				if depth == 0 {
					goto destDone
				}
				depth--
			case ' ', '\n', '\t':
				goto destDone
			}
			i++
		}
	destDone:
		destEnd = i
	}
	dest = data[destStart:destEnd]

	for i < n && (data[i] == ' ' || data[i] == '\n' || data[i] == '\t') {
		i++
	}

	if i < n && data[i] != ')' && (data[i] == '"' || data[i] == '\'') {
		quote := data[i]
		i++
		titleStart := i
		for i < n && data[i] != quote {
			i++
		}
		if i >= n {
			return nil, nil, 0, false
		}
		titleEnd := i
		i++
		for i < n && data[i] == ' ' {
			i++
		}
		if i >= n || data[i] != ')' {
			// the first closing quote wasn't terminal: a later quote that is
			// the last non-space byte before ')' still closes the title;
			// otherwise reabsorb it into the destination per spec.md §4.6.
			for i < n && data[i] != ')' {
				i++
			}
			if i >= n {
				return nil, nil, 0, false
			}
			k := i - 1
			for k > titleEnd && data[k] == ' ' {
				k--
			}
			if k > titleEnd && data[k] == quote {
				return dest, data[titleStart:k], i + 1, true
			}
			dest = data[destStart:i]
			title = nil
			return dest, title, i + 1, true
		}
		title = data[titleStart:titleEnd]
		return dest, title, i + 1, true
	}

	if i >= n || data[i] != ')' {
		return nil, nil, 0, false
	}
	return dest, nil, i + 1, true
}

// collapseNewlines replaces newline bytes with spaces, used when a
// reference/shortcut link's text doubles as the reference id (spec.md
// §4.4).
func collapseNewlines(text []byte) []byte {
	out := make([]byte, len(text))
	for i, c := range text {
		if c == '\n' {
			out[i] = ' '
		} else {
			out[i] = c
		}
	}
	return out
}
