package markdown

import "github.com/jcorbin/scanmark/internal/buffer"

// parseInline implements spec.md C4: the active-character dispatch loop.
// It is grounded on hoedown's parse_inline. data is the full span being
// scanned (never re-sliced across iterations, so recognizers can look
// backward via data[offset-1] the way markdown.c's pointer arithmetic
// does); ob accumulates rendered output.
func (md *Markdown) parseInline(ob *buffer.Buffer, data []byte) {
	if !md.enter() {
		return
	}

	i, end := 0, 0
	n := len(data)
	for i < n {
		for end < n && md.active[data[end]] == actionNone {
			end++
		}

		md.emitNormalText(ob, data[i:end])

		if end >= n {
			break
		}
		i = end

		consumed := md.dispatchInline(ob, data, i, n)
		if consumed == 0 {
			end = i + 1
		} else {
			i += consumed
			end = i
		}
	}
}

// emitNormalText sends a plain-text run to the renderer's NormalText
// callback, or raw-copies it when unset (spec.md §4.4).
func (md *Markdown) emitNormalText(ob *buffer.Buffer, text []byte) {
	if len(text) == 0 {
		return
	}
	if md.renderer.NormalText != nil {
		md.renderer.NormalText(ob, text)
	} else {
		ob.Write(text)
	}
}

// dispatchInline invokes the recognizer for data[i] and returns how many
// bytes of data (starting at i) it consumed; zero means the scanner
// should treat data[i] as a literal byte (spec.md §4.4, §7).
func (md *Markdown) dispatchInline(ob *buffer.Buffer, data []byte, i, n int) int {
	switch md.active[data[i]] {
	case actionLineBreak:
		return md.charLineBreak(ob, data, i, n)
	case actionEscape:
		return md.charEscape(ob, data, i, n)
	case actionEntity:
		return md.charEntity(ob, data, i, n)
	case actionLangleTag:
		return md.charLangleTag(ob, data, i, n)
	case actionCodeSpan:
		return md.charCodeSpan(ob, data, i, n)
	case actionEmphasis:
		return md.charEmphasis(ob, data, i, n)
	case actionLink:
		return md.charLink(ob, data, i, n)
	case actionAutolinkURL:
		return md.charAutolinkURL(ob, data, i, n)
	case actionAutolinkEmail:
		return md.charAutolinkEmail(ob, data, i, n)
	case actionAutolinkWWW:
		return md.charAutolinkWWW(ob, data, i, n)
	case actionSuperscript:
		return md.charSuperscript(ob, data, i, n)
	case actionQuoteSpan:
		return md.charQuote(ob, data, i, n)
	}
	return 0
}

// escapable is the set of bytes the '\' escape recognizer treats as
// literal-on-escape (spec.md §4.4's Escape bullet).
var escapable = [256]bool{
	'\\': true, '`': true, '*': true, '_': true, '{': true, '}': true,
	'[': true, ']': true, '(': true, ')': true, '#': true, '+': true,
	'-': true, '.': true, '!': true, ':': true, '|': true, '&': true,
	'<': true, '>': true, '^': true, '~': true,
}

func (md *Markdown) charEscape(ob *buffer.Buffer, data []byte, i, n int) int {
	if i+1 >= n {
		return 0
	}
	c := data[i+1]
	if !escapable[c] {
		return 0
	}
	md.emitNormalText(ob, data[i+1:i+2])
	return 2
}

// charEntity matches &#?[A-Za-z0-9]+; per spec.md §4.4.
func (md *Markdown) charEntity(ob *buffer.Buffer, data []byte, i, n int) int {
	j := i + 1
	if j < n && data[j] == '#' {
		j++
	}
	start := j
	for j < n && isAlnumByte(data[j]) {
		j++
	}
	if j == start || j >= n || data[j] != ';' {
		return 0
	}
	j++
	text := data[i:j]
	if md.renderer.Entity != nil {
		md.renderer.Entity(ob, text)
	} else {
		ob.Write(text)
	}
	return j - i
}

func isAlnumByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// charLineBreak emits a hard break only when preceded by two trailing
// spaces in the already-written output; those spaces are trimmed first
// (spec.md §4.4's Line break bullet).
func (md *Markdown) charLineBreak(ob *buffer.Buffer, data []byte, i, n int) int {
	tail := ob.Bytes()
	if len(tail) < 2 || tail[len(tail)-1] != ' ' || tail[len(tail)-2] != ' ' {
		return 0
	}
	ob.TrimRight(' ')
	if md.renderer.LineBreak == nil || !md.renderer.LineBreak(ob) {
		ob.WriteByte('\n')
	}
	return 1
}

// charCodeSpan implements spec.md §4.4's Code span bullet: the closing
// delimiter must be a run of exactly as many backticks as the opener, and
// a single leading/trailing space pair (if both present) is trimmed.
func (md *Markdown) charCodeSpan(ob *buffer.Buffer, data []byte, i, n int) int {
	nb := 0
	for i+nb < n && data[i+nb] == '`' {
		nb++
	}

	end := i + nb
	for end < n {
		for end < n && data[end] != '`' {
			end++
		}
		if end >= n {
			return 0
		}
		runLen := 0
		for end+runLen < n && data[end+runLen] == '`' {
			runLen++
		}
		if runLen == nb {
			span := data[i+nb : end]
			if len(span) >= 2 && span[0] == ' ' && span[len(span)-1] == ' ' {
				span = span[1 : len(span)-1]
			}
			if md.renderer.CodeSpan == nil || !md.renderer.CodeSpan(ob, span) {
				ob.Write(data[i : end+runLen])
			}
			return end + runLen - i
		}
		end += runLen
	}
	return 0
}

// charQuote implements the smart-quote extension (spec.md §4.4): a paired
// "..." construct analogous to a code span.
func (md *Markdown) charQuote(ob *buffer.Buffer, data []byte, i, n int) int {
	end := i + 1
	for end < n && data[end] != '"' {
		end++
	}
	if end >= n {
		return 0
	}
	span := data[i+1 : end]
	if md.renderer.Quote == nil || !md.renderer.Quote(ob, span) {
		ob.Write(data[i : end+1])
	}
	return end + 1 - i
}
