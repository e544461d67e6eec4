package markdown

import "github.com/jcorbin/scanmark/internal/buffer"

// charEmphasis dispatches on the run length of the triggering marker byte
// (1, 2, or 3) per spec.md §4.4's Emphasis bullet, grounded on hoedown's
// char_emphasis.
func (md *Markdown) charEmphasis(ob *buffer.Buffer, data []byte, i, n int) int {
	c := data[i]

	nb := 0
	for i+nb < n && data[i+nb] == c {
		nb++
	}

	if nb >= 3 {
		if consumed := md.parseEmph3(ob, data, i, n, c); consumed != 0 {
			return consumed
		}
	}
	if nb >= 2 {
		if consumed := md.parseEmph2(ob, data, i, n, c); consumed != 0 {
			return consumed
		}
	}
	return md.parseEmph1(ob, data, i, n, c)
}

// findEmphChar scans forward from i for the next occurrence of c, skipping
// over code spans and bracketed link text so a marker inside either is
// ignored (spec.md §4.4). It returns the offset of the candidate or -1.
func findEmphChar(data []byte, i, n int, c byte) int {
	for i < n {
		for i < n && data[i] != c && data[i] != '`' && data[i] != '[' {
			i++
		}
		if i >= n {
			return -1
		}
		if data[i] == c {
			return i
		}
		if data[i] == '`' {
			nb := 0
			for i+nb < n && data[i+nb] == '`' {
				nb++
			}
			j := i + nb
			for j < n {
				k := 0
				for j+k < n && data[j+k] != '`' {
					k++
				}
				if j+k >= n {
					i += nb
					break
				}
				run := 0
				for j+k+run < n && data[j+k+run] == '`' {
					run++
				}
				if run == nb {
					i = j + k + run
					break
				}
				j = j + k + run
			}
			continue
		}
		// data[i] == '['
		depth := 1
		j := i + 1
		for j < n && depth > 0 {
			switch data[j] {
			case '\\':
				j++
			case '[':
				depth++
			case ']':
				depth--
			}
			j++
		}
		i = j
	}
	return -1
}

// isEmphBoundaryOK reports whether the byte before pos (the candidate
// close marker) is not a space — spec.md: "A closing marker is valid only
// when not preceded by whitespace."
func isEmphBoundaryOK(data []byte, pos int) bool {
	return pos > 0 && data[pos-1] != ' ' && data[pos-1] != '\n' && data[pos-1] != '\t'
}

// noIntraOK applies the no-intra-emphasis rule: when enabled, an
// alphanumeric immediately before the opener or immediately after the
// closer disqualifies the match.
func (md *Markdown) noIntraOK(data []byte, openerStart, closerEnd int) bool {
	if md.extensions&NoIntraEmphasis == 0 {
		return true
	}
	if openerStart > 0 && isAlnumByte(data[openerStart-1]) {
		return false
	}
	if closerEnd < len(data) && isAlnumByte(data[closerEnd]) {
		return false
	}
	return true
}

func (md *Markdown) emphCallback(c byte, nb int) (cb func(ob *buffer.Buffer, text []byte) bool) {
	switch {
	case nb == 3:
		return md.renderer.TripleEmphasis
	case nb == 2:
		switch c {
		case '~':
			return md.renderer.Strikethrough
		case '=':
			return md.renderer.Highlight
		default:
			return md.renderer.DoubleEmphasis
		}
	default:
		if c == '_' && md.extensions&Underline != 0 {
			return md.renderer.Underline
		}
		return md.renderer.Emphasis
	}
}

func (md *Markdown) parseEmphN(ob *buffer.Buffer, data []byte, i, n int, c byte, nb int) int {
	// '~' and '=' are double-marker-only constructs.
	if (c == '~' || c == '=') && nb != 2 {
		return 0
	}

	start := i + nb
	pos := start
	for pos < n {
		close := findEmphChar(data, pos, n, c)
		if close < 0 {
			return 0
		}
		closeRun := 0
		for close+closeRun < n && data[close+closeRun] == c {
			closeRun++
		}
		if closeRun < nb {
			pos = close + closeRun
			continue
		}
		if !isEmphBoundaryOK(data, close) {
			pos = close + closeRun
			continue
		}
		if !md.noIntraOK(data, i, close+nb) {
			pos = close + closeRun
			continue
		}
		if close == start {
			return 0
		}

		content := data[start:close]
		cb := md.emphCallback(c, nb)
		work := md.pools.newbuf(spanBuf)
		md.parseInline(work, content)
		ok := cb != nil && cb(ob, work.Bytes())
		md.pools.popbuf(spanBuf)
		if !ok {
			ob.Write(data[i : close+nb])
			return close + nb - i
		}
		return close + nb - i
	}
	return 0
}

func (md *Markdown) parseEmph1(ob *buffer.Buffer, data []byte, i, n int, c byte) int {
	return md.parseEmphN(ob, data, i, n, c, 1)
}

func (md *Markdown) parseEmph2(ob *buffer.Buffer, data []byte, i, n int, c byte) int {
	return md.parseEmphN(ob, data, i, n, c, 2)
}

// parseEmph3 tries the triple-marker form; when it fails to find a
// balanced triple close, charEmphasis falls through to try the
// double and single forms from the same start position (spec.md §4.4:
// "when triple matching fails, it delegates to single or double").
func (md *Markdown) parseEmph3(ob *buffer.Buffer, data []byte, i, n int, c byte) int {
	if c == '~' || c == '=' {
		return 0
	}
	if consumed := md.parseEmphN(ob, data, i, n, c, 3); consumed != 0 {
		return consumed
	}
	return 0
}
