package markdown

import "github.com/jcorbin/scanmark/internal/buffer"

// parseList implements spec.md §4.5's List items bullet (priorities 9/10):
// it consumes items sharing the same marker kind (ordered or unordered)
// until a line fails that kind's prefix test. That naturally ends the
// list on a type switch too: control returns to parseBlock, which
// redispatches the remaining data and starts a fresh list if the next
// line is the other kind — reproducing "a switch between ordered and
// unordered at the same level ends the whole list" without special-casing
// it here.
func (md *Markdown) parseList(ob *buffer.Buffer, data []byte, ordered bool) int {
	if !md.enter() {
		return 0
	}

	itemsBuf := md.pools.newbuf(blockBuf)
	pos := 0
	looseList := false
	count := 0

	for pos < len(data) {
		line := firstLine(data[pos:])
		var off int
		if ordered {
			off = prefixOli(line)
		} else {
			off = prefixUli(line)
		}
		if off < 0 {
			break
		}

		content, consumed, loose := collectListItem(data[pos:], off)
		if loose {
			looseList = true
		}
		md.renderListItem(itemsBuf, content, looseList, ordered)
		pos += consumed
		count++
	}

	if count == 0 {
		md.pools.popbuf(blockBuf)
		return 0
	}

	flags := ListItemFlags(0)
	if ordered {
		flags |= ListItemOrdered
	}
	if looseList {
		flags |= ListItemBlock
	}
	if md.renderer.List != nil {
		md.renderer.List(ob, itemsBuf.Bytes(), flags)
	}
	md.pools.popbuf(blockBuf)
	return pos
}

// collectListItem accumulates the lines belonging to one list item
// starting at data (whose first line's content begins at column off),
// stripping off columns from every continuation line. Blank lines are
// retained (toggling loose) when followed by a line indented at least off
// columns. Blank lines followed by another list item marker are consumed
// and also toggle loose, so the parseList loop continues with that item.
// Otherwise the item ends without consuming them, leaving the parseList
// loop (or an enclosing blockquote/list) to decide what the blank line(s)
// precede.
func collectListItem(data []byte, off int) (content []byte, consumed int, loose bool) {
	buf := &buffer.Buffer{}
	line := firstLine(data)
	if off < len(line) {
		buf.Write(line[off:])
	}
	pos := len(line)

	for pos < len(data) {
		next := firstLine(data[pos:])
		if isEmptyLineFull(next) {
			blankStart := pos
			p := pos
			for p < len(data) && isEmptyLineFull(firstLine(data[p:])) {
				p += len(firstLine(data[p:]))
			}
			if p >= len(data) {
				pos = p
				break
			}
			after := firstLine(data[p:])
			if countLeadingSpaces(after, off) < off {
				if prefixUli(after) >= 0 || prefixOli(after) >= 0 {
					loose = true
					pos = p
				}
				break
			}
			loose = true
			buf.Write(data[blankStart:p])
			buf.Write(stripIndent(after, off))
			pos = p + len(after)
			continue
		}

		if countLeadingSpaces(next, off) < off {
			break
		}
		buf.Write(stripIndent(next, off))
		pos += len(next)
	}

	return buf.Bytes(), pos, loose
}

func stripIndent(line []byte, off int) []byte {
	n := countLeadingSpaces(line, off)
	return line[n:]
}

// containsNestedList reports whether any line of content (other than the
// first) starts a nested list, the signal spec.md §4.5 uses to split a
// mid-item sub-list into inline-head + block-tail by routing the whole
// item through the block parser.
func containsNestedList(content []byte) bool {
	pos := 0
	first := true
	for pos < len(content) {
		line := firstLine(content[pos:])
		if !first && (prefixUli(line) >= 0 || prefixOli(line) >= 0) {
			return true
		}
		first = false
		pos += len(line)
	}
	return false
}

// renderListItem renders one item's content: loose items (and items
// containing a nested sub-list) go through the block parser; tight items
// are parsed as a single inline span (spec.md §4.5).
func (md *Markdown) renderListItem(ob *buffer.Buffer, content []byte, loose, ordered bool) {
	flags := ListItemFlags(0)
	if ordered {
		flags |= ListItemOrdered
	}
	if loose {
		flags |= ListItemBlock
	}

	work := md.pools.newbuf(blockBuf)
	if loose || containsNestedList(content) {
		md.parseBlock(work, content)
	} else {
		md.parseInline(work, trimNewline(content))
	}
	if md.renderer.ListItem != nil {
		md.renderer.ListItem(ob, work.Bytes(), flags)
	}
	md.pools.popbuf(blockBuf)
}
