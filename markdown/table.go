package markdown

import (
	"bytes"

	"github.com/jcorbin/scanmark/internal/buffer"
)

// isTableHeader implements spec.md §4.7's header-pass predicate: the
// first line contains a pipe, and the line after it is a valid alignment
// row.
func isTableHeader(data []byte) bool {
	header := firstLine(data)
	if !bytes.ContainsRune(header, '|') {
		return false
	}
	align := firstLine(data[len(header):])
	return isAlignmentLine(trimNewline(align))
}

// isAlignmentLine reports whether line is a run of `:-+|` column groups,
// each with at least 3 dashes.
func isAlignmentLine(line []byte) bool {
	if len(line) == 0 {
		return false
	}
	cells := splitCells(line)
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		cell = trimSpacesBytes(cell)
		if _, ok := parseAlignCell(cell); !ok {
			return false
		}
	}
	return true
}

// parseAlignCell parses one alignment-row cell, returning its alignment
// flags (spec.md §4.7: "leading ':' -> left, trailing ':' -> right, both
// -> center").
func parseAlignCell(cell []byte) (TableCellFlags, bool) {
	i := 0
	var flags TableCellFlags
	if i < len(cell) && cell[i] == ':' {
		flags |= TableAlignLeft
		i++
	}
	dashes := 0
	for i < len(cell) && cell[i] == '-' {
		dashes++
		i++
	}
	if i < len(cell) && cell[i] == ':' {
		flags |= TableAlignRight
		i++
	}
	if i != len(cell) || dashes < 3 {
		return 0, false
	}
	return flags, true
}

// splitCells splits a table row on every '|' byte (not escape-aware —
// hoedown's literal behavior, preserved per DESIGN.md's Open Question
// OQ-2), then drops a single leading and/or trailing empty cell produced
// by optional outer pipes.
func splitCells(line []byte) [][]byte {
	parts := bytes.Split(line, []byte{'|'})
	if len(parts) > 0 && len(trimSpacesBytes(parts[0])) == 0 {
		parts = parts[1:]
	}
	if len(parts) > 0 && len(trimSpacesBytes(parts[len(parts)-1])) == 0 {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func trimSpacesBytes(b []byte) []byte {
	i, j := 0, len(b)
	for i < j && b[i] == ' ' {
		i++
	}
	for j > i && b[j-1] == ' ' {
		j--
	}
	return b[i:j]
}

// parseTable implements spec.md C7: header row, alignment row, then body
// rows until a blank line or end of input. Shorter rows emit empty cells;
// extra cells beyond the header's column count are dropped.
func (md *Markdown) parseTable(ob *buffer.Buffer, data []byte) int {
	headerLine := firstLine(data)
	pos := len(headerLine)
	alignLine := firstLine(data[pos:])
	pos += len(alignLine)

	headerCells := splitCells(trimNewline(headerLine))
	aligns := parseAlignRow(trimNewline(alignLine))
	ncol := len(aligns)
	if len(headerCells) > ncol {
		ncol = len(headerCells)
	}

	headerBuf := md.pools.newbuf(blockBuf)
	md.renderTableRow(headerBuf, headerCells, aligns, ncol, true)

	bodyBuf := md.pools.newbuf(blockBuf)
	for pos < len(data) {
		line := firstLine(data[pos:])
		if isEmptyLineFull(line) {
			break
		}
		cells := splitCells(trimNewline(line))
		md.renderTableRow(bodyBuf, cells, aligns, ncol, false)
		pos += len(line)
	}

	if md.renderer.Table != nil {
		md.renderer.Table(ob, headerBuf.Bytes(), bodyBuf.Bytes())
	}
	md.pools.popbuf(blockBuf)
	md.pools.popbuf(blockBuf)
	return pos
}

func parseAlignRow(line []byte) []TableCellFlags {
	cells := splitCells(line)
	aligns := make([]TableCellFlags, len(cells))
	for i, cell := range cells {
		flags, _ := parseAlignCell(trimSpacesBytes(cell))
		aligns[i] = flags
	}
	return aligns
}

// renderTableRow renders ncol cells (padding short rows with empty cells,
// per spec.md §4.7), each inline-parsed and flagged with its alignment
// and header status.
func (md *Markdown) renderTableRow(ob *buffer.Buffer, cells [][]byte, aligns []TableCellFlags, ncol int, isHeader bool) {
	rowBuf := md.pools.newbuf(blockBuf)
	for c := 0; c < ncol; c++ {
		var text []byte
		if c < len(cells) {
			text = trimSpacesBytes(cells[c])
		}
		flags := TableCellFlags(0)
		if c < len(aligns) {
			flags |= aligns[c]
		}
		if isHeader {
			flags |= TableCellHeader
		}
		work := md.pools.newbuf(spanBuf)
		md.parseInline(work, text)
		if md.renderer.TableCell != nil {
			md.renderer.TableCell(rowBuf, work.Bytes(), flags)
		}
		md.pools.popbuf(spanBuf)
	}
	if md.renderer.TableRow != nil {
		md.renderer.TableRow(ob, rowBuf.Bytes())
	}
	md.pools.popbuf(blockBuf)
}
