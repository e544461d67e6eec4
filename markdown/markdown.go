// Package markdown implements the core two-pass Markdown engine: a
// reference/footnote pre-scan followed by recursive block and inline
// parsing, driving a pluggable Renderer. It is a generalization of
// hoedown/blackfriday's v1 callback-vector design (see DESIGN.md), not an
// implementation of CommonMark.
package markdown

import "github.com/jcorbin/scanmark/internal/buffer"

// Buffer is the growable output buffer passed to every renderer callback.
// It supports the truncating write spec.md's Design Notes require for
// autolink/image/hard-break rewinding (internal/buffer.Buffer.Truncate).
type Buffer = buffer.Buffer

// Extensions is the bitmask of optional syntax spec.md §6 names.
type Extensions uint32

// Extension bits.
const (
	NoIntraEmphasis Extensions = 1 << iota
	Tables
	FencedCode
	Autolink
	Strikethrough
	LaxSpacing
	SpaceHeaders
	Superscript
	Underline
	Highlight
	Quote
	Footnotes
	DisableIndentedCode
	ShortDomainAutolinks
)

// ListItemFlags is the bitmask passed to the List and ListItem callbacks.
type ListItemFlags int

// List item flags. ListItemEndOfList names the internal end-of-list bit;
// the parser never sets it, so it never appears on a flags value handed
// to a renderer callback.
const (
	ListItemOrdered ListItemFlags = 1 << iota
	ListItemBlock
	ListItemEndOfList
)

// TableCellFlags is the bitmask passed to the TableCell callback.
type TableCellFlags int

// Table cell flags.
const (
	TableAlignLeft TableCellFlags = 1 << iota
	TableAlignRight
	TableCellHeader
)

// TableAlignCenter is both alignment bits set.
const TableAlignCenter = TableAlignLeft | TableAlignRight

// AutolinkKind distinguishes the kind of autolink passed to the Autolink
// callback.
type AutolinkKind int

// Autolink kinds.
const (
	AutolinkNone AutolinkKind = iota
	AutolinkNormal
	AutolinkEmail
)

// Renderer is the dispatch vector spec.md §6 describes as "a struct of
// function pointers (or polymorphic equivalent)". Go closures stand in for
// the C API's opaque context pointer: a caller wanting per-document state
// captures it in the closures it assigns to these fields rather than
// threading an extra parameter through every call (see DESIGN.md's Open
// Question decisions). Block-level and low-level callbacks have no return
// value; inline callbacks return false to tell the scanner to treat the
// construct as literal text instead. A nil field is always treated as
// "not handled" (equivalent to returning false, or to a no-op for
// block-level callbacks).
type Renderer struct {
	// Block-level
	BlockCode   func(ob *Buffer, text, lang []byte)
	BlockQuote  func(ob *Buffer, text []byte)
	BlockHTML   func(ob *Buffer, text []byte)
	Header      func(ob *Buffer, text []byte, level int)
	HRule       func(ob *Buffer)
	List        func(ob *Buffer, text []byte, flags ListItemFlags)
	ListItem    func(ob *Buffer, text []byte, flags ListItemFlags)
	Paragraph   func(ob *Buffer, text []byte)
	Table       func(ob *Buffer, header, body []byte)
	TableRow    func(ob *Buffer, text []byte)
	TableCell   func(ob *Buffer, text []byte, flags TableCellFlags)
	Footnotes   func(ob *Buffer, text []byte)
	FootnoteDef func(ob *Buffer, text []byte, num int)

	// Inline
	Autolink       func(ob *Buffer, link []byte, kind AutolinkKind) bool
	CodeSpan       func(ob *Buffer, text []byte) bool
	DoubleEmphasis func(ob *Buffer, text []byte) bool
	Emphasis       func(ob *Buffer, text []byte) bool
	TripleEmphasis func(ob *Buffer, text []byte) bool
	Underline      func(ob *Buffer, text []byte) bool
	Highlight      func(ob *Buffer, text []byte) bool
	Strikethrough  func(ob *Buffer, text []byte) bool
	Quote          func(ob *Buffer, text []byte) bool
	Superscript    func(ob *Buffer, text []byte) bool
	Image          func(ob *Buffer, link, title, alt []byte) bool
	LineBreak      func(ob *Buffer) bool
	Link           func(ob *Buffer, link, title, content []byte) bool
	RawHTMLTag     func(ob *Buffer, text []byte) bool
	FootnoteRef    func(ob *Buffer, num int) bool

	// Low-level
	Entity     func(ob *Buffer, text []byte)
	NormalText func(ob *Buffer, text []byte)

	// Document
	DocHeader func(ob *Buffer)
	DocFooter func(ob *Buffer)
}

// inline dispatch action codes, indexed by byte value in Markdown.active.
type action uint8

const (
	actionNone action = iota
	actionLineBreak
	actionEscape
	actionEntity
	actionLangleTag
	actionCodeSpan
	actionEmphasis
	actionLink
	actionAutolinkURL
	actionAutolinkEmail
	actionAutolinkWWW
	actionSuperscript
	actionQuoteSpan
)

// Markdown is one parser instance: spec.md's "Parser state". It owns the
// renderer vector, both footnote lists, the link-reference table, the
// active-character dispatch table, the two buffer-pool stacks, the
// extension bitmask, and the maximum nesting depth. A Markdown is not
// safe for concurrent use by multiple goroutines, but distinct instances
// share nothing and may run in parallel (spec.md §5).
type Markdown struct {
	renderer   Renderer
	extensions Extensions
	maxNesting int

	refs           refTable
	footnotesFound footnoteList
	footnotesUsed  footnoteList

	pools  pools
	active [256]action

	// insideLink suppresses autolinking while re-parsing link text inline
	// (spec.md §4.4's in_link_body flag).
	insideLink bool
}

// New constructs a Markdown parser. maxNesting <= 0 defaults to 16.
func New(renderer Renderer, extensions Extensions, maxNesting int) *Markdown {
	if maxNesting <= 0 {
		maxNesting = 16
	}
	md := &Markdown{
		renderer:   renderer,
		extensions: extensions,
		maxNesting: maxNesting,
	}
	md.buildActiveTable()
	return md
}

func (md *Markdown) buildActiveTable() {
	md.active['\n'] = actionLineBreak
	md.active['\\'] = actionEscape
	md.active['&'] = actionEntity
	md.active['<'] = actionLangleTag
	md.active['`'] = actionCodeSpan
	md.active['*'] = actionEmphasis
	md.active['_'] = actionEmphasis
	md.active['['] = actionLink

	if md.extensions&Strikethrough != 0 {
		md.active['~'] = actionEmphasis
	}
	if md.extensions&Highlight != 0 {
		md.active['='] = actionEmphasis
	}
	if md.extensions&Autolink != 0 {
		md.active[':'] = actionAutolinkURL
		md.active['@'] = actionAutolinkEmail
		md.active['w'] = actionAutolinkWWW
	}
	if md.extensions&Superscript != 0 {
		md.active['^'] = actionSuperscript
	}
	if md.extensions&Quote != 0 {
		md.active['"'] = actionQuoteSpan
	}
}

// enter reports whether another recognizer invocation is permitted at the
// current recursion depth (spec.md invariant (i)). Call before acquiring a
// working buffer for a recursive parse.
func (md *Markdown) enter() bool {
	return md.pools.depth() < md.maxNesting
}

// Run executes the full two-pass render (spec.md C8) and returns the
// rendered output. It panics if a recognizer leaked a working buffer
// (pool depth nonzero at teardown) — that is a programming error in a
// recognizer, not a property of the input document.
func (md *Markdown) Run(document []byte) []byte {
	text := md.preprocess(document)

	ob := &buffer.Buffer{}
	ob.Grow(len(text) + len(text)/2)

	if md.renderer.DocHeader != nil {
		md.renderer.DocHeader(ob)
	}

	md.parseBlock(ob, text)

	if md.extensions&Footnotes != 0 && md.footnotesUsed.count > 0 {
		md.renderFootnotes(ob)
	}

	if md.renderer.DocFooter != nil {
		md.renderer.DocFooter(ob)
	}

	if !md.pools.empty() {
		panic("markdown: buffer pool leak at teardown")
	}

	return ob.Bytes()
}

// renderFootnotes renders the used-footnote list in first-use order,
// wrapping the accumulated definitions with the Footnotes callback
// (spec.md C8, C2's "used list owns its numbering").
func (md *Markdown) renderFootnotes(ob *buffer.Buffer) {
	body := md.pools.newbuf(blockBuf)
	defer md.pools.popbuf(blockBuf)

	for item := md.footnotesUsed.head; item != nil; item = item.next {
		ref := item.ref
		if md.renderer.FootnoteDef == nil {
			continue
		}
		def := md.pools.newbuf(blockBuf)
		md.parseBlock(def, ref.contents)
		md.renderer.FootnoteDef(body, def.Bytes(), ref.num)
		md.pools.popbuf(blockBuf)
	}

	if md.renderer.Footnotes != nil {
		md.renderer.Footnotes(ob, body.Bytes())
	}
}
