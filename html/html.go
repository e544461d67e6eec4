// Package html implements the default HTML Renderer for the markdown
// engine: a concrete body for spec.md §6's "renderer implementation
// itself", which the core engine treats as an out-of-scope external
// collaborator. Grounded on the teacher's scandown/fmt.go Fprintf-style
// writer conventions and blackfriday's html.Renderer from the example
// pack (for the general shape of a callback-struct HTML backend).
package html

import (
	"fmt"
	"strconv"

	"github.com/jcorbin/scanmark/markdown"
	anchor "github.com/shurcooL/sanitized_anchor_name"
)

// Flags configures the renderer's output.
type Flags int

// Renderer flags.
const (
	// HeadingIDs adds an id="..." attribute to every header, derived from
	// its text via sanitized_anchor_name, deduplicated by a numeric suffix
	// on repeats.
	HeadingIDs Flags = 1 << iota
	// SkipHTML drops raw HTML tags and blocks instead of passing them
	// through verbatim.
	SkipHTML
)

// Renderer is a stateful HTML backend: NewRenderer returns one ready to
// plug into markdown.New via its Callbacks method.
type Renderer struct {
	flags      Flags
	anchorSeen map[string]int
}

// NewRenderer constructs an HTML Renderer with the given flags.
func NewRenderer(flags Flags) *Renderer {
	return &Renderer{flags: flags, anchorSeen: map[string]int{}}
}

// Callbacks returns the markdown.Renderer dispatch vector bound to this
// Renderer's state.
func (r *Renderer) Callbacks() markdown.Renderer {
	return markdown.Renderer{
		BlockCode:   r.blockCode,
		BlockQuote:  r.blockQuote,
		BlockHTML:   r.blockHTML,
		Header:      r.header,
		HRule:       r.hrule,
		List:        r.list,
		ListItem:    r.listItem,
		Paragraph:   r.paragraph,
		Table:       r.table,
		TableRow:    r.tableRow,
		TableCell:   r.tableCell,
		Footnotes:   r.footnotes,
		FootnoteDef: r.footnoteDef,

		Autolink:       r.autolink,
		CodeSpan:       r.codeSpan,
		DoubleEmphasis: r.doubleEmphasis,
		Emphasis:       r.emphasis,
		TripleEmphasis: r.tripleEmphasis,
		Underline:      r.underline,
		Highlight:      r.highlight,
		Strikethrough:  r.strikethrough,
		Quote:          r.quote,
		Superscript:    r.superscript,
		Image:          r.image,
		LineBreak:      r.lineBreak,
		Link:           r.link,
		RawHTMLTag:     r.rawHTMLTag,
		FootnoteRef:    r.footnoteRef,

		Entity:     r.entity,
		NormalText: r.normalText,

		DocHeader: r.docHeader,
		DocFooter: r.docFooter,
	}
}

// New is a convenience constructor combining markdown.New with an HTML
// Renderer's callbacks.
func New(extensions markdown.Extensions, maxNesting int, flags Flags) *markdown.Markdown {
	r := NewRenderer(flags)
	return markdown.New(r.Callbacks(), extensions, maxNesting)
}

func (r *Renderer) blockCode(ob *markdown.Buffer, text, lang []byte) {
	ob.WriteString("<pre><code")
	if len(lang) > 0 {
		ob.WriteString(" class=\"language-")
		escapeAttribute(ob, lang)
		ob.WriteByte('"')
	}
	ob.WriteString(">")
	escapeHTML(ob, text)
	ob.WriteString("</code></pre>\n")
}

func (r *Renderer) blockQuote(ob *markdown.Buffer, text []byte) {
	ob.WriteString("<blockquote>\n")
	ob.Write(text)
	ob.WriteString("</blockquote>\n")
}

func (r *Renderer) blockHTML(ob *markdown.Buffer, text []byte) {
	if r.flags&SkipHTML != 0 {
		return
	}
	ob.Write(text)
}

func (r *Renderer) header(ob *markdown.Buffer, text []byte, level int) {
	tag := "h" + strconv.Itoa(level)
	ob.WriteString("<" + tag)
	if r.flags&HeadingIDs != 0 {
		id := r.uniqueAnchor(string(text))
		ob.WriteString(" id=\"")
		ob.WriteString(id)
		ob.WriteByte('"')
	}
	ob.WriteString(">")
	ob.Write(text)
	ob.WriteString("</" + tag + ">\n")
}

func (r *Renderer) uniqueAnchor(text string) string {
	id := anchor.Create(text)
	if id == "" {
		id = "section"
	}
	n := r.anchorSeen[id]
	r.anchorSeen[id] = n + 1
	if n == 0 {
		return id
	}
	return id + "-" + strconv.Itoa(n)
}

func (r *Renderer) hrule(ob *markdown.Buffer) {
	ob.WriteString("<hr>\n")
}

func (r *Renderer) list(ob *markdown.Buffer, text []byte, flags markdown.ListItemFlags) {
	tag := "ul"
	if flags&markdown.ListItemOrdered != 0 {
		tag = "ol"
	}
	ob.WriteString("<" + tag + ">\n")
	ob.Write(text)
	ob.WriteString("</" + tag + ">\n")
}

func (r *Renderer) listItem(ob *markdown.Buffer, text []byte, flags markdown.ListItemFlags) {
	ob.WriteString("<li>")
	ob.Write(text)
	ob.WriteString("</li>\n")
}

func (r *Renderer) paragraph(ob *markdown.Buffer, text []byte) {
	ob.WriteString("<p>")
	ob.Write(text)
	ob.WriteString("</p>\n")
}

func (r *Renderer) table(ob *markdown.Buffer, header, body []byte) {
	ob.WriteString("<table>\n<thead>\n")
	ob.Write(header)
	ob.WriteString("</thead>\n<tbody>\n")
	ob.Write(body)
	ob.WriteString("</tbody>\n</table>\n")
}

func (r *Renderer) tableRow(ob *markdown.Buffer, text []byte) {
	ob.WriteString("<tr>\n")
	ob.Write(text)
	ob.WriteString("</tr>\n")
}

func (r *Renderer) tableCell(ob *markdown.Buffer, text []byte, flags markdown.TableCellFlags) {
	tag := "td"
	if flags&markdown.TableCellHeader != 0 {
		tag = "th"
	}
	ob.WriteString("<" + tag)
	switch flags & markdown.TableAlignCenter {
	case markdown.TableAlignLeft:
		ob.WriteString(" align=\"left\"")
	case markdown.TableAlignRight:
		ob.WriteString(" align=\"right\"")
	case markdown.TableAlignCenter:
		ob.WriteString(" align=\"center\"")
	}
	ob.WriteString(">")
	ob.Write(text)
	ob.WriteString("</" + tag + ">\n")
}

func (r *Renderer) footnotes(ob *markdown.Buffer, text []byte) {
	ob.WriteString("<div class=\"footnotes\">\n<hr>\n<ol>\n")
	ob.Write(text)
	ob.WriteString("</ol>\n</div>\n")
}

func (r *Renderer) footnoteDef(ob *markdown.Buffer, text []byte, num int) {
	fmt.Fprintf(ob, "<li id=\"fn%d\">", num)
	ob.Write(text)
	ob.WriteString("</li>\n")
}

func (r *Renderer) autolink(ob *markdown.Buffer, link []byte, kind markdown.AutolinkKind) bool {
	ob.WriteString("<a href=\"")
	if kind == markdown.AutolinkEmail {
		ob.WriteString("mailto:")
	}
	escapeAttribute(ob, link)
	ob.WriteString("\">")
	escapeHTML(ob, link)
	ob.WriteString("</a>")
	return true
}

func (r *Renderer) codeSpan(ob *markdown.Buffer, text []byte) bool {
	ob.WriteString("<code>")
	escapeHTML(ob, text)
	ob.WriteString("</code>")
	return true
}

func (r *Renderer) doubleEmphasis(ob *markdown.Buffer, text []byte) bool {
	ob.WriteString("<strong>")
	ob.Write(text)
	ob.WriteString("</strong>")
	return true
}

func (r *Renderer) emphasis(ob *markdown.Buffer, text []byte) bool {
	if len(text) == 0 {
		return false
	}
	ob.WriteString("<em>")
	ob.Write(text)
	ob.WriteString("</em>")
	return true
}

func (r *Renderer) tripleEmphasis(ob *markdown.Buffer, text []byte) bool {
	ob.WriteString("<strong><em>")
	ob.Write(text)
	ob.WriteString("</em></strong>")
	return true
}

func (r *Renderer) underline(ob *markdown.Buffer, text []byte) bool {
	ob.WriteString("<u>")
	ob.Write(text)
	ob.WriteString("</u>")
	return true
}

func (r *Renderer) highlight(ob *markdown.Buffer, text []byte) bool {
	ob.WriteString("<mark>")
	ob.Write(text)
	ob.WriteString("</mark>")
	return true
}

func (r *Renderer) strikethrough(ob *markdown.Buffer, text []byte) bool {
	ob.WriteString("<del>")
	ob.Write(text)
	ob.WriteString("</del>")
	return true
}

func (r *Renderer) quote(ob *markdown.Buffer, text []byte) bool {
	ob.WriteString("&ldquo;")
	ob.Write(text)
	ob.WriteString("&rdquo;")
	return true
}

func (r *Renderer) superscript(ob *markdown.Buffer, text []byte) bool {
	ob.WriteString("<sup>")
	ob.Write(text)
	ob.WriteString("</sup>")
	return true
}

func (r *Renderer) image(ob *markdown.Buffer, link, title, alt []byte) bool {
	ob.WriteString("<img src=\"")
	escapeAttribute(ob, link)
	ob.WriteString("\" alt=\"")
	escapeAttribute(ob, alt)
	ob.WriteByte('"')
	if len(title) > 0 {
		ob.WriteString(" title=\"")
		escapeAttribute(ob, title)
		ob.WriteByte('"')
	}
	ob.WriteString(">")
	return true
}

func (r *Renderer) lineBreak(ob *markdown.Buffer) bool {
	ob.WriteString("<br>\n")
	return true
}

func (r *Renderer) link(ob *markdown.Buffer, link, title, content []byte) bool {
	ob.WriteString("<a href=\"")
	escapeAttribute(ob, link)
	ob.WriteByte('"')
	if len(title) > 0 {
		ob.WriteString(" title=\"")
		escapeAttribute(ob, title)
		ob.WriteByte('"')
	}
	ob.WriteString(">")
	ob.Write(content)
	ob.WriteString("</a>")
	return true
}

func (r *Renderer) rawHTMLTag(ob *markdown.Buffer, text []byte) bool {
	if r.flags&SkipHTML != 0 {
		return false
	}
	ob.Write(text)
	return true
}

func (r *Renderer) footnoteRef(ob *markdown.Buffer, num int) bool {
	fmt.Fprintf(ob, "<sup id=\"fnref%d\"><a href=\"#fn%d\">%d</a></sup>", num, num, num)
	return true
}

func (r *Renderer) entity(ob *markdown.Buffer, text []byte) {
	ob.Write(text)
}

func (r *Renderer) normalText(ob *markdown.Buffer, text []byte) {
	escapeHTML(ob, text)
}

func (r *Renderer) docHeader(ob *markdown.Buffer) {}

func (r *Renderer) docFooter(ob *markdown.Buffer) {}

// escapeHTML writes text with '&', '<', '>' escaped.
func escapeHTML(ob *markdown.Buffer, text []byte) {
	start := 0
	for i, c := range text {
		var esc string
		switch c {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		default:
			continue
		}
		ob.Write(text[start:i])
		ob.WriteString(esc)
		start = i + 1
	}
	ob.Write(text[start:])
}

// escapeAttribute writes text with '&', '<', '>', '"' escaped, for use
// inside a double-quoted HTML attribute.
func escapeAttribute(ob *markdown.Buffer, text []byte) {
	start := 0
	for i, c := range text {
		var esc string
		switch c {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			esc = "&quot;"
		default:
			continue
		}
		ob.Write(text[start:i])
		ob.WriteString(esc)
		start = i + 1
	}
	ob.Write(text[start:])
}
