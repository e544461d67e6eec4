package markdown

import (
	"github.com/jcorbin/scanmark/internal/autolink"
	"github.com/jcorbin/scanmark/internal/buffer"
)

// charLangleTag implements spec.md §4.4's Angle tag bullet: distinguishes
// a raw HTML tag, an email autolink (`<foo@bar>`), or a URL autolink
// (`<scheme:...>`), grounded on hoedown's char_langle_tag / tag_length /
// is_mail_autolink.
func (md *Markdown) charLangleTag(ob *buffer.Buffer, data []byte, i, n int) int {
	end := i + 1
	for end < n && data[end] != '>' {
		end++
	}
	if end >= n {
		return 0
	}
	inner := data[i+1 : end]

	if isMailAutolink(inner) {
		if md.renderer.Autolink == nil || !md.renderer.Autolink(ob, inner, AutolinkEmail) {
			ob.Write(data[i : end+1])
		}
		return end + 1 - i
	}

	if _, ok := autolinkScheme(inner); ok {
		if md.renderer.Autolink == nil || !md.renderer.Autolink(ob, inner, AutolinkNormal) {
			ob.Write(data[i : end+1])
		}
		return end + 1 - i
	}

	if isHTMLTag(inner) {
		if md.renderer.RawHTMLTag == nil || !md.renderer.RawHTMLTag(ob, data[i:end+1]) {
			ob.Write(data[i : end+1])
		}
		return end + 1 - i
	}

	return 0
}

// isMailAutolink reports whether inner looks like "local@domain" with no
// spaces, matching hoedown's is_mail_autolink.
func isMailAutolink(inner []byte) bool {
	at := -1
	for i, c := range inner {
		if c == ' ' || c == '<' {
			return false
		}
		if c == '@' {
			at = i
		}
	}
	return at > 0 && at < len(inner)-1
}

// autolinkScheme reports whether inner begins with a 2+ letter/digit/+-.
// scheme followed by ':', i.e. the whole of inner is a bracketed URL.
func autolinkScheme(inner []byte) (scheme []byte, ok bool) {
	i := 0
	for i < len(inner) && (isAlnumByte(inner[i]) || inner[i] == '+' || inner[i] == '-' || inner[i] == '.') {
		i++
	}
	if i < 2 || i >= len(inner) || inner[i] != ':' {
		return nil, false
	}
	for _, c := range inner {
		if c == ' ' || c == '\n' || c == '<' || c == '>' {
			return nil, false
		}
	}
	return inner[:i], true
}

// isHTMLTag reports whether inner is a plausible raw HTML tag body: an
// optional '/', a name starting with a letter or digit, and the rest arbitrary (attributes)
// with no '<' inside.
func isHTMLTag(inner []byte) bool {
	if len(inner) == 0 {
		return false
	}
	i := 0
	if inner[0] == '/' {
		i++
	}
	if i >= len(inner) || !isAlnumByte(inner[i]) {
		return false
	}
	for _, c := range inner {
		if c == '<' {
			return false
		}
	}
	return true
}

// charAutolinkURL, charAutolinkEmail, charAutolinkWWW implement spec.md
// §4.4's Autolinks bullet: each detector rewinds ob by the number of
// already-emitted bytes the internal/autolink helper reports, then emits
// the full reconstructed link. All three are suppressed while re-parsing
// link text (md.insideLink).

func (md *Markdown) charAutolinkURL(ob *buffer.Buffer, data []byte, i, n int) int {
	if md.insideLink {
		return 0
	}
	rewind, link, consumed := autolink.URL(ob, data[i:n])
	if consumed == 0 {
		return 0
	}
	ob.Truncate(ob.Len() - rewind)
	if md.renderer.Autolink == nil || !md.renderer.Autolink(ob, link, AutolinkNormal) {
		ob.Write(link)
	}
	return consumed
}

func (md *Markdown) charAutolinkEmail(ob *buffer.Buffer, data []byte, i, n int) int {
	if md.insideLink {
		return 0
	}
	short := md.extensions&ShortDomainAutolinks != 0
	rewind, link, consumed := autolink.Email(ob, data[i:n], short)
	if consumed == 0 {
		return 0
	}
	ob.Truncate(ob.Len() - rewind)
	if md.renderer.Autolink == nil || !md.renderer.Autolink(ob, link, AutolinkEmail) {
		ob.Write(link)
	}
	return consumed
}

func (md *Markdown) charAutolinkWWW(ob *buffer.Buffer, data []byte, i, n int) int {
	if md.insideLink {
		return 0
	}
	short := md.extensions&ShortDomainAutolinks != 0
	rewind, link, consumed := autolink.WWW(ob, data[i:n], short)
	if consumed == 0 {
		return 0
	}
	ob.Truncate(ob.Len() - rewind)
	full := append([]byte("http://"), link...)
	if md.renderer.Autolink == nil || !md.renderer.Autolink(ob, full, AutolinkNormal) {
		ob.Write(full)
	}
	return consumed
}

// charSuperscript implements spec.md §4.4's Superscript bullet: `^(expr)`
// terminated by an unescaped ')', or `^token` terminated by whitespace.
// Contents are re-parsed inline.
func (md *Markdown) charSuperscript(ob *buffer.Buffer, data []byte, i, n int) int {
	if i+1 >= n {
		return 0
	}

	var content []byte
	var consumed int

	if data[i+1] == '(' {
		depth := 1
		j := i + 2
		for j < n && depth > 0 {
			switch data[j] {
			case '\\':
				j++
			case '(':
				depth++
			case ')':
				depth--
			}
			j++
		}
		if depth != 0 {
			return 0
		}
		content = data[i+2 : j-1]
		consumed = j - i
	} else {
		j := i + 1
		for j < n && data[j] != ' ' && data[j] != '\n' && data[j] != '\t' {
			j++
		}
		if j == i+1 {
			return 0
		}
		content = data[i+1 : j]
		consumed = j - i
	}

	work := md.pools.newbuf(spanBuf)
	md.parseInline(work, content)
	ok := md.renderer.Superscript != nil && md.renderer.Superscript(ob, work.Bytes())
	md.pools.popbuf(spanBuf)
	if !ok {
		ob.Write(data[i : i+consumed])
	}
	return consumed
}
