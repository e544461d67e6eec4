// Package autolink implements the URL/email/WWW autolink detection
// collaborator described in spec.md §4.4 and §6. Each detector is handed
// the already-rendered output buffer (so it can look backward past the
// active-character trigger byte to recover a scheme or domain prefix
// already flushed as normal text) plus the forward span starting at the
// trigger byte, and returns how many trailing output bytes to rewind
// alongside the recognized link text and how many forward bytes it
// consumed.
package autolink

import "github.com/jcorbin/scanmark/internal/buffer"

// Kind identifies which sort of autolink was recognized, matching spec.md
// §6's "Autolink kind: none | normal URL | email".
type Kind int

// Autolink kinds.
const (
	KindNone Kind = iota
	KindNormal
	KindEmail
)

func isSchemeByte(c byte) bool {
	return isAlnum(c) || c == '+' || c == '-' || c == '.'
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isLocalPartByte(c byte) bool {
	return isAlnum(c) || c == '.' || c == '_' || c == '-' || c == '+'
}

func isDomainByte(c byte) bool {
	return isAlnum(c) || c == '.' || c == '-' || c == '_'
}

// URL recognizes data[0] == ':' as the end of a scheme already present in
// ob's tail (e.g. "http", "ftp"), and scans forward for "//" plus the rest
// of the URL. It returns rewind (bytes of scheme already in ob to discard),
// link (the full "scheme://..." text) and consumed (bytes of data, starting
// at data[0], that belong to the link).
func URL(ob *buffer.Buffer, data []byte) (rewind int, link []byte, consumed int) {
	if len(data) < 3 || data[0] != ':' {
		return 0, nil, 0
	}

	tail := ob.Bytes()
	end := len(tail)
	start := end
	for start > 0 && isSchemeByte(tail[start-1]) {
		start--
	}
	schemeLen := end - start
	if schemeLen < 2 {
		return 0, nil, 0
	}
	// require a word boundary before the scheme
	if start > 0 && (isAlnum(tail[start-1]) || tail[start-1] == '/') {
		return 0, nil, 0
	}
	// scheme must start with a letter
	if !((tail[start] >= 'a' && tail[start] <= 'z') || (tail[start] >= 'A' && tail[start] <= 'Z')) {
		return 0, nil, 0
	}

	if len(data) < 3 || data[1] != '/' || data[2] != '/' {
		return 0, nil, 0
	}

	i := 3
	for i < len(data) {
		switch {
		case data[i] == '\\' && i+1 < len(data):
			i += 2
		case data[i] == '>' || data[i] == '\'' || data[i] == '"' || data[i] == ' ' || data[i] == '\n' || data[i] == '<':
			goto done
		default:
			i++
		}
	}
done:
	// trim trailing punctuation that's likely sentence punctuation, not
	// part of the URL ('.', ',', ';', '!', '?', ':'); a trailing ')' is
	// kept.
	for i > 3 {
		c := data[i-1]
		if c == '.' || c == ',' || c == ';' || c == '!' || c == '?' || c == ':' {
			i--
			continue
		}
		break
	}
	if i <= 3 {
		return 0, nil, 0
	}

	out := make([]byte, 0, schemeLen+i)
	out = append(out, tail[start:end]...)
	out = append(out, data[:i]...)
	return schemeLen, out, i
}

// Email recognizes data[0] == '@' as the separator of a local-part already
// present in ob's tail and a domain following in data. shortDomains allows
// a domain with no '.' (e.g. "user@localhost") to still count as an email.
func Email(ob *buffer.Buffer, data []byte, shortDomains bool) (rewind int, link []byte, consumed int) {
	if len(data) < 2 || data[0] != '@' {
		return 0, nil, 0
	}

	tail := ob.Bytes()
	end := len(tail)
	start := end
	for start > 0 && isLocalPartByte(tail[start-1]) {
		start--
	}
	localLen := end - start
	if localLen == 0 {
		return 0, nil, 0
	}
	if start > 0 && isAlnum(tail[start-1]) {
		return 0, nil, 0
	}

	i := 1
	dots := 0
	for i < len(data) && isDomainByte(data[i]) {
		if data[i] == '.' {
			dots++
		}
		i++
	}
	if i == 1 {
		return 0, nil, 0
	}
	if dots == 0 && !shortDomains {
		return 0, nil, 0
	}
	// trailing '.' isn't part of the domain
	for i > 1 && data[i-1] == '.' {
		i--
	}
	if i == 1 {
		return 0, nil, 0
	}

	out := make([]byte, 0, localLen+i)
	out = append(out, tail[start:end]...)
	out = append(out, data[:i]...)
	return localLen, out, i
}

// WWW recognizes data beginning with "www." (triggered on the leading 'w'),
// additionally scanning ob's tail backward for a subdomain prefix already
// emitted (e.g. "sub." in "sub.www.example.com"). It returns the domain
// and path text (NOT including a "http://" prefix - the caller prepends
// that, per hoedown's char_autolink_www).
func WWW(ob *buffer.Buffer, data []byte, shortDomains bool) (rewind int, link []byte, consumed int) {
	if len(data) < 4 || data[0] != 'w' || data[1] != 'w' || data[2] != 'w' || data[3] != '.' {
		return 0, nil, 0
	}

	tail := ob.Bytes()
	end := len(tail)
	start := end
	for start > 0 && isDomainByte(tail[start-1]) {
		start--
	}
	prefixLen := end - start

	i := 4
	dots := 0
	for i < len(data) {
		c := data[i]
		switch {
		case isDomainByte(c):
			if c == '.' {
				dots++
			}
			i++
		case c == '/' || c == '?' || c == '#' || c == '=' || c == '&' || c == '%' || c == '~' || c == ':':
			i++
		default:
			goto done
		}
	}
done:
	for i > 4 {
		c := data[i-1]
		if c == '.' || c == ',' || c == ';' || c == '!' || c == '?' {
			i--
			continue
		}
		break
	}
	if i == 4 && dots == 0 && !shortDomains {
		return 0, nil, 0
	}

	out := make([]byte, 0, prefixLen+i)
	out = append(out, tail[start:end]...)
	out = append(out, data[:i]...)
	return prefixLen, out, i
}
