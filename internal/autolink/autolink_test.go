package autolink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/scanmark/internal/autolink"
	"github.com/jcorbin/scanmark/internal/buffer"
)

func bufOf(s string) *buffer.Buffer {
	var b buffer.Buffer
	b.WriteString(s)
	return &b
}

func TestURL(t *testing.T) {
	rewind, link, consumed := autolink.URL(bufOf("see http"), []byte("://example.com\n"))
	assert.Equal(t, 4, rewind)
	assert.Equal(t, "http://example.com", string(link))
	assert.Equal(t, 14, consumed)
}

func TestURLNoColon(t *testing.T) {
	rewind, link, consumed := autolink.URL(bufOf("see http"), []byte("example.com\n"))
	assert.Equal(t, 0, rewind)
	assert.Nil(t, link)
	assert.Equal(t, 0, consumed)
}

func TestURLTrimsTrailingPunctuation(t *testing.T) {
	_, link, consumed := autolink.URL(bufOf("see http"), []byte("://example.com.\n"))
	assert.Equal(t, "http://example.com", string(link))
	assert.Equal(t, 14, consumed)
}

func TestEmail(t *testing.T) {
	rewind, link, consumed := autolink.Email(bufOf("contact user.name"), []byte("@example.com\n"), false)
	assert.Equal(t, 9, rewind)
	assert.Equal(t, "user.name@example.com", string(link))
	assert.Equal(t, 12, consumed)
}

func TestEmailNoDotDomainRequiresShortDomains(t *testing.T) {
	rewind, link, consumed := autolink.Email(bufOf("name"), []byte("@localhost\n"), false)
	assert.Equal(t, 0, rewind)
	assert.Nil(t, link)
	assert.Equal(t, 0, consumed)

	rewind, link, consumed = autolink.Email(bufOf("name"), []byte("@localhost\n"), true)
	assert.Equal(t, 4, rewind)
	assert.Equal(t, "name@localhost", string(link))
	assert.Equal(t, 10, consumed)
}

func TestEmailNotAtSign(t *testing.T) {
	_, link, consumed := autolink.Email(bufOf("name"), []byte("localhost\n"), true)
	assert.Nil(t, link)
	assert.Equal(t, 0, consumed)
}

func TestWWW(t *testing.T) {
	rewind, link, consumed := autolink.WWW(bufOf("see sub."), []byte("www.example.com\n"), false)
	assert.Equal(t, 4, rewind)
	assert.Equal(t, "sub.www.example.com", string(link))
	assert.Equal(t, 15, consumed)
}

func TestWWWNoSubdomainPrefix(t *testing.T) {
	rewind, link, consumed := autolink.WWW(bufOf("see "), []byte("www.example.com\n"), false)
	assert.Equal(t, 0, rewind)
	assert.Equal(t, "www.example.com", string(link))
	assert.Equal(t, 15, consumed)
}

func TestWWWRequiresPrefix(t *testing.T) {
	_, link, consumed := autolink.WWW(bufOf(""), []byte("example.com\n"), false)
	assert.Nil(t, link)
	assert.Equal(t, 0, consumed)
}
