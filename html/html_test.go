package html_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/scanmark/html"
	"github.com/jcorbin/scanmark/markdown"
)

func TestHeadingIDs(t *testing.T) {
	md := html.New(0, 0, html.HeadingIDs)
	out := string(md.Run([]byte("# Hello World\n# Hello World\n")))
	assert.Equal(t, "<h1 id=\"hello-world\">Hello World</h1>\n"+
		"<h1 id=\"hello-world-1\">Hello World</h1>\n", out)
}

func TestSkipHTML(t *testing.T) {
	md := html.New(0, 0, html.SkipHTML)
	out := string(md.Run([]byte("<div>raw</div>\n")))
	assert.Equal(t, "", out)
}

func TestRawHTMLPassthrough(t *testing.T) {
	md := html.New(0, 0, 0)
	out := string(md.Run([]byte("<div>raw</div>\n")))
	assert.Equal(t, "<div>raw</div>\n", out)
}

func TestEscaping(t *testing.T) {
	md := html.New(0, 0, 0)
	out := string(md.Run([]byte("a < b & c > d\n")))
	assert.Equal(t, "<p>a &lt; b &amp; c &gt; d</p>\n", out)
}

func TestImageAttributeEscaping(t *testing.T) {
	md := html.New(0, 0, 0)
	out := string(md.Run([]byte("![alt & text](http://example.com/x.png \"a title\")\n")))
	assert.Contains(t, out, `src="http://example.com/x.png"`)
	assert.Contains(t, out, `alt="alt &amp; text"`)
	assert.Contains(t, out, `title="a title"`)
}

func TestRendererCallbacksAllBound(t *testing.T) {
	r := html.NewRenderer(0)
	cb := r.Callbacks()
	assert.NotNil(t, cb.Paragraph)
	assert.NotNil(t, cb.Header)
	assert.NotNil(t, cb.Link)
	assert.NotNil(t, cb.Image)
	assert.NotNil(t, cb.NormalText)

	v := reflect.ValueOf(cb)
	for i := 0; i < v.NumField(); i++ {
		assert.False(t, v.Field(i).IsNil(), "%s is not bound", v.Type().Field(i).Name)
	}
}

// compile-time check that html.New composes markdown.New correctly.
var _ = markdown.New
