package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/scanmark/html"
	"github.com/jcorbin/scanmark/markdown"
)

func render(t *testing.T, extensions markdown.Extensions, input string) string {
	t.Helper()
	md := html.New(extensions, 0, 0)
	return string(md.Run([]byte(input)))
}

func TestCoreConstructs(t *testing.T) {
	for _, tc := range []struct {
		name       string
		extensions markdown.Extensions
		in         string
		out        string
	}{
		{
			name: "paragraph",
			in:   "hello\n",
			out:  "<p>hello</p>\n",
		},
		{
			name: "atx header",
			in:   "# Hi\n",
			out:  "<h1>Hi</h1>\n",
		},
		{
			name: "setext header promotes empty body",
			in:   "Title\n=====\n",
			out:  "<h1>Title</h1>\n",
		},
		{
			name: "setext header after a paragraph body",
			in:   "lead in\nTitle\n-----\n",
			out:  "<p>lead in</p>\n<h2>Title</h2>\n",
		},
		{
			name: "emphasis",
			in:   "*hi*\n",
			out:  "<p><em>hi</em></p>\n",
		},
		{
			name: "double emphasis",
			in:   "**bold**\n",
			out:  "<p><strong>bold</strong></p>\n",
		},
		{
			name: "code span",
			in:   "`code`\n",
			out:  "<p><code>code</code></p>\n",
		},
		{
			name: "blockquote",
			in:   "> quoted text\n",
			out:  "<blockquote>\n<p>quoted text</p>\n</blockquote>\n",
		},
		{
			name: "unordered list",
			in:   "- a\n- b\n",
			out:  "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n",
		},
		{
			name: "ordered list",
			in:   "1. one\n2. two\n",
			out:  "<ol>\n<li>one</li>\n<li>two</li>\n</ol>\n",
		},
		{
			name: "horizontal rule",
			in:   "---\n",
			out:  "<hr>\n",
		},
		{
			name: "inline link",
			in:   "[text](http://example.com)\n",
			out:  "<p><a href=\"http://example.com\">text</a></p>\n",
		},
		{
			name: "reference link",
			in:   "[a][1]\n\n[1]: http://x\n",
			out:  "<p><a href=\"http://x\">a</a></p>\n",
		},
		{
			name: "shortcut reference link",
			in:   "[a]\n\n[a]: http://x\n",
			out:  "<p><a href=\"http://x\">a</a></p>\n",
		},
		{
			name: "entity passthrough",
			in:   "&copy;\n",
			out:  "<p>&copy;</p>\n",
		},
		{
			name: "backslash escape of HTML-special bytes",
			in:   "\\<script>\\</script>\n",
			out:  "<p>&lt;script&gt;&lt;/script&gt;</p>\n",
		},
		{
			name: "backslash escape of a non-special byte",
			in:   "\\*not emphasis\\*\n",
			out:  "<p>*not emphasis*</p>\n",
		},
		{
			name:       "fenced code",
			extensions: markdown.FencedCode,
			in:         "```\ncode line\n```\n",
			out:        "<pre><code>code line\n</code></pre>\n",
		},
		{
			name:       "table",
			extensions: markdown.Tables,
			in:         "| a | b |\n|---|---|\n| 1 | 2 |\n",
			out: "<table>\n<thead>\n<tr>\n<th>a</th>\n<th>b</th>\n</tr>\n</thead>\n" +
				"<tbody>\n<tr>\n<td>1</td>\n<td>2</td>\n</tr>\n</tbody>\n</table>\n",
		},
		{
			name:       "footnote",
			extensions: markdown.Footnotes,
			in:         "text[^1]\n\n[^1]: note body\n",
			out: "<p>text<sup id=\"fnref1\"><a href=\"#fn1\">1</a></sup></p>\n" +
				"<div class=\"footnotes\">\n<hr>\n<ol>\n" +
				"<li id=\"fn1\"><p>note body</p>\n</li>\n</ol>\n</div>\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, render(t, tc.extensions, tc.in))
		})
	}
}

func TestMaxNestingDefault(t *testing.T) {
	md := markdown.New(markdown.Renderer{}, 0, 0)
	assert.NotPanics(t, func() { md.Run([]byte("hi\n")) })
}
