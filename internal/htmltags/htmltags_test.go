package htmltags_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/scanmark/internal/htmltags"
)

func TestFind(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  string
	}{
		{name: "lowercase block tag", in: "div", out: "div"},
		{name: "uppercase block tag", in: "DIV", out: "div"},
		{name: "mixed case block tag", in: "BlockQuote", out: "blockquote"},
		{name: "unknown tag", in: "span", out: ""},
		{name: "empty", in: "", out: ""},
		{name: "too long to be any block tag", in: "thistagnameistoolong", out: ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, htmltags.Find([]byte(tc.in)))
		})
	}
}
