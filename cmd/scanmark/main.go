// Command scanmark renders Markdown to HTML.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/google/renameio"
	"github.com/jcorbin/scanmark/html"
	"github.com/jcorbin/scanmark/internal/socutil"
	"github.com/jcorbin/scanmark/markdown"
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	var (
		outPath             string
		maxNesting          int
		noIntraEmphasis     bool
		tables              bool
		fencedCode          bool
		autolink            bool
		strikethrough       bool
		laxSpacing          bool
		spaceHeaders        bool
		superscript         bool
		underline           bool
		highlight           bool
		quote               bool
		footnotes           bool
		disableIndentedCode bool
		shortDomainAutolink bool
		headingIDs          bool
		skipHTML            bool
	)

	flag.StringVar(&outPath, "o", "", "write output to this file instead of stdout (atomic replace)")
	flag.IntVar(&maxNesting, "max-nesting", 16, "maximum block/inline recursion depth")
	flag.BoolVar(&noIntraEmphasis, "no-intra-emphasis", true, "disable emphasis inside words")
	flag.BoolVar(&tables, "tables", true, "enable tables")
	flag.BoolVar(&fencedCode, "fenced-code", true, "enable fenced code blocks")
	flag.BoolVar(&autolink, "autolink", true, "enable bare URL/WWW/email autolinking")
	flag.BoolVar(&strikethrough, "strikethrough", true, "enable ~~strikethrough~~")
	flag.BoolVar(&laxSpacing, "lax-spacing", false, "allow block constructs to interrupt a paragraph without a blank line")
	flag.BoolVar(&spaceHeaders, "space-headers", false, "require a space after '#' in ATX headers")
	flag.BoolVar(&superscript, "superscript", false, "enable ^superscript")
	flag.BoolVar(&underline, "underline", false, "render _x_ as underline instead of emphasis")
	flag.BoolVar(&highlight, "highlight", false, "enable ==highlight==")
	flag.BoolVar(&quote, "quote", false, "enable \"smart quotes\"")
	flag.BoolVar(&footnotes, "footnotes", true, "enable [^footnote] references")
	flag.BoolVar(&disableIndentedCode, "disable-indented-code", false, "disable 4-space indented code blocks")
	flag.BoolVar(&shortDomainAutolink, "short-domain-autolinks", false, "allow dot-less domains in autolinks")
	flag.BoolVar(&headingIDs, "heading-ids", true, "add id attributes to headers")
	flag.BoolVar(&skipHTML, "skip-html", false, "drop raw HTML instead of passing it through")

	flag.Parse()

	extensions := markdown.Extensions(0)
	if noIntraEmphasis {
		extensions |= markdown.NoIntraEmphasis
	}
	if tables {
		extensions |= markdown.Tables
	}
	if fencedCode {
		extensions |= markdown.FencedCode
	}
	if autolink {
		extensions |= markdown.Autolink
	}
	if strikethrough {
		extensions |= markdown.Strikethrough
	}
	if laxSpacing {
		extensions |= markdown.LaxSpacing
	}
	if spaceHeaders {
		extensions |= markdown.SpaceHeaders
	}
	if superscript {
		extensions |= markdown.Superscript
	}
	if underline {
		extensions |= markdown.Underline
	}
	if highlight {
		extensions |= markdown.Highlight
	}
	if quote {
		extensions |= markdown.Quote
	}
	if footnotes {
		extensions |= markdown.Footnotes
	}
	if disableIndentedCode {
		extensions |= markdown.DisableIndentedCode
	}
	if shortDomainAutolink {
		extensions |= markdown.ShortDomainAutolinks
	}

	htmlFlags := html.Flags(0)
	if headingIDs {
		htmlFlags |= html.HeadingIDs
	}
	if skipHTML {
		htmlFlags |= html.SkipHTML
	}

	args := flag.Args()
	var inPath string
	if len(args) > 0 {
		inPath = args[0]
	}

	data, err := readInput(inPath)
	if err != nil {
		log.Fatalf("scanmark: %v", err)
	}

	out := &socutil.ErrWriter{Writer: os.Stdout}
	md := html.New(extensions, maxNesting, htmlFlags)
	rendered := md.Run(data)
	if err := writeOutput(out, outPath, rendered); err != nil {
		log.Fatalf("scanmark: %v", err)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes rendered to w, or atomically to path via renameio
// when one is given, matching cmd/poc's use of renameio.TempFile for
// replacing a destination file's contents in place.
func writeOutput(w io.Writer, path string, rendered []byte) error {
	if path == "" {
		_, err := w.Write(rendered)
		return err
	}

	t, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer t.Cleanup()

	if _, err := t.Write(rendered); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := t.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
