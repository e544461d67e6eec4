package markdown

import "github.com/jcorbin/scanmark/internal/buffer"

// bufKind selects which of the two working-buffer pools (spec.md C1) a
// recognizer draws from: blockBuf for block-level intermediate content
// (list items, blockquotes, table bodies), spanBuf for inline/span-level
// content (emphasis, link text, table cells).
type bufKind int

const (
	blockBuf bufKind = iota
	spanBuf
	numBufKinds
)

var initialCapacity = [numBufKinds]int{
	blockBuf: 256,
	spanBuf:  64,
}

// bufPool is a LIFO stack of reusable *buffer.Buffer for one bufKind,
// acquired in stack order with every acquisition matched by a release on
// every exit path (spec.md's Working buffer invariants). Released buffers
// stay allocated and are handed back out on the next acquire, amortizing
// allocation the same way hoedown's newbuf/popbuf do against its
// hoedown_stack.
type bufPool struct {
	items []*buffer.Buffer
	size  int
}

func (p *bufPool) acquire(kind bufKind) *buffer.Buffer {
	if p.size < len(p.items) {
		b := p.items[p.size]
		b.Reset()
		p.size++
		return b
	}
	b := &buffer.Buffer{}
	b.Grow(initialCapacity[kind])
	p.items = append(p.items, b)
	p.size++
	return b
}

func (p *bufPool) release() {
	if p.size == 0 {
		panic("markdown: buffer pool released with empty stack")
	}
	p.size--
}

func (p *bufPool) depth() int { return p.size }

// pools holds both buffer pools for one parser instance.
type pools [numBufKinds]bufPool

func (ps *pools) newbuf(kind bufKind) *buffer.Buffer {
	return ps[kind].acquire(kind)
}

func (ps *pools) popbuf(kind bufKind) {
	ps[kind].release()
}

func (ps *pools) depth() int {
	return ps[blockBuf].depth() + ps[spanBuf].depth()
}

// empty reports whether both pool stacks are fully drained, the
// post-render invariant the driver asserts (spec.md §4.1, §4.8).
func (ps *pools) empty() bool {
	return ps[blockBuf].depth() == 0 && ps[spanBuf].depth() == 0
}
