package markdown

// refTableSize is intentionally small (spec.md §4.2): chains are expected
// to stay short, so a linear scan within a bucket is acceptable, and the
// full stored hash (not just the bucket index) disambiguates entries
// within a bucket. Two distinct ids that hash identically still alias —
// that is inherited, deliberately preserved behavior (spec.md §9).
const refTableSize = 8

// hashRef implements the case-insensitive reference hash: for every byte,
// hash = lowercase(b) + (hash<<6) + (hash<<16) - hash.
func hashRef(name []byte) uint32 {
	var hash uint32
	for _, b := range name {
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		hash = uint32(b) + (hash << 6) + (hash << 16) - hash
	}
	return hash
}

// linkRef is a parsed `[id]: destination "title"` definition.
type linkRef struct {
	hash uint32
	link []byte
	title []byte
	next *linkRef
}

// refTable is the hash-bucketed link-reference table (spec.md C2),
// populated in the pre-scan and read-only during the block/inline pass.
type refTable struct {
	buckets [refTableSize]*linkRef
}

func (t *refTable) add(name []byte, link, title []byte) *linkRef {
	ref := &linkRef{hash: hashRef(name), link: link, title: title}
	bucket := ref.hash % refTableSize
	ref.next = t.buckets[bucket]
	t.buckets[bucket] = ref
	return ref
}

func (t *refTable) find(name []byte) *linkRef {
	hash := hashRef(name)
	for ref := t.buckets[hash%refTableSize]; ref != nil; ref = ref.next {
		if ref.hash == hash {
			return ref
		}
	}
	return nil
}

func (t *refTable) reset() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
}

// footnoteRef is a single `[^id]: body` definition.
type footnoteRef struct {
	hash     uint32
	contents []byte
	used     bool
	num      int
}

// footnoteItem is one link in a footnoteList.
type footnoteItem struct {
	ref  *footnoteRef
	next *footnoteItem
}

// footnoteList is an append-ordered linked list of footnote items: one for
// definitions discovered in the pre-scan (found), another for definitions
// actually cited in the body, in first-use order (used) — the used list
// owns the sequential numbering (spec.md C2, §8's footnote-numbering
// invariant).
type footnoteList struct {
	head, tail *footnoteItem
	count      int
}

func (l *footnoteList) append(ref *footnoteRef) {
	item := &footnoteItem{ref: ref}
	if l.head == nil {
		l.head = item
		l.tail = item
	} else {
		l.tail.next = item
		l.tail = item
	}
	l.count++
}

func (l *footnoteList) find(name []byte) *footnoteRef {
	hash := hashRef(name)
	for item := l.head; item != nil; item = item.next {
		if item.ref.hash == hash {
			return item.ref
		}
	}
	return nil
}

func (l *footnoteList) reset() {
	l.head, l.tail, l.count = nil, nil, 0
}

func newFootnoteRef(name []byte, contents []byte) *footnoteRef {
	return &footnoteRef{hash: hashRef(name), contents: contents}
}
