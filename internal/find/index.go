package find

import (
	"iter"
	"math/rand/v2"

	"github.com/dshills/boothium/internal/engine/buffer"
)

// Index is an ordered set of disjoint spans keyed by start offset.
//
// It is a treap whose nodes carry a pending shift for their subtrees, so
// shifting every span after an offset, removing a span by rank and looking
// a span up by rank or offset are all O(log n) expected.
//
// The zero value is an empty index. An Index is not safe for concurrent
// use.
type Index struct {
	root *node
}

type node struct {
	span        buffer.Range
	prio        uint64
	size        int
	lazy        int // shift owed to both children; span is already shifted
	left, right *node
}

func newNode(span buffer.Range) *node {
	return &node{span: span, prio: rand.Uint64(), size: 1}
}

func size(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func (n *node) update() {
	n.size = 1 + size(n.left) + size(n.right)
}

// apply shifts the whole subtree of n by delta.
func apply(n *node, delta int) {
	if n == nil || delta == 0 {
		return
	}
	n.span = n.span.Shift(delta)
	n.lazy += delta
}

// push hands the pending shift of n down to its children.
func (n *node) push() {
	if n.lazy != 0 {
		apply(n.left, n.lazy)
		apply(n.right, n.lazy)
		n.lazy = 0
	}
}

// merge joins two treaps where every span of a precedes every span of b.
func merge(a, b *node) *node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.prio > b.prio {
		a.push()
		a.right = merge(a.right, b)
		a.update()
		return a
	}
	b.push()
	b.left = merge(a, b.left)
	b.update()
	return b
}

// splitStart splits n into spans starting before off and the rest.
func splitStart(n *node, off int) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	n.push()
	if n.span.Start < off {
		l, r := splitStart(n.right, off)
		n.right = l
		n.update()
		return n, r
	}
	l, r := splitStart(n.left, off)
	n.left = r
	n.update()
	return l, n
}

// splitRank splits n into its first k spans and the rest.
func splitRank(n *node, k int) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	n.push()
	if size(n.left) < k {
		l, r := splitRank(n.right, k-size(n.left)-1)
		n.right = l
		n.update()
		return n, r
	}
	l, r := splitRank(n.left, k)
	n.left = r
	n.update()
	return l, n
}

// Build replaces the contents of the index. spans must be sorted by start
// and disjoint.
func (ix *Index) Build(spans []buffer.Range) {
	ix.root = nil
	for _, s := range spans {
		ix.root = merge(ix.root, newNode(s))
	}
}

// Clear removes every span.
func (ix *Index) Clear() {
	ix.root = nil
}

// Len returns the number of spans.
func (ix *Index) Len() int {
	return size(ix.root)
}

// At returns the span at rank (0-based document order).
func (ix *Index) At(rank int) (buffer.Range, bool) {
	if rank < 0 || rank >= ix.Len() {
		return buffer.Range{}, false
	}
	n := ix.root
	for {
		n.push()
		ls := size(n.left)
		switch {
		case rank < ls:
			n = n.left
		case rank == ls:
			return n.span, true
		default:
			rank -= ls + 1
			n = n.right
		}
	}
}

// Rank returns the rank of the span starting exactly at start.
func (ix *Index) Rank(start int) (int, bool) {
	rank := 0
	n := ix.root
	for n != nil {
		n.push()
		switch {
		case start < n.span.Start:
			n = n.left
		case start == n.span.Start:
			return rank + size(n.left), true
		default:
			rank += size(n.left) + 1
			n = n.right
		}
	}
	return 0, false
}

// Lookup returns the rank of the span equal to r.
func (ix *Index) Lookup(r buffer.Range) (int, bool) {
	rank, ok := ix.Rank(r.Start)
	if !ok {
		return 0, false
	}
	if span, _ := ix.At(rank); span != r {
		return 0, false
	}
	return rank, true
}

// LowerBound returns the number of spans starting before off, which is
// the rank of the first span starting at or after off.
func (ix *Index) LowerBound(off int) int {
	count := 0
	n := ix.root
	for n != nil {
		n.push()
		if n.span.Start < off {
			count += size(n.left) + 1
			n = n.right
		} else {
			n = n.left
		}
	}
	return count
}

// EndingBy returns the number of spans ending at or before off. Spans are
// disjoint, so ends are ordered like starts.
func (ix *Index) EndingBy(off int) int {
	count := 0
	n := ix.root
	for n != nil {
		n.push()
		if n.span.End <= off {
			count += size(n.left) + 1
			n = n.right
		} else {
			n = n.left
		}
	}
	return count
}

// Remove deletes the span at rank and returns it.
func (ix *Index) Remove(rank int) (buffer.Range, bool) {
	if rank < 0 || rank >= ix.Len() {
		return buffer.Range{}, false
	}
	l, rest := splitRank(ix.root, rank)
	mid, r := splitRank(rest, 1)
	ix.root = merge(l, r)
	return mid.span, true
}

// ShiftFrom shifts every span starting at or after off by delta.
// The caller must keep the spans ordered: a negative delta may not move a
// span before the end of the spans preceding off.
func (ix *Index) ShiftFrom(off, delta int) {
	if delta == 0 {
		return
	}
	l, r := splitStart(ix.root, off)
	apply(r, delta)
	ix.root = merge(l, r)
}

// All returns the spans in document order.
func (ix *Index) All() iter.Seq[buffer.Range] {
	return func(yield func(buffer.Range) bool) {
		walk(ix.root, yield)
	}
}

// Spans returns a copy of the spans in document order.
func (ix *Index) Spans() []buffer.Range {
	out := make([]buffer.Range, 0, ix.Len())
	for s := range ix.All() {
		out = append(out, s)
	}
	return out
}

func walk(n *node, yield func(buffer.Range) bool) bool {
	if n == nil {
		return true
	}
	n.push()
	return walk(n.left, yield) && yield(n.span) && walk(n.right, yield)
}
