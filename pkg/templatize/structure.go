package templatize

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"

	"github.com/cvpatch/templatize/pkg/templatize/xml"
)

// NewTagParagraph builds a bare paragraph holding one run with the given
// text. Loop markers such as {#education} are written as paragraphs of
// their own so the merge engine can drop them along with their paragraph.
func NewTagParagraph(text string) *etree.Element {
	p := xml.NewParagraph()
	r := xml.NewRun()
	r.AddChild(xml.NewText(text))
	p.AddChild(r)
	return p
}

// InsertBefore places p immediately before ref in body. ref is looked up by
// identity in the current children, so earlier insertions do not matter.
func InsertBefore(body, ref, p *etree.Element) error {
	idx := xml.IndexOf(body, ref)
	if idx < 0 {
		return ErrAnchorNotFound
	}
	body.InsertChildAt(idx, p)
	return nil
}

// InsertAfter places p immediately after ref in body
func InsertAfter(body, ref, p *etree.Element) error {
	idx := xml.IndexOf(body, ref)
	if idx < 0 {
		return ErrAnchorNotFound
	}
	body.InsertChildAt(idx+1, p)
	return nil
}

// RemoveParagraphs removes the paragraphs at the given positions of snapshot
// (the paragraph list captured before any edit). Positions are processed from
// highest to lowest and each paragraph is removed by identity; a position
// listed twice is removed once. It returns the number of paragraphs removed.
func RemoveParagraphs(body *etree.Element, snapshot []*etree.Element, indices []int) (int, error) {
	ordered := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))

	removed := 0
	last := -1
	for _, idx := range ordered {
		if idx == last {
			continue
		}
		last = idx

		if idx < 0 || idx >= len(snapshot) {
			return removed, fmt.Errorf("paragraph %d out of range (%d paragraphs)", idx, len(snapshot))
		}
		if body.RemoveChild(snapshot[idx]) == nil {
			return removed, fmt.Errorf("paragraph %d: %w", idx, ErrAnchorNotFound)
		}
		removed++
	}
	return removed, nil
}
