package templatize

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/cvpatch/templatize/pkg/templatize/xml"
)

// SetText puts text into the first w:t of a paragraph and empties every
// other w:t below it, including those inside hyperlinks. Paragraphs without
// text nodes are left alone.
func SetText(p *etree.Element, text string) {
	texts := xml.Texts(p)
	if len(texts) == 0 {
		return
	}
	xml.SetTextPreserve(texts[0], text)
	for _, t := range texts[1:] {
		t.SetText("")
	}
}

// SetTabbedText rewrites a paragraph laid out as "left<TAB>right", such as a
// heading with a right-aligned date. The direct runs are split at the first
// run holding a w:tab: the first text node before it receives left, the
// first text node after it receives right, and every other text node on
// either side is emptied. The tab run's own text is not touched.
//
// A nil right clears the text after the tab and changes nothing else.
//
// When no run before the tab carried text, left is written into the first
// text node of the last run that has text at all. When right has nowhere to
// go, a run is added right after the tab run, formatted like the tab run (or
// the last text run when the tab run has no w:rPr).
func SetTabbedText(p *etree.Element, left string, right *string) {
	beforeTab := true
	leftSet := false
	rightSet := false
	var tabRun, lastTextRun *etree.Element

	for _, r := range xml.Runs(p) {
		hasTab := xml.HasTab(r)
		texts := xml.RunTexts(r)

		if len(texts) > 0 {
			lastTextRun = r
		}

		switch {
		case beforeTab && !hasTab:
			for _, t := range texts {
				if !leftSet {
					xml.SetTextPreserve(t, left)
					leftSet = true
				} else {
					t.SetText("")
				}
			}
		case !beforeTab:
			for _, t := range texts {
				switch {
				case right == nil:
					t.SetText("")
				case !rightSet:
					xml.SetTextPreserve(t, *right)
					rightSet = true
				default:
					t.SetText("")
				}
			}
		}

		if hasTab {
			beforeTab = false
			tabRun = r
		}
	}

	if right == nil {
		return
	}

	if !leftSet && lastTextRun != nil {
		if texts := xml.RunTexts(lastTextRun); len(texts) > 0 {
			xml.SetTextPreserve(texts[0], left)
		}
	}

	if !rightSet && tabRun != nil {
		newRun := xml.NewRun()
		rpr := xml.RunProperties(tabRun)
		if rpr == nil && lastTextRun != nil {
			rpr = xml.RunProperties(lastTextRun)
		}
		if rpr != nil {
			newRun.AddChild(rpr.Copy())
		}
		newRun.AddChild(xml.NewText(*right))

		if idx := xml.IndexOf(p, tabRun); idx >= 0 {
			p.InsertChildAt(idx+1, newRun)
		} else {
			p.AddChild(newRun)
		}
	}
}

// ReplaceAfterColon keeps a "Label:" prefix and replaces what follows it.
// The first w:t containing ':' is the boundary; the next w:t receives
// placeholder and all later ones are emptied. Nothing is inserted when the
// colon is in the last text node.
func ReplaceAfterColon(p *etree.Element, placeholder string) {
	colonFound := false
	placeholderSet := false

	for _, t := range xml.Texts(p) {
		if !colonFound {
			if strings.Contains(t.Text(), ":") {
				colonFound = true
			}
			continue
		}

		if !placeholderSet {
			xml.SetTextPreserve(t, placeholder)
			placeholderSet = true
		} else {
			t.SetText("")
		}
	}
}
