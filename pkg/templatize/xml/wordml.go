package xml

import (
	"strings"

	"github.com/beevik/etree"
)

// NamespaceW is the WordprocessingML namespace, bound to the w prefix in
// every part Word writes
const NamespaceW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

var paragraphStylePath = etree.MustCompilePath("./w:pPr/w:pStyle")

// FindBody returns the w:body element of a main document part, or nil when
// the root is not a WordprocessingML document
func FindBody(doc *etree.Document) *etree.Element {
	if doc == nil {
		return nil
	}
	root := doc.Root()
	if root == nil {
		return nil
	}
	body := root.SelectElement("w:body")
	if body == nil || body.NamespaceURI() != NamespaceW {
		return nil
	}
	return body
}

// Paragraphs returns the direct w:p children of body in document order
func Paragraphs(body *etree.Element) []*etree.Element {
	return body.SelectElements("w:p")
}

// AllParagraphs returns every w:p below body in document order, including
// those in table cells. Paragraphs nested inside another paragraph (text
// box content) are not listed, since their text already belongs to the
// enclosing paragraph.
func AllParagraphs(body *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if child.Space == "w" && child.Tag == "p" {
				out = append(out, child)
				continue
			}
			walk(child)
		}
	}
	walk(body)
	return out
}

// Descendants returns every element below e matching a prefixed tag such as
// "w:t", in document order. e itself is never included.
func Descendants(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if child.FullTag() == tag {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(e)
	return out
}

// Runs returns the direct w:r children of a paragraph
func Runs(p *etree.Element) []*etree.Element {
	return p.SelectElements("w:r")
}

// Texts returns every w:t below n in document order, including those inside
// hyperlinks and other wrappers
func Texts(n *etree.Element) []*etree.Element {
	return Descendants(n, "w:t")
}

// RunTexts returns the direct w:t children of a run
func RunTexts(r *etree.Element) []*etree.Element {
	return r.SelectElements("w:t")
}

// HasTab reports whether a run contains a direct w:tab child
func HasTab(r *etree.Element) bool {
	return r.SelectElement("w:tab") != nil
}

// RunProperties returns the w:rPr of a run, or nil
func RunProperties(r *etree.Element) *etree.Element {
	return r.SelectElement("w:rPr")
}

// ParagraphStyle returns the w:pStyle value of a paragraph, or ""
func ParagraphStyle(p *etree.Element) string {
	style := p.FindElementPath(paragraphStylePath)
	if style == nil {
		return ""
	}
	return style.SelectAttrValue("w:val", "")
}

// ParagraphText returns the concatenated content of every w:t in a paragraph
func ParagraphText(p *etree.Element) string {
	var sb strings.Builder
	for _, t := range Texts(p) {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

// SetTextPreserve sets the content of a w:t element. Word collapses leading
// and trailing spaces unless xml:space="preserve" is present, so the
// attribute is added when text begins or ends with a space.
func SetTextPreserve(t *etree.Element, text string) {
	t.SetText(text)
	if strings.HasPrefix(text, " ") || strings.HasSuffix(text, " ") {
		t.CreateAttr("xml:space", "preserve")
	}
}

// IndexOf returns the position of child among the tokens of parent, or -1
// when child belongs to another element
func IndexOf(parent, child *etree.Element) int {
	if child == nil || child.Parent() != parent {
		return -1
	}
	return child.Index()
}

// NewParagraph creates an empty w:p
func NewParagraph() *etree.Element {
	return etree.NewElement("w:p")
}

// NewRun creates an empty w:r
func NewRun() *etree.Element {
	return etree.NewElement("w:r")
}

// NewText creates a w:t holding text, preserving edge whitespace
func NewText(text string) *etree.Element {
	t := etree.NewElement("w:t")
	SetTextPreserve(t, text)
	return t
}
