package templatize

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"

	"github.com/cvpatch/templatize/pkg/templatize/xml"
)

const (
	wNamespaceDecl = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

	testRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/custom-properties" Target="docProps/custom.xml"/></Relationships>`

	testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/docProps/custom.xml" ContentType="application/vnd.openxmlformats-officedocument.custom-properties+xml"/></Types>`

	testCustomProperties = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/custom-properties"><property fmtid="{D5CDD505-2E9C-101B-9397-08002B2CF9AE}" pid="2" name="Owner"><vt:lpwstr xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">someone</vt:lpwstr></property></Properties>`
)

type testPart struct {
	name    string
	content string
}

// wrapDocument places body content inside a minimal w:document
func wrapDocument(bodyXML string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document ` + wNamespaceDecl + `><w:body>` + bodyXML + `</w:body></w:document>`
}

// textParagraph builds a paragraph with one run per text
func textParagraph(texts ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	for _, text := range texts {
		fmt.Fprintf(&sb, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, text)
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

// tabbedParagraph builds "left<TAB>right" with the tab in a run of its own
func tabbedParagraph(left, right string) string {
	return `<w:p>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>` + left + `</w:t></w:r>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:tab/></w:r>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>` + right + `</w:t></w:r>` +
		`</w:p>`
}

// numberedBody builds a body of n single-run paragraphs "P0".."Pn-1"
func numberedBody(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(textParagraph(fmt.Sprintf("P%d", i)))
	}
	return sb.String()
}

// buildDocx writes the parts into a zip archive in the given order
func buildDocx(t *testing.T, parts ...testPart) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, part := range parts {
		fw, err := w.Create(part.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(part.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// fullDocx builds a package with relationships, a manifest, custom
// properties and the given body
func fullDocx(t *testing.T, bodyXML string) []byte {
	t.Helper()
	return buildDocx(t,
		testPart{name: ContentTypesPartName, content: testContentTypes},
		testPart{name: "_rels/.rels", content: testRels},
		testPart{name: DocumentPartName, content: wrapDocument(bodyXML)},
		testPart{name: CustomPropertiesPartName, content: testCustomProperties},
	)
}

func readTestPackage(t *testing.T, data []byte) *Package {
	t.Helper()
	pkg, err := ReadPackage(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return pkg
}

// parseTestBody parses body content and returns its w:body
func parseTestBody(t *testing.T, bodyXML string) (*etree.Document, *etree.Element) {
	t.Helper()
	doc, err := xml.Parse([]byte(wrapDocument(bodyXML)))
	require.NoError(t, err)
	body := xml.FindBody(doc)
	require.NotNil(t, body)
	return doc, body
}

// parseTestParagraph parses a single paragraph
func parseTestParagraph(t *testing.T, paragraphXML string) *etree.Element {
	t.Helper()
	_, body := parseTestBody(t, paragraphXML)
	paragraphs := xml.Paragraphs(body)
	require.Len(t, paragraphs, 1)
	return paragraphs[0]
}

// textsOf returns the content of every w:t below p
func textsOf(p *etree.Element) []string {
	var out []string
	for _, t := range xml.Texts(p) {
		out = append(out, t.Text())
	}
	return out
}

// bodyTexts returns the text of each direct paragraph of body
func bodyTexts(body *etree.Element) []string {
	var out []string
	for _, p := range xml.Paragraphs(body) {
		out = append(out, xml.ParagraphText(p))
	}
	return out
}

// discardLogger returns a logger that writes nothing
func discardLogger() *Logger {
	return NewLogger(&bytes.Buffer{}, LogOff)
}
