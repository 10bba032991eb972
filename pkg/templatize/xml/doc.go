// Package xml provides WordprocessingML helpers over github.com/beevik/etree
// for editing the parts of a DOCX package.
//
// DOCX files are ZIP archives of XML parts. Editing them safely means every
// element, attribute, namespace declaration and prefix that the tool does not
// touch must be written back exactly as it was read: Word relies on
// mc:Ignorable lists that name prefixes, so a serializer that renames
// prefixes (as encoding/xml does) produces documents Word refuses to open.
// etree keeps the source prefix of every element and attribute, and Parse
// pairs it with write settings that reproduce Word's escaping.
//
// # Structure Organization
//
//   - parse.go: Parse, NewDocument and EncodeElement with the package write settings
//   - wordml.go: WordprocessingML helpers (body, paragraphs, runs, text, tabs)
//
// # Key Concepts
//
// Elements are matched by their prefixed tag, the way Word writes them
// ("w:p", "w:r", "w:t"). FindBody additionally checks that the w prefix is
// bound to the WordprocessingML namespace. Elements built here use the w
// prefix, which every main document part declares on its root.
//
// Paragraph (w:p): the unit addressed by position in a document body.
//
// Run (w:r): a direct child of a paragraph holding text (w:t) and tab (w:tab) markers.
//
// # Usage
//
//	doc, err := xml.Parse(data)
//	if err != nil {
//	    return err
//	}
//	body := xml.FindBody(doc)
//	for i, p := range xml.Paragraphs(body) {
//	    fmt.Println(i, xml.ParagraphText(p))
//	}
//	out, err := doc.WriteToBytes()
package xml
