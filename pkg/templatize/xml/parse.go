package xml

import (
	"bytes"
	"errors"

	"github.com/beevik/etree"
)

var (
	// ErrNoRoot is returned by Parse for input without an element
	ErrNoRoot = errors.New("xml: no root element")
	// ErrMultipleRoots is returned by Parse for input with more than one top-level element
	ErrMultipleRoots = errors.New("xml: multiple root elements")
)

// writeSettings escapes only what XML requires in text (& < >) and in
// attribute values (& < " and whitespace control characters), which is what
// Word itself writes. Untouched parts therefore encode to the bytes they
// were read from.
var writeSettings = etree.WriteSettings{
	CanonicalText:    true,
	CanonicalAttrVal: true,
}

// NewDocument creates an empty document with the package write settings
func NewDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings = writeSettings
	return doc
}

// Parse reads a complete XML part. Prefixes, namespace declarations,
// attribute order, comments and processing instructions are kept as read.
func Parse(data []byte) (*etree.Document, error) {
	doc := NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}

	roots := 0
	for _, t := range doc.Child {
		if _, ok := t.(*etree.Element); ok {
			roots++
		}
	}
	switch {
	case roots == 0:
		return nil, ErrNoRoot
	case roots > 1:
		return nil, ErrMultipleRoots
	}
	return doc, nil
}

// EncodeElement serializes a single element with the package write settings
func EncodeElement(e *etree.Element) []byte {
	var buf bytes.Buffer
	settings := writeSettings
	e.WriteTo(&buf, &settings)
	return buf.Bytes()
}
