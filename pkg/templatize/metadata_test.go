package templatize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCustomProperties(t *testing.T) {
	pkg := readTestPackage(t, fullDocx(t, numberedBody(1)))
	relsBefore, _ := pkg.Get("_rels/.rels")

	removed, err := StripCustomProperties(pkg)
	require.NoError(t, err)
	assert.True(t, removed)

	assert.False(t, pkg.Has(CustomPropertiesPartName))
	assert.Equal(t, []string{ContentTypesPartName, "_rels/.rels", DocumentPartName}, pkg.Names())

	manifest, ok := pkg.Get(ContentTypesPartName)
	require.True(t, ok)
	assert.NotContains(t, string(manifest), "/docProps/custom.xml")
	assert.Contains(t, string(manifest), `<Override PartName="/word/document.xml"`)
	assert.Contains(t, string(manifest), `<Default Extension="rels"`)

	relsAfter, _ := pkg.Get("_rels/.rels")
	assert.Equal(t, relsBefore, relsAfter)
}

func TestStripPart_ManifestWithoutOverrideIsUntouched(t *testing.T) {
	manifest := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`
	pkg := readTestPackage(t, buildDocx(t,
		testPart{name: ContentTypesPartName, content: manifest},
		testPart{name: DocumentPartName, content: wrapDocument(numberedBody(1))},
		testPart{name: CustomPropertiesPartName, content: testCustomProperties},
	))

	removed, err := StripCustomProperties(pkg)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.False(t, pkg.Has(CustomPropertiesPartName))

	after, _ := pkg.Get(ContentTypesPartName)
	assert.Equal(t, manifest, string(after))
}

func TestStripPart_WithoutManifest(t *testing.T) {
	pkg := readTestPackage(t, buildDocx(t,
		testPart{name: DocumentPartName, content: wrapDocument(numberedBody(1))},
		testPart{name: CustomPropertiesPartName, content: testCustomProperties},
	))

	removed, err := StripPart(pkg, "/"+CustomPropertiesPartName)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, []string{DocumentPartName}, pkg.Names())
}

func TestStripPart_InvalidManifest(t *testing.T) {
	pkg := readTestPackage(t, buildDocx(t,
		testPart{name: ContentTypesPartName, content: "<Types>"},
		testPart{name: CustomPropertiesPartName, content: testCustomProperties},
	))

	_, err := StripCustomProperties(pkg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ContentTypesPartName)
}
