package templatize

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/cvpatch/templatize/pkg/templatize/xml"
)

// StripPart removes a part from the package together with the Override
// entry that declares it in [Content_Types].xml. The manifest is left
// untouched when it is absent or has no matching entry. It reports whether
// an Override was removed.
func StripPart(pkg *Package, partName string) (bool, error) {
	partName = strings.TrimPrefix(partName, "/")
	pkg.Delete(partName)

	manifest, ok := pkg.Get(ContentTypesPartName)
	if !ok {
		return false, nil
	}

	doc, err := xml.Parse(manifest)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", ContentTypesPartName, err)
	}

	removed := removeOverrides(doc.Root(), "/"+partName)
	if removed == 0 {
		return false, nil
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return false, fmt.Errorf("failed to serialize %s: %w", ContentTypesPartName, err)
	}
	pkg.Set(ContentTypesPartName, out)

	GetLogger().WithFields(Fields{"part": partName, "overrides": removed}).Debug("Removed content type override")
	return true, nil
}

// StripCustomProperties removes docProps/custom.xml and its manifest entry
func StripCustomProperties(pkg *Package) (bool, error) {
	return StripPart(pkg, CustomPropertiesPartName)
}

func removeOverrides(root *etree.Element, partName string) int {
	removed := 0
	for _, override := range root.SelectElements("Override") {
		if override.SelectAttrValue("PartName", "") == partName {
			root.RemoveChild(override)
			removed++
		}
	}
	return removed
}
