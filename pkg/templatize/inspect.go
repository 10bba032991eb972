package templatize

import (
	"github.com/beevik/etree"

	"github.com/cvpatch/templatize/pkg/templatize/xml"
)

// ParagraphInfo describes one body paragraph at the position a plan step
// would address it by
type ParagraphInfo struct {
	Index  int
	Runs   int
	HasTab bool
	Style  string
	Text   string
}

// InspectBody lists the direct paragraphs of body in order
func InspectBody(body *etree.Element) []ParagraphInfo {
	paragraphs := xml.Paragraphs(body)
	infos := make([]ParagraphInfo, 0, len(paragraphs))

	for i, p := range paragraphs {
		info := ParagraphInfo{
			Index: i,
			Style: xml.ParagraphStyle(p),
			Text:  xml.ParagraphText(p),
		}
		for _, r := range xml.Runs(p) {
			info.Runs++
			if xml.HasTab(r) {
				info.HasTab = true
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// InspectPackage lists the body paragraphs of a package's main document part
func InspectPackage(pkg *Package) ([]ParagraphInfo, error) {
	_, body, err := parseBody(pkg)
	if err != nil {
		return nil, err
	}
	return InspectBody(body), nil
}

// InspectPackageFile lists the body paragraphs of the package at path
func InspectPackageFile(path string) ([]ParagraphInfo, error) {
	pkg, err := ReadPackageFile(path)
	if err != nil {
		return nil, err
	}
	infos, err := InspectPackage(pkg)
	if err != nil {
		return nil, NewDocumentError("inspect", path, err)
	}
	return infos, nil
}
