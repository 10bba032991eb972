package templatize

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/cvpatch/templatize/pkg/templatize/xml"
)

// IssueCode identifies a template problem found by ValidateTemplate
type IssueCode string

const (
	IssueLoopMismatch IssueCode = "LOOP_MISMATCH"
	IssueUnclosedLoop IssueCode = "UNCLOSED_LOOP"
	IssueEmptyTag     IssueCode = "EMPTY_TAG"
)

// TagRef is a tag together with the paragraph it was found in
type TagRef struct {
	Tag
	Paragraph int
}

// TemplateIssue is one problem in a template body
type TemplateIssue struct {
	Code      IssueCode
	Message   string
	Paragraph int
	Raw       string
}

// ValidationReport lists the tags of a template body and the problems found
// in them. Paragraph positions count every w:p below the body, including
// those in tables.
type ValidationReport struct {
	Paragraphs int
	Tags       []TagRef
	Issues     []TemplateIssue
}

// Valid reports whether no issues were found
func (r *ValidationReport) Valid() bool {
	return len(r.Issues) == 0
}

// Err returns the issues as a *ValidationError, or nil when the report is valid
func (r *ValidationReport) Err() error {
	if r.Valid() {
		return nil
	}
	issues := make([]ValidationIssue, 0, len(r.Issues))
	for _, issue := range r.Issues {
		issues = append(issues, ValidationIssue{
			Field:   fmt.Sprintf("paragraph %d", issue.Paragraph),
			Message: fmt.Sprintf("%s: %s", issue.Code, issue.Message),
		})
	}
	return &ValidationError{Issues: issues}
}

// Variables returns the distinct variable paths used by the template in
// order of first appearance
func (r *ValidationReport) Variables() []string {
	seen := make(map[string]bool)
	var names []string
	for _, tag := range r.Tags {
		if tag.Kind != TagVariable || seen[tag.Name] {
			continue
		}
		seen[tag.Name] = true
		names = append(names, tag.Name)
	}
	return names
}

// Sections returns the distinct section names opened by the template
func (r *ValidationReport) Sections() []string {
	seen := make(map[string]bool)
	var names []string
	for _, tag := range r.Tags {
		if !tag.Kind.Opens() || seen[tag.Name] {
			continue
		}
		seen[tag.Name] = true
		names = append(names, tag.Name)
	}
	return names
}

// ValidateTemplate collects the tags of body and checks that every section
// opened with {#name} or {^name} is closed by {/name} in nesting order.
// A bare {/} closes the innermost open section. Paragraphs in table cells
// are checked in document order; text box content is read as part of the
// paragraph that anchors it.
func ValidateTemplate(body *etree.Element) *ValidationReport {
	report := &ValidationReport{}
	var stack []TagRef

	appendIssue := func(code IssueCode, ref TagRef, format string, args ...interface{}) {
		report.Issues = append(report.Issues, TemplateIssue{
			Code:      code,
			Message:   fmt.Sprintf(format, args...),
			Paragraph: ref.Paragraph,
			Raw:       ref.Raw,
		})
	}

	for i, p := range xml.AllParagraphs(body) {
		report.Paragraphs++
		for _, tag := range ScanTags(xml.ParagraphText(p)) {
			ref := TagRef{Tag: tag, Paragraph: i}
			report.Tags = append(report.Tags, ref)

			switch tag.Kind {
			case TagEmpty:
				appendIssue(IssueEmptyTag, ref, "empty tag %q", tag.Raw)
			case TagLoopOpen, TagInvertedOpen:
				stack = append(stack, ref)
			case TagLoopClose:
				if len(stack) == 0 {
					appendIssue(IssueLoopMismatch, ref, "%s has no matching opening tag", tag.Raw)
					continue
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if tag.Name != "" && tag.Name != top.Name {
					appendIssue(IssueLoopMismatch, ref, "%s closes %q but %q (paragraph %d) is open",
						tag.Raw, tag.Name, top.Name, top.Paragraph)
				}
			}
		}
	}

	for _, open := range stack {
		appendIssue(IssueUnclosedLoop, open, "missing {/%s} for %s", open.Name, open.Raw)
	}

	return report
}

// ValidatePackage validates the main document part of a package
func ValidatePackage(pkg *Package) (*ValidationReport, error) {
	_, body, err := parseBody(pkg)
	if err != nil {
		return nil, err
	}
	return ValidateTemplate(body), nil
}

// ValidatePackageFile validates the template stored at path
func ValidatePackageFile(path string) (*ValidationReport, error) {
	pkg, err := ReadPackageFile(path)
	if err != nil {
		return nil, err
	}
	report, err := ValidatePackage(pkg)
	if err != nil {
		return nil, NewDocumentError("validate", path, err)
	}
	return report, nil
}

// parseBody parses the main document part and locates its w:body
func parseBody(pkg *Package) (*etree.Document, *etree.Element, error) {
	content, ok := pkg.Get(DocumentPartName)
	if !ok {
		return nil, nil, fmt.Errorf("%s is missing: %w", DocumentPartName, ErrBodyNotFound)
	}

	doc, err := xml.Parse(content)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", DocumentPartName, err)
	}

	body := xml.FindBody(doc)
	if body == nil {
		return nil, nil, ErrBodyNotFound
	}
	return doc, body, nil
}
