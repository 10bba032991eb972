package templatize

import (
	"bytes"
	"fmt"
	"os"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"

	"github.com/cvpatch/templatize/pkg/templatize/xml"
)

// Op names an edit a plan step applies to one paragraph
type Op string

const (
	OpSetText           Op = "set_text"
	OpSetTabbedText     Op = "set_tabbed_text"
	OpReplaceAfterColon Op = "replace_after_colon"
	OpInsertBefore      Op = "insert_before"
	OpInsertAfter       Op = "insert_after"
)

// Valid reports whether the op is known
func (o Op) Valid() bool {
	switch o {
	case OpSetText, OpSetTabbedText, OpReplaceAfterColon, OpInsertBefore, OpInsertAfter:
		return true
	}
	return false
}

// Step is one edit. Paragraph is a position in the body as it was read,
// before any step ran.
//
//   - set_text: Text replaces the paragraph text
//   - set_tabbed_text: Left / Right around the tab; a null Right clears the right side
//   - replace_after_colon: Text replaces what follows the "Label:" prefix
//   - insert_before, insert_after: a new paragraph holding Text is placed next to the paragraph
type Step struct {
	Op        Op      `yaml:"op"`
	Paragraph int     `yaml:"paragraph"`
	Text      string  `yaml:"text,omitempty"`
	Left      string  `yaml:"left,omitempty"`
	Right     *string `yaml:"right,omitempty"`
}

// Plan is an ordered list of steps followed by the positions to delete once
// every step has run
type Plan struct {
	Steps  []Step `yaml:"steps"`
	Remove []int  `yaml:"remove"`
}

// ApplyOptions controls ApplyPlan
type ApplyOptions struct {
	// Lenient skips steps and removals whose paragraph does not exist
	Lenient bool
	Logger  *Logger
}

// ApplyStats counts what ApplyPlan did
type ApplyStats struct {
	Paragraphs int
	Applied    int
	Skipped    int
	Inserted   int
	Removed    int
}

func strPtr(s string) *string {
	return &s
}

// DefaultPlan returns the plan for the résumé this tool was written for:
// header, education, experience (with nested roles and bullets), projects,
// skills and extra-curricular sections.
func DefaultPlan() *Plan {
	return &Plan{
		Steps: []Step{
			{Op: OpSetText, Paragraph: 1, Text: "{header.name}"},
			{Op: OpSetText, Paragraph: 2, Text: "{header.phone}    {header.email}    {header.linkedin}"},

			{Op: OpInsertBefore, Paragraph: 5, Text: "{#education}"},
			{Op: OpSetTabbedText, Paragraph: 5, Left: "{school}", Right: strPtr("{location} | {dates}")},
			{Op: OpSetText, Paragraph: 6, Text: "{degree}"},
			{Op: OpSetText, Paragraph: 7, Text: "{details}"},
			{Op: OpInsertAfter, Paragraph: 7, Text: "{/education}"},

			{Op: OpInsertBefore, Paragraph: 14, Text: "{#experience}"},
			{Op: OpSetTabbedText, Paragraph: 14, Left: "{company}", Right: strPtr("{companyMeta}")},
			{Op: OpInsertBefore, Paragraph: 15, Text: "{#roles}"},
			{Op: OpSetTabbedText, Paragraph: 15, Left: "{title}", Right: strPtr("{meta}")},
			{Op: OpInsertBefore, Paragraph: 16, Text: "{#bullets}"},
			{Op: OpSetText, Paragraph: 16, Text: "{.}"},
			// Each insert_after lands directly after paragraph 16, so the
			// closing tags end up in reverse order: bullets, roles, experience
			{Op: OpInsertAfter, Paragraph: 16, Text: "{/experience}"},
			{Op: OpInsertAfter, Paragraph: 16, Text: "{/roles}"},
			{Op: OpInsertAfter, Paragraph: 16, Text: "{/bullets}"},

			{Op: OpInsertBefore, Paragraph: 36, Text: "{#projects}"},
			{Op: OpSetTabbedText, Paragraph: 36, Left: "{name}", Right: strPtr("{dates}")},
			{Op: OpInsertBefore, Paragraph: 37, Text: "{#bullets}"},
			{Op: OpSetText, Paragraph: 37, Text: "{.}"},
			{Op: OpInsertAfter, Paragraph: 37, Text: "{/projects}"},
			{Op: OpInsertAfter, Paragraph: 37, Text: "{/bullets}"},

			{Op: OpReplaceAfterColon, Paragraph: 45, Text: "{skills.technical}"},
			{Op: OpReplaceAfterColon, Paragraph: 46, Text: "{skills.financial}"},
			{Op: OpReplaceAfterColon, Paragraph: 47, Text: "{skills.languages}"},

			{Op: OpInsertBefore, Paragraph: 50, Text: "{#extras}"},
			{Op: OpSetText, Paragraph: 50, Text: "{.}"},
			{Op: OpInsertAfter, Paragraph: 50, Text: "{/extras}"},
		},
		Remove: []int{
			51,                     // extra-curricular second bullet
			43, 42, 41, 40, 39, 38, // projects extra lines
			33, 32, 31, 30, 29, // second organisation
			27, 26, 25, 24, // third organisation
			22, 21, 20, 19, 18, 17, // extra roles and bullets
			11, 10, 9, // second education entry
		},
	}
}

// ParsePlan decodes a YAML plan and validates it
func ParsePlan(data []byte) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var plan Plan
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// LoadPlanFile reads and validates a YAML plan file
func LoadPlanFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("read plan", path, err)
	}
	plan, err := ParsePlan(data)
	if err != nil {
		return nil, NewDocumentError("read plan", path, err)
	}
	return plan, nil
}

// Marshal encodes the plan as YAML
func (p *Plan) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks the plan for unknown ops, negative positions and missing text
func (p *Plan) Validate() error {
	var issues []ValidationIssue

	for i, step := range p.Steps {
		field := fmt.Sprintf("steps[%d]", i)
		if !step.Op.Valid() {
			issues = append(issues, ValidationIssue{Field: field, Message: fmt.Sprintf("unknown op %q", step.Op)})
			continue
		}
		if step.Paragraph < 0 {
			issues = append(issues, ValidationIssue{Field: field, Message: "paragraph must be >= 0"})
		}
		switch step.Op {
		case OpInsertBefore, OpInsertAfter, OpReplaceAfterColon:
			if step.Text == "" {
				issues = append(issues, ValidationIssue{Field: field, Message: fmt.Sprintf("%s requires text", step.Op)})
			}
		}
	}

	for i, idx := range p.Remove {
		if idx < 0 {
			issues = append(issues, ValidationIssue{Field: fmt.Sprintf("remove[%d]", i), Message: "paragraph must be >= 0"})
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// checkRange reports every step and removal that addresses a paragraph the
// body does not have
func (p *Plan) checkRange(count int) error {
	errs := NewMultiError()
	for i, step := range p.Steps {
		if step.Paragraph >= count {
			errs.Add(&PlanError{Step: i, Op: step.Op, Paragraph: step.Paragraph,
				Message: fmt.Sprintf("out of range (%d paragraphs)", count)})
		}
	}
	for _, idx := range p.Remove {
		if idx >= count {
			errs.Add(&PlanError{Step: -1, Paragraph: idx,
				Message: fmt.Sprintf("out of range (%d paragraphs)", count)})
		}
	}
	return errs.Err()
}

// ApplyPlan runs the plan against body. The paragraph list is captured once
// before the first step, so every position refers to the document as read;
// insertions locate their reference paragraph by identity and deletions run
// last, highest position first.
//
// Without Lenient, a plan that addresses a missing paragraph is rejected
// before the body is touched.
func ApplyPlan(body *etree.Element, plan *Plan, opts ApplyOptions) (ApplyStats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = GetLogger()
	}

	if err := plan.Validate(); err != nil {
		return ApplyStats{}, err
	}

	snapshot := xml.Paragraphs(body)
	stats := ApplyStats{Paragraphs: len(snapshot)}

	if !opts.Lenient {
		if err := plan.checkRange(len(snapshot)); err != nil {
			return stats, err
		}
	}

	for i, step := range plan.Steps {
		stepLogger := logger.WithFields(Fields{"step": i, "op": step.Op, "paragraph": step.Paragraph})

		if step.Paragraph >= len(snapshot) {
			stepLogger.Warn("Skipping step: paragraph out of range (%d paragraphs)", len(snapshot))
			stats.Skipped++
			continue
		}
		p := snapshot[step.Paragraph]

		if err := applyStep(body, p, step); err != nil {
			return stats, &PlanError{Step: i, Op: step.Op, Paragraph: step.Paragraph, Message: "failed", Cause: err}
		}
		if step.Op == OpInsertBefore || step.Op == OpInsertAfter {
			stats.Inserted++
		}
		stats.Applied++

		if logger.IsDebugMode() {
			stepLogger.Debug("Applied step: %q", xml.ParagraphText(p))
		}
	}

	remove := plan.Remove
	if opts.Lenient {
		remove = make([]int, 0, len(plan.Remove))
		for _, idx := range plan.Remove {
			if idx >= len(snapshot) {
				logger.WithField("paragraph", idx).Warn("Skipping removal: paragraph out of range (%d paragraphs)", len(snapshot))
				stats.Skipped++
				continue
			}
			remove = append(remove, idx)
		}
	}

	removed, err := RemoveParagraphs(body, snapshot, remove)
	stats.Removed = removed
	if err != nil {
		return stats, &PlanError{Step: -1, Paragraph: -1, Message: "removal failed", Cause: err}
	}

	logger.WithFields(Fields{
		"paragraphs": stats.Paragraphs,
		"applied":    stats.Applied,
		"inserted":   stats.Inserted,
		"removed":    stats.Removed,
		"skipped":    stats.Skipped,
	}).Debug("Plan applied")

	return stats, nil
}

func applyStep(body, p *etree.Element, step Step) error {
	switch step.Op {
	case OpSetText:
		SetText(p, step.Text)
	case OpSetTabbedText:
		SetTabbedText(p, step.Left, step.Right)
	case OpReplaceAfterColon:
		ReplaceAfterColon(p, step.Text)
	case OpInsertBefore:
		return InsertBefore(body, p, NewTagParagraph(step.Text))
	case OpInsertAfter:
		return InsertAfter(body, p, NewTagParagraph(step.Text))
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}
