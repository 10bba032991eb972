package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/cvpatch/templatize/pkg/templatize"
)

// errTemplateInvalid is returned when validate finds issues, so the process exits non-zero
var errTemplateInvalid = errors.New("template has issues")

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [docx]",
		Short: "Check the placeholder tags of a template",
		Long: `Check that every section opened with {#name} is closed by {/name} in
nesting order and that no tag is empty. Prints the sections and variables the
template uses. Defaults to the configured output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := cfg.OutputPath
	if len(args) == 1 {
		path = args[0]
	}

	report, err := templatize.ValidatePackageFile(path)
	if err != nil {
		return err
	}

	if err := writeValidateMarkdown(cmd.OutOrStdout(), path, report); err != nil {
		return err
	}
	if !report.Valid() {
		return fmt.Errorf("%s: %w", path, errTemplateInvalid)
	}
	return nil
}

func writeValidateMarkdown(w io.Writer, path string, report *templatize.ValidationReport) error {
	md := markdown.NewMarkdown(w)
	md.H1("Template check: " + filepath.Base(path))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Paragraphs", strconv.Itoa(report.Paragraphs)},
			{"Tags", strconv.Itoa(len(report.Tags))},
			{"Issues", strconv.Itoa(len(report.Issues))},
		},
	})
	md.PlainText("")

	if report.Valid() {
		md.Note("All sections are balanced.")
	} else {
		md.Cautionf("%d issue(s) found.", len(report.Issues))
		md.PlainText("")

		rows := make([][]string, len(report.Issues))
		for i, issue := range report.Issues {
			rows[i] = []string{
				string(issue.Code),
				strconv.Itoa(issue.Paragraph),
				tableCell(issue.Raw, 40),
				tableCell(issue.Message, 80),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Code", "Paragraph", "Tag", "Message"},
			Rows:   rows,
		})
	}
	md.PlainText("")

	if sections := report.Sections(); len(sections) > 0 {
		md.H2("Sections")
		md.PlainText("")
		md.BulletList(sections...)
		md.PlainText("")
	}

	if variables := report.Variables(); len(variables) > 0 {
		md.H2("Variables")
		md.PlainText("")
		md.BulletList(variables...)
	}

	return md.Build()
}
