package main

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/cvpatch/templatize/pkg/templatize"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [docx]",
		Short: "List the body paragraphs with their positions",
		Long: `List the body paragraphs of a DOCX as a Markdown table. The # column is
the position a plan step uses to address the paragraph. Defaults to the
configured input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := cfg.InputPath
	if len(args) == 1 {
		path = args[0]
	}

	infos, err := templatize.InspectPackageFile(path)
	if err != nil {
		return err
	}
	return writeInspectMarkdown(cmd.OutOrStdout(), path, infos)
}

func writeInspectMarkdown(w io.Writer, path string, infos []templatize.ParagraphInfo) error {
	md := markdown.NewMarkdown(w)
	md.H1("Paragraphs of " + filepath.Base(path))
	md.PlainText("")
	md.PlainTextf("%d paragraphs in the document body.", len(infos))
	md.PlainText("")

	rows := make([][]string, len(infos))
	for i, info := range infos {
		tab := ""
		if info.HasTab {
			tab = "yes"
		}
		rows[i] = []string{
			strconv.Itoa(info.Index),
			strconv.Itoa(info.Runs),
			tab,
			info.Style,
			tableCell(info.Text, 80),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Runs", "Tab", "Style", "Text"},
		Rows:   rows,
	})
	return md.Build()
}

// tableCell makes text safe for a Markdown table cell and truncates it to
// maxLen runes
func tableCell(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
