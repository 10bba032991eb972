// Package templatize turns a filled-in résumé (DOCX) into a template for a
// docxtemplater-style merge engine.
//
// The source document is addressed by paragraph position. A Plan lists the
// edits: replace a paragraph's text with a placeholder such as {header.name},
// split a "left<TAB>right" heading into two placeholders, keep a "Label:"
// prefix and replace the rest, or insert a paragraph holding a section
// marker such as {#education} or {/education}. Sample paragraphs that the
// merge engine will repeat are then deleted.
//
// # Quick Start
//
//	result, err := templatize.NewBuilder(&templatize.Config{
//	    InputPath:  "resume.docx",
//	    OutputPath: "resume-template.docx",
//	}, nil).Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Wrote template to", result.OutputPath)
//
// A nil plan selects DefaultPlan, the layout of the résumé this tool was
// written for. Other layouts are described in YAML and loaded with
// LoadPlanFile:
//
//	steps:
//	  - op: set_text
//	    paragraph: 1
//	    text: "{header.name}"
//	  - op: insert_before
//	    paragraph: 5
//	    text: "{#education}"
//	  - op: set_tabbed_text
//	    paragraph: 5
//	    left: "{school}"
//	    right: "{dates}"
//	remove: [9, 10, 11]
//
// # Paragraph Positions
//
// Positions count the direct w:p children of the document body, starting at
// zero, as they were before any edit. Use InspectBody (or the inspect
// command) to list them. Inserted paragraphs never shift the positions later
// steps refer to, and deletions always run last.
//
// # Processing
//
//  1. Read the package and drop docProps/custom.xml with its content type
//  2. Parse word/document.xml into a lossless tree (see the xml subpackage)
//  3. Apply the plan's steps, then its removals
//  4. Check that every {#section} is closed by a matching {/section}
//  5. Write the package to the output path
//
// Every part other than the main document and the content type manifest is
// copied byte for byte.
package templatize
