// Package main provides the entry point for the templatize CLI.
//
// templatize rewrites a filled-in résumé (DOCX) into a template for a
// docxtemplater-style merge engine.
//
// Usage:
//
//	templatize                              # test.docx -> convex/assets/resume-template.docx
//	templatize --input cv.docx --output out.docx --plan plan.yaml
//	templatize inspect cv.docx              # list paragraph positions
//	templatize validate out.docx            # check section tags
//	templatize plan > plan.yaml             # dump the built-in plan
//
// See --help for all available options.
package main

func main() {
	Execute()
}
