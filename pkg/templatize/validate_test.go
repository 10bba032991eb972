package templatize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []IssueCode
	}{
		{
			name: "balanced nesting",
			body: textParagraph("{#experience}") + textParagraph("{#roles}") + textParagraph("{title}") +
				textParagraph("{/roles}") + textParagraph("{/experience}"),
		},
		{
			name: "bare close ends the innermost section",
			body: textParagraph("{#extras}") + textParagraph("{.}") + textParagraph("{/}"),
		},
		{
			name:     "crossed sections",
			body:     textParagraph("{#a}") + textParagraph("{#b}") + textParagraph("{/a}") + textParagraph("{/b}"),
			expected: []IssueCode{IssueLoopMismatch, IssueLoopMismatch},
		},
		{
			name:     "close without open",
			body:     textParagraph("{/projects}"),
			expected: []IssueCode{IssueLoopMismatch},
		},
		{
			name:     "open without close",
			body:     textParagraph("{#projects}") + textParagraph("{name}"),
			expected: []IssueCode{IssueUnclosedLoop},
		},
		{
			name:     "empty tag",
			body:     textParagraph("{ }"),
			expected: []IssueCode{IssueEmptyTag},
		},
		{
			name: "tags split across runs",
			body: textParagraph("{#edu", "cation}") + textParagraph("{/education}"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, body := parseTestBody(t, tt.body)
			report := ValidateTemplate(body)

			var codes []IssueCode
			for _, issue := range report.Issues {
				codes = append(codes, issue.Code)
			}
			assert.Equal(t, tt.expected, codes)
			assert.Equal(t, len(tt.expected) == 0, report.Valid())
		})
	}
}

func TestValidateTemplate_CountsTableParagraphs(t *testing.T) {
	body := textParagraph("{#rows}") +
		`<w:tbl><w:tr><w:tc>` + textParagraph("{cell}") + `</w:tc></w:tr></w:tbl>` +
		textParagraph("{/rows}")
	_, root := parseTestBody(t, body)

	report := ValidateTemplate(root)
	assert.True(t, report.Valid())
	assert.Equal(t, 3, report.Paragraphs)
	require.Len(t, report.Tags, 3)
	assert.Equal(t, 1, report.Tags[1].Paragraph)
	assert.Equal(t, "cell", report.Tags[1].Name)
}

func TestValidateTemplate_TextBoxTagsCountOnce(t *testing.T) {
	textBox := `<w:p><w:r><w:t>Anchor </w:t></w:r><w:r><w:pict><v:shape xmlns:v="urn:schemas-microsoft-com:vml"><v:textbox><w:txbxContent>` +
		textParagraph("{#x}") + textParagraph("{/x}") +
		`</w:txbxContent></v:textbox></v:shape></w:pict></w:r></w:p>`
	_, body := parseTestBody(t, textParagraph("{name}")+textBox+textParagraph("{title}"))

	report := ValidateTemplate(body)
	assert.True(t, report.Valid())
	assert.Equal(t, 3, report.Paragraphs)
	require.Len(t, report.Tags, 4)
	assert.Equal(t, []string{"x"}, report.Sections())
	assert.Equal(t, 1, report.Tags[1].Paragraph)
	assert.Equal(t, 1, report.Tags[2].Paragraph)
	assert.Equal(t, 2, report.Tags[3].Paragraph)
}

func TestValidationReport_Err(t *testing.T) {
	_, body := parseTestBody(t, textParagraph("ok")+textParagraph("{#a}"))
	report := ValidateTemplate(body)

	err := report.Err()
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Issues, 1)
	assert.Equal(t, "paragraph 1", ve.Issues[0].Field)
	assert.Contains(t, ve.Issues[0].Message, "UNCLOSED_LOOP")

	_, body = parseTestBody(t, textParagraph("ok"))
	assert.NoError(t, ValidateTemplate(body).Err())
}

func TestValidatePackage(t *testing.T) {
	pkg := readTestPackage(t, fullDocx(t, textParagraph("{#a}")+textParagraph("{/a}")))

	report, err := ValidatePackage(pkg)
	require.NoError(t, err)
	assert.True(t, report.Valid())
	assert.Equal(t, []string{"a"}, report.Sections())
}
