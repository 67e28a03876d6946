package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casemind/legal-team-backend/internal/entity"
)

func sampleReport() *entity.Report {
	return &entity.Report{
		ID:              "r-1",
		SessionID:       "s-1",
		AnalysisType:    entity.AnalysisRiskAssessment,
		Query:           "Identify potential legal risks in the document.",
		Analysis:        "The agreement expires in 12 months.",
		KeyPoints:       "Fixed 12-month term.",
		Recommendations: "Negotiate a renewal clause.",
	}
}

func TestFactory_CreateKnownFormats(t *testing.T) {
	factory := NewFactory()

	for _, format := range []entity.ResultFormat{entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX} {
		f, err := factory.Create(format)
		require.NoError(t, err, "format %s", format)
		require.NotNil(t, f)
		assert.NotEmpty(t, f.ContentType())
		assert.True(t, strings.HasPrefix(f.FileExtension(), "."))
	}
}

func TestFactory_CreateUnknownFormat(t *testing.T) {
	factory := NewFactory()
	_, err := factory.Create(entity.ResultFormat("xlsx"))
	assert.Error(t, err)
}

func TestMarkdownFormatter_ContainsAllSections(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleReport())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# "+baseTitle)
	assert.Contains(t, text, "## Detailed Analysis")
	assert.Contains(t, text, "## Key Points")
	assert.Contains(t, text, "## Recommendations")
	assert.Contains(t, text, "The agreement expires in 12 months.")
}

func TestPDFFormatter_ProducesPDFBytes(t *testing.T) {
	out, err := NewPDFFormatter().Format(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"), "expected a PDF header")
}

func TestDOCXFormatter_ProducesZipBytes(t *testing.T) {
	out, err := NewDOCXFormatter().Format(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	// DOCX is a zip container
	assert.Equal(t, "PK", string(out[:2]))
}
