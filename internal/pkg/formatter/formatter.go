package formatter

import (
	"fmt"

	"github.com/casemind/legal-team-backend/internal/entity"
)

const baseTitle = "Legal Analysis Report"

// section is one titled block of the rendered report.
type section struct {
	Title string
	Body  string
}

func reportSections(report *entity.Report) []section {
	return []section{
		{Title: "Detailed Analysis", Body: report.Analysis},
		{Title: "Key Points", Body: report.KeyPoints},
		{Title: "Recommendations", Body: report.Recommendations},
	}
}

type Formatter interface {
	Format(report *entity.Report) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
