package service

import (
	"bytes"
	"fmt"

	"github.com/lukasjarosch/go-docx"

	"github.com/eyad6789/Bill-to-OriginCertification/model"
)

// DocxRenderer fills a .docx template whose body contains {field_name}
// placeholders for the canonical field keys. The template is re-opened per
// render; documents are mutated in place by the replacement.
type DocxRenderer struct {
	templatePath string
}

func NewDocxRenderer(templatePath string) *DocxRenderer {
	return &DocxRenderer{templatePath: templatePath}
}

// Render implements DocumentRenderer.
func (r *DocxRenderer) Render(rec *model.CertificateRecord) ([]byte, error) {
	doc, err := docx.Open(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("open docx template: %w", err)
	}

	placeholders := make(docx.PlaceholderMap)
	for key, value := range rec.FieldMap() {
		placeholders[key] = value
	}
	if err := doc.ReplaceAll(placeholders); err != nil {
		return nil, fmt.Errorf("fill docx template: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("write certificate docx: %w", err)
	}
	return buf.Bytes(), nil
}
