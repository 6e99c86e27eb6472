package service

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Upload is a file received at the request boundary.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// CheckPDFUpload enforces the upload contract before any record is
// constructed: a PDF content type, a size at or below maxBytes, and a
// structurally readable document. Violations are InputErrors.
func CheckPDFUpload(u *Upload, maxBytes int64) error {
	if u == nil || len(u.Data) == 0 {
		return newInputError("no file provided")
	}

	if maxBytes > 0 && (u.Size > maxBytes || int64(len(u.Data)) > maxBytes) {
		return newInputError("file %q exceeds the %dMB size limit", u.Filename, maxBytes/(1024*1024))
	}

	if ext := strings.ToLower(filepath.Ext(u.Filename)); ext != "" && ext != ".pdf" {
		return newInputError("only PDF files are allowed, got %q", ext)
	}

	// Accept a declared PDF type, or sniff when the client sent nothing
	// useful (browsers often send application/octet-stream).
	declared := u.ContentType
	if declared != "" && declared != "application/octet-stream" && !strings.Contains(declared, "pdf") {
		return newInputError("unsupported content type %q, expected application/pdf", declared)
	}

	head := u.Data
	if len(head) > 512 {
		head = head[:512]
	}
	sniffed := http.DetectContentType(head)
	if !strings.Contains(sniffed, "pdf") && sniffed != "application/octet-stream" {
		return newInputError("file %q is not a PDF document", u.Filename)
	}

	if _, err := pdfPageCount(u.Data); err != nil {
		return newInputError("file %q is not a readable PDF: %v", u.Filename, err)
	}

	return nil
}

// pdfPageCount opens the document with relaxed validation and returns its
// page count.
func pdfPageCount(data []byte) (int, error) {
	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("ensure page count: %w", err)
	}
	return ctx.PageCount, nil
}

// ExtractPlainText returns the text layer of a PDF, or an error when the
// document has none. Callers treat failure as "scanned document" and fall
// back to sending the raw bytes to the extraction model.
func ExtractPlainText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF for text extraction: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text layer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return "", fmt.Errorf("read text layer: %w", err)
	}
	return buf.String(), nil
}
