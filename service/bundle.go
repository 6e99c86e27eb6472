package service

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Names of the bundle and its entries, fixed regardless of input filenames.
const (
	BundleFilename  = "certificate_of_origin.zip"
	bundlePDFEntry  = "certificate_of_origin.pdf"
	bundleDocxEntry = "certificate_of_origin.docx"
)

// BundleOutputs packs the rendered documents into a single zip archive. The
// PDF is mandatory; the docx entry is skipped when no editable output was
// produced.
func BundleOutputs(pdfData, docxData []byte) ([]byte, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("bundle requires a PDF document")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := []struct {
		name string
		data []byte
	}{
		{bundlePDFEntry, pdfData},
		{bundleDocxEntry, docxData},
	}
	for _, e := range entries {
		if len(e.data) == 0 {
			continue
		}
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finish zip archive: %w", err)
	}
	return buf.Bytes(), nil
}
