package service

import (
	"context"
	"log/slog"

	"github.com/eyad6789/Bill-to-OriginCertification/model"
)

// Generator runs the full certificate pipeline: validate uploads, extract
// fields, derive the declaration date and identifiers, render and bundle.
// Each request is processed synchronously from upload to finished archive.
type Generator struct {
	extractor Extractor
	calc      *Calculator
	pdf       DocumentRenderer
	docx      DocumentRenderer
	maxUpload int64
}

// NewGenerator wires the pipeline. extractor may be nil when no API key is
// configured; document-based generation then fails with an ExtractionError
// while manual generation keeps working. docx may be nil when no template is
// configured.
func NewGenerator(extractor Extractor, calc *Calculator, pdf, docx DocumentRenderer, maxUpload int64) *Generator {
	return &Generator{
		extractor: extractor,
		calc:      calc,
		pdf:       pdf,
		docx:      docx,
		maxUpload: maxUpload,
	}
}

// GenerateResult carries the finished record and the output archive.
type GenerateResult struct {
	Record *model.CertificateRecord
	Bundle []byte
}

// FromBill generates a certificate from a single Bill of Lading.
func (g *Generator) FromBill(ctx context.Context, bill *Upload) (*GenerateResult, error) {
	if err := CheckPDFUpload(bill, g.maxUpload); err != nil {
		return nil, err
	}

	fields, err := g.extract(ctx, bill)
	if err != nil {
		return nil, err
	}
	return g.finish(fields)
}

// FromBillAndInvoice generates a certificate from a Bill of Lading and an
// Invoice. Either document may be absent but not both. A failed extraction on
// one document degrades to the other; only both failing is an error.
func (g *Generator) FromBillAndInvoice(ctx context.Context, bill, invoice *Upload) (*GenerateResult, error) {
	if bill == nil && invoice == nil {
		return nil, newInputError("at least one document is required")
	}
	for _, u := range []*Upload{bill, invoice} {
		if u == nil {
			continue
		}
		if err := CheckPDFUpload(u, g.maxUpload); err != nil {
			return nil, err
		}
	}

	var billFields, invoiceFields map[string]string
	var billErr, invoiceErr error
	if bill != nil {
		billFields, billErr = g.extract(ctx, bill)
		if billErr != nil {
			slog.Warn("bill extraction failed", "filename", bill.Filename, "error", billErr)
		}
	}
	if invoice != nil {
		invoiceFields, invoiceErr = g.extract(ctx, invoice)
		if invoiceErr != nil {
			slog.Warn("invoice extraction failed", "filename", invoice.Filename, "error", invoiceErr)
		}
	}

	if billFields == nil && invoiceFields == nil {
		err := billErr
		if err == nil {
			err = invoiceErr
		}
		return nil, &ExtractionError{Msg: "extraction failed for all documents", Err: err}
	}

	return g.finish(MergeBillAndInvoice(billFields, invoiceFields))
}

// FromManual generates a certificate from user-entered fields. No extraction
// runs, so this path works without a configured extractor.
func (g *Generator) FromManual(_ context.Context, fields map[string]string) (*GenerateResult, error) {
	return g.finish(NormalizeManual(fields))
}

func (g *Generator) extract(ctx context.Context, u *Upload) (map[string]string, error) {
	if g.extractor == nil {
		return nil, &ExtractionError{Msg: "extraction is not configured, no API key set"}
	}
	return g.extractor.ExtractFields(ctx, u.Data)
}

// finish derives the remaining fields, builds the record and renders the
// outputs. The PDF is mandatory; docx rendering is best effort.
func (g *Generator) finish(fields map[string]string) (*GenerateResult, error) {
	rec := model.NewRecord(fields)
	rec.SerialNumber, rec.CertificateNumber = g.calc.NextNumbers()
	rec.DeclarationDate = g.calc.DeclarationDate(rec.InvoiceDate)

	pdfData, err := g.pdf.Render(rec)
	if err != nil {
		return nil, err
	}

	var docxData []byte
	if g.docx != nil {
		docxData, err = g.docx.Render(rec)
		if err != nil {
			slog.Warn("docx rendering failed, bundling PDF only", "error", err)
			docxData = nil
		}
	}

	bundle, err := BundleOutputs(pdfData, docxData)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{Record: rec, Bundle: bundle}, nil
}
