package service

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/eyad6789/Bill-to-OriginCertification/model"
)

type fakeExtractor struct {
	fields map[string]string
	err    error
	calls  int
}

func (f *fakeExtractor) ExtractFields(_ context.Context, _ []byte) (map[string]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.fields, nil
}

// validPDFUpload renders a small real PDF so the structural upload check
// passes.
func validPDFUpload(t *testing.T, filename string) *Upload {
	t.Helper()
	data, err := NewPDFRenderer("").Render(model.NewRecord(nil))
	if err != nil {
		t.Fatalf("Failed to build test PDF: %v", err)
	}
	return &Upload{
		Filename:    filename,
		ContentType: "application/pdf",
		Size:        int64(len(data)),
		Data:        data,
	}
}

func newTestGenerator(extractor Extractor) *Generator {
	return NewGenerator(extractor, NewCalculatorWithSeed(7), NewPDFRenderer(""), nil, 16*1024*1024)
}

func TestGeneratorFromBill(t *testing.T) {
	extractor := &fakeExtractor{fields: map[string]string{
		model.FieldBuyerName:   "ACME TRADING",
		model.FieldInvoiceDate: "OCT.09,2025",
	}}
	g := newTestGenerator(extractor)

	result, err := g.FromBill(context.Background(), validPDFUpload(t, "bill.pdf"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Record.BuyerName != "ACME TRADING" {
		t.Errorf("Unexpected buyer name: %q", result.Record.BuyerName)
	}
	if result.Record.SerialNumber == "" || result.Record.CertificateNumber == "" {
		t.Error("Expected derived identifiers to be assigned")
	}
	if result.Record.DeclarationDate == "" {
		t.Error("Expected a declaration date for a valid invoice date")
	}
	if result.Record.MarksNumbers != model.DefaultMarksNumbers {
		t.Errorf("Expected marks default, got %q", result.Record.MarksNumbers)
	}

	zr, err := zip.NewReader(bytes.NewReader(result.Bundle), int64(len(result.Bundle)))
	if err != nil {
		t.Fatalf("Bundle is not a zip archive: %v", err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != "certificate_of_origin.pdf" {
		t.Errorf("Unexpected bundle entries: %v", zr.File)
	}
}

func TestGeneratorFromBillRejectsBadUpload(t *testing.T) {
	g := newTestGenerator(&fakeExtractor{})

	_, err := g.FromBill(context.Background(), &Upload{
		Filename: "notes.txt",
		Size:     4,
		Data:     []byte("text"),
	})
	if !IsInputError(err) {
		t.Fatalf("Expected InputError, got %v", err)
	}
}

func TestGeneratorFromBillExtractionFailure(t *testing.T) {
	g := newTestGenerator(&fakeExtractor{err: &ExtractionError{Msg: "all extraction models failed"}})

	_, err := g.FromBill(context.Background(), validPDFUpload(t, "bill.pdf"))
	if !IsExtractionError(err) {
		t.Fatalf("Expected ExtractionError, got %v", err)
	}
}

func TestGeneratorWithoutExtractor(t *testing.T) {
	g := newTestGenerator(nil)

	if _, err := g.FromBill(context.Background(), validPDFUpload(t, "bill.pdf")); !IsExtractionError(err) {
		t.Fatalf("Expected ExtractionError without a configured extractor, got %v", err)
	}

	// Manual generation does not need the extractor.
	result, err := g.FromManual(context.Background(), map[string]string{
		model.FieldBuyerName:   "ACME",
		model.FieldInvoiceDate: "2025-10-09",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Record.InvoiceDate != "OCT.09,2025" {
		t.Errorf("Expected reformatted invoice date, got %q", result.Record.InvoiceDate)
	}
}

func TestGeneratorFromBillAndInvoiceRequiresDocument(t *testing.T) {
	g := newTestGenerator(&fakeExtractor{})

	if _, err := g.FromBillAndInvoice(context.Background(), nil, nil); !IsInputError(err) {
		t.Fatalf("Expected InputError with no documents, got %v", err)
	}
}

func TestGeneratorFromBillAndInvoiceMerges(t *testing.T) {
	calls := 0
	extractor := extractorFunc(func(_ context.Context, _ []byte) (map[string]string, error) {
		calls++
		if calls == 1 {
			return map[string]string{
				model.FieldBuyerName:    "BUYER FROM BILL",
				model.FieldBuyerAddress: "BILL ADDRESS",
			}, nil
		}
		return map[string]string{
			model.FieldBuyerName:     "BUYER FROM INVOICE",
			model.FieldInvoiceNumber: "INV-123",
		}, nil
	})
	g := NewGenerator(extractor, NewCalculatorWithSeed(7), NewPDFRenderer(""), nil, 16*1024*1024)

	result, err := g.FromBillAndInvoice(context.Background(),
		validPDFUpload(t, "bill.pdf"), validPDFUpload(t, "invoice.pdf"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Record.BuyerName != "BUYER FROM INVOICE" {
		t.Errorf("Expected invoice buyer name to win, got %q", result.Record.BuyerName)
	}
	if result.Record.BuyerAddress != "BILL ADDRESS" {
		t.Errorf("Expected bill address to stay, got %q", result.Record.BuyerAddress)
	}
	if result.Record.InvoiceNumber != "INV-123" {
		t.Errorf("Expected invoice number, got %q", result.Record.InvoiceNumber)
	}
}

func TestGeneratorFromBillAndInvoicePartialFailure(t *testing.T) {
	calls := 0
	extractor := extractorFunc(func(_ context.Context, _ []byte) (map[string]string, error) {
		calls++
		if calls == 1 {
			return nil, &ExtractionError{Msg: "all extraction models failed"}
		}
		return map[string]string{model.FieldInvoiceNumber: "INV-9"}, nil
	})
	g := NewGenerator(extractor, NewCalculatorWithSeed(7), NewPDFRenderer(""), nil, 16*1024*1024)

	result, err := g.FromBillAndInvoice(context.Background(),
		validPDFUpload(t, "bill.pdf"), validPDFUpload(t, "invoice.pdf"))
	if err != nil {
		t.Fatalf("Expected partial failure to degrade, got %v", err)
	}
	if result.Record.InvoiceNumber != "INV-9" {
		t.Errorf("Expected fields from the surviving document, got %q", result.Record.InvoiceNumber)
	}
}

func TestGeneratorFromBillAndInvoiceTotalFailure(t *testing.T) {
	extractor := &fakeExtractor{err: &ExtractionError{Msg: "all extraction models failed"}}
	g := newTestGenerator(extractor)

	_, err := g.FromBillAndInvoice(context.Background(),
		validPDFUpload(t, "bill.pdf"), validPDFUpload(t, "invoice.pdf"))
	if !IsExtractionError(err) {
		t.Fatalf("Expected ExtractionError when every document fails, got %v", err)
	}
	if extractor.calls != 2 {
		t.Errorf("Expected both documents attempted, got %d calls", extractor.calls)
	}
}

type extractorFunc func(ctx context.Context, pdfData []byte) (map[string]string, error)

func (f extractorFunc) ExtractFields(ctx context.Context, pdfData []byte) (map[string]string, error) {
	return f(ctx, pdfData)
}
