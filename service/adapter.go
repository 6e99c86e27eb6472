package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/eyad6789/Bill-to-OriginCertification/model"
)

// extractedDocument mirrors the JSON shape the extraction model is prompted
// to return.
type extractedDocument struct {
	Buyer struct {
		Name      string `json:"name"`
		Address   string `json:"address"`
		Mobile    string `json:"mobile"`
		TaxNumber string `json:"tax_number"`
		Email     string `json:"email"`
	} `json:"buyer"`
	Seller struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"seller"`
	Product struct {
		Description  string `json:"description"`
		HSCode       string `json:"hs_code"`
		Quantity     string `json:"quantity"`
		Weight       string `json:"weight"`
		MarksNumbers string `json:"marks_numbers"`
	} `json:"product"`
	Shipping struct {
		PortOfLoading      string `json:"port_of_loading"`
		PortOfDischarge    string `json:"port_of_discharge"`
		DestinationCountry string `json:"destination_country"`
	} `json:"shipping"`
	Invoice struct {
		InvoiceNumber string `json:"invoice_number"`
		InvoiceDate   string `json:"invoice_date"`
	} `json:"invoice"`
}

// ParseExtraction normalizes a raw model response into the canonical field
// mapping. Markdown code fences around the JSON are tolerated. Fields the
// model could not find come back as empty strings; only an unusable response
// as a whole is an error.
func ParseExtraction(raw string) (map[string]string, error) {
	text := stripCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return nil, fmt.Errorf("empty extraction response")
	}

	var doc extractedDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}

	fields := map[string]string{
		model.FieldBuyerName:          doc.Buyer.Name,
		model.FieldBuyerAddress:       doc.Buyer.Address,
		model.FieldBuyerMobile:        doc.Buyer.Mobile,
		model.FieldBuyerTaxNumber:     doc.Buyer.TaxNumber,
		model.FieldBuyerEmail:         doc.Buyer.Email,
		model.FieldSellerName:         doc.Seller.Name,
		model.FieldSellerAddress:      doc.Seller.Address,
		model.FieldProductDescription: doc.Product.Description,
		model.FieldHSCode:             doc.Product.HSCode,
		model.FieldQuantity:           doc.Product.Quantity,
		model.FieldWeight:             doc.Product.Weight,
		model.FieldPortOfLoading:      doc.Shipping.PortOfLoading,
		model.FieldPortOfDischarge:    doc.Shipping.PortOfDischarge,
		model.FieldDestinationCountry: doc.Shipping.DestinationCountry,
		model.FieldInvoiceNumber:      doc.Invoice.InvoiceNumber,
		model.FieldInvoiceDate:        doc.Invoice.InvoiceDate,
	}
	// Leave marks absent when the model returned nothing, so the schema
	// default ("N/M") applies.
	if doc.Product.MarksNumbers != "" {
		fields[model.FieldMarksNumbers] = doc.Product.MarksNumbers
	}
	return fields, nil
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// Fields the invoice document overrides when generating from both documents:
// the invoice is authoritative for the invoice numbers and for buyer/seller
// identity details that bills of lading often abbreviate.
var invoiceOverrideFields = []string{
	model.FieldInvoiceNumber,
	model.FieldInvoiceDate,
	model.FieldBuyerName,
	model.FieldBuyerMobile,
	model.FieldBuyerTaxNumber,
	model.FieldBuyerEmail,
	model.FieldSellerName,
}

// MergeBillAndInvoice combines two extraction results. The Bill of Lading is
// the primary source; non-empty invoice values win for the override fields.
// A request uses at most these two sources and either may be absent.
func MergeBillAndInvoice(bill, invoice map[string]string) map[string]string {
	if len(bill) == 0 {
		return copyFields(invoice)
	}

	merged := copyFields(bill)
	for _, key := range invoiceOverrideFields {
		if v := invoice[key]; v != "" {
			merged[key] = v
		}
	}
	return merged
}

func copyFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// NormalizeManual prepares a manually entered field set. Values pass through
// unchanged except the invoice date, which HTML date inputs submit as
// YYYY-MM-DD and the certificate displays as MMM.DD,YYYY.
func NormalizeManual(fields map[string]string) map[string]string {
	out := copyFields(fields)
	if d := out[model.FieldInvoiceDate]; d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			out[model.FieldInvoiceDate] = FormatCertificateDate(t)
		}
	}
	return out
}
