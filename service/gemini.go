package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/eyad6789/Bill-to-OriginCertification/config"
)

// Extractor turns raw PDF bytes into the canonical field mapping, or fails
// with an ExtractionError when nothing usable came back. Implementations may
// be slow; the caller controls cancellation via ctx.
type Extractor interface {
	ExtractFields(ctx context.Context, pdfData []byte) (map[string]string, error)
}

const extractionPrompt = `You are an expert at extracting information from shipping documents (Bill of Lading and Invoice).

Extract the following information and return it as a valid JSON object:

{
    "buyer": {
        "name": "Company name of the consignee/buyer (CONSIGNEE field)",
        "address": "Full address of the consignee",
        "mobile": "Mobile/phone numbers if available",
        "tax_number": "Tax number if available",
        "email": "Email if available"
    },
    "seller": {
        "name": "Company name of the shipper/exporter (SHIPPER field)",
        "address": "Full address of the shipper"
    },
    "product": {
        "description": "Description of goods (e.g., 'SIX HUNDRED FORTY (640) CTNS OF GLASS ELECTRIC KETTLE')",
        "hs_code": "HS/Harmonized Code with decimal (e.g., '851671.00')",
        "quantity": "Number of items/cartons (e.g., '640')",
        "weight": "Gross weight with unit (e.g., '7,910 KGS G.W.')",
        "marks_numbers": "Container number or marks, otherwise 'N/M'"
    },
    "shipping": {
        "port_of_loading": "Port of loading (e.g., 'NINGBO CHINA')",
        "port_of_discharge": "Port of discharge (e.g., 'UMM QASR IRAQ')",
        "destination_country": "Destination country (e.g., 'IRAQ')"
    },
    "invoice": {
        "invoice_number": "Invoice/reference/booking number (look for REF, BOOKING REF, or similar)",
        "invoice_date": "Date found on document, converted to format MMM.DD,YYYY (e.g., 'OCT.09,2025')"
    }
}

Important:
- Return ONLY the JSON object, no markdown formatting, no explanation
- If information is not found, use empty string ""
- For dates, use uppercase month abbreviations like "OCT.09,2025"
- Look for SHIPPER for seller, CONSIGNEE for buyer`

// GeminiExtractor extracts certificate fields with the Gemini API. When the
// PDF has a text layer the text is sent as the prompt context; otherwise the
// document bytes are uploaded inline. Models are tried in order and a
// per-model failure falls through to the next one.
type GeminiExtractor struct {
	client  *genai.Client
	models  []string
	timeout time.Duration
}

func NewGeminiExtractor(ctx context.Context, cfg *config.GeminiConfig) (*GeminiExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiExtractor{
		client:  client,
		models:  cfg.Models,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// ExtractFields implements Extractor.
func (g *GeminiExtractor) ExtractFields(ctx context.Context, pdfData []byte) (map[string]string, error) {
	contents := g.buildContents(pdfData)

	var lastErr error
	for _, modelName := range g.models {
		fields, err := g.generate(ctx, modelName, contents)
		if err != nil {
			slog.Warn("extraction model failed", "model", modelName, "error", err)
			lastErr = err
			continue
		}
		slog.Debug("extraction succeeded", "model", modelName)
		return fields, nil
	}

	return nil, &ExtractionError{Msg: "all extraction models failed", Err: lastErr}
}

func (g *GeminiExtractor) buildContents(pdfData []byte) []*genai.Content {
	text, err := ExtractPlainText(pdfData)
	if err == nil && strings.TrimSpace(text) != "" {
		return genai.Text(extractionPrompt + "\n\nDocument content:\n" + text)
	}

	// No text layer (scanned document): let the model read the PDF itself.
	parts := []*genai.Part{
		genai.NewPartFromBytes(pdfData, "application/pdf"),
		genai.NewPartFromText(extractionPrompt),
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func (g *GeminiExtractor) generate(ctx context.Context, modelName string, contents []*genai.Content) (map[string]string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.client.Models.GenerateContent(ctx, modelName, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	return ParseExtraction(resp.Text())
}
