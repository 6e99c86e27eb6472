package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/eyad6789/Bill-to-OriginCertification/model"
)

// DocumentRenderer renders one certificate record into a document.
type DocumentRenderer interface {
	Render(rec *model.CertificateRecord) ([]byte, error)
}

// DefaultDeclarationPlace is printed in boxes 11 and 12 next to the
// declaration date.
const DefaultDeclarationPlace = "YIWU,CHINA"

// PDFRenderer draws the one-page A4 certificate layout. The geometry is
// fixed: every section keeps its position and size regardless of content, and
// overlong text is wrapped at section-specific widths.
type PDFRenderer struct {
	place string
}

func NewPDFRenderer(place string) *PDFRenderer {
	if place == "" {
		place = DefaultDeclarationPlace
	}
	return &PDFRenderer{place: place}
}

// Render implements DocumentRenderer.
func (r *PDFRenderer) Render(rec *model.CertificateRecord) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	r.drawHeader(doc, rec)
	r.drawParties(doc, rec)
	r.drawTransport(doc, rec)
	r.drawAuthority(doc)
	r.drawGoodsTable(doc, rec)
	r.drawDeclarations(doc, rec)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write certificate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) drawHeader(doc *fpdf.Fpdf, rec *model.CertificateRecord) {
	doc.SetFont("Helvetica", "B", 16)
	textCentered(doc, 105, 30, "ORIGINAL")

	doc.SetFont("Helvetica", "", 9)
	doc.Text(120, 15, "Serial No. "+rec.SerialNumber)
	doc.Text(120, 20, rec.CertificateNumber)

	doc.SetFont("Helvetica", "B", 14)
	textCentered(doc, 160, 35, "CERTIFICATE OF ORIGIN")
	doc.SetFont("Helvetica", "B", 12)
	textCentered(doc, 160, 42, "OF")
	textCentered(doc, 160, 49, "THE PEOPLE'S REPUBLIC OF CHINA")
}

func (r *PDFRenderer) drawParties(doc *fpdf.Fpdf, rec *model.CertificateRecord) {
	// Box 1: exporter
	doc.SetFont("Helvetica", "B", 8)
	doc.Text(10, 55, "1.Exporter")
	doc.SetFont("Helvetica", "", 8)
	y := 60.0
	for _, line := range wrapText(rec.SellerName+"\n"+rec.SellerAddress, 60) {
		doc.Text(10, y, line)
		y += 4
	}
	doc.Rect(8, 50, 100, 35, "D")

	// Box 2: consignee
	doc.SetFont("Helvetica", "B", 8)
	doc.Text(10, 90, "2.Consignee")
	doc.SetFont("Helvetica", "", 7)
	consignee := rec.BuyerName + "\n" + rec.BuyerAddress
	if rec.BuyerMobile != "" {
		consignee += "\n**MOBILE NUMBER : " + rec.BuyerMobile
	}
	if rec.BuyerTaxNumber != "" {
		consignee += "\nTAX NUMBER : " + rec.BuyerTaxNumber
	}
	y = 95
	for _, line := range wrapText(consignee, 65) {
		doc.Text(10, y, line)
		y += 3.5
	}
	doc.Rect(8, 85, 100, 50, "D")
}

func (r *PDFRenderer) drawTransport(doc *fpdf.Fpdf, rec *model.CertificateRecord) {
	doc.SetFont("Helvetica", "B", 8)
	doc.Text(10, 140, "3.Means of transport and route")
	doc.SetFont("Helvetica", "", 8)
	doc.Text(10, 145, fmt.Sprintf("FROM %s TO %s BY SEA", rec.PortOfLoading, rec.PortOfDischarge))
	doc.Rect(8, 135, 100, 20, "D")

	doc.SetFont("Helvetica", "B", 8)
	doc.Text(10, 160, "4.Country/region of destination")
	doc.SetFont("Helvetica", "", 8)
	doc.Text(10, 165, rec.DestinationCountry)
	doc.Rect(8, 155, 100, 20, "D")
}

func (r *PDFRenderer) drawAuthority(doc *fpdf.Fpdf) {
	doc.SetFont("Helvetica", "B", 8)
	doc.Text(112, 90, "5.For certifying authority use only")
	doc.SetFont("Helvetica", "", 7)
	doc.Text(112, 98, "CHINA COUNCIL FOR THE")
	doc.Text(112, 102, "PROMOTION OF INTERNATIONAL")
	doc.Text(112, 106, "TRADE IS CHINA CHAMBER OF")
	doc.Text(112, 110, "INTERNATIONAL COMMERCE")
	doc.Text(112, 118, "VERIFY URL:HTTP://CHECK.ECOCCPIT.NET/")
	doc.Rect(110, 85, 92, 50, "D")
}

func (r *PDFRenderer) drawGoodsTable(doc *fpdf.Fpdf, rec *model.CertificateRecord) {
	doc.SetFont("Helvetica", "B", 7)
	doc.Text(10, 180, "6.Marks and numbers")
	doc.Text(45, 180, "7.Number and kind of packages;description of goods")
	doc.Text(125, 180, "8.H.S.Code")
	doc.Text(145, 180, "9.Quantity")
	doc.Text(170, 180, "10.Number")
	doc.Text(170, 184, "and date of")
	doc.Text(170, 188, "invoices")

	doc.SetFont("Helvetica", "", 8)
	doc.Text(10, 195, rec.MarksNumbers)

	y := 195.0
	for _, line := range wrapText(rec.ProductDescription, 45) {
		doc.Text(45, y, line)
		y += 4
	}
	y += 2
	if rec.BuyerMobile != "" {
		doc.Text(45, y, "**MOBILE NUMBER : "+rec.BuyerMobile)
		y += 4
	}
	if rec.BuyerTaxNumber != "" {
		doc.Text(45, y, "TAX NUMBER : "+rec.BuyerTaxNumber)
		y += 4
	}
	if rec.BuyerEmail != "" {
		doc.Text(45, y, "EMAIL : "+rec.BuyerEmail)
		y += 4
	}
	doc.Text(45, y, "***")

	doc.Text(125, 195, rec.HSCode)

	doc.SetFont("Helvetica", "", 7)
	doc.Text(145, 195, "G.WEIGHT")
	doc.Text(145, 199, rec.Weight)

	doc.Text(170, 195, rec.InvoiceNumber)
	doc.Text(170, 203, rec.InvoiceDate)

	doc.Rect(8, 175, 194, 65, "D")
	for _, x := range []float64{43, 123, 143, 168} {
		doc.Line(x, 175, x, 240)
	}
}

func (r *PDFRenderer) drawDeclarations(doc *fpdf.Fpdf, rec *model.CertificateRecord) {
	// Box 11: exporter declaration
	doc.SetFont("Helvetica", "B", 8)
	doc.Text(10, 245, "11.Declaration by the exporter")
	doc.SetFont("Helvetica", "", 7)
	doc.Text(12, 250, "The undersigned hereby declares that the above details and statements are")
	doc.Text(12, 253.5, "correct, that all the goods were produced in China and that they comply with the")
	doc.Text(12, 257, "Rules of Origin of the People's Republic of China.")
	doc.Text(12, 270, r.place+" "+rec.DeclarationDate)
	doc.SetFont("Helvetica", "", 6)
	doc.Text(12, 275, "Place and date,signature and stamp of authorized signatory")
	doc.Rect(8, 240, 97, 45, "D")

	// Box 12: certification
	doc.SetFont("Helvetica", "B", 8)
	doc.Text(107, 245, "12.Certification")
	doc.SetFont("Helvetica", "", 7)
	doc.Text(109, 250, "It is hereby certified that the declaration by the exporter is correct.")
	doc.Text(109, 260, "ADDRESS:FIRST FLOOR,NO.288,FUTIAN ROAD,YIWU,")
	doc.Text(109, 264, "ZHEJIANG")
	doc.Text(109, 268, "FAX:0579-85570088 TEL:0579-85195422")
	doc.Text(109, 275, r.place+" "+rec.DeclarationDate)
	doc.SetFont("Helvetica", "", 6)
	doc.Text(109, 280, "Place and date,signature and stamp of certifying authority")
	doc.Rect(105, 240, 97, 45, "D")
}

// textCentered draws s horizontally centered on x.
func textCentered(doc *fpdf.Fpdf, x, y float64, s string) {
	doc.Text(x-doc.GetStringWidth(s)/2, y, s)
}

// wrapText splits text into lines of at most maxChars characters, breaking on
// word boundaries where possible. Explicit newlines are honored and empty
// lines dropped.
func wrapText(text string, maxChars int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		words := strings.Fields(paragraph)
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if len(candidate) <= maxChars {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			// A single word longer than the limit is hard-broken.
			for len(word) > maxChars {
				lines = append(lines, word[:maxChars])
				word = word[maxChars:]
			}
			current = word
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}
