package model

// Canonical field keys shared by the extraction contract, the manual form and
// the renderers.
const (
	FieldBuyerName          = "buyer_name"
	FieldBuyerAddress       = "buyer_address"
	FieldBuyerMobile        = "buyer_mobile"
	FieldBuyerTaxNumber     = "buyer_tax_number"
	FieldBuyerEmail         = "buyer_email"
	FieldSellerName         = "seller_name"
	FieldSellerAddress      = "seller_address"
	FieldProductDescription = "product_description"
	FieldHSCode             = "hs_code"
	FieldQuantity           = "quantity"
	FieldWeight             = "weight"
	FieldMarksNumbers       = "marks_numbers"
	FieldPortOfLoading      = "port_of_loading"
	FieldPortOfDischarge    = "port_of_discharge"
	FieldDestinationCountry = "destination_country"
	FieldInvoiceNumber      = "invoice_number"
	FieldInvoiceDate        = "invoice_date"
	FieldDeclarationDate    = "declaration_date"
	FieldSerialNumber       = "serial_number"
	FieldCertificateNumber  = "certificate_number"
)

// DefaultMarksNumbers is used when no marks were supplied at all.
const DefaultMarksNumbers = "N/M"

// CertificateRecord is the canonical certificate entity. One record is built
// per generation request, enriched with derived fields and consumed once by
// the renderers. Every attribute is textual; absence is an empty string,
// never a missing key.
type CertificateRecord struct {
	BuyerName          string `json:"buyer_name"`
	BuyerAddress       string `json:"buyer_address"`
	BuyerMobile        string `json:"buyer_mobile"`
	BuyerTaxNumber     string `json:"buyer_tax_number"`
	BuyerEmail         string `json:"buyer_email"`
	SellerName         string `json:"seller_name"`
	SellerAddress      string `json:"seller_address"`
	ProductDescription string `json:"product_description"`
	HSCode             string `json:"hs_code"`
	Quantity           string `json:"quantity"`
	Weight             string `json:"weight"`
	MarksNumbers       string `json:"marks_numbers"`
	PortOfLoading      string `json:"port_of_loading"`
	PortOfDischarge    string `json:"port_of_discharge"`
	DestinationCountry string `json:"destination_country"`
	InvoiceNumber      string `json:"invoice_number"`
	InvoiceDate        string `json:"invoice_date"`
	DeclarationDate    string `json:"declaration_date"`
	SerialNumber       string `json:"serial_number"`
	CertificateNumber  string `json:"certificate_number"`
}

// FieldNames returns every canonical field key in display order. Order only
// matters for the manual form and the renderer sections, not for validity.
func FieldNames() []string {
	return []string{
		FieldBuyerName,
		FieldBuyerAddress,
		FieldBuyerMobile,
		FieldBuyerTaxNumber,
		FieldBuyerEmail,
		FieldSellerName,
		FieldSellerAddress,
		FieldProductDescription,
		FieldHSCode,
		FieldQuantity,
		FieldWeight,
		FieldMarksNumbers,
		FieldPortOfLoading,
		FieldPortOfDischarge,
		FieldDestinationCountry,
		FieldInvoiceNumber,
		FieldInvoiceDate,
		FieldDeclarationDate,
		FieldSerialNumber,
		FieldCertificateNumber,
	}
}

// InputFieldNames returns the fields a caller may supply. The remaining three
// (declaration date, serial and certificate numbers) are always derived.
func InputFieldNames() []string {
	all := FieldNames()
	return all[:len(all)-3]
}

// NewRecord builds a complete record from a partial field mapping. Missing or
// empty values default to the empty string, except marks and numbers which
// default to "N/M" when the key was not supplied at all. NewRecord never
// fails: absence is a defaulted value, not an error.
func NewRecord(fields map[string]string) *CertificateRecord {
	r := &CertificateRecord{
		BuyerName:          fields[FieldBuyerName],
		BuyerAddress:       fields[FieldBuyerAddress],
		BuyerMobile:        fields[FieldBuyerMobile],
		BuyerTaxNumber:     fields[FieldBuyerTaxNumber],
		BuyerEmail:         fields[FieldBuyerEmail],
		SellerName:         fields[FieldSellerName],
		SellerAddress:      fields[FieldSellerAddress],
		ProductDescription: fields[FieldProductDescription],
		HSCode:             fields[FieldHSCode],
		Quantity:           fields[FieldQuantity],
		Weight:             fields[FieldWeight],
		MarksNumbers:       fields[FieldMarksNumbers],
		PortOfLoading:      fields[FieldPortOfLoading],
		PortOfDischarge:    fields[FieldPortOfDischarge],
		DestinationCountry: fields[FieldDestinationCountry],
		InvoiceNumber:      fields[FieldInvoiceNumber],
		InvoiceDate:        fields[FieldInvoiceDate],
		DeclarationDate:    fields[FieldDeclarationDate],
		SerialNumber:       fields[FieldSerialNumber],
		CertificateNumber:  fields[FieldCertificateNumber],
	}
	if _, ok := fields[FieldMarksNumbers]; !ok {
		r.MarksNumbers = DefaultMarksNumbers
	}
	return r
}

// FieldMap returns the record as a field mapping with every canonical key
// present.
func (r *CertificateRecord) FieldMap() map[string]string {
	return map[string]string{
		FieldBuyerName:          r.BuyerName,
		FieldBuyerAddress:       r.BuyerAddress,
		FieldBuyerMobile:        r.BuyerMobile,
		FieldBuyerTaxNumber:     r.BuyerTaxNumber,
		FieldBuyerEmail:         r.BuyerEmail,
		FieldSellerName:         r.SellerName,
		FieldSellerAddress:      r.SellerAddress,
		FieldProductDescription: r.ProductDescription,
		FieldHSCode:             r.HSCode,
		FieldQuantity:           r.Quantity,
		FieldWeight:             r.Weight,
		FieldMarksNumbers:       r.MarksNumbers,
		FieldPortOfLoading:      r.PortOfLoading,
		FieldPortOfDischarge:    r.PortOfDischarge,
		FieldDestinationCountry: r.DestinationCountry,
		FieldInvoiceNumber:      r.InvoiceNumber,
		FieldInvoiceDate:        r.InvoiceDate,
		FieldDeclarationDate:    r.DeclarationDate,
		FieldSerialNumber:       r.SerialNumber,
		FieldCertificateNumber:  r.CertificateNumber,
	}
}
