package service

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Date layouts accepted for invoice dates, tried in order. The first is the
// certificate's own display format (e.g. "OCT.09,2025").
var invoiceDateLayouts = []string{
	"Jan.02,2006",
	"02-Jan-2006",
	"2006-01-02",
}

const certificateDateLayout = "Jan.02,2006"

const (
	minDeclarationOffsetDays = 10
	maxDeclarationOffsetDays = 30
)

// Calculator produces the derived certificate fields: the declaration date
// and the serial/certificate number pair. It owns its randomness and a
// monotonic sequence counter explicitly, so callers can seed it for
// deterministic tests, and it is safe for concurrent use.
type Calculator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	seq uint64
}

// NewCalculator returns a Calculator seeded from the current time.
func NewCalculator() *Calculator {
	return NewCalculatorWithSeed(time.Now().UnixNano())
}

// NewCalculatorWithSeed returns a Calculator with deterministic randomness.
func NewCalculatorWithSeed(seed int64) *Calculator {
	return &Calculator{rnd: rand.New(rand.NewSource(seed))}
}

// ParseInvoiceDate parses an invoice date in any accepted layout.
func ParseInvoiceDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range invoiceDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("unrecognized invoice date %q: %w", value, lastErr)
}

// DeclarationDate derives the declaration date from the invoice date by
// adding a fresh uniform random offset of 10 to 30 days, formatted as
// "MMM.DD,YYYY" uppercase. A missing or unparseable invoice date yields an
// empty string; this method never fails.
func (c *Calculator) DeclarationDate(invoiceDate string) string {
	date, err := c.DeclarationDateStrict(invoiceDate)
	if err != nil {
		return ""
	}
	return date
}

// DeclarationDateStrict is the variant for callers that require derived
// fields: it returns a ValidationError when the invoice date is missing or
// does not parse.
func (c *Calculator) DeclarationDateStrict(invoiceDate string) (string, error) {
	if strings.TrimSpace(invoiceDate) == "" {
		return "", &ValidationError{Field: "invoice_date", Msg: "missing invoice date"}
	}
	t, err := ParseInvoiceDate(invoiceDate)
	if err != nil {
		return "", &ValidationError{Field: "invoice_date", Msg: err.Error()}
	}

	c.mu.Lock()
	offset := minDeclarationOffsetDays + c.rnd.Intn(maxDeclarationOffsetDays-minDeclarationOffsetDays+1)
	c.mu.Unlock()

	return FormatCertificateDate(t.AddDate(0, 0, offset)), nil
}

// NextNumbers assigns a fresh serial/certificate number pair. The shapes
// follow the CCPIT paper form; the sequence counter is folded into the digits
// so repeated calls within a process never collide.
func (c *Calculator) NextNumbers() (serial, certificate string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	year := time.Now().Year() % 100
	serial = fmt.Sprintf("CCPIT351250%03d%03d", c.seq%1000, c.rnd.Intn(1000))
	certificate = fmt.Sprintf("%02dC35112%04d/000%02d", year, 1000+c.rnd.Intn(9000), 10+c.seq%90)
	return serial, certificate
}

// FormatCertificateDate renders a date the way the certificate displays
// dates, e.g. "NOV.25,2025".
func FormatCertificateDate(t time.Time) string {
	return strings.ToUpper(t.Format(certificateDateLayout))
}
