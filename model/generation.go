package model

import (
	"time"
)

// Generation is a history entry for one certificate generation request. The
// certificate record itself is per-request and discarded after rendering;
// only metadata and the assigned numbers are kept.
type Generation struct {
	ID                string    `json:"id"`
	Filename          string    `json:"filename,omitempty"`
	Source            string    `json:"source"` // bill, combined, manual
	Status            string    `json:"status"` // completed, failed
	SerialNumber      string    `json:"serial_number,omitempty"`
	CertificateNumber string    `json:"certificate_number,omitempty"`
	ArchiveURL        string    `json:"archive_url,omitempty"`
	ErrorMsg          string    `json:"error_msg,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Generation source constants
const (
	SourceBill     = "bill"
	SourceCombined = "combined"
	SourceManual   = "manual"
)

// Generation status constants
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)
