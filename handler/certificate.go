package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eyad6789/Bill-to-OriginCertification/model"
	"github.com/eyad6789/Bill-to-OriginCertification/service"
)

type CertificateHandler struct {
	generator *service.Generator
	store     *service.GenerationStore
	archive   *service.ArchiveService // nil when archival is disabled
}

func NewCertificateHandler(generator *service.Generator, store *service.GenerationStore, archive *service.ArchiveService) *CertificateHandler {
	return &CertificateHandler{
		generator: generator,
		store:     store,
		archive:   archive,
	}
}

// Generate produces a certificate from a single Bill of Lading upload.
func (h *CertificateHandler) Generate(c *gin.Context) {
	bill, err := h.formUpload(c, "bill_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No bill_file provided"})
		return
	}

	result, err := h.generator.FromBill(c.Request.Context(), bill)
	h.respond(c, result, err, model.SourceBill, bill.Filename)
}

// GenerateCombined produces a certificate from a Bill of Lading and an
// Invoice. Either file may be omitted but not both.
func (h *CertificateHandler) GenerateCombined(c *gin.Context) {
	bill, _ := h.formUpload(c, "bill_file")
	invoice, _ := h.formUpload(c, "invoice_file")

	filename := ""
	if bill != nil {
		filename = bill.Filename
	} else if invoice != nil {
		filename = invoice.Filename
	}

	result, err := h.generator.FromBillAndInvoice(c.Request.Context(), bill, invoice)
	h.respond(c, result, err, model.SourceCombined, filename)
}

// GenerateManual produces a certificate from form fields, no documents.
func (h *CertificateHandler) GenerateManual(c *gin.Context) {
	fields := make(map[string]string)
	for _, name := range model.InputFieldNames() {
		fields[name] = c.PostForm(name)
	}

	result, err := h.generator.FromManual(c.Request.Context(), fields)
	h.respond(c, result, err, model.SourceManual, "")
}

// List returns the generation history, newest first.
func (h *CertificateHandler) List(c *gin.Context) {
	generations := h.store.List()

	result := make([]gin.H, len(generations))
	for i, gen := range generations {
		result[i] = gin.H{
			"id":                 gen.ID,
			"filename":           gen.Filename,
			"source":             gen.Source,
			"status":             gen.Status,
			"serial_number":      gen.SerialNumber,
			"certificate_number": gen.CertificateNumber,
			"archive_url":        gen.ArchiveURL,
			"error_msg":          gen.ErrorMsg,
			"created_at":         gen.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"generations": result})
}

// Get returns a single history entry
func (h *CertificateHandler) Get(c *gin.Context) {
	gen := h.store.Get(c.Param("id"))
	if gen == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Generation not found"})
		return
	}

	c.JSON(http.StatusOK, gen)
}

// Delete removes a history entry
func (h *CertificateHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	gen := h.store.Get(id)
	if gen == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Generation not found"})
		return
	}

	if h.archive != nil && gen.ArchiveURL != "" {
		if err := h.archive.DeleteBundle(c.Request.Context(), id+"/"+service.BundleFilename); err != nil {
			slog.Warn("failed to delete archived bundle", "generation_id", id, "error", err)
		}
	}
	h.store.Delete(id)

	c.JSON(http.StatusOK, gin.H{"message": "Generation deleted"})
}

// formUpload reads one multipart file into memory.
func (h *CertificateHandler) formUpload(c *gin.Context, field string) (*service.Upload, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer func(file multipart.File) { _ = file.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}, nil
}

// respond records the outcome in history and writes either the bundle or the
// mapped error.
func (h *CertificateHandler) respond(c *gin.Context, result *service.GenerateResult, err error, source, filename string) {
	gen := &model.Generation{
		ID:        uuid.New().String(),
		Filename:  filename,
		Source:    source,
		CreatedAt: time.Now(),
	}

	if err != nil {
		gen.Status = model.StatusFailed
		gen.ErrorMsg = err.Error()
		h.store.Save(gen)
		h.writeError(c, err)
		return
	}

	gen.Status = model.StatusCompleted
	gen.SerialNumber = result.Record.SerialNumber
	gen.CertificateNumber = result.Record.CertificateNumber

	if h.archive != nil {
		objectName, archiveErr := h.archive.StoreBundle(c.Request.Context(), gen.ID, result.Bundle)
		if archiveErr != nil {
			slog.Warn("bundle archival failed", "generation_id", gen.ID, "error", archiveErr)
		} else if url, urlErr := h.archive.PresignedURL(c.Request.Context(), objectName); urlErr == nil {
			gen.ArchiveURL = url
		}
	}

	h.store.Save(gen)

	c.Header("Content-Disposition", `attachment; filename="`+service.BundleFilename+`"`)
	c.Data(http.StatusOK, "application/zip", result.Bundle)
}

func (h *CertificateHandler) writeError(c *gin.Context, err error) {
	switch {
	case service.IsInputError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsValidationError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case service.IsExtractionError(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
