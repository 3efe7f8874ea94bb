// Package api exposes the engine to the UI layer over HTTP. Every
// mutating response carries a notification the UI renders as a
// transient toast.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wargadata-dev/warga-store/internal/export"
	"github.com/wargadata-dev/warga-store/internal/registry"
	"github.com/wargadata-dev/warga-store/internal/validate"
)

// Notification is the closed variant the UI consumes: a severity tag
// plus a user-facing message.
type Notification struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Notification severities.
const (
	NoteSuccess = "success"
	NoteDanger  = "danger"
	NoteWarning = "warning"
	NoteInfo    = "info"
)

type Handler struct {
	Registry *registry.Registry
	Exporter *export.Coordinator
}

// ListRecords returns the registry filtered by the optional ?q= query,
// newest-first, together with the total registry count.
func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.Registry.Search(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   h.Registry.Count(),
		"records": records,
	})
}

// CreateRecord validates the raw field strings and adds a record.
func (h *Handler) CreateRecord(c *gin.Context) {
	var input struct {
		Name       string `json:"name"`
		NationalID string `json:"nationalId"`
		Address    string `json:"address"`
		Amount     string `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.Registry.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Validate(input.Name, input.NationalID, existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"notification": rejectionNote(err)})
		return
	}

	rec, err := h.Registry.Add(input.Name, input.NationalID, input.Address, input.Amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"record":       rec,
		"notification": Notification{NoteSuccess, "Data berhasil ditambahkan!"},
	})
}

// DeleteRecord removes one record by id. A missing id is a no-op and
// still reports success, matching filter semantics.
func (h *Handler) DeleteRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}
	if err := h.Registry.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notification": Notification{NoteSuccess, "Data berhasil dihapus!"},
	})
}

// DeleteAll clears the registry. Irreversible; the UI confirms before
// calling.
func (h *Handler) DeleteAll(c *gin.Context) {
	if err := h.Registry.DeleteAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notification": Notification{NoteWarning, "Semua data berhasil dihapus!"},
	})
}

// ExportExcel streams the spreadsheet export as a download.
func (h *Handler) ExportExcel(c *gin.Context) {
	h.deliver(c, func() (*export.File, error) { return h.Exporter.ExportExcel() })
}

// ExportPDF streams the PDF export. The handler does not respond until
// the rasterization step resolves.
func (h *Handler) ExportPDF(c *gin.Context) {
	h.deliver(c, func() (*export.File, error) { return h.Exporter.ExportPDF(c.Request.Context()) })
}

// ExportWord streams the Word-compatible export.
func (h *Handler) ExportWord(c *gin.Context) {
	h.deliver(c, func() (*export.File, error) { return h.Exporter.ExportWord() })
}

func (h *Handler) deliver(c *gin.Context, build func() (*export.File, error)) {
	f, err := build()
	if errors.Is(err, export.ErrEmptyRegistry) {
		c.JSON(http.StatusConflict, gin.H{
			"notification": Notification{NoteDanger, "Tidak ada data untuk diunduh!"},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+f.Name+`"`)
	c.Data(http.StatusOK, f.MIME, f.Data)
}

// rejectionNote maps validation sentinels to the user-facing messages.
// A duplicate national id is a warning, the structural defects are
// danger.
func rejectionNote(err error) Notification {
	switch {
	case errors.Is(err, validate.ErrNameRequired):
		return Notification{NoteDanger, "Nama tidak boleh kosong!"}
	case errors.Is(err, validate.ErrNameTooShort):
		return Notification{NoteDanger, "Nama minimal 3 karakter!"}
	case errors.Is(err, validate.ErrNationalIDFormat):
		return Notification{NoteDanger, "NIK harus 16 digit angka!"}
	case errors.Is(err, validate.ErrNationalIDTaken):
		return Notification{NoteWarning, "NIK sudah terdaftar!"}
	default:
		return Notification{NoteDanger, err.Error()}
	}
}
