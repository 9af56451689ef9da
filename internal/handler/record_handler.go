package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"descgate/internal/csvexport"
	"descgate/internal/domain"
	"descgate/internal/service"
)

// RecordHandler handles gate record query and export endpoints.
type RecordHandler struct {
	gateService service.GateService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(gateService service.GateService) *RecordHandler {
	return &RecordHandler{gateService: gateService}
}

// GetByID handles GET /api/v1/records/:id
func (h *RecordHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid record ID")
		return
	}

	rec, err := h.gateService.GetRecord(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// ArchiveURL handles GET /api/v1/records/:id/archive
func (h *RecordHandler) ArchiveURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid record ID")
		return
	}

	url, err := h.gateService.ArchiveURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// List handles GET /api/v1/records
func (h *RecordHandler) List(c *gin.Context) {
	filters, ok := parseRecordFilters(c)
	if !ok {
		return
	}
	filters.Offset, filters.Limit = parsePagination(c)

	recs, total, err := h.gateService.ListRecords(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, recs, PagMeta{Total: total, Offset: filters.Offset, Limit: filters.Limit})
}

// ExportCSV handles GET /api/v1/records/export
func (h *RecordHandler) ExportCSV(c *gin.Context) {
	filters, ok := parseRecordFilters(c)
	if !ok {
		return
	}

	recs, err := h.gateService.ListRecordsForExport(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("gate_records_%s.csv", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		log.Printf("recordHandler: writing BOM: %v", err)
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		log.Printf("recordHandler: writing CSV header: %v", err)
		return
	}
	if err := w.WriteRecords(recs); err != nil {
		log.Printf("recordHandler: writing CSV rows: %v", err)
		return
	}
	if err := w.Flush(); err != nil {
		log.Printf("recordHandler: flushing CSV: %v", err)
	}
}

func parseRecordFilters(c *gin.Context) (domain.RecordFilters, bool) {
	filters := domain.RecordFilters{
		AssetID: c.Query("asset_id"),
		Status:  domain.GateStatus(c.Query("status")),
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "from must be an RFC3339 timestamp")
			return domain.RecordFilters{}, false
		}
		filters.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "to must be an RFC3339 timestamp")
			return domain.RecordFilters{}, false
		}
		filters.To = &to
	}
	return filters, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
