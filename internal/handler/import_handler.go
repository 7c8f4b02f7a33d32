package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/gpx-records/internal/gpx"
	"github.com/jengzang/gpx-records/internal/models"
	"github.com/jengzang/gpx-records/internal/service"
	"github.com/jengzang/gpx-records/pkg/response"
)

// ImportHandler handles HTTP requests for GPX imports. Requested paths are
// relative to the import root the service loads from.
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// CreateImport handles POST /api/v1/imports
func (h *ImportHandler) CreateImport(c *gin.Context) {
	// Parse request body
	var req models.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	for _, p := range req.Paths {
		if !filepath.IsLocal(p) {
			response.BadRequest(c, fmt.Sprintf("Invalid path %q", p))
			return
		}
	}

	// Load and store files
	imports, err := h.importService.ImportFiles(c.Request.Context(), req.Paths)
	if err != nil {
		if kind := gpx.KindOf(err); kind != 0 {
			response.ErrorWithKind(c, statusForKind(err, kind), kind.String(), err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Created(c, gin.H{
		"data":  imports,
		"count": len(imports),
	})
}

// GetImport handles GET /api/v1/imports/:id
func (h *ImportHandler) GetImport(c *gin.Context) {
	imp, err := h.importService.GetImport(c.Param("id"))
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c, "Import not found")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, imp)
}

// ListImports handles GET /api/v1/imports
func (h *ImportHandler) ListImports(c *gin.Context) {
	// Parse limit
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	imports, err := h.importService.ListImports(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"data":  imports,
		"count": len(imports),
	})
}

func statusForKind(err error, kind gpx.ErrorKind) int {
	switch kind {
	case gpx.KindResourceLimit:
		return http.StatusRequestEntityTooLarge
	case gpx.KindFormat, gpx.KindSemantic:
		return http.StatusUnprocessableEntity
	default:
		if errors.Is(err, gpx.ErrNotRegular) || errors.Is(err, gpx.ErrEmptyFile) {
			return http.StatusBadRequest
		}
		return http.StatusNotFound
	}
}
