package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/widget-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	DefaultMaxUploadBytes = 10 << 20
	xlsxContentType       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ImportHandler struct {
	BaseHandler
	importer       ContentImporter
	maxUploadBytes int64
}

func NewImportHandler(importer ContentImporter, maxUploadBytes int64, logger utils.Logger) *ImportHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &ImportHandler{
		BaseHandler:    NewBaseHandler(logger),
		importer:       importer,
		maxUploadBytes: maxUploadBytes,
	}
}

// Import converts an authoring sheet into widget content
// @Summary Import widget content
// @Description Accepts an .xlsx or .csv upload in the "file" field
// @Tags contents
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.ImportSummary}
// @Failure 400 {object} ErrorResponse
// @Router /contents/import [post]
func (h *ImportHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	header, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "A file upload is required", err, err.Error())
		return
	}

	file, err := header.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Uploaded file cannot be read", err)
		return
	}
	defer file.Close()

	h.LogRequest(c, "Importing widget content", "filename", header.Filename, "size", header.Size)

	summary, err := h.importer.ImportFromFile(c.Request.Context(), file, header.Filename)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Import processed", summary)
}

// Template downloads an example workbook with one row per widget type.
func (h *ImportHandler) Template(c *gin.Context) {
	data, err := h.importer.ExportTemplate()
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="widget-import-template.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
