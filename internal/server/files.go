package restapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/regexify/regexify/internal/core"
	"github.com/regexify/regexify/internal/domain"
	"github.com/regexify/regexify/internal/i18n"
	debuglog "github.com/regexify/regexify/internal/log"
	"github.com/regexify/regexify/internal/plugins/db/sqlite"
	"github.com/regexify/regexify/internal/storage"
	"github.com/regexify/regexify/internal/table"
)

const (
	previewRows = 5
	listLimit   = 50
)

type FilesHandler struct {
	processor *core.Processor
	files     *sqlite.FileRepository
	uploads   *storage.Uploads
	locks     *keyedMutex
}

type ProcessRequest struct {
	Text string `json:"text"`
}

type processResponse struct {
	Success bool `json:"success"`
	domain.ProcessResult
}

func NewFilesHandler(r *gin.Engine, processor *core.Processor, files *sqlite.FileRepository, uploads *storage.Uploads) *FilesHandler {
	handler := &FilesHandler{
		processor: processor,
		files:     files,
		uploads:   uploads,
		locks:     newKeyedMutex(),
	}
	r.POST("/upload/", handler.Upload)
	r.GET("/preview/:id/", handler.Preview)
	r.POST("/process/:id/", handler.Process)
	r.GET("/files/", handler.List)
	return handler
}

func (h *FilesHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, i18n.T("server_error_missing_file"))
		return
	}
	src, err := header.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	defer src.Close()

	path, err := h.uploads.Save(header.Filename, src)
	if err != nil {
		fail(c, statusFor(err), err.Error())
		return
	}

	file, err := h.files.Create(c.Request.Context(), header.Filename, path)
	if err != nil {
		_ = h.uploads.Remove(path)
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"file_id":  file.ID,
		"filename": file.Filename,
	})
}

func (h *FilesHandler) Preview(c *gin.Context) {
	file, ok := h.lookup(c)
	if !ok {
		return
	}

	unlock := h.locks.Lock(file.ID.String())
	t, err := table.ReadFile(file.FilePath)
	unlock()
	if err != nil {
		fail(c, statusFor(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"preview_data": t.Records(previewRows),
		"columns":      t.Columns(),
		"text_columns": t.TextColumns(),
		"total_rows":   t.Len(),
	})
}

// Process applies an instruction to a stored file and overwrites it when
// anything changed.
func (h *FilesHandler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		fail(c, http.StatusBadRequest, i18n.T("server_error_missing_text"))
		return
	}

	file, ok := h.lookup(c)
	if !ok {
		return
	}

	unlock := h.locks.Lock(file.ID.String())
	defer unlock()

	t, err := table.ReadFile(file.FilePath)
	if err != nil {
		fail(c, statusFor(err), err.Error())
		return
	}

	result := h.processor.Process(c.Request.Context(), t, req.Text)
	if result.MatchesFound > 0 {
		if err := table.WriteFile(file.FilePath, t); err != nil {
			fail(c, http.StatusInternalServerError, err.Error())
			return
		}
	}
	debuglog.Debug(debuglog.Basic, "processed file %s: %s\n", file.ID, result.Message)

	c.JSON(http.StatusOK, processResponse{Success: true, ProcessResult: result})
}

func (h *FilesHandler) List(c *gin.Context) {
	files, err := h.files.List(c.Request.Context(), listLimit)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "files": files})
}

func (h *FilesHandler) lookup(c *gin.Context) (*sqlite.UploadedFile, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, i18n.T("server_error_invalid_file_id"))
		return nil, false
	}
	file, err := h.files.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, statusFor(err), err.Error())
		return nil, false
	}
	return file, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sqlite.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, storage.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, storage.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, table.ErrMalformed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, status int, message string) {
	if status == http.StatusNotFound {
		message = i18n.T("server_error_file_not_found")
	}
	c.JSON(status, gin.H{"success": false, "error": message})
}
