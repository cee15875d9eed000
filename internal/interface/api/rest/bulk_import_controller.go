package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"finance-tracker-api/internal/application/ports"
	domain "finance-tracker-api/internal/domain/bulkimport"
	"finance-tracker-api/internal/infrastructure/jwt"
	bulkimportDTO "finance-tracker-api/internal/interface/api/rest/dto/bulkimport"
	"finance-tracker-api/internal/interface/api/rest/middleware"
	"finance-tracker-api/internal/interface/api/rest/validator"
)

type BulkImportController struct {
	bulkService    ports.BulkImportService
	logger         *zap.Logger
	maxUploadBytes int64
}

func NewBulkImportController(
	r *gin.Engine,
	bulkService ports.BulkImportService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	maxUploadBytes int64,
) *BulkImportController {
	bc := &BulkImportController{
		bulkService:    bulkService,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}

	auth := middleware.AuthMiddleware(jwtService)
	r.POST(RouteBulkImport, auth, bc.StartBulkImportHandler)
	r.GET(RouteBulkImportJob, auth, bc.GetJobStatusHandler)
	r.PATCH(RouteBulkImportJob, auth, bc.CancelJobHandler)

	return bc
}

// StartBulkImportHandler accepts files[] plus a record_type and an
// optional positional record_ids[] list; files without a matching record
// id end up counted as skipped.
func (bc *BulkImportController) StartBulkImportHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	recordType, err := validator.ValidateRecordType(c.PostForm("record_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}
	fhs := form.File["files"]
	if len(fhs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required"})
		return
	}
	recordIDs := form.Value["record_ids"]

	files := make([]domain.File, 0, len(fhs))
	for idx, fh := range fhs {
		if fh.Size <= 0 || fh.Size > bc.maxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large or empty: " + fh.Filename})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file: " + fh.Filename})
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, bc.maxUploadBytes))
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file: " + fh.Filename})
			return
		}

		var recordID *uuid.UUID
		if idx < len(recordIDs) && recordIDs[idx] != "" {
			ok, id := validator.IsUUID(recordIDs[idx])
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "record_ids must contain valid UUIDs"})
				return
			}
			recordID = &id
		}

		files = append(files, domain.File{
			Filename:   fh.Filename,
			MimeType:   fh.Header.Get("Content-Type"),
			Data:       data,
			RecordType: recordType,
			RecordID:   recordID,
		})
	}

	job, err := bc.bulkService.Start(c.Request.Context(), userID, files)
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}

	c.JSON(http.StatusAccepted, bulkimportDTO.ToResponseJob(*job))
}

func (bc *BulkImportController) GetJobStatusHandler(c *gin.Context) {
	ok, jobID := validator.IsUUID(c.Param("job_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job_id must be a valid UUID"})
		return
	}

	job, err := bc.bulkService.JobStatus(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}

	c.JSON(http.StatusOK, bulkimportDTO.ToResponseJob(*job))
}

func (bc *BulkImportController) CancelJobHandler(c *gin.Context) {
	ok, jobID := validator.IsUUID(c.Param("job_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job_id must be a valid UUID"})
		return
	}

	job, err := bc.bulkService.Cancel(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}

	c.JSON(http.StatusOK, bulkimportDTO.ToResponseJob(*job))
}
