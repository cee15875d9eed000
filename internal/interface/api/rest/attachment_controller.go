package rest

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"finance-tracker-api/internal/application/ports"
	"finance-tracker-api/internal/infrastructure/jwt"
	attachmentDTO "finance-tracker-api/internal/interface/api/rest/dto/attachment"
	"finance-tracker-api/internal/interface/api/rest/middleware"
	"finance-tracker-api/internal/interface/api/rest/validator"
)

type AttachmentController struct {
	attachmentService ports.AttachmentService
	orphanService     ports.OrphanService
	logger            *zap.Logger
	maxUploadBytes    int64
}

func NewAttachmentController(
	r *gin.Engine,
	attachmentService ports.AttachmentService,
	orphanService ports.OrphanService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	maxUploadBytes int64,
) *AttachmentController {
	ac := &AttachmentController{
		attachmentService: attachmentService,
		orphanService:     orphanService,
		logger:            logger,
		maxUploadBytes:    maxUploadBytes,
	}

	auth := middleware.AuthMiddleware(jwtService)
	r.POST(RouteAttachments, auth, ac.CreateAttachmentHandler)
	r.GET(RouteRecordAttachments, auth, ac.GetRecordAttachmentsHandler)
	r.PUT(RouteAttachment, auth, ac.ReplaceAttachmentHandler)
	r.DELETE(RouteAttachment, auth, ac.RemoveAttachmentHandler)
	r.GET(RouteAttachmentOrphans, auth, ac.GetOrphansHandler)

	return ac
}

// readUpload validates and buffers the multipart file. Files above the
// configured size limit are rejected before any remote call happens.
func readUpload(c *gin.Context, field string, maxBytes int64) (*multipart.FileHeader, []byte, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return nil, nil, false
	}
	if fh.Size <= 0 || fh.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large or empty"})
		return nil, nil, false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return nil, nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return nil, nil, false
	}

	return fh, data, true
}

func (ac *AttachmentController) CreateAttachmentHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	recordType, err := validator.ValidateRecordType(c.PostForm("record_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ok, recordID := validator.IsUUID(c.PostForm("record_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "record_id must be a valid UUID"})
		return
	}
	sum, err := validator.ValidateChecksum(c.PostForm("checksum"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fh, data, ok := readUpload(c, "file", ac.maxUploadBytes)
	if !ok {
		return
	}

	a, err := ac.attachmentService.Upload(c.Request.Context(), userID, ports.UploadInput{
		RecordType: recordType,
		RecordID:   recordID,
		Filename:   fh.Filename,
		MimeType:   fh.Header.Get("Content-Type"),
		Data:       data,
		Checksum:   sum,
	})
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusCreated, attachmentDTO.ToResponseAttachment(*a))
}

func (ac *AttachmentController) GetRecordAttachmentsHandler(c *gin.Context) {
	recordType, err := validator.ValidateRecordType(c.Param("record_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ok, recordID := validator.IsUUID(c.Param("record_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "record_id must be a valid UUID"})
		return
	}

	as, err := ac.attachmentService.List(c.Request.Context(), recordType, recordID)
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusOK, attachmentDTO.ResponseData{
		Data: attachmentDTO.ToResponseAttachments(as),
	})
}

func (ac *AttachmentController) ReplaceAttachmentHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	ok, attachmentID := validator.IsUUID(c.Param("attachment_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "attachment_id must be a valid UUID"})
		return
	}
	sum, err := validator.ValidateChecksum(c.PostForm("checksum"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fh, data, ok := readUpload(c, "file", ac.maxUploadBytes)
	if !ok {
		return
	}

	a, err := ac.attachmentService.Replace(c.Request.Context(), userID, attachmentID, ports.ReplaceInput{
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
		Checksum: sum,
	})
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusOK, attachmentDTO.ToResponseAttachment(*a))
}

func (ac *AttachmentController) RemoveAttachmentHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	ok, attachmentID := validator.IsUUID(c.Param("attachment_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "attachment_id must be a valid UUID"})
		return
	}

	a, err := ac.attachmentService.Remove(c.Request.Context(), userID, attachmentID)
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusOK, attachmentDTO.ToResponseAttachment(*a))
}

func (ac *AttachmentController) GetOrphansHandler(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	orphans, err := ac.orphanService.ScanOrphans(c.Request.Context(), userID)
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusOK, attachmentDTO.ToResponseOrphans(orphans))
}
