// Package http provides HTTP handlers for case submission, the case conversation and
// encrypted attachments.
//
// Case endpoints serve two kinds of callers. Members authenticate with a session
// token and see their organization's cases. Reporters have no account: they prove
// ownership of a case with its public key in the X-Reporter-Public-Key header.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHttp "github.com/whistlebase/whistlebase/internal/auth/http"
	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	"github.com/whistlebase/whistlebase/internal/cases/http/dto"
	casesUseCase "github.com/whistlebase/whistlebase/internal/cases/usecase"
	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
	"github.com/whistlebase/whistlebase/internal/httputil"
	customValidation "github.com/whistlebase/whistlebase/internal/validation"
)

const (
	// ReporterPublicKeyHeader carries the case public key of an anonymous reporter.
	ReporterPublicKeyHeader = "X-Reporter-Public-Key"

	// AttachmentIVHeader carries the standard base64 IV of a downloaded attachment.
	AttachmentIVHeader = "X-Attachment-IV"

	// multipartOverhead is the allowance for form fields and part headers on top of the
	// attachment size limit.
	multipartOverhead = 1 << 20
)

// CaseHandler handles HTTP requests for cases.
type CaseHandler struct {
	caseUseCase       casesUseCase.CaseUseCase
	maxAttachmentSize int64
	logger            *slog.Logger
}

// NewCaseHandler creates a new case handler. maxAttachmentSize bounds upload request
// bodies; zero disables the bound.
func NewCaseHandler(
	useCase casesUseCase.CaseUseCase,
	maxAttachmentSize int64,
	logger *slog.Logger,
) *CaseHandler {
	return &CaseHandler{
		caseUseCase:       useCase,
		maxAttachmentSize: maxAttachmentSize,
		logger:            logger,
	}
}

// actor identifies the caller. A session takes precedence over the reporter header.
func actor(c *gin.Context) (casesDomain.Actor, bool) {
	if session, ok := authHttp.GetSession(c.Request.Context()); ok {
		return casesDomain.MemberActor(session.MemberID, session.OrganizationID), true
	}
	if publicKey := c.GetHeader(ReporterPublicKeyHeader); publicKey != "" {
		return casesDomain.ReporterActor(publicKey), true
	}
	return casesDomain.Actor{}, false
}

func (h *CaseHandler) requireActor(c *gin.Context) (casesDomain.Actor, bool) {
	a, ok := actor(c)
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
	}
	return a, ok
}

func (h *CaseHandler) requireMember(c *gin.Context) (casesDomain.Actor, bool) {
	a, ok := actor(c)
	if !ok || !a.IsMember() {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return casesDomain.Actor{}, false
	}
	return a, true
}

func (h *CaseHandler) uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid %s: must be a valid UUID", label), h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// SubmitHandler stores a new case in the organization behind a channel access code.
// POST /v1/channels/by-access-code/:code/cases - No authentication required.
// Returns 201 Created with the case ID; unknown and inactive channels are 404 Not Found.
func (h *CaseHandler) SubmitHandler(c *gin.Context) {
	var req dto.SubmitCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	created, err := h.caseUseCase.Submit(c.Request.Context(), req.ToInput(c.Param("code")))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitCaseResponse{
		ID:        created.ID.String(),
		ChannelID: created.ChannelID.String(),
		Status:    string(created.Status),
		CreatedAt: created.CreatedAt,
	})
}

// GetHandler returns a case with its messages and attachments.
// GET /v1/cases/:id - Requires a session or the reporter public key header.
func (h *CaseHandler) GetHandler(c *gin.Context) {
	a, ok := h.requireActor(c)
	if !ok {
		return
	}
	caseID, ok := h.uuidParam(c, "id", "case id")
	if !ok {
		return
	}

	detail, err := h.caseUseCase.Get(c.Request.Context(), caseID, a)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCaseDetailToResponse(detail))
}

// ListHandler lists the organization's cases with pagination.
// GET /v1/cases?offset=0&limit=50 - Requires a session.
func (h *CaseHandler) ListHandler(c *gin.Context) {
	a, ok := h.requireMember(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	cases, err := h.caseUseCase.List(c.Request.Context(), a.OrganizationID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCasesToListResponse(cases))
}

// UpdateStatusHandler changes a case's status and justification.
// PATCH /v1/cases/:id/status - Requires a session.
func (h *CaseHandler) UpdateStatusHandler(c *gin.Context) {
	a, ok := h.requireMember(c)
	if !ok {
		return
	}
	caseID, ok := h.uuidParam(c, "id", "case id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	updated, err := h.caseUseCase.UpdateStatus(c.Request.Context(), req.ToInput(caseID), a)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCaseToResponse(updated))
}

// StatsHandler returns dashboard counters for the organization.
// GET /v1/cases/stats - Requires a session.
func (h *CaseHandler) StatsHandler(c *gin.Context) {
	a, ok := h.requireMember(c)
	if !ok {
		return
	}

	stats, err := h.caseUseCase.Stats(c.Request.Context(), a.OrganizationID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatsToResponse(stats))
}

// SendMessageHandler appends an encrypted message to a case.
// POST /v1/cases/:id/messages - Requires a session or the reporter public key header.
// Returns 201 Created with the message and its linked attachments.
func (h *CaseHandler) SendMessageHandler(c *gin.Context) {
	a, ok := h.requireActor(c)
	if !ok {
		return
	}
	caseID, ok := h.uuidParam(c, "id", "case id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	detail, err := h.caseUseCase.SendMessage(c.Request.Context(), req.ToInput(caseID, a))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMessageToResponse(detail))
}

// UploadAttachmentHandler stores an encrypted file. The multipart form carries the
// ciphertext in "file" plus the "iv", "file_name" and "mime_type" fields.
// POST /v1/cases/:id/attachments - Requires a session or the reporter public key header.
// Returns 201 Created with the attachment metadata.
func (h *CaseHandler) UploadAttachmentHandler(c *gin.Context) {
	a, ok := h.requireActor(c)
	if !ok {
		return
	}
	caseID, ok := h.uuidParam(c, "id", "case id")
	if !ok {
		return
	}

	if h.maxAttachmentSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAttachmentSize+multipartOverhead)
	}

	var req dto.UploadAttachmentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.handleUploadError(c, err)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.handleUploadError(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.Wrap(err, "failed to open uploaded file"), h.logger)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	attachment, err := h.caseUseCase.UploadAttachment(c.Request.Context(), &casesDomain.UploadAttachmentInput{
		CaseID:   caseID,
		Actor:    a,
		FileName: req.FileName,
		MimeType: req.MimeType,
		IV:       req.IV,
		Size:     fileHeader.Size,
		Body:     file,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAttachmentToResponse(attachment))
}

func (h *CaseHandler) handleUploadError(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		httputil.HandleErrorGin(c, casesDomain.ErrAttachmentTooLarge, h.logger)
		return
	}
	httputil.HandleBadRequestGin(c, err, h.logger)
}

// DownloadAttachmentHandler streams an attachment's ciphertext. The IV is returned in
// the X-Attachment-IV header; decryption happens on the client.
// GET /v1/cases/:id/attachments/:attachmentID - Requires a session or the reporter
// public key header.
func (h *CaseHandler) DownloadAttachmentHandler(c *gin.Context) {
	a, ok := h.requireActor(c)
	if !ok {
		return
	}
	caseID, ok := h.uuidParam(c, "id", "case id")
	if !ok {
		return
	}
	attachmentID, ok := h.uuidParam(c, "attachmentID", "attachment id")
	if !ok {
		return
	}

	content, err := h.caseUseCase.DownloadAttachment(c.Request.Context(), caseID, attachmentID, a)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header(AttachmentIVHeader, cryptoDomain.EncodeWeb(content.Attachment.IV))
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": content.Attachment.FileName,
	}))
	c.Header("Content-Length", strconv.Itoa(len(content.Ciphertext)))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/octet-stream", content.Ciphertext)
}
