package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	"github.com/whistlebase/whistlebase/internal/metrics"
)

const metricsDomain = "cases"

// caseUseCaseWithMetrics decorates CaseUseCase with metrics instrumentation. Besides
// operation counts and durations it records the size of every ciphertext that crosses
// the API.
type caseUseCaseWithMetrics struct {
	next    CaseUseCase
	metrics metrics.BusinessMetrics
}

// NewCaseUseCaseWithMetrics wraps a CaseUseCase with metrics recording.
func NewCaseUseCaseWithMetrics(useCase CaseUseCase, m metrics.BusinessMetrics) CaseUseCase {
	return &caseUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *caseUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	u.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (u *caseUseCaseWithMetrics) Submit(
	ctx context.Context,
	input *casesDomain.SubmitCaseInput,
) (*casesDomain.Case, error) {
	start := time.Now()
	c, err := u.next.Submit(ctx, input)
	u.record(ctx, "case_submit", start, err)
	if err == nil {
		u.metrics.RecordPayloadSize(ctx, metricsDomain, "case_submit", int64(len(c.Envelope.Content.Ciphertext)))
	}
	return c, err
}

func (u *caseUseCaseWithMetrics) Get(
	ctx context.Context,
	caseID uuid.UUID,
	actor casesDomain.Actor,
) (*casesDomain.CaseDetail, error) {
	start := time.Now()
	detail, err := u.next.Get(ctx, caseID, actor)
	u.record(ctx, "case_get", start, err)
	return detail, err
}

func (u *caseUseCaseWithMetrics) List(
	ctx context.Context,
	orgID uuid.UUID,
	offset, limit int,
) ([]*casesDomain.Case, error) {
	start := time.Now()
	cases, err := u.next.List(ctx, orgID, offset, limit)
	u.record(ctx, "case_list", start, err)
	return cases, err
}

func (u *caseUseCaseWithMetrics) UpdateStatus(
	ctx context.Context,
	input *casesDomain.UpdateStatusInput,
	actor casesDomain.Actor,
) (*casesDomain.Case, error) {
	start := time.Now()
	c, err := u.next.UpdateStatus(ctx, input, actor)
	u.record(ctx, "case_status_update", start, err)
	return c, err
}

func (u *caseUseCaseWithMetrics) Stats(ctx context.Context, orgID uuid.UUID) (*casesDomain.Stats, error) {
	start := time.Now()
	stats, err := u.next.Stats(ctx, orgID)
	u.record(ctx, "case_stats", start, err)
	return stats, err
}

func (u *caseUseCaseWithMetrics) SendMessage(
	ctx context.Context,
	input *casesDomain.SendMessageInput,
) (*casesDomain.MessageDetail, error) {
	start := time.Now()
	detail, err := u.next.SendMessage(ctx, input)
	u.record(ctx, "message_send", start, err)
	if err == nil {
		u.metrics.RecordPayloadSize(ctx, metricsDomain, "message_send", int64(len(detail.Message.Payload.Ciphertext)))
	}
	return detail, err
}

func (u *caseUseCaseWithMetrics) UploadAttachment(
	ctx context.Context,
	input *casesDomain.UploadAttachmentInput,
) (*casesDomain.Attachment, error) {
	start := time.Now()
	attachment, err := u.next.UploadAttachment(ctx, input)
	u.record(ctx, "attachment_upload", start, err)
	if err == nil {
		u.metrics.RecordPayloadSize(ctx, metricsDomain, "attachment_upload", attachment.Size)
	}
	return attachment, err
}

func (u *caseUseCaseWithMetrics) DownloadAttachment(
	ctx context.Context,
	caseID, attachmentID uuid.UUID,
	actor casesDomain.Actor,
) (*casesDomain.AttachmentContent, error) {
	start := time.Now()
	content, err := u.next.DownloadAttachment(ctx, caseID, attachmentID, actor)
	u.record(ctx, "attachment_download", start, err)
	return content, err
}
