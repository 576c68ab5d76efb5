package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
	"github.com/whistlebase/whistlebase/internal/metrics"
)

const metricsDomain = "channels"

// channelUseCaseWithMetrics decorates ChannelUseCase with metrics instrumentation.
type channelUseCaseWithMetrics struct {
	next    ChannelUseCase
	metrics metrics.BusinessMetrics
}

// NewChannelUseCaseWithMetrics wraps a ChannelUseCase with metrics recording.
func NewChannelUseCaseWithMetrics(useCase ChannelUseCase, m metrics.BusinessMetrics) ChannelUseCase {
	return &channelUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *channelUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	c.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (c *channelUseCaseWithMetrics) Create(
	ctx context.Context,
	input *channelsDomain.CreateChannelInput,
) (*channelsDomain.Channel, error) {
	start := time.Now()
	ch, err := c.next.Create(ctx, input)
	c.record(ctx, "channel_create", start, err)
	return ch, err
}

func (c *channelUseCaseWithMetrics) Get(
	ctx context.Context,
	orgID, channelID uuid.UUID,
) (*channelsDomain.Channel, error) {
	start := time.Now()
	ch, err := c.next.Get(ctx, orgID, channelID)
	c.record(ctx, "channel_get", start, err)
	return ch, err
}

func (c *channelUseCaseWithMetrics) List(ctx context.Context, orgID uuid.UUID) ([]*channelsDomain.Channel, error) {
	start := time.Now()
	channels, err := c.next.List(ctx, orgID)
	c.record(ctx, "channel_list", start, err)
	return channels, err
}

func (c *channelUseCaseWithMetrics) Update(
	ctx context.Context,
	input *channelsDomain.UpdateChannelInput,
) (*channelsDomain.Channel, error) {
	start := time.Now()
	ch, err := c.next.Update(ctx, input)
	c.record(ctx, "channel_update", start, err)
	return ch, err
}

func (c *channelUseCaseWithMetrics) Delete(ctx context.Context, orgID, channelID uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, orgID, channelID)
	c.record(ctx, "channel_delete", start, err)
	return err
}

func (c *channelUseCaseWithMetrics) CheckAccessCode(ctx context.Context, code string) (bool, error) {
	start := time.Now()
	available, err := c.next.CheckAccessCode(ctx, code)
	c.record(ctx, "access_code_check", start, err)
	return available, err
}

func (c *channelUseCaseWithMetrics) GenerateAccessCode(ctx context.Context) (string, error) {
	start := time.Now()
	code, err := c.next.GenerateAccessCode(ctx)
	c.record(ctx, "access_code_generate", start, err)
	return code, err
}

func (c *channelUseCaseWithMetrics) Resolve(
	ctx context.Context,
	code string,
) (*channelsDomain.ReportingChannel, error) {
	start := time.Now()
	rc, err := c.next.Resolve(ctx, code)
	c.record(ctx, "access_code_resolve", start, err)
	return rc, err
}

func (c *channelUseCaseWithMetrics) Counts(ctx context.Context, orgID uuid.UUID) (*channelsDomain.Counts, error) {
	start := time.Now()
	counts, err := c.next.Counts(ctx, orgID)
	c.record(ctx, "channel_counts", start, err)
	return counts, err
}
