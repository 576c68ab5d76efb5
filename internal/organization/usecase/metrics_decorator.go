package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/whistlebase/whistlebase/internal/metrics"
	orgDomain "github.com/whistlebase/whistlebase/internal/organization/domain"
)

const metricsDomain = "organizations"

// organizationUseCaseWithMetrics decorates OrganizationUseCase with metrics instrumentation.
type organizationUseCaseWithMetrics struct {
	next    OrganizationUseCase
	metrics metrics.BusinessMetrics
}

// NewOrganizationUseCaseWithMetrics wraps an OrganizationUseCase with metrics recording.
func NewOrganizationUseCaseWithMetrics(useCase OrganizationUseCase, m metrics.BusinessMetrics) OrganizationUseCase {
	return &organizationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (o *organizationUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	o.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	o.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (o *organizationUseCaseWithMetrics) Signup(
	ctx context.Context,
	input *orgDomain.SignupInput,
) (*orgDomain.SignupOutput, error) {
	start := time.Now()
	output, err := o.next.Signup(ctx, input)
	o.record(ctx, "signup", start, err)
	return output, err
}

func (o *organizationUseCaseWithMetrics) Get(ctx context.Context, orgID uuid.UUID) (*orgDomain.Organization, error) {
	start := time.Now()
	org, err := o.next.Get(ctx, orgID)
	o.record(ctx, "organization_get", start, err)
	return org, err
}

func (o *organizationUseCaseWithMetrics) GetPublicKey(ctx context.Context, orgID uuid.UUID) (string, error) {
	start := time.Now()
	publicKey, err := o.next.GetPublicKey(ctx, orgID)
	o.record(ctx, "public_key_get", start, err)
	return publicKey, err
}
