package usecase

import (
	"context"
	"time"

	authDomain "github.com/whistlebase/whistlebase/internal/auth/domain"
	"github.com/whistlebase/whistlebase/internal/metrics"
)

// loginUseCaseWithMetrics decorates LoginUseCase with metrics instrumentation.
type loginUseCaseWithMetrics struct {
	next    LoginUseCase
	metrics metrics.BusinessMetrics
}

// NewLoginUseCaseWithMetrics wraps a LoginUseCase with metrics recording.
func NewLoginUseCaseWithMetrics(useCase LoginUseCase, m metrics.BusinessMetrics) LoginUseCase {
	return &loginUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (l *loginUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := l.next.Login(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}
	l.metrics.RecordOperation(ctx, "auth", "login", status)
	l.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return output, err
}

func (l *loginUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*authDomain.Session, error) {
	start := time.Now()
	session, err := l.next.Authenticate(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}
	l.metrics.RecordOperation(ctx, "auth", "session_authenticate", status)
	l.metrics.RecordDuration(ctx, "auth", "session_authenticate", time.Since(start), status)

	return session, err
}
