package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/whistlebase/whistlebase/internal/auth/usecase"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"
	"github.com/whistlebase/whistlebase/internal/httputil"
)

const bearerPrefix = "bearer "

// bearerToken extracts the token from an "Authorization: Bearer <token>" header. The
// scheme is matched case-insensitively. ok is false when the header is absent.
func bearerToken(c *gin.Context) (token string, present bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", true
	}
	return strings.TrimSpace(header[len(bearerPrefix):]), true
}

// AuthenticationMiddleware requires a valid session token in the Authorization header
// and stores the session in the request context.
//
// Missing, malformed, expired and forged tokens all yield 401 Unauthorized.
func AuthenticationMiddleware(loginUseCase authUseCase.LoginUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present || token == "" {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		session, err := loginUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithSession(c.Request.Context(), session))

		logger.Debug("authentication successful",
			slog.String("member_id", session.MemberID.String()),
			slog.String("organization_id", session.OrganizationID.String()))

		c.Next()
	}
}

// OptionalAuthenticationMiddleware authenticates the request when an Authorization
// header is present and lets anonymous requests through untouched. A header that is
// present but invalid is still rejected, so a member never silently falls back to
// reporter access.
func OptionalAuthenticationMiddleware(loginUseCase authUseCase.LoginUseCase, logger *slog.Logger) gin.HandlerFunc {
	required := AuthenticationMiddleware(loginUseCase, logger)
	return func(c *gin.Context) {
		if _, present := bearerToken(c); !present {
			c.Next()
			return
		}
		required(c)
	}
}
