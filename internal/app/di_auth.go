package app

import (
	"fmt"

	authHTTP "github.com/whistlebase/whistlebase/internal/auth/http"
	authService "github.com/whistlebase/whistlebase/internal/auth/service"
	authUseCase "github.com/whistlebase/whistlebase/internal/auth/usecase"
)

// PasswordService returns the member login password hasher.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	var err error
	c.passwordServiceInit.Do(func() {
		c.passwordService, err = authService.NewPasswordService()
		if err != nil {
			c.initErrors["passwordService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordService"]; exists {
		return nil, storedErr
	}
	return c.passwordService, nil
}

// SessionTokenService returns the session token signer keyed by SessionSigningKey.
func (c *Container) SessionTokenService() (authService.SessionTokenService, error) {
	var err error
	c.sessionTokenServiceInit.Do(func() {
		c.sessionTokenService, err = authService.NewSessionTokenService(c.config.SessionSigningKey)
		if err != nil {
			c.initErrors["sessionTokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionTokenService"]; exists {
		return nil, storedErr
	}
	return c.sessionTokenService, nil
}

// LoginUseCase returns the login use case, wrapped with metrics.
func (c *Container) LoginUseCase() (authUseCase.LoginUseCase, error) {
	var err error
	c.loginUseCaseInit.Do(func() {
		c.loginUseCase, err = c.initLoginUseCase()
		if err != nil {
			c.initErrors["loginUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["loginUseCase"]; exists {
		return nil, storedErr
	}
	return c.loginUseCase, nil
}

// LoginHandler returns the login HTTP handler.
func (c *Container) LoginHandler() (*authHTTP.LoginHandler, error) {
	var err error
	c.loginHandlerInit.Do(func() {
		var useCase authUseCase.LoginUseCase
		useCase, err = c.LoginUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get login use case for login handler: %w", err)
			c.initErrors["loginHandler"] = err
			return
		}
		c.loginHandler = authHTTP.NewLoginHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["loginHandler"]; exists {
		return nil, storedErr
	}
	return c.loginHandler, nil
}

func (c *Container) initLoginUseCase() (authUseCase.LoginUseCase, error) {
	orgRepo, err := c.OrganizationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get organization repository for login use case: %w", err)
	}

	memberRepo, err := c.MemberRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get member repository for login use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for login use case: %w", err)
	}

	tokenService, err := c.SessionTokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get session token service for login use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for login use case: %w", err)
	}

	useCase := authUseCase.NewLoginUseCase(
		c.config,
		orgRepo,
		memberRepo,
		passwordService,
		tokenService,
		c.SessionKeyCustody(),
	)
	return authUseCase.NewLoginUseCaseWithMetrics(useCase, businessMetrics), nil
}
