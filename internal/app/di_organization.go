package app

import (
	"fmt"

	orgHTTP "github.com/whistlebase/whistlebase/internal/organization/http"
	orgRepository "github.com/whistlebase/whistlebase/internal/organization/repository"
	orgUseCase "github.com/whistlebase/whistlebase/internal/organization/usecase"
)

// OrganizationRepository returns the organization repository for the configured driver.
func (c *Container) OrganizationRepository() (orgUseCase.OrganizationRepository, error) {
	var err error
	c.organizationRepoInit.Do(func() {
		c.organizationRepo, err = c.initOrganizationRepository()
		if err != nil {
			c.initErrors["organizationRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["organizationRepo"]; exists {
		return nil, storedErr
	}
	return c.organizationRepo, nil
}

// MemberRepository returns the member repository for the configured driver.
func (c *Container) MemberRepository() (orgUseCase.MemberRepository, error) {
	var err error
	c.memberRepoInit.Do(func() {
		c.memberRepo, err = c.initMemberRepository()
		if err != nil {
			c.initErrors["memberRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["memberRepo"]; exists {
		return nil, storedErr
	}
	return c.memberRepo, nil
}

// OrganizationUseCase returns the organization use case, wrapped with metrics.
func (c *Container) OrganizationUseCase() (orgUseCase.OrganizationUseCase, error) {
	var err error
	c.organizationUseCaseInit.Do(func() {
		c.organizationUseCase, err = c.initOrganizationUseCase()
		if err != nil {
			c.initErrors["organizationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["organizationUseCase"]; exists {
		return nil, storedErr
	}
	return c.organizationUseCase, nil
}

// OrganizationHandler returns the organization HTTP handler.
func (c *Container) OrganizationHandler() (*orgHTTP.OrganizationHandler, error) {
	var err error
	c.organizationHandlerInit.Do(func() {
		var useCase orgUseCase.OrganizationUseCase
		useCase, err = c.OrganizationUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get organization use case for organization handler: %w", err)
			c.initErrors["organizationHandler"] = err
			return
		}
		c.organizationHandler = orgHTTP.NewOrganizationHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["organizationHandler"]; exists {
		return nil, storedErr
	}
	return c.organizationHandler, nil
}

func (c *Container) initOrganizationRepository() (orgUseCase.OrganizationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for organization repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return orgRepository.NewMySQLOrganizationRepository(db), nil
	case "postgres":
		return orgRepository.NewPostgreSQLOrganizationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initMemberRepository() (orgUseCase.MemberRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for member repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return orgRepository.NewMySQLMemberRepository(db), nil
	case "postgres":
		return orgRepository.NewPostgreSQLMemberRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initOrganizationUseCase() (orgUseCase.OrganizationUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for organization use case: %w", err)
	}

	orgRepo, err := c.OrganizationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get organization repository for organization use case: %w", err)
	}

	memberRepo, err := c.MemberRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get member repository for organization use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for organization use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for organization use case: %w", err)
	}

	useCase := orgUseCase.NewOrganizationUseCase(txManager, orgRepo, memberRepo, passwordService)
	return orgUseCase.NewOrganizationUseCaseWithMetrics(useCase, businessMetrics), nil
}
