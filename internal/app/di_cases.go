package app

import (
	"fmt"

	casesHTTP "github.com/whistlebase/whistlebase/internal/cases/http"
	casesRepository "github.com/whistlebase/whistlebase/internal/cases/repository"
	casesUseCase "github.com/whistlebase/whistlebase/internal/cases/usecase"
)

// CaseRepository returns the case repository for the configured driver.
func (c *Container) CaseRepository() (casesUseCase.CaseRepository, error) {
	var err error
	c.caseRepoInit.Do(func() {
		c.caseRepo, err = c.initCaseRepository()
		if err != nil {
			c.initErrors["caseRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["caseRepo"]; exists {
		return nil, storedErr
	}
	return c.caseRepo, nil
}

// MessageRepository returns the message repository for the configured driver.
func (c *Container) MessageRepository() (casesUseCase.MessageRepository, error) {
	var err error
	c.messageRepoInit.Do(func() {
		c.messageRepo, err = c.initMessageRepository()
		if err != nil {
			c.initErrors["messageRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["messageRepo"]; exists {
		return nil, storedErr
	}
	return c.messageRepo, nil
}

// AttachmentRepository returns the attachment metadata repository for the configured driver.
func (c *Container) AttachmentRepository() (casesUseCase.AttachmentRepository, error) {
	var err error
	c.attachmentRepoInit.Do(func() {
		c.attachmentRepo, err = c.initAttachmentRepository()
		if err != nil {
			c.initErrors["attachmentRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["attachmentRepo"]; exists {
		return nil, storedErr
	}
	return c.attachmentRepo, nil
}

// CaseUseCase returns the case use case, wrapped with metrics.
func (c *Container) CaseUseCase() (casesUseCase.CaseUseCase, error) {
	var err error
	c.caseUseCaseInit.Do(func() {
		c.caseUseCase, err = c.initCaseUseCase()
		if err != nil {
			c.initErrors["caseUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["caseUseCase"]; exists {
		return nil, storedErr
	}
	return c.caseUseCase, nil
}

// CaseHandler returns the case HTTP handler.
func (c *Container) CaseHandler() (*casesHTTP.CaseHandler, error) {
	var err error
	c.caseHandlerInit.Do(func() {
		var useCase casesUseCase.CaseUseCase
		useCase, err = c.CaseUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get case use case for case handler: %w", err)
			c.initErrors["caseHandler"] = err
			return
		}
		c.caseHandler = casesHTTP.NewCaseHandler(useCase, c.config.MaxAttachmentSizeBytes, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["caseHandler"]; exists {
		return nil, storedErr
	}
	return c.caseHandler, nil
}

func (c *Container) initCaseRepository() (casesUseCase.CaseRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for case repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return casesRepository.NewMySQLCaseRepository(db), nil
	case "postgres":
		return casesRepository.NewPostgreSQLCaseRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initMessageRepository() (casesUseCase.MessageRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for message repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return casesRepository.NewMySQLMessageRepository(db), nil
	case "postgres":
		return casesRepository.NewPostgreSQLMessageRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAttachmentRepository() (casesUseCase.AttachmentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for attachment repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return casesRepository.NewMySQLAttachmentRepository(db), nil
	case "postgres":
		return casesRepository.NewPostgreSQLAttachmentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initCaseUseCase() (casesUseCase.CaseUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for case use case: %w", err)
	}

	caseRepo, err := c.CaseRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get case repository for case use case: %w", err)
	}

	messageRepo, err := c.MessageRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get message repository for case use case: %w", err)
	}

	attachmentRepo, err := c.AttachmentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment repository for case use case: %w", err)
	}

	channelRepo, err := c.ChannelRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel repository for case use case: %w", err)
	}

	blobStore, err := c.BlobStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get blob store for case use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for case use case: %w", err)
	}

	useCase := casesUseCase.NewCaseUseCase(
		txManager,
		caseRepo,
		messageRepo,
		attachmentRepo,
		channelRepo,
		blobStore,
		c.config.MaxAttachmentSizeBytes,
		c.Logger(),
	)
	return casesUseCase.NewCaseUseCaseWithMetrics(useCase, businessMetrics), nil
}
