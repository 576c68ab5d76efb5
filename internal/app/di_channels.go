package app

import (
	"fmt"

	channelsHTTP "github.com/whistlebase/whistlebase/internal/channels/http"
	channelsRepository "github.com/whistlebase/whistlebase/internal/channels/repository"
	channelsUseCase "github.com/whistlebase/whistlebase/internal/channels/usecase"
)

// ChannelRepository returns the channel repository for the configured driver.
func (c *Container) ChannelRepository() (channelsUseCase.ChannelRepository, error) {
	var err error
	c.channelRepoInit.Do(func() {
		c.channelRepo, err = c.initChannelRepository()
		if err != nil {
			c.initErrors["channelRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["channelRepo"]; exists {
		return nil, storedErr
	}
	return c.channelRepo, nil
}

// ChannelUseCase returns the channel use case, wrapped with metrics.
func (c *Container) ChannelUseCase() (channelsUseCase.ChannelUseCase, error) {
	var err error
	c.channelUseCaseInit.Do(func() {
		c.channelUseCase, err = c.initChannelUseCase()
		if err != nil {
			c.initErrors["channelUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["channelUseCase"]; exists {
		return nil, storedErr
	}
	return c.channelUseCase, nil
}

// ChannelHandler returns the channel HTTP handler.
func (c *Container) ChannelHandler() (*channelsHTTP.ChannelHandler, error) {
	var err error
	c.channelHandlerInit.Do(func() {
		var useCase channelsUseCase.ChannelUseCase
		useCase, err = c.ChannelUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get channel use case for channel handler: %w", err)
			c.initErrors["channelHandler"] = err
			return
		}
		c.channelHandler = channelsHTTP.NewChannelHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["channelHandler"]; exists {
		return nil, storedErr
	}
	return c.channelHandler, nil
}

func (c *Container) initChannelRepository() (channelsUseCase.ChannelRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for channel repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return channelsRepository.NewMySQLChannelRepository(db), nil
	case "postgres":
		return channelsRepository.NewPostgreSQLChannelRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initChannelUseCase() (channelsUseCase.ChannelUseCase, error) {
	channelRepo, err := c.ChannelRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel repository for channel use case: %w", err)
	}

	orgRepo, err := c.OrganizationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get organization repository for channel use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for channel use case: %w", err)
	}

	useCase := channelsUseCase.NewChannelUseCase(channelRepo, orgRepo)
	return channelsUseCase.NewChannelUseCaseWithMetrics(useCase, businessMetrics), nil
}
