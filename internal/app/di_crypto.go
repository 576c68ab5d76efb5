package app

import (
	"fmt"

	cryptoService "github.com/whistlebase/whistlebase/internal/crypto/service"
	cryptoUseCase "github.com/whistlebase/whistlebase/internal/crypto/usecase"
)

// CryptoProvider returns the shared randomness and primitive provider.
func (c *Container) CryptoProvider() *cryptoService.Provider {
	c.cryptoProviderInit.Do(func() {
		c.cryptoProvider = cryptoService.NewProvider()
	})
	return c.cryptoProvider
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager(c.CryptoProvider())
	})
	return c.aeadManager
}

// KeyPairService returns the Curve25519 key pair service.
func (c *Container) KeyPairService() *cryptoService.KeyPairService {
	c.keyPairServiceInit.Do(func() {
		c.keyPairService = cryptoService.NewKeyPairService(c.CryptoProvider())
	})
	return c.keyPairService
}

// ContentSealer returns the dual-recipient content sealing engine.
func (c *Container) ContentSealer() *cryptoService.ContentSealerService {
	c.contentSealerInit.Do(func() {
		c.contentSealer = cryptoService.NewContentSealer(c.CryptoProvider(), c.AEADManager())
	})
	return c.contentSealer
}

// MessageCipher returns the case message cipher.
func (c *Container) MessageCipher() *cryptoService.MessageCipherService {
	c.messageCipherInit.Do(func() {
		c.messageCipher = cryptoService.NewMessageCipher(c.CryptoProvider(), c.AEADManager())
	})
	return c.messageCipher
}

// AttachmentCipher returns the case attachment cipher.
func (c *Container) AttachmentCipher() *cryptoService.AttachmentCipherService {
	c.attachmentCipherInit.Do(func() {
		c.attachmentCipher = cryptoService.NewAttachmentCipher(c.CryptoProvider(), c.AEADManager())
	})
	return c.attachmentCipher
}

// PasswordKeyWrap returns the password-based private key wrap using the configured
// KDF profile.
func (c *Container) PasswordKeyWrap() (*cryptoService.PasswordKeyWrapService, error) {
	var err error
	c.passwordKeyWrapInit.Do(func() {
		c.passwordKeyWrap, err = c.initPasswordKeyWrap()
		if err != nil {
			c.initErrors["passwordKeyWrap"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordKeyWrap"]; exists {
		return nil, storedErr
	}
	return c.passwordKeyWrap, nil
}

// SessionKeyCustody returns the session key custody service.
func (c *Container) SessionKeyCustody() *cryptoService.SessionKeyCustodyService {
	c.sessionKeyCustodyInit.Do(func() {
		c.sessionKeyCustody = cryptoService.NewSessionKeyCustody(c.CryptoProvider(), c.AEADManager())
	})
	return c.sessionKeyCustody
}

// ReporterUseCase returns the reporter-side case workflow.
func (c *Container) ReporterUseCase() cryptoUseCase.ReporterUseCase {
	c.reporterUseCaseInit.Do(func() {
		c.reporterUseCase = cryptoUseCase.NewReporterUseCase(c.KeyPairService(), c.ContentSealer())
	})
	return c.reporterUseCase
}

// CustodianUseCase returns the organization-side key custody workflow.
func (c *Container) CustodianUseCase() (cryptoUseCase.CustodianUseCase, error) {
	var err error
	c.custodianUseCaseInit.Do(func() {
		c.custodianUseCase, err = c.initCustodianUseCase()
		if err != nil {
			c.initErrors["custodianUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["custodianUseCase"]; exists {
		return nil, storedErr
	}
	return c.custodianUseCase, nil
}

func (c *Container) initPasswordKeyWrap() (*cryptoService.PasswordKeyWrapService, error) {
	profile, err := cryptoService.ParseKDFProfile(c.config.KDFProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse kdf profile: %w", err)
	}
	return cryptoService.NewPasswordKeyWrap(c.CryptoProvider(), c.AEADManager(), profile), nil
}

func (c *Container) initCustodianUseCase() (cryptoUseCase.CustodianUseCase, error) {
	passwordKeyWrap, err := c.PasswordKeyWrap()
	if err != nil {
		return nil, fmt.Errorf("failed to get password key wrap for custodian use case: %w", err)
	}
	return cryptoUseCase.NewCustodianUseCase(
		c.KeyPairService(),
		c.ContentSealer(),
		passwordKeyWrap,
		c.SessionKeyCustody(),
	), nil
}
