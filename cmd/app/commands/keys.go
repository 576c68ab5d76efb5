package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	authService "github.com/whistlebase/whistlebase/internal/auth/service"
	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	cryptoService "github.com/whistlebase/whistlebase/internal/crypto/service"
	cryptoUseCase "github.com/whistlebase/whistlebase/internal/crypto/usecase"
)

// RandomSource produces cryptographically secure random bytes.
type RandomSource interface {
	RandomBytes(n int) ([]byte, error)
}

// RunGenerateKeyPair prints a fresh Curve25519 keypair in sodium encoding.
// Intended for operators provisioning test organizations or verifying client builds.
// The private key is zeroed after it is written.
func RunGenerateKeyPair(
	ctx context.Context,
	keyPairs cryptoService.KeyPairGenerator,
	logger *slog.Logger,
	streams IOTuple,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	keyPair, err := keyPairs.GenerateKeyPair(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate keypair: %w", err)
	}
	defer keyPair.Close()

	logger.Info("keypair generated")

	if format == formatJSON {
		return writeJSON(streams.Writer, map[string]string{
			"public_key":  keyPair.EncodedPublicKey(),
			"private_key": keyPair.EncodedPrivateKey(),
		})
	}

	_, _ = fmt.Fprintf(streams.Writer, "Public Key:  %s\n", keyPair.EncodedPublicKey())
	_, _ = fmt.Fprintf(streams.Writer, "Private Key: %s\n", keyPair.EncodedPrivateKey())
	_, _ = fmt.Fprintln(streams.Writer)
	_, _ = fmt.Fprintln(streams.Writer, "WARNING: Store the private key securely. It cannot be recovered.")
	return nil
}

// RunGenerateSigningKey prints a random SESSION_SIGNING_KEY value.
func RunGenerateSigningKey(random RandomSource, streams IOTuple) error {
	key, err := random.RandomBytes(authService.MinSigningKeySize)
	if err != nil {
		return fmt.Errorf("failed to generate signing key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	_, _ = fmt.Fprintln(streams.Writer, "# Copy this environment variable to your .env file or secrets manager")
	_, _ = fmt.Fprintf(streams.Writer, "SESSION_SIGNING_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(key))
	return nil
}

// RunProvisionOrganizationKey generates an organization keypair and wraps its private
// key under a password read from the input stream. The output is the signup payload
// fragment: the public key plus the wrapped private key, salt and nonce.
func RunProvisionOrganizationKey(
	ctx context.Context,
	custodian cryptoUseCase.CustodianUseCase,
	logger *slog.Logger,
	streams IOTuple,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	password, err := readLine(streams, "Admin password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	passwordBytes := []byte(password)
	defer cryptoDomain.Zero(passwordBytes)

	provisioned, err := custodian.ProvisionOrganizationKey(ctx, passwordBytes)
	if err != nil {
		return fmt.Errorf("failed to provision organization key: %w", err)
	}

	logger.Info("organization key provisioned")

	publicKey := cryptoDomain.EncodeSodium(provisioned.PublicKey)
	wrapped := provisioned.Wrapped.Encode()

	if format == formatJSON {
		_, _ = fmt.Fprintln(streams.Writer)
		return writeJSON(streams.Writer, map[string]string{
			"public_key":            publicKey,
			"encrypted_private_key": wrapped.Ciphertext,
			"salt":                  wrapped.Salt,
			"nonce":                 wrapped.Nonce,
		})
	}

	_, _ = fmt.Fprintln(streams.Writer)
	_, _ = fmt.Fprintf(streams.Writer, "Public Key:            %s\n", publicKey)
	_, _ = fmt.Fprintf(streams.Writer, "Encrypted Private Key: %s\n", wrapped.Ciphertext)
	_, _ = fmt.Fprintf(streams.Writer, "Salt:                  %s\n", wrapped.Salt)
	_, _ = fmt.Fprintf(streams.Writer, "Nonce:                 %s\n", wrapped.Nonce)
	return nil
}
