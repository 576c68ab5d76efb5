package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	casesDTO "github.com/whistlebase/whistlebase/internal/cases/http/dto"
	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
	cryptoService "github.com/whistlebase/whistlebase/internal/crypto/service"
	cryptoUseCase "github.com/whistlebase/whistlebase/internal/crypto/usecase"
)

// caseExport is the subset of the case detail response needed to decrypt a case
// offline.
type caseExport struct {
	ID string `json:"id"`
	cryptoDomain.EncodedEnvelope
	Messages []struct {
		ID         string    `json:"id"`
		SenderType string    `json:"sender_type"`
		Message    string    `json:"message"`
		CreatedAt  time.Time `json:"created_at"`
	} `json:"messages"`
}

// CaseKeySource names the keys used to open a case: either the reporter's access
// token or the organization keypair.
type CaseKeySource struct {
	Token         string
	OrgPublicKey  string
	OrgPrivateKey string
}

// CaseOpeners groups the use cases able to recover a case content key.
type CaseOpeners struct {
	Reporter  cryptoUseCase.ReporterUseCase
	Custodian cryptoUseCase.CustodianUseCase
}

var errNoCaseKeys = errors.New("either --token or both --org-public-key and --org-private-key are required")

// SealCaseInput describes a report sealed offline for a reporting channel.
type SealCaseInput struct {
	OrgPublicKey string
	AccessCode   string
	ChannelTitle string
	Category     string
	InputPath    string
	OutputPath   string
	KeyPath      string
}

// open decrypts the case content and returns it with the content key. The caller owns
// the returned key and must zero it.
func (o CaseOpeners) open(
	ctx context.Context,
	source CaseKeySource,
	envelope *cryptoDomain.SealedEnvelope,
) ([]byte, []byte, error) {
	switch {
	case source.Token != "":
		opened, err := o.Reporter.Open(ctx, source.Token, envelope)
		if err != nil {
			return nil, nil, err
		}
		return opened.Plaintext, opened.ContentKey, nil
	case source.OrgPublicKey != "" && source.OrgPrivateKey != "":
		keyPair, err := cryptoDomain.DecodeKeyPair(source.OrgPublicKey, source.OrgPrivateKey)
		if err != nil {
			return nil, nil, err
		}
		defer keyPair.Close()

		contentKey, err := o.Custodian.DeriveContentKey(ctx, envelope, keyPair.PrivateKey, keyPair.PublicKey)
		if err != nil {
			return nil, nil, err
		}
		plaintext, err := o.Custodian.OpenCase(ctx, envelope, keyPair.PrivateKey, keyPair.PublicKey)
		if err != nil {
			cryptoDomain.Zero(contentKey)
			return nil, nil, err
		}
		return plaintext, contentKey, nil
	default:
		return nil, nil, errNoCaseKeys
	}
}

// RunInspectToken prints the public parts of a reporter access token. The private key
// is never echoed; only its presence and validity are reported.
func RunInspectToken(streams IOTuple, token, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	parsed, err := cryptoDomain.ParseCaseAccessToken(token)
	if err != nil {
		return fmt.Errorf("failed to parse access token: %w", err)
	}

	keyStatus := "valid"
	keyPair, err := parsed.KeyPair()
	if err != nil {
		keyStatus = "invalid"
	} else {
		keyPair.Close()
	}

	if format == formatJSON {
		return writeJSON(streams.Writer, map[string]string{
			"case_id":     parsed.CaseID,
			"public_key":  parsed.PublicKey,
			"private_key": keyStatus,
		})
	}

	_, _ = fmt.Fprintf(streams.Writer, "Case ID:     %s\n", parsed.CaseID)
	_, _ = fmt.Fprintf(streams.Writer, "Public Key:  %s\n", parsed.PublicKey)
	_, _ = fmt.Fprintf(streams.Writer, "Private Key: %s\n", keyStatus)
	return nil
}

// openedMessage is a decrypted conversation message.
type openedMessage struct {
	ID         string    `json:"id"`
	SenderType string    `json:"sender_type"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// RunOpenCase decrypts an exported case and its conversation with either the reporter's
// access token or the organization keypair.
func RunOpenCase(
	ctx context.Context,
	openers CaseOpeners,
	messages cryptoService.MessageEncrypter,
	logger *slog.Logger,
	streams IOTuple,
	source CaseKeySource,
	casePath string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	export, err := readEnvelopeFile(casePath)
	if err != nil {
		return err
	}
	envelope, err := export.Decode()
	if err != nil {
		return fmt.Errorf("failed to decode case envelope: %w", err)
	}

	plaintext, contentKey, err := openers.open(ctx, source, envelope)
	if err != nil {
		return fmt.Errorf("failed to open case: %w", err)
	}
	defer cryptoDomain.Zero(contentKey)

	conversation := make([]openedMessage, 0, len(export.Messages))
	for _, m := range export.Messages {
		text, err := messages.DecryptMessage(ctx, m.Message, contentKey)
		if err != nil {
			return fmt.Errorf("failed to decrypt message %s: %w", m.ID, err)
		}
		conversation = append(conversation, openedMessage{
			ID:         m.ID,
			SenderType: m.SenderType,
			Message:    text,
			CreatedAt:  m.CreatedAt,
		})
	}

	logger.Info("case opened", slog.String("case_id", export.ID), slog.Int("messages", len(conversation)))

	if format == formatJSON {
		return writeJSON(streams.Writer, map[string]any{
			"id":       export.ID,
			"content":  string(plaintext),
			"messages": conversation,
		})
	}

	_, _ = fmt.Fprintf(streams.Writer, "Case %s\n\n%s\n", export.ID, plaintext)
	for _, m := range conversation {
		_, _ = fmt.Fprintf(
			streams.Writer,
			"\n[%s] %s:\n%s\n",
			m.CreatedAt.UTC().Format(time.RFC3339),
			m.SenderType,
			m.Message,
		)
	}
	return nil
}

// RunDecryptAttachment decrypts a downloaded attachment ciphertext into outputPath.
// The IV is the value of the X-Attachment-IV header returned with the download.
func RunDecryptAttachment(
	ctx context.Context,
	openers CaseOpeners,
	files cryptoService.FileEncrypter,
	logger *slog.Logger,
	source CaseKeySource,
	casePath, inputPath, outputPath, encodedIV string,
) error {
	export, err := readEnvelopeFile(casePath)
	if err != nil {
		return err
	}
	envelope, err := export.Decode()
	if err != nil {
		return fmt.Errorf("failed to decode case envelope: %w", err)
	}

	iv, err := cryptoDomain.DecodeAttachmentIV(encodedIV)
	if err != nil {
		return fmt.Errorf("failed to decode attachment iv: %w", err)
	}

	ciphertext, err := os.ReadFile(inputPath) //nolint:gosec // path is an operator supplied CLI argument
	if err != nil {
		return fmt.Errorf("failed to read attachment: %w", err)
	}

	plaintext, contentKey, err := openers.open(ctx, source, envelope)
	if err != nil {
		return fmt.Errorf("failed to open case: %w", err)
	}
	defer cryptoDomain.Zero(contentKey)
	cryptoDomain.Zero(plaintext)

	data, err := files.DecryptFile(ctx, ciphertext, contentKey, iv)
	if err != nil {
		return fmt.Errorf("failed to decrypt attachment: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write attachment: %w", err)
	}

	logger.Info("attachment decrypted",
		slog.String("case_id", export.ID),
		slog.Int("size", len(data)),
	)
	return nil
}

// RunSealCase seals a report on the operator's machine. It writes the submit request body
// for POST /v1/channels/by-access-code/:code/cases to OutputPath and the reporter's case
// reference, access token included, to KeyPath. The case ID is chosen here because the
// access token embeds it.
func RunSealCase(
	ctx context.Context,
	reporter cryptoUseCase.ReporterUseCase,
	logger *slog.Logger,
	input SealCaseInput,
	now time.Time,
) error {
	if !channelsDomain.ValidAccessCode(input.AccessCode) {
		return channelsDomain.ErrInvalidAccessCode
	}
	orgPublicKey, err := cryptoDomain.DecodeKey(input.OrgPublicKey, cryptoDomain.PublicKeySize)
	if err != nil {
		return fmt.Errorf("failed to decode organization public key: %w", err)
	}

	report, err := os.ReadFile(input.InputPath) //nolint:gosec // path is an operator supplied CLI argument
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	defer cryptoDomain.Zero(report)

	caseID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate case id: %w", err)
	}

	submission, err := reporter.Submit(ctx, report, orgPublicKey)
	if err != nil {
		return fmt.Errorf("failed to seal report: %w", err)
	}
	defer submission.KeyPair.Close()

	token, err := reporter.IssueAccessToken(caseID.String(), submission.KeyPair)
	if err != nil {
		return fmt.Errorf("failed to issue access token: %w", err)
	}

	encoded := submission.Envelope.Encode()
	request := casesDTO.SubmitCaseRequest{
		ID:                   caseID.String(),
		Category:             input.Category,
		ReporterPublicKey:    submission.KeyPair.EncodedPublicKey(),
		Content:              encoded.Content,
		SealedKeyForReporter: encoded.SealedKeyForReporter,
		SealedKeyForOrg:      encoded.SealedKeyForOrg,
	}
	body, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode submit request: %w", err)
	}

	reference := cryptoDomain.KeyDownloadContent(
		token,
		caseID.String(),
		input.ChannelTitle,
		input.AccessCode,
		now,
	)
	if err := os.WriteFile(input.KeyPath, []byte(reference), 0o600); err != nil {
		return fmt.Errorf("failed to write case reference: %w", err)
	}
	if err := os.WriteFile(input.OutputPath, body, 0o600); err != nil {
		return fmt.Errorf("failed to write submit request: %w", err)
	}

	logger.Info("case sealed",
		slog.String("case_id", caseID.String()),
		slog.String("access_code", input.AccessCode),
	)
	return nil
}
