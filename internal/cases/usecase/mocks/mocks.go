// Package mocks provides testify mocks for the cases use case interfaces.
package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	channelsDomain "github.com/whistlebase/whistlebase/internal/channels/domain"
)

// MockCaseRepository is a mock implementation of usecase.CaseRepository.
type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) Create(ctx context.Context, c *casesDomain.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) Get(ctx context.Context, caseID uuid.UUID) (*casesDomain.Case, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casesDomain.Case), args.Error(1)
}

func (m *MockCaseRepository) ListByOrganization(
	ctx context.Context,
	orgID uuid.UUID,
	offset, limit int,
) ([]*casesDomain.Case, error) {
	args := m.Called(ctx, orgID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*casesDomain.Case), args.Error(1)
}

func (m *MockCaseRepository) UpdateStatus(ctx context.Context, c *casesDomain.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) Stats(ctx context.Context, orgID uuid.UUID) (*casesDomain.Stats, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casesDomain.Stats), args.Error(1)
}

// MockMessageRepository is a mock implementation of usecase.MessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *casesDomain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*casesDomain.Message, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*casesDomain.Message), args.Error(1)
}

// MockAttachmentRepository is a mock implementation of usecase.AttachmentRepository.
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *casesDomain.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) Get(ctx context.Context, attachmentID uuid.UUID) (*casesDomain.Attachment, error) {
	args := m.Called(ctx, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casesDomain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) ListByCase(
	ctx context.Context,
	caseID uuid.UUID,
) ([]*casesDomain.Attachment, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*casesDomain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) LinkToMessage(
	ctx context.Context,
	caseID, messageID uuid.UUID,
	attachmentIDs []uuid.UUID,
) (int64, error) {
	args := m.Called(ctx, caseID, messageID, attachmentIDs)
	return args.Get(0).(int64), args.Error(1)
}

// MockBlobStore is a mock implementation of usecase.BlobStore.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, key string, r io.Reader, maxSize int64) (int64, error) {
	args := m.Called(ctx, key, r, maxSize)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockChannelReader is a mock implementation of usecase.ChannelReader.
type MockChannelReader struct {
	mock.Mock
}

func (m *MockChannelReader) GetByAccessCode(ctx context.Context, accessCode string) (*channelsDomain.Channel, error) {
	args := m.Called(ctx, accessCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channelsDomain.Channel), args.Error(1)
}

func (m *MockChannelReader) CountByOrganization(ctx context.Context, orgID uuid.UUID) (*channelsDomain.Counts, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channelsDomain.Counts), args.Error(1)
}

// MockCaseUseCase is a mock implementation of usecase.CaseUseCase.
type MockCaseUseCase struct {
	mock.Mock
}

func (m *MockCaseUseCase) Submit(
	ctx context.Context,
	input *casesDomain.SubmitCaseInput,
) (*casesDomain.Case, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casesDomain.Case), args.Error(1)
}

func (m *MockCaseUseCase) Get(
	ctx context.Context,
	caseID uuid.UUID,
	actor casesDomain.Actor,
) (*casesDomain.CaseDetail, error) {
	args := m.Called(ctx, caseID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casesDomain.CaseDetail), args.Error(1)
}

func (m *MockCaseUseCase) List(
	ctx context.Context,
	orgID uuid.UUID,
	offset, limit int,
) ([]*casesDomain.Case, error) {
	args := m.Called(ctx, orgID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*casesDomain.Case), args.Error(1)
}

func (m *MockCaseUseCase) UpdateStatus(
	ctx context.Context,
	input *casesDomain.UpdateStatusInput,
	actor casesDomain.Actor,
) (*casesDomain.Case, error) {
	args := m.Called(ctx, input, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casesDomain.Case), args.Error(1)
}

func (m *MockCaseUseCase) Stats(ctx context.Context, orgID uuid.UUID) (*casesDomain.Stats, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casesDomain.Stats), args.Error(1)
}

func (m *MockCaseUseCase) SendMessage(
	ctx context.Context,
	input *casesDomain.SendMessageInput,
) (*casesDomain.MessageDetail, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casesDomain.MessageDetail), args.Error(1)
}

func (m *MockCaseUseCase) UploadAttachment(
	ctx context.Context,
	input *casesDomain.UploadAttachmentInput,
) (*casesDomain.Attachment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casesDomain.Attachment), args.Error(1)
}

func (m *MockCaseUseCase) DownloadAttachment(
	ctx context.Context,
	caseID, attachmentID uuid.UUID,
	actor casesDomain.Actor,
) (*casesDomain.AttachmentContent, error) {
	args := m.Called(ctx, caseID, attachmentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casesDomain.AttachmentContent), args.Error(1)
}
