// Package storage keeps attachment ciphertexts in a gocloud.dev blob bucket.
package storage

import (
	"context"
	"fmt"
	"io"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	casesDomain "github.com/whistlebase/whistlebase/internal/cases/domain"
	apperrors "github.com/whistlebase/whistlebase/internal/errors"

	// Register bucket drivers
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// BlobStore stores opaque attachment ciphertexts. Blobs are written once and never
// updated in place.
type BlobStore struct {
	bucket *blob.Bucket
}

// OpenBlobStore opens the bucket at url. Supports file:// and mem:// URLs.
func OpenBlobStore(ctx context.Context, url string) (*BlobStore, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob bucket: %w", err)
	}
	return &BlobStore{bucket: bucket}, nil
}

// NewBlobStore wraps an already opened bucket.
func NewBlobStore(bucket *blob.Bucket) *BlobStore {
	return &BlobStore{bucket: bucket}
}

// Put streams r to key and returns the number of bytes written. Uploads larger than
// maxSize are aborted and return ErrAttachmentTooLarge; a maxSize of zero disables the
// limit.
func (s *BlobStore) Put(ctx context.Context, key string, r io.Reader, maxSize int64) (int64, error) {
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := s.bucket.NewWriter(writeCtx, key, &blob.WriterOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to open blob writer")
	}

	src := r
	if maxSize > 0 {
		src = io.LimitReader(r, maxSize+1)
	}
	written, err := io.Copy(w, src)
	if err == nil && maxSize > 0 && written > maxSize {
		err = casesDomain.ErrAttachmentTooLarge
	}
	if err != nil {
		// Cancelling the writer context before Close discards the partial blob.
		cancel()
		_ = w.Close()
		if apperrors.Is(err, casesDomain.ErrAttachmentTooLarge) {
			return 0, err
		}
		return 0, apperrors.Wrap(err, "failed to write blob")
	}

	if err := w.Close(); err != nil {
		return 0, apperrors.Wrap(err, "failed to commit blob")
	}
	return written, nil
}

// Get returns the blob stored under key.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, casesDomain.ErrAttachmentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to read blob")
	}
	return data, nil
}

// Delete removes the blob stored under key. Missing blobs are not an error.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return apperrors.Wrap(err, "failed to delete blob")
	}
	return nil
}

// Close releases the bucket.
func (s *BlobStore) Close() error {
	return s.bucket.Close()
}
