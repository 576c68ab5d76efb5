package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

// Provider is the cryptographic primitives engine shared by every component in this
// package. It owns the entropy source and a one-time readiness self-test.
//
// A Provider is constructed explicitly and passed to each component, so tests can
// substitute a deterministic or failing entropy source with WithRandReader.
//
// Thread safety: Ready may be called concurrently; the self-test runs once and every
// caller observes its result. The entropy source is guarded by a mutex so that test
// doubles which are not safe for concurrent use can still be shared.
type Provider struct {
	mu   sync.Mutex
	rand io.Reader

	once     sync.Once
	readyErr error
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithRandReader replaces the entropy source (crypto/rand by default).
func WithRandReader(r io.Reader) ProviderOption {
	return func(p *Provider) {
		p.rand = r
	}
}

// NewProvider creates a Provider. It performs no work until Ready is called.
func NewProvider(opts ...ProviderOption) *Provider {
	p := &Provider{rand: rand.Reader}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ready runs the readiness self-test exactly once: it draws a key and a nonce from the
// entropy source and performs an XChaCha20-Poly1305 round trip. Later calls return the
// first result without repeating the test.
//
// Returns:
//   - ctx.Err() if ctx is already done
//   - ErrRandomnessFailure if the entropy source fails
//   - ErrProviderNotReady if the round trip fails
func (p *Provider) Ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.once.Do(func() {
		p.readyErr = p.selfTest()
	})
	return p.readyErr
}

func (p *Provider) selfTest() error {
	key, err := p.RandomBytes(chacha20poly1305.KeySize)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(key)

	nonce, err := p.RandomBytes(chacha20poly1305.NonceSizeX)
	if err != nil {
		return err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return fmt.Errorf("%w: %v", cryptoDomain.ErrProviderNotReady, err)
	}
	sample := []byte("whistlebase-provider-self-test")
	out, err := aead.Open(nil, nonce, aead.Seal(nil, nonce, sample, nil), nil)
	if err != nil || !bytes.Equal(out, sample) {
		return cryptoDomain.ErrProviderNotReady
	}
	return nil
}

// Read implements io.Reader over the entropy source. Short reads are reported as
// ErrRandomnessFailure.
func (p *Provider) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, err := io.ReadFull(p.rand, b)
	if err != nil {
		return n, fmt.Errorf("%w: %v", cryptoDomain.ErrRandomnessFailure, err)
	}
	return n, nil
}

// RandomBytes returns n bytes from the entropy source.
func (p *Provider) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := p.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
