package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	cryptoDomain "github.com/whistlebase/whistlebase/internal/crypto/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

// countingReader returns a repeating byte pattern and counts reads.
type countingReader struct {
	reads atomic.Int64
}

func (r *countingReader) Read(b []byte) (int, error) {
	r.reads.Add(1)
	for i := range b {
		b[i] = byte(i)
	}
	return len(b), nil
}

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p := NewProvider()
	require.NoError(t, p.Ready(context.Background()))
	return p
}

func TestProvider_Ready(t *testing.T) {
	t.Run("default entropy source", func(t *testing.T) {
		p := NewProvider()
		assert.NoError(t, p.Ready(context.Background()))
	})

	t.Run("self-test runs once", func(t *testing.T) {
		r := &countingReader{}
		p := NewProvider(WithRandReader(r))

		require.NoError(t, p.Ready(context.Background()))
		reads := r.reads.Load()
		assert.Positive(t, reads)

		require.NoError(t, p.Ready(context.Background()))
		assert.Equal(t, reads, r.reads.Load())
	})

	t.Run("concurrent callers observe one result", func(t *testing.T) {
		r := &countingReader{}
		p := NewProvider(WithRandReader(r))

		var wg sync.WaitGroup
		errs := make([]error, 16)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = p.Ready(context.Background())
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
		assert.Equal(t, int64(2), r.reads.Load())
	})

	t.Run("failing entropy source", func(t *testing.T) {
		p := NewProvider(WithRandReader(failingReader{}))
		err := p.Ready(context.Background())
		assert.ErrorIs(t, err, cryptoDomain.ErrRandomnessFailure)

		// the first result is sticky
		assert.ErrorIs(t, p.Ready(context.Background()), cryptoDomain.ErrRandomnessFailure)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := NewProvider()
		assert.ErrorIs(t, p.Ready(ctx), context.Canceled)
		assert.NoError(t, p.Ready(context.Background()))
	})
}

func TestProvider_RandomBytes(t *testing.T) {
	p := NewProvider(WithRandReader(bytes.NewReader([]byte{1, 2, 3, 4})))

	b, err := p.RandomBytes(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, b)

	_, err = p.RandomBytes(1)
	assert.ErrorIs(t, err, cryptoDomain.ErrRandomnessFailure)
}
