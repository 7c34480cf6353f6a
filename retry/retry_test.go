package retry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/hcapi/hcapi"
)

// transient builds an error the default classifier treats as retryable.
func transient(t *testing.T) error {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := hcapi.NewClient("test-token", hcapi.WithEndpoint(srv.URL))
	_, _, err := client.Server.Get(context.Background(), 1)
	require.Error(t, err)
	require.True(t, hcapi.IsRetryable(err))
	return err
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	transientErr := transient(t)

	attempts := 0
	err := Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return transientErr
		}
		return nil
	}, WithInitialDelay(time.Millisecond), WithMaxDelay(2*time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_NonRetryableFailsImmediately(t *testing.T) {
	t.Parallel()

	notFound := errors.New("plain failure")

	attempts := 0
	err := Do(context.Background(), func() error {
		attempts++
		return notFound
	}, WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.ErrorIs(t, err, notFound)
	assert.Equal(t, 1, attempts, "non-retryable errors must not be retried")
}

func TestDo_FatalStopsRetries(t *testing.T) {
	t.Parallel()

	transientErr := transient(t)

	attempts := 0
	err := Do(context.Background(), func() error {
		attempts++
		return Fatal(transientErr)
	}, WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Contains(t, err.Error(), "fatal error")
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	transientErr := transient(t)

	attempts := 0
	err := Do(context.Background(), func() error {
		attempts++
		return transientErr
	}, WithMaxRetries(2), WithInitialDelay(time.Millisecond), WithMaxDelay(2*time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.ErrorIs(t, err, transientErr)
}

func TestDo_ContextCancelled(t *testing.T) {
	t.Parallel()

	transientErr := transient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, func() error {
		return transientErr
	}, WithInitialDelay(time.Minute))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_CustomClassifier(t *testing.T) {
	t.Parallel()

	flaky := errors.New("flaky subsystem")

	attempts := 0
	err := Do(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return flaky
		}
		return nil
	},
		WithInitialDelay(time.Millisecond),
		WithClassifier(func(err error) bool { return errors.Is(err, flaky) }),
	)

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestFatal(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Fatal(nil))

	inner := errors.New("boom")
	wrapped := Fatal(inner)
	assert.True(t, IsFatal(wrapped))
	assert.ErrorIs(t, wrapped, inner)
	assert.False(t, IsFatal(inner))
}
