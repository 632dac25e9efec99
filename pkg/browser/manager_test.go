package browser

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNewManagerAppliesDefaults(t *testing.T) {
	m := NewManager(Options{EntryURL: "https://example.com"}, testLogger())

	assert.Equal(t, DefaultNavigationTimeout, m.opts.NavigationTimeout)
	assert.Equal(t, DefaultLaunchArgs(), m.opts.LaunchArgs)
}

func TestNewManagerKeepsExplicitOptions(t *testing.T) {
	opts := Options{
		EntryURL:          "https://example.com",
		NavigationTimeout: 3 * time.Second,
		LaunchArgs:        []string{"--foo"},
	}
	m := NewManager(opts, testLogger())

	assert.Equal(t, 3*time.Second, m.opts.NavigationTimeout)
	assert.Equal(t, []string{"--foo"}, m.opts.LaunchArgs)
}

func TestResetBeforeAcquireIsNoOp(t *testing.T) {
	m := NewManager(Options{}, testLogger())

	assert.NotPanics(t, func() {
		m.Reset()
		m.Reset()
	})
}

func TestShutdownBeforeAcquireIsNoOp(t *testing.T) {
	m := NewManager(Options{}, testLogger())

	assert.NotPanics(t, m.Shutdown)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "driver timeout",
			err:  errors.New("playwright: Timeout 7000ms exceeded."),
			want: ErrWaitTimeout,
		},
		{
			name: "lowercase timeout",
			err:  errors.New("navigation timeout of 15000 ms exceeded"),
			want: ErrWaitTimeout,
		},
		{
			name: "target closed",
			err:  errors.New("playwright: Target closed"),
			want: ErrSessionClosed,
		},
		{
			name: "context closed",
			err:  errors.New("playwright: Context closed"),
			want: ErrSessionClosed,
		},
		{
			name: "page already closed",
			err:  errors.New("page has been closed"),
			want: ErrSessionClosed,
		},
		{
			name: "anything else",
			err:  errors.New("strict mode violation"),
			want: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.True(t, errors.Is(got, tt.want), "classify(%v) = %v", tt.err, got)
			assert.Contains(t, got.Error(), tt.err.Error())
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, classify(nil))
}

func TestManagerLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	m := NewManager(Options{
		Headless: true,
		EntryURL: "about:blank",
	}, testLogger())
	defer m.Shutdown()

	first, err := m.Acquire()
	require.NoError(t, err)

	// Acquire is idempotent: same handle until Reset.
	second, err := m.Acquire()
	require.NoError(t, err)
	assert.Same(t, first, second)

	m.Reset()

	third, err := m.Acquire()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}
