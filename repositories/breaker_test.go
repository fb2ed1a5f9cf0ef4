package repositories

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuarded_TripsOnStoreFailures(t *testing.T) {
	cb := NewReadBreaker("test-reads")
	boom := errors.New("server selection timeout")

	for i := 0; i < 4; i++ {
		_, err := guarded(cb, func() (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)
	}

	_, err := guarded(cb, func() (int, error) { return 1, nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestGuarded_NotFoundDoesNotTrip(t *testing.T) {
	cb := NewReadBreaker("test-not-found")

	for i := 0; i < 10; i++ {
		_, err := guarded(cb, func() (*struct{}, error) { return nil, ErrNotFound })
		require.ErrorIs(t, err, ErrNotFound)
	}

	got, err := guarded(cb, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestGuarded_NilBreaker(t *testing.T) {
	got, err := guarded(nil, func() ([]int, error) { return []int{1, 2}, nil })
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}
