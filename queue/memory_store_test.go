package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimSkipsLeasedJob(t *testing.T) {
	s := NewMemoryStore()
	s.PutJob(JobDocument{ID: "a"})
	s.PutJob(JobDocument{ID: "b"})
	ctx := context.Background()

	job1, ok, err := s.Claim(ctx, time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", job1.ID)
	assert.Equal(t, 1, job1.Progress)

	job2, ok, err := s.Claim(ctx, time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", job2.ID)

	_, ok, err = s.Claim(ctx, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "both jobs are leased; claim must report none available")
}

func TestClaimReclaimsAfterExpiry(t *testing.T) {
	s := NewMemoryStore()
	s.PutJob(JobDocument{ID: "a"})
	ctx := context.Background()

	_, ok, err := s.Claim(ctx, time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(5 * time.Millisecond)

	job, ok, err := s.Claim(ctx, time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", job.ID)
	assert.Equal(t, 2, job.Progress)
}

func TestCompleteRemovesJob(t *testing.T) {
	s := NewMemoryStore()
	s.PutJob(JobDocument{ID: "a"})
	ctx := context.Background()

	_, _, err := s.Claim(ctx, time.Hour)
	require.NoError(t, err)
	require.NoError(t, s.Complete(ctx, "a"))

	_, ok, err := s.Claim(ctx, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
