package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpiryJobRun(t *testing.T) {
	t.Run("expires all pending candidates", func(t *testing.T) {
		codes := &fakeCodeRepo{pending: 2}
		job := NewExpiryJob(codes, 30*24*time.Hour)

		expired, err := job.Run(context.Background(), time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Equal(t, int64(2), expired)
		require.Equal(t, 1, codes.expireCalls)
	})

	t.Run("no candidates issues no update", func(t *testing.T) {
		codes := &fakeCodeRepo{pending: 0}
		job := NewExpiryJob(codes, 30*24*time.Hour)

		expired, err := job.Run(context.Background(), time.Now())
		require.NoError(t, err)
		require.Zero(t, expired)
		require.Zero(t, codes.expireCalls)
	})

	t.Run("count failure aborts the run", func(t *testing.T) {
		codes := &fakeCodeRepo{countErr: errors.New("connection reset")}
		job := NewExpiryJob(codes, 30*24*time.Hour)

		_, err := job.Run(context.Background(), time.Now())
		require.Error(t, err)
		require.Zero(t, codes.expireCalls)
	})

	t.Run("update failure surfaces", func(t *testing.T) {
		codes := &fakeCodeRepo{pending: 5, expireErr: errors.New("deadlock detected")}
		job := NewExpiryJob(codes, 30*24*time.Hour)

		_, err := job.Run(context.Background(), time.Now())
		require.Error(t, err)
	})
}

func TestExpiryJobRunDefault(t *testing.T) {
	codes := &fakeCodeRepo{pending: 1}
	job := NewExpiryJob(codes, 30*24*time.Hour)

	expired, err := job.RunDefault(context.Background(), time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), expired)
}
