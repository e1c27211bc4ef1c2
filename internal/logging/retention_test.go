package logging

import (
	"testing"
	"time"

	"github.com/modxnet/modxnet-backend/internal/models"
	"github.com/modxnet/modxnet-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeOld(t *testing.T) {
	db := testutil.Postgres(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, age := range []time.Duration{time.Hour, 29 * 24 * time.Hour, 31 * 24 * time.Hour, 90 * 24 * time.Hour} {
		require.NoError(t, db.Create(&models.SystemLog{
			Timestamp: now.Add(-age),
			Level:     "ERROR",
			Message:   "sweep failed",
			Component: "scheduler",
		}).Error)
	}

	n, err := PurgeOld(db, now, 30*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var left int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&left).Error)
	assert.EqualValues(t, 2, left)

	n, err = PurgeOld(db, now, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
}
