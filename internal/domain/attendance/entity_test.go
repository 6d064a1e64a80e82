//go:build unit

package attendance_test

import (
	"testing"
	"time"

	"kidcheck/internal/domain/attendance"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	requestID := uuid.New()

	t.Run("valid record is active on creation", func(t *testing.T) {
		rec, err := attendance.NewRecord(uuid.New(), uuid.New(), &requestID, now, "Sam Staff", "Pat Parent", "")
		require.NoError(t, err)

		assert.True(t, rec.IsActive())
		assert.Equal(t, now, rec.CheckInTime())
		require.NotNil(t, rec.RequestID())
		assert.Equal(t, requestID, *rec.RequestID())
	})

	t.Run("request id is optional for non-QR admissions", func(t *testing.T) {
		rec, err := attendance.NewRecord(uuid.New(), uuid.New(), nil, now, "Sam Staff", "Pat Parent", "")
		require.NoError(t, err)
		assert.Nil(t, rec.RequestID())
	})

	t.Run("approver name is required", func(t *testing.T) {
		_, err := attendance.NewRecord(uuid.New(), uuid.New(), &requestID, now, "", "Pat Parent", "")
		require.ErrorIs(t, err, attendance.ErrEmptyApproverName)
	})
}

func TestRecord_IsActive(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	checkOut := now.Add(2 * time.Hour)

	rec := attendance.ReconstructRecord(uuid.New(), uuid.New(), uuid.New(), nil, now, &checkOut, "Sam Staff", "Pat Parent", "")
	assert.False(t, rec.IsActive())
}
