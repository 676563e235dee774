package shift_test

import (
	"testing"
	"time"

	"github.com/evn/sop_backendl/internal/pkg/apperr"
	"github.com/evn/sop_backendl/internal/services/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, shift.ValidateDuration(1))
	assert.NoError(t, shift.ValidateDuration(12))
	assert.NoError(t, shift.ValidateDuration(24))

	for _, d := range []int{0, -1, 25, 100} {
		err := shift.ValidateDuration(d)
		require.Error(t, err, "duration %d", d)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestValidateRequestDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	got, err := shift.ValidateRequestDate("2025-03-10", now)
	require.NoError(t, err, "заявка на сегодня допустима даже во второй половине дня")
	assert.Equal(t, "2025-03-10", got)

	got, err = shift.ValidateRequestDate("2025-04-01", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", got)

	_, err = shift.ValidateRequestDate("2025-03-09", now)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = shift.ValidateRequestDate("10.03.2025", now)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestValidateShiftDate_AllowsBackfill(t *testing.T) {
	got, err := shift.ValidateShiftDate("2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01", got)

	_, err = shift.ValidateShiftDate("вчера")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
