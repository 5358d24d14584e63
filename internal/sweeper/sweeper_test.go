package sweeper

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*Sweeper, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, zerolog.Nop()), mock
}

func TestRunAllUpdatesAggregates(t *testing.T) {
	s, mock := newMock(t)
	now := time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE referrals").
		WithArgs(now.Add(-ReferralMaxAge)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE appointments").
		WithArgs(now.Add(-AppointmentGrace)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE queue_entries").
		WithArgs("2025-01-10").
		WillReturnResult(sqlmock.NewResult(0, 5))

	res := s.RunAllUpdates(now)
	assert.Equal(t, int64(10), res.Updated)
	require.Len(t, res.Results, 3)
	assert.Equal(t, "referrals", res.Results[0].Entity)
	assert.Equal(t, int64(3), res.Results[0].Updated)
	assert.Empty(t, res.Errs())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A sweep over an already-consistent dataset touches nothing, so the
// second run right after the first reports zero updates.
func TestRunAllUpdatesIdempotent(t *testing.T) {
	s, mock := newMock(t)
	now := time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		mock.ExpectExec("UPDATE referrals").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("UPDATE appointments").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("UPDATE queue_entries").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	first := s.RunAllUpdates(now)
	second := s.RunAllUpdates(now)
	assert.Zero(t, first.Updated)
	assert.Zero(t, second.Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// One failing entity type must not stop the remaining passes.
func TestRunAllUpdatesContinuesPastFailure(t *testing.T) {
	s, mock := newMock(t)
	now := time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC)
	boom := errors.New("lock wait timeout")

	mock.ExpectExec("UPDATE referrals").WillReturnError(boom)
	mock.ExpectExec("UPDATE appointments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE queue_entries").WillReturnResult(sqlmock.NewResult(0, 4))

	res := s.RunAllUpdates(now)
	assert.Equal(t, int64(5), res.Updated)
	require.Len(t, res.Results, 3)

	failed := res.Errs()
	require.Len(t, failed, 1)
	assert.Equal(t, "referrals", failed[0].Entity)
	assert.ErrorContains(t, failed[0].Err, "lock wait timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepQueueEntriesUsesCurrentDate(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec("UPDATE queue_entries").
		WithArgs("2025-03-02").
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := s.sweepQueueEntries(time.Date(2025, 3, 2, 0, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
