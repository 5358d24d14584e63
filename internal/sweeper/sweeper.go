// Package sweeper advances time-sensitive entity states outside the
// request path: stale referrals are cancelled, missed appointments are
// marked, and yesterday's queue rows are expired. Every rule is a single
// conditional bulk UPDATE keyed on a time predicate, so a run against an
// already-consistent dataset touches nothing and overlapping runs cannot
// corrupt state.
package sweeper

import (
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
)

// ReferralMaxAge is how long a referral may sit in pending or active
// before the sweep cancels it.
const ReferralMaxAge = 48 * time.Hour

// AppointmentGrace is how long past its scheduled time an appointment
// may stay scheduled before it is marked missed.
const AppointmentGrace = 24 * time.Hour

// TypeResult is the outcome of sweeping one entity type.
type TypeResult struct {
	Entity  string
	Updated int64
	Err     error
}

// Result aggregates one full sweep run.
type Result struct {
	Updated int64
	Results []TypeResult
}

// Errs returns the per-type failures of the run.
func (r Result) Errs() []TypeResult {
	var out []TypeResult
	for _, tr := range r.Results {
		if tr.Err != nil {
			out = append(out, tr)
		}
	}
	return out
}

// Sweeper holds no state between runs; every invocation is a fresh pass.
type Sweeper struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func New(db *sql.DB, log zerolog.Logger) *Sweeper {
	return &Sweeper{DB: db, Log: log}
}

// RunAllUpdates sweeps every entity type. A failure on one type is
// logged and recorded but does not stop the remaining types; the caller
// decides what partial success means (the cron binary exits zero).
func (s *Sweeper) RunAllUpdates(now time.Time) Result {
	passes := []struct {
		entity string
		fn     func(time.Time) (int64, error)
	}{
		{"referrals", s.sweepReferrals},
		{"appointments", s.sweepAppointments},
		{"queue_entries", s.sweepQueueEntries},
	}

	var res Result
	for _, p := range passes {
		updated, err := p.fn(now)
		if err != nil {
			s.Log.Error().Err(err).Str("entity", p.entity).Msg("sweep pass failed")
		} else {
			s.Log.Info().Str("entity", p.entity).Int64("updated", updated).Msg("sweep pass done")
		}
		res.Updated += updated
		res.Results = append(res.Results, TypeResult{Entity: p.entity, Updated: updated, Err: err})
	}
	return res
}

// sweepReferrals cancels referrals that have sat in pending or active
// for more than ReferralMaxAge. Terminal states never match the
// predicate, so an operator write racing this update always wins.
func (s *Sweeper) sweepReferrals(now time.Time) (int64, error) {
	cutoff := now.Add(-ReferralMaxAge)
	res, err := s.DB.Exec(`
		UPDATE referrals
		SET status = 'cancelled'
		WHERE status IN ('pending', 'active') AND created_at < ?
	`, cutoff)
	if err != nil {
		return 0, apperr.Store("sweep referrals", err)
	}
	return res.RowsAffected()
}

// sweepAppointments marks scheduled appointments missed once they are
// more than AppointmentGrace past their scheduled time.
func (s *Sweeper) sweepAppointments(now time.Time) (int64, error) {
	cutoff := now.Add(-AppointmentGrace)
	res, err := s.DB.Exec(`
		UPDATE appointments
		SET status = 'missed'
		WHERE status = 'scheduled' AND scheduled_at < ?
	`, cutoff)
	if err != nil {
		return 0, apperr.Store("sweep appointments", err)
	}
	return res.RowsAffected()
}

// sweepQueueEntries expires waiting and in-progress rows from previous
// days so station displays start each morning clean.
func (s *Sweeper) sweepQueueEntries(now time.Time) (int64, error) {
	today := now.Format("2006-01-02")
	res, err := s.DB.Exec(`
		UPDATE queue_entries
		SET status = 'expired'
		WHERE status IN ('waiting', 'in_progress') AND queue_date < ?
	`, today)
	if err != nil {
		return 0, apperr.Store("sweep queue entries", err)
	}
	return res.RowsAffected()
}
