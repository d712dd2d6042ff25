package shift

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	shifterrors "go-shiftswap/internal/shift/errors"
	"go-shiftswap/internal/shared/apperror"
	"go-shiftswap/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DatePair is one swap: the employee is off on DayOff and works DayWorked instead.
type DatePair struct {
	DayOff    time.Time
	DayWorked time.Time
}

type Summary struct {
	UpdatedCount  int
	CreatedCount  int
	AffectedDates []time.Time
}

func (s Summary) Changed() bool {
	return s.UpdatedCount+s.CreatedCount > 0
}

// Period returns the first and last affected date.
func (s Summary) Period() (time.Time, time.Time, bool) {
	if len(s.AffectedDates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.AffectedDates[0], s.AffectedDates[len(s.AffectedDates)-1], true
}

type target struct {
	date    time.Time
	status  string
	pattern *uuid.UUID
}

func (t target) satisfiedBy(e Entry) bool {
	if e.WorkStatus != t.status {
		return false
	}
	if t.pattern == nil {
		return true
	}
	return e.WorkPatternID != nil && *e.WorkPatternID == *t.pattern
}

type Reconciler struct {
	logger *zap.Logger
}

func NewReconciler(logger ...*zap.Logger) *Reconciler {
	l := zap.L().Named("shift.reconciler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.reconciler")
	}
	return &Reconciler{logger: l}
}

// Reconcile makes the user's calendar show OFF on every DayOff and WORK on
// every DayWorked. All off targets are applied before all work targets. Each
// entry is owned by the first target that resolves to it in a batch; later
// targets landing on the same entry are skipped, which keeps a second run
// over the same pairs free of writes. Dates with no covering entry get a new
// single-day entry.
//
// repo must already be bound to the caller's transaction. Any error leaves
// the caller responsible for rolling back.
func (r *Reconciler) Reconcile(ctx context.Context, repo Repository, userID uuid.UUID, pairs []DatePair, pattern *uuid.UUID) (Summary, error) {
	if len(pairs) == 0 {
		return Summary{}, nil
	}
	log := contextutil.GetLogger(ctx, r.logger).With(zap.String("user_id", userID.String()))

	targets := make([]target, 0, len(pairs)*2)
	for _, p := range pairs {
		targets = append(targets, target{date: Day(p.DayOff), status: StatusOff})
	}
	for _, p := range pairs {
		targets = append(targets, target{date: Day(p.DayWorked), status: StatusWork, pattern: pattern})
	}

	from, to := targets[0].date, targets[0].date
	for _, t := range targets[1:] {
		if t.date.Before(from) {
			from = t.date
		}
		if t.date.After(to) {
			to = t.date
		}
	}

	entries, err := repo.FindOverlapping(ctx, userID, from, to)
	if err != nil {
		log.Error("reconcile load shift entries failed",
			zap.Time("from", from),
			zap.Time("to", to),
			zap.Error(err),
		)
		return Summary{}, wrapFailure(err)
	}
	log.Debug("reconcile shift entries loaded",
		zap.Int("pairs", len(pairs)),
		zap.Int("entries", len(entries)),
	)

	var summary Summary
	claimed := make(map[uuid.UUID]struct{}, len(targets))
	affected := make(map[time.Time]struct{}, len(targets))

	for _, t := range targets {
		idx := firstCovering(entries, t.date)
		if idx < 0 {
			e := Entry{
				ID:            uuid.New(),
				UserID:        userID,
				PeriodStart:   t.date,
				PeriodEnd:     t.date,
				WorkStatus:    t.status,
				WorkPatternID: t.pattern,
			}
			if err := repo.Create(ctx, &e); err != nil {
				log.Error("reconcile create shift entry failed",
					zap.String("date", t.date.Format(time.DateOnly)),
					zap.String("status", t.status),
					zap.Error(err),
				)
				return Summary{}, wrapFailure(err)
			}
			entries = append(entries, e)
			claimed[e.ID] = struct{}{}
			affected[t.date] = struct{}{}
			summary.CreatedCount++
			continue
		}

		e := &entries[idx]
		if _, ok := claimed[e.ID]; ok {
			continue
		}
		claimed[e.ID] = struct{}{}
		if t.satisfiedBy(*e) {
			continue
		}

		if err := repo.UpdateStatus(ctx, e.ID, t.status, t.pattern); err != nil {
			log.Error("reconcile update shift entry failed",
				zap.String("entry_id", e.ID.String()),
				zap.String("date", t.date.Format(time.DateOnly)),
				zap.String("from_status", e.WorkStatus),
				zap.String("to_status", t.status),
				zap.Error(err),
			)
			return Summary{}, wrapFailure(err)
		}
		e.WorkStatus = t.status
		if t.pattern != nil {
			e.WorkPatternID = t.pattern
		}
		affected[t.date] = struct{}{}
		summary.UpdatedCount++
	}

	summary.AffectedDates = make([]time.Time, 0, len(affected))
	for d := range affected {
		summary.AffectedDates = append(summary.AffectedDates, d)
	}
	sort.Slice(summary.AffectedDates, func(i, j int) bool {
		return summary.AffectedDates[i].Before(summary.AffectedDates[j])
	})

	log.Info("reconcile shift entries done",
		zap.Int("updated", summary.UpdatedCount),
		zap.Int("created", summary.CreatedCount),
	)
	return summary, nil
}

func firstCovering(entries []Entry, d time.Time) int {
	for i := range entries {
		if entries[i].Covers(d) {
			return i
		}
	}
	return -1
}

// Conflicts already carry their own code; everything else is an internal failure.
func wrapFailure(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == apperror.CodeConflict {
		return err
	}
	return fmt.Errorf("%w: %w", shifterrors.ErrReconcileFailed, err)
}
