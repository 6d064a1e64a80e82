package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kidcheck/internal/domain/checkin"
	"kidcheck/internal/infra"
	"kidcheck/internal/pkg/clock"
	"kidcheck/internal/pkg/errs"
)

var (
	ErrRequestNotFound = errs.New("check-in request not found")
	ErrRequestExpired  = errs.New("check-in request expired")
)

type CheckInQueries interface {
	// GetScanDetails resolves a scanned QR token for staff. An expired
	// request is reported as expired, never as missing, so the scanner
	// can tell the requester what happened.
	GetScanDetails(ctx context.Context, token string) (*ScanDetailsView, error)
	// ListActiveByRequester returns the requester's pending, unexpired
	// requests. Stale rows the sweep has not visited yet are filtered
	// out at read time.
	ListActiveByRequester(ctx context.Context, requesterID uuid.UUID) ([]*RequestView, error)
	// GetByIDSystem bypasses actor checks; for read-after-write inside
	// the command side.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*RequestView, error)
}

type CheckInReadStore interface {
	FindScanDetailsByToken(ctx context.Context, token string) (*ScanDetailsView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	FindActiveByRequester(ctx context.Context, requesterID uuid.UUID, now time.Time) ([]*RequestView, error)
}

type checkInQueriesImpl struct {
	readStore CheckInReadStore
	clock     clock.Clock
}

func NewCheckInQueries(readStore CheckInReadStore, clock clock.Clock) CheckInQueries {
	return &checkInQueriesImpl{
		readStore: readStore,
		clock:     clock,
	}
}

func (q *checkInQueriesImpl) GetScanDetails(ctx context.Context, token string) (*ScanDetailsView, error) {
	view, err := q.readStore.FindScanDetailsByToken(ctx, token)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	now := q.clock.Now()
	if view.Status == checkin.StatusExpired.String() {
		return nil, ErrRequestExpired
	}
	if view.Status == checkin.StatusPending.String() && now.After(view.ExpiresAt) {
		// The sweep has not visited this row yet; it is expired all the same.
		return nil, ErrRequestExpired
	}

	view.ExpiresInSeconds = remainingSeconds(view.ExpiresAt, now)
	view.ChildAgeYears = ageYearsAt(view.ChildBirthDate, now)
	return view, nil
}

func (q *checkInQueriesImpl) ListActiveByRequester(ctx context.Context, requesterID uuid.UUID) ([]*RequestView, error) {
	now := q.clock.Now()
	views, err := q.readStore.FindActiveByRequester(ctx, requesterID, now)
	if err != nil {
		return nil, err
	}

	for _, v := range views {
		v.ExpiresInSeconds = remainingSeconds(v.ExpiresAt, now)
	}
	return views, nil
}

func (q *checkInQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*RequestView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	view.ExpiresInSeconds = remainingSeconds(view.ExpiresAt, q.clock.Now())
	return view, nil
}

func ageYearsAt(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	if birthDate.AddDate(years, 0, 0).After(now) {
		years--
	}
	return years
}

func remainingSeconds(expiresAt, now time.Time) int64 {
	remaining := expiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return int64(remaining.Seconds())
}
