package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidcheck/internal/domain/attendance"
	"kidcheck/internal/domain/checkin"
	"kidcheck/internal/domain/child"
	"kidcheck/internal/domain/session"
	reqdto "kidcheck/internal/handler/dto/request"
	"kidcheck/internal/infra"
	"kidcheck/internal/pkg/clock"
	"kidcheck/internal/pkg/errs"
	"kidcheck/internal/pkg/token"
	"kidcheck/internal/usecase/queries"
)

var (
	ErrRequesterNotFound       = errs.New("requester not found")
	ErrChildNotFound           = errs.New("child not found")
	ErrNotParentOfChild        = errs.New("requester is not a registered parent of the child")
	ErrServiceNotFound         = errs.New("service not found")
	ErrServiceInactive         = errs.New("service is not accepting check-ins")
	ErrCheckInClosed           = errs.New("check-in window is closed")
	ErrChildAgeIneligible      = errs.New("child age is outside the service age band")
	ErrRequestNotFound         = errs.New("check-in request not found")
	ErrRequestNotPending       = errs.New("check-in request is not pending")
	ErrRequestExpired          = errs.New("check-in request has expired")
	ErrStaffNotFound           = errs.New("staff member not found")
	ErrRejectionReasonRequired = errs.New("rejection reason is required")
	ErrServiceAtCapacity       = errs.New("service is at capacity")
	ErrChildAlreadyCheckedIn   = errs.New("child is already checked in to this service today")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// expireSweepBatchSize bounds one sweep pass so a large backlog cannot
// hold a long-running statement.
const expireSweepBatchSize = 500

type CreateRequestResult struct {
	Request *queries.RequestView
	// Reused is true when an equivalent pending request already existed
	// and was returned instead of creating a new one.
	Reused bool
}

type ProcessResult struct {
	Request      *queries.RequestView
	AttendanceID *uuid.UUID // set on approval only
}

type CheckInCommands interface {
	CreateRequest(ctx context.Context, requesterID uuid.UUID, req reqdto.CreateCheckinRequest) (*CreateRequestResult, error)
	Approve(ctx context.Context, rawToken string, staffID uuid.UUID) (*ProcessResult, error)
	Reject(ctx context.Context, rawToken string, staffID uuid.UUID, reason string) (*ProcessResult, error)
	Cancel(ctx context.Context, requestID, requesterID uuid.UUID) error
	ExpireStale(ctx context.Context) (int64, error)
}

type checkInUseCaseImpl struct {
	checkinRepo    CheckInRepository
	attendanceRepo AttendanceRepository
	childRepo      ChildRepository
	serviceRepo    ServiceRepository
	userRepo       UserRepository
	notifier       NotificationPort
	checkInQueries queries.CheckInQueries
	db             *pgxpool.Pool
	clock          clock.Clock
	notifyTimeout  time.Duration
}

func NewCheckInUseCase(
	checkinRepo CheckInRepository,
	attendanceRepo AttendanceRepository,
	childRepo ChildRepository,
	serviceRepo ServiceRepository,
	userRepo UserRepository,
	notifier NotificationPort,
	checkInQueries queries.CheckInQueries,
	db *pgxpool.Pool,
	clock clock.Clock,
	notifyTimeout time.Duration,
) CheckInCommands {
	return &checkInUseCaseImpl{
		checkinRepo:    checkinRepo,
		attendanceRepo: attendanceRepo,
		childRepo:      childRepo,
		serviceRepo:    serviceRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		checkInQueries: checkInQueries,
		db:             db,
		clock:          clock,
		notifyTimeout:  notifyTimeout,
	}
}

func (u *checkInUseCaseImpl) CreateRequest(
	ctx context.Context,
	requesterID uuid.UUID,
	req reqdto.CreateCheckinRequest,
) (*CreateRequestResult, error) {
	now := u.clock.Now()

	if _, err := u.userRepo.FindByID(ctx, requesterID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequesterNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	childEntity, err := u.validateAndGetChild(ctx, req.ChildID)
	if err != nil {
		return nil, err
	}
	if !childEntity.IsParent(requesterID) {
		return nil, ErrNotParentOfChild
	}

	svc, err := u.validateAndGetService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive() {
		return nil, ErrServiceInactive
	}
	if !svc.IsCheckInOpen(now) {
		return nil, ErrCheckInClosed
	}
	if !svc.IsAgeEligible(childEntity.AgeAt(now)) {
		return nil, ErrChildAgeIneligible
	}

	// Idempotent create: a live pending request for the same child and
	// service is returned as-is instead of minting a second token.
	existing, err := u.findReusablePending(ctx, req.ChildID, req.ServiceID, now)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		view, viewErr := u.checkInQueries.GetByIDSystem(ctx, existing.ID())
		if viewErr != nil {
			return nil, errs.Mark(viewErr, ErrDatabaseOperationFailed)
		}
		return &CreateRequestResult{Request: view, Reused: true}, nil
	}

	note, err := checkin.NewNote(req.GetNote())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	rawToken, err := token.GenerateSecureToken()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	requestEntity, err := checkin.NewRequest(req.ChildID, req.ServiceID, requesterID, rawToken, note, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	requestID, err := u.checkinRepo.Create(ctx, u.db, requestEntity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// Lost the pending-uniqueness race for the same child and
			// service; hand back the winner or evict a stale one.
			return u.resolveCreateCollision(ctx, requestEntity, now, err)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := u.checkInQueries.GetByIDSystem(ctx, requestID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &CreateRequestResult{Request: view, Reused: false}, nil
}

func (u *checkInUseCaseImpl) Approve(
	ctx context.Context,
	rawToken string,
	staffID uuid.UUID,
) (*ProcessResult, error) {
	now := u.clock.Now()

	requestEntity, err := u.findRequestByToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	// Validity before actor resolution: a dead token reports Expired no
	// matter who scanned it.
	if !requestEntity.IsPending() {
		if requestEntity.Status() == checkin.StatusExpired {
			return nil, ErrRequestExpired
		}
		return nil, ErrRequestNotPending
	}
	if requestEntity.IsExpired(now) {
		return nil, ErrRequestExpired
	}

	staff, err := u.validateAndGetStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	svc, err := u.validateAndGetService(ctx, requestEntity.ServiceID())
	if err != nil {
		return nil, err
	}

	// Fast-path occupancy checks on the pool; the transaction re-runs
	// both under a service row lock before committing.
	activeCount, err := u.attendanceRepo.CountActiveByService(ctx, u.db, svc.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if activeCount >= int64(svc.MaxCapacity()) {
		return nil, ErrServiceAtCapacity
	}

	alreadyIn, err := u.attendanceRepo.ExistsForChildAndServiceOnDay(ctx, u.db, requestEntity.ChildID(), svc.ID(), now)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if alreadyIn {
		return nil, ErrChildAlreadyCheckedIn
	}

	requester, err := u.userRepo.FindByID(ctx, requestEntity.RequesterID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := requestEntity.Approve(staffID, now); err != nil {
		return nil, u.mapTransitionErr(err)
	}

	requestID := requestEntity.ID()
	record, err := attendance.NewRecord(
		requestEntity.ChildID(),
		svc.ID(),
		&requestID,
		now,
		staff.DisplayName,
		requester.DisplayName,
		requestEntity.Note().String(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	attendanceID, err := u.executeApprovalTransaction(ctx, requestEntity, record, now)
	if err != nil {
		return nil, err
	}

	u.notifyAsync(requestEntity.RequesterID(), approvalNotification(requestEntity, attendanceID, staff.DisplayName, now))

	view, err := u.checkInQueries.GetByIDSystem(ctx, requestEntity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &ProcessResult{Request: view, AttendanceID: &attendanceID}, nil
}

func (u *checkInUseCaseImpl) Reject(
	ctx context.Context,
	rawToken string,
	staffID uuid.UUID,
	reason string,
) (*ProcessResult, error) {
	now := u.clock.Now()

	requestEntity, err := u.findRequestByToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if !requestEntity.IsPending() {
		if requestEntity.Status() == checkin.StatusExpired {
			return nil, ErrRequestExpired
		}
		return nil, ErrRequestNotPending
	}
	if requestEntity.IsExpired(now) {
		return nil, ErrRequestExpired
	}

	if _, err := u.validateAndGetStaff(ctx, staffID); err != nil {
		return nil, err
	}

	if err := requestEntity.Reject(staffID, reason, now); err != nil {
		return nil, u.mapTransitionErr(err)
	}

	if err := u.commitTransition(ctx, requestEntity); err != nil {
		return nil, err
	}

	u.notifyAsync(requestEntity.RequesterID(), StatusNotification{
		RequestID:   requestEntity.ID(),
		ChildID:     requestEntity.ChildID(),
		ServiceID:   requestEntity.ServiceID(),
		Status:      checkin.StatusRejected.String(),
		ProcessedAt: now,
		Reason:      requestEntity.RejectionReason(),
	})

	view, err := u.checkInQueries.GetByIDSystem(ctx, requestEntity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &ProcessResult{Request: view}, nil
}

func (u *checkInUseCaseImpl) Cancel(ctx context.Context, requestID, requesterID uuid.UUID) error {
	now := u.clock.Now()

	requestEntity, err := u.checkinRepo.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrRequestNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	childEntity, err := u.validateAndGetChild(ctx, requestEntity.ChildID())
	if err != nil {
		return err
	}
	if !childEntity.IsParent(requesterID) {
		return ErrNotParentOfChild
	}

	if err := requestEntity.Cancel(now); err != nil {
		return u.mapTransitionErr(err)
	}

	return u.commitTransition(ctx, requestEntity)
}

// ExpireStale transitions pending requests past their validity window to
// expired. It is idempotent and silent: no notifications, no actor.
func (u *checkInUseCaseImpl) ExpireStale(ctx context.Context) (int64, error) {
	now := u.clock.Now()

	ids, err := u.checkinRepo.FindPendingExpiredBefore(ctx, now, expireSweepBatchSize)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	expired, err := u.checkinRepo.ExpireBatch(ctx, ids, now)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return expired, nil
}

func (u *checkInUseCaseImpl) findRequestByToken(ctx context.Context, rawToken string) (*checkin.Request, error) {
	requestEntity, err := u.checkinRepo.FindByToken(ctx, rawToken)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return requestEntity, nil
}

func (u *checkInUseCaseImpl) validateAndGetChild(ctx context.Context, childID uuid.UUID) (*child.Child, error) {
	snap, err := u.childRepo.FindByID(ctx, childID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return child.NewChild(
		snap.ID,
		snap.DisplayName,
		snap.BirthDate,
		snap.PrimaryParentID,
		snap.SecondaryParentID,
		snap.MedicalNotes,
		snap.Allergies,
		snap.SpecialNeeds,
	), nil
}

func (u *checkInUseCaseImpl) validateAndGetService(ctx context.Context, serviceID uuid.UUID) (*session.Session, error) {
	snap, err := u.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	svc, err := session.NewSession(
		snap.ID,
		snap.Name,
		snap.IsActive,
		snap.StartTime,
		snap.EndTime,
		snap.CheckinLeadMin,
		snap.MinAge,
		snap.MaxAge,
		snap.MaxCapacity,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return svc, nil
}

func (u *checkInUseCaseImpl) validateAndGetStaff(ctx context.Context, staffID uuid.UUID) (*UserSnapshot, error) {
	staff, err := u.userRepo.FindByID(ctx, staffID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return staff, nil
}

func (u *checkInUseCaseImpl) findReusablePending(
	ctx context.Context,
	childID, serviceID uuid.UUID,
	now time.Time,
) (*checkin.Request, error) {
	existing, err := u.checkinRepo.FindPendingByChildAndService(ctx, childID, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existing.IsExpired(now) {
		// Stale pending row the sweep has not visited. Expire it now so
		// it stops occupying the pending-uniqueness slot; the fresh
		// request takes its place.
		u.expireInPlace(ctx, existing, now)
		return nil, nil
	}
	return existing, nil
}

// resolveCreateCollision handles losing the pending-uniqueness race: a
// live winner is reused, a stale one is expired in place and the insert
// retried once. A dead token is never handed back as a success.
func (u *checkInUseCaseImpl) resolveCreateCollision(
	ctx context.Context,
	requestEntity *checkin.Request,
	now time.Time,
	createErr error,
) (*CreateRequestResult, error) {
	winner, err := u.checkinRepo.FindPendingByChildAndService(ctx, requestEntity.ChildID(), requestEntity.ServiceID())
	if err != nil {
		return nil, errs.Mark(createErr, ErrDatabaseOperationFailed)
	}

	if !winner.IsExpired(now) {
		view, viewErr := u.checkInQueries.GetByIDSystem(ctx, winner.ID())
		if viewErr != nil {
			return nil, errs.Mark(viewErr, ErrDatabaseOperationFailed)
		}
		return &CreateRequestResult{Request: view, Reused: true}, nil
	}

	u.expireInPlace(ctx, winner, now)

	requestID, err := u.checkinRepo.Create(ctx, u.db, requestEntity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	view, err := u.checkInQueries.GetByIDSystem(ctx, requestID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &CreateRequestResult{Request: view, Reused: false}, nil
}

// expireInPlace flips a stale pending row to expired ahead of the
// sweep. Losing the guarded update to a concurrent transition is fine:
// the row is out of the pending state either way.
func (u *checkInUseCaseImpl) expireInPlace(ctx context.Context, requestEntity *checkin.Request, now time.Time) {
	if err := requestEntity.Expire(now); err != nil {
		return
	}
	if err := u.checkinRepo.UpdateIfPending(ctx, u.db, requestEntity); err != nil && !infra.IsKind(err, infra.KindConflict) {
		slog.Warn("failed to expire stale pending request",
			"request_id", requestEntity.ID(),
			"error", err,
		)
	}
}

// executeApprovalTransaction persists the attendance record and the
// status flip atomically. The service row lock plus the in-transaction
// occupancy checks are the concurrency authority; the pre-checks on the
// pool only reject the obvious cases cheaply. If another transition won
// the CAS, the whole transaction rolls back and no attendance record
// survives.
func (u *checkInUseCaseImpl) executeApprovalTransaction(
	ctx context.Context,
	requestEntity *checkin.Request,
	record *attendance.Record,
	now time.Time,
) (uuid.UUID, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	svc, err := u.serviceRepo.FindByIDForUpdate(ctx, tx, requestEntity.ServiceID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrServiceNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	activeCount, err := u.attendanceRepo.CountActiveByService(ctx, tx, svc.ID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if activeCount >= int64(svc.MaxCapacity) {
		return uuid.Nil, ErrServiceAtCapacity
	}

	alreadyIn, err := u.attendanceRepo.ExistsForChildAndServiceOnDay(ctx, tx, requestEntity.ChildID(), svc.ID, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if alreadyIn {
		return uuid.Nil, ErrChildAlreadyCheckedIn
	}

	attendanceID, err := u.attendanceRepo.Create(ctx, tx, record)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := u.checkinRepo.UpdateIfPending(ctx, tx, requestEntity); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return uuid.Nil, u.resolveLostRace(ctx, requestEntity.ID())
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return uuid.Nil, errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}
	return attendanceID, nil
}

// approvalNotification assembles the approved-status event, attendance
// reference and approver name included.
func approvalNotification(r *checkin.Request, attendanceID uuid.UUID, approverName string, now time.Time) StatusNotification {
	return StatusNotification{
		RequestID:    r.ID(),
		ChildID:      r.ChildID(),
		ServiceID:    r.ServiceID(),
		Status:       checkin.StatusApproved.String(),
		ProcessedAt:  now,
		AttendanceID: &attendanceID,
		ApproverName: &approverName,
	}
}

// commitTransition persists a non-approval transition through the same
// pending-guarded update, outside a transaction.
func (u *checkInUseCaseImpl) commitTransition(ctx context.Context, requestEntity *checkin.Request) error {
	if err := u.checkinRepo.UpdateIfPending(ctx, u.db, requestEntity); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return u.resolveLostRace(ctx, requestEntity.ID())
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// resolveLostRace re-reads a request whose guarded update matched no
// row and reports what actually happened to it.
func (u *checkInUseCaseImpl) resolveLostRace(ctx context.Context, requestID uuid.UUID) error {
	current, err := u.checkinRepo.FindByID(ctx, requestID)
	if err != nil {
		return ErrRequestNotPending
	}
	if current.Status() == checkin.StatusExpired {
		return ErrRequestExpired
	}
	return ErrRequestNotPending
}

func (u *checkInUseCaseImpl) mapTransitionErr(err error) error {
	switch {
	case errors.Is(err, checkin.ErrNotPending):
		return ErrRequestNotPending
	case errors.Is(err, checkin.ErrRequestExpired):
		return ErrRequestExpired
	case errors.Is(err, checkin.ErrEmptyRejectionReason):
		return ErrRejectionReasonRequired
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}

// notifyAsync publishes the status change without blocking the caller.
// Failures are logged and swallowed; delivery is best-effort.
func (u *checkInUseCaseImpl) notifyAsync(requesterID uuid.UUID, n StatusNotification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), u.notifyTimeout)
		defer cancel()

		if err := u.notifier.PublishStatusChange(ctx, requesterID, n); err != nil {
			slog.Warn("failed to publish status notification",
				"request_id", n.RequestID,
				"status", n.Status,
				"error", err,
			)
		}
	}()
}
