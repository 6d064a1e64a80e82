package checkin

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestTTL is the fixed validity window of a check-in request. The
// expiry is computed once at creation and never extended.
const RequestTTL = 15 * time.Minute

var (
	ErrNotPending           = errors.New("request is not pending")
	ErrRequestExpired       = errors.New("request has expired")
	ErrEmptyRejectionReason = errors.New("rejection reason must not be empty")
	ErrEmptyToken           = errors.New("token must not be empty")
)

// Request is the short-lived authorization record a parent creates and
// staff consume to admit a child into a service session. Only the
// methods below mutate status; every non-pending status is terminal.
type Request struct {
	id              uuid.UUID
	childID         uuid.UUID
	serviceID       uuid.UUID
	requesterID     uuid.UUID
	token           string
	status          Status
	note            Note
	createdAt       time.Time
	expiresAt       time.Time
	processedBy     *uuid.UUID
	processedAt     *time.Time
	rejectionReason *string
}

func NewRequest(childID, serviceID, requesterID uuid.UUID, token string, note Note, now time.Time) (*Request, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	return &Request{
		id:          uuid.New(),
		childID:     childID,
		serviceID:   serviceID,
		requesterID: requesterID,
		token:       token,
		status:      StatusPending,
		note:        note,
		createdAt:   now,
		expiresAt:   now.Add(RequestTTL),
	}, nil
}

func ReconstructRequest(
	id, childID, serviceID, requesterID uuid.UUID,
	token string,
	status Status,
	note Note,
	createdAt, expiresAt time.Time,
	processedBy *uuid.UUID,
	processedAt *time.Time,
	rejectionReason *string,
) *Request {
	return &Request{
		id:              id,
		childID:         childID,
		serviceID:       serviceID,
		requesterID:     requesterID,
		token:           token,
		status:          status,
		note:            note,
		createdAt:       createdAt,
		expiresAt:       expiresAt,
		processedBy:     processedBy,
		processedAt:     processedAt,
		rejectionReason: rejectionReason,
	}
}

func (r *Request) IsPending() bool {
	return r.status == StatusPending
}

func (r *Request) IsExpired(now time.Time) bool {
	return now.After(r.expiresAt)
}

// ExpiresIn returns the remaining validity, floored at zero. Derived on
// every read; never stored.
func (r *Request) ExpiresIn(now time.Time) time.Duration {
	remaining := r.expiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Approve transitions pending → approved and stamps the staff actor.
func (r *Request) Approve(staffID uuid.UUID, now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	if r.IsExpired(now) {
		return ErrRequestExpired
	}

	r.status = StatusApproved
	r.processedBy = &staffID
	r.processedAt = &now
	return nil
}

// Reject transitions pending → rejected. A non-empty reason is
// required; validity is checked first so a dead request reports its
// state, not the missing reason.
func (r *Request) Reject(staffID uuid.UUID, reason string, now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	if r.IsExpired(now) {
		return ErrRequestExpired
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrEmptyRejectionReason
	}

	r.status = StatusRejected
	r.processedBy = &staffID
	r.processedAt = &now
	r.rejectionReason = &reason
	return nil
}

// Cancel transitions pending → cancelled. Requester-initiated, so
// processedBy stays nil.
func (r *Request) Cancel(now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	if r.IsExpired(now) {
		return ErrRequestExpired
	}

	r.status = StatusCancelled
	r.processedAt = &now
	return nil
}

// Expire transitions pending → expired on behalf of the sweep.
// processedBy stays nil: no actor performed the transition.
func (r *Request) Expire(now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}

	r.status = StatusExpired
	r.processedAt = &now
	return nil
}

func (r *Request) ID() uuid.UUID            { return r.id }
func (r *Request) ChildID() uuid.UUID       { return r.childID }
func (r *Request) ServiceID() uuid.UUID     { return r.serviceID }
func (r *Request) RequesterID() uuid.UUID   { return r.requesterID }
func (r *Request) Token() string            { return r.token }
func (r *Request) Status() Status           { return r.status }
func (r *Request) Note() Note               { return r.note }
func (r *Request) CreatedAt() time.Time     { return r.createdAt }
func (r *Request) ExpiresAt() time.Time     { return r.expiresAt }
func (r *Request) ProcessedBy() *uuid.UUID  { return r.processedBy }
func (r *Request) ProcessedAt() *time.Time  { return r.processedAt }
func (r *Request) RejectionReason() *string { return r.rejectionReason }
