package attendance

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyApproverName = errors.New("approver name must not be empty")

// Record captures a child's admitted presence at a service session. It
// is created when staff approve a check-in request; check-out happens
// elsewhere and only clears checkOutTime.
type Record struct {
	id              uuid.UUID
	childID         uuid.UUID
	serviceID       uuid.UUID
	requestID       *uuid.UUID // nil for non-QR admission paths
	checkInTime     time.Time
	checkOutTime    *time.Time
	approvedByStaff string
	requesterName   string
	note            string
}

func NewRecord(
	childID, serviceID uuid.UUID,
	requestID *uuid.UUID,
	checkInTime time.Time,
	approvedByStaff, requesterName, note string,
) (*Record, error) {
	if approvedByStaff == "" {
		return nil, ErrEmptyApproverName
	}

	return &Record{
		id:              uuid.New(),
		childID:         childID,
		serviceID:       serviceID,
		requestID:       requestID,
		checkInTime:     checkInTime,
		approvedByStaff: approvedByStaff,
		requesterName:   requesterName,
		note:            note,
	}, nil
}

func ReconstructRecord(
	id, childID, serviceID uuid.UUID,
	requestID *uuid.UUID,
	checkInTime time.Time,
	checkOutTime *time.Time,
	approvedByStaff, requesterName, note string,
) *Record {
	return &Record{
		id:              id,
		childID:         childID,
		serviceID:       serviceID,
		requestID:       requestID,
		checkInTime:     checkInTime,
		checkOutTime:    checkOutTime,
		approvedByStaff: approvedByStaff,
		requesterName:   requesterName,
		note:            note,
	}
}

// IsActive reports whether the child is still checked in.
func (r *Record) IsActive() bool {
	return r.checkOutTime == nil
}

func (r *Record) ID() uuid.UUID           { return r.id }
func (r *Record) ChildID() uuid.UUID      { return r.childID }
func (r *Record) ServiceID() uuid.UUID    { return r.serviceID }
func (r *Record) RequestID() *uuid.UUID   { return r.requestID }
func (r *Record) CheckInTime() time.Time  { return r.checkInTime }
func (r *Record) CheckOutTime() *time.Time { return r.checkOutTime }
func (r *Record) ApprovedByStaff() string { return r.approvedByStaff }
func (r *Record) RequesterName() string   { return r.requesterName }
func (r *Record) Note() string            { return r.note }
