// Package leadstate defines the lead lifecycle and the tutor-side tuition
// status. The two machines are independent and live side by side on a lead.
package leadstate

import (
	"database/sql/driver"
	"fmt"
)

type Status string

const (
	PendingAdminVerification Status = "PENDING_ADMIN_VERIFICATION"
	VerifiedAvailable        Status = "VERIFIED_AVAILABLE"
	PendingTutorApproval     Status = "PENDING_TUTOR_APPROVAL"
	TutorMatched             Status = "TUTOR_MATCHED"
	Rejected                 Status = "REJECTED"
)

type Event string

const (
	EventVerify       Event = "verify"
	EventRejectLead   Event = "reject_lead"
	EventAccept       Event = "accept"
	EventApproveMatch Event = "approve_match"
	EventRejectMatch  Event = "reject_match"
)

type transition struct {
	from Status
	to   Status
}

// Every event has exactly one source state.
var transitions = map[Event]transition{
	EventVerify:       {from: PendingAdminVerification, to: VerifiedAvailable},
	EventRejectLead:   {from: PendingAdminVerification, to: Rejected},
	EventAccept:       {from: VerifiedAvailable, to: PendingTutorApproval},
	EventApproveMatch: {from: PendingTutorApproval, to: TutorMatched},
	EventRejectMatch:  {from: PendingTutorApproval, to: VerifiedAvailable},
}

// TransitionError reports an event that is not valid from the lead's
// current state.
type TransitionError struct {
	LeadID  uint
	Event   Event
	Current Status
}

func (e *TransitionError) Error() string {
	t, ok := transitions[e.Event]
	if !ok {
		return fmt.Sprintf("lead %d: unknown event %q (current status %s)", e.LeadID, e.Event, e.Current)
	}
	return fmt.Sprintf("lead %d is %s, not %s", e.LeadID, e.Current, t.from)
}

func (s Status) Valid() bool {
	switch s {
	case PendingAdminVerification, VerifiedAvailable, PendingTutorApproval, TutorMatched, Rejected:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == TutorMatched || s == Rejected
}

// TutorEngaged reports whether a lead in this state must carry an accepting tutor.
func TutorEngaged(s Status) bool {
	return s == PendingTutorApproval || s == TutorMatched
}

// Source returns the only state from which event may fire.
func Source(event Event) (Status, bool) {
	t, ok := transitions[event]
	return t.from, ok
}

// Next applies event to from. The lead id is only used for error reporting.
func Next(leadID uint, from Status, event Event) (Status, error) {
	t, ok := transitions[event]
	if !ok || t.from != from {
		return from, &TransitionError{LeadID: leadID, Event: event, Current: from}
	}
	return t.to, nil
}

// Scan and Value let GORM persist Status as a plain string column.
func (s *Status) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = Status(v)
	case []byte:
		*s = Status(v)
	case nil:
		*s = ""
	default:
		return fmt.Errorf("cannot scan %T into leadstate.Status", value)
	}
	return nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}
