package leadstate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []Status{PendingAdminVerification, VerifiedAvailable, PendingTutorApproval, TutorMatched, Rejected}
var allEvents = []Event{EventVerify, EventRejectLead, EventAccept, EventApproveMatch, EventRejectMatch}

func TestNext_ListedTransitions(t *testing.T) {
	cases := []struct {
		from  Status
		event Event
		to    Status
	}{
		{PendingAdminVerification, EventVerify, VerifiedAvailable},
		{PendingAdminVerification, EventRejectLead, Rejected},
		{VerifiedAvailable, EventAccept, PendingTutorApproval},
		{PendingTutorApproval, EventApproveMatch, TutorMatched},
		{PendingTutorApproval, EventRejectMatch, VerifiedAvailable},
	}
	for _, tc := range cases {
		got, err := Next(7, tc.from, tc.event)
		require.NoError(t, err)
		assert.Equal(t, tc.to, got)
	}
}

func TestNext_UnlistedTransitionsLeaveStateAndNameIt(t *testing.T) {
	allowed := 0
	for _, from := range allStatuses {
		for _, ev := range allEvents {
			src, _ := Source(ev)
			got, err := Next(42, from, ev)
			if src == from {
				allowed++
				continue
			}
			require.Error(t, err)
			assert.Equal(t, from, got)

			var te *TransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, from, te.Current)
			assert.Contains(t, err.Error(), string(from))
		}
	}
	assert.Equal(t, 5, allowed)
}

func TestTerminalStatesAcceptNothing(t *testing.T) {
	for _, s := range []Status{TutorMatched, Rejected} {
		assert.True(t, s.Terminal())
		for _, ev := range allEvents {
			_, err := Next(1, s, ev)
			assert.Error(t, err)
		}
	}
}

func TestTutorEngaged(t *testing.T) {
	assert.False(t, TutorEngaged(PendingAdminVerification))
	assert.False(t, TutorEngaged(VerifiedAvailable))
	assert.True(t, TutorEngaged(PendingTutorApproval))
	assert.True(t, TutorEngaged(TutorMatched))
	assert.False(t, TutorEngaged(Rejected))
}

func TestStatusScanValue(t *testing.T) {
	var s Status
	require.NoError(t, s.Scan([]byte("TUTOR_MATCHED")))
	assert.Equal(t, TutorMatched, s)
	v, err := s.Value()
	require.NoError(t, err)
	assert.Equal(t, "TUTOR_MATCHED", v)
	assert.Error(t, s.Scan(12))
	assert.False(t, Status("ACCEPTED").Valid())
}

func TestTuitionStatusMoves(t *testing.T) {
	assert.True(t, TuitionNone.CanMoveTo(TuitionOngoing))
	assert.True(t, TuitionNone.CanMoveTo(TuitionCompleted))
	assert.True(t, TuitionOngoing.CanMoveTo(TuitionCompleted))
	assert.False(t, TuitionCompleted.CanMoveTo(TuitionOngoing))
	assert.False(t, TuitionOngoing.CanMoveTo(TuitionNone))

	_, err := ParseTuitionStatus("paused")
	assert.Error(t, err)
	got, err := ParseTuitionStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, TuitionCompleted, got)
}
