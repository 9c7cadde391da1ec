package leadstate

import (
	"database/sql/driver"
	"fmt"
)

// TuitionStatus tracks the outcome of a matched tuition for the tutor's own
// accounting. The zero value means nothing has been recorded yet.
type TuitionStatus string

const (
	TuitionNone      TuitionStatus = ""
	TuitionOngoing   TuitionStatus = "ongoing"
	TuitionCompleted TuitionStatus = "completed"
)

func ParseTuitionStatus(s string) (TuitionStatus, error) {
	switch TuitionStatus(s) {
	case TuitionOngoing, TuitionCompleted:
		return TuitionStatus(s), nil
	}
	return TuitionNone, fmt.Errorf("invalid tuition status %q: must be ongoing or completed", s)
}

// CanMoveTo reports whether the tuition status may change from t to next.
// Re-recording the same status is allowed so the end date can be corrected.
func (t TuitionStatus) CanMoveTo(next TuitionStatus) bool {
	switch t {
	case TuitionNone:
		return next == TuitionOngoing || next == TuitionCompleted
	case TuitionOngoing:
		return next == TuitionOngoing || next == TuitionCompleted
	case TuitionCompleted:
		return next == TuitionCompleted
	}
	return false
}

func (t *TuitionStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = TuitionStatus(v)
	case []byte:
		*t = TuitionStatus(v)
	case nil:
		*t = TuitionNone
	default:
		return fmt.Errorf("cannot scan %T into leadstate.TuitionStatus", value)
	}
	return nil
}

func (t TuitionStatus) Value() (driver.Value, error) {
	return string(t), nil
}
