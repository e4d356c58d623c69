package domain

import "time"

// StudySession is one study sitting for a user. A session is opened
// when studying starts and completed later with an end time and the
// average focus computed by the device; AvgFocus and EndTime stay nil
// until then.
type StudySession struct {
	ID        string
	UserID    string
	Subject   string
	AvgFocus  *float64
	StartTime time.Time
	EndTime   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Completed reports whether the session has been closed.
func (s *StudySession) Completed() bool {
	return s.EndTime != nil
}

// StudyData is a single focus sample streamed by the wearable during a
// session: the raw PPG reading and the focus score derived from it.
type StudyData struct {
	ID         string
	SessionID  string
	PpgValue   float64
	FocusScore float64
	Time       time.Time
	CreatedAt  time.Time
}
