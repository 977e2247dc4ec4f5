package models

import "time"

// CheckInEvent is one attendance record. At most one exists per
// (IdentityKey, CalendarDate).
type CheckInEvent struct {
	ID           int64     `db:"id"`
	IdentityKey  string    `db:"identity_key"`
	DisplayName  string    `db:"display_name"`
	SecondaryKey string    `db:"secondary_key"`
	CalendarDate string    `db:"calendar_date"`
	EventTime    time.Time `db:"event_time"`
}
