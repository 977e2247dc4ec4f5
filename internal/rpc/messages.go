package rpc

import "time"

type Identity struct {
	IdentityKey  string    `json:"identity_key"`
	DisplayName  string    `json:"display_name"`
	SecondaryKey string    `json:"secondary_key"`
	RegisteredAt time.Time `json:"registered_at"`
}

type CheckInEvent struct {
	ID           int64     `json:"id"`
	IdentityKey  string    `json:"identity_key"`
	DisplayName  string    `json:"display_name"`
	SecondaryKey string    `json:"secondary_key"`
	CalendarDate string    `json:"calendar_date"`
	EventTime    time.Time `json:"event_time"`
}

// Stage values as they appear on the wire.
const (
	StageIdle                 = "idle"
	StageAwaitingName         = "awaiting_name"
	StageAwaitingSecondaryKey = "awaiting_secondary_key"
)

// Reply answers CheckIn and Input.
type Reply struct {
	Stage          string        `json:"stage"`
	Pending        bool          `json:"pending,omitempty"`
	Registered     bool          `json:"registered,omitempty"`
	Identity       *Identity     `json:"identity,omitempty"`
	Event          *CheckInEvent `json:"event,omitempty"`
	MirrorDegraded bool          `json:"mirror_degraded,omitempty"`
}

type CheckInRequest struct{}

type InputRequest struct {
	Text string `json:"text"`
}

type CancelRequest struct{}

type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

type HistoryRequest struct {
	Limit int `json:"limit,omitempty"`
}

type HistoryResponse struct {
	Identity  *Identity      `json:"identity"`
	Events    []CheckInEvent `json:"events"`
	TotalDays int            `json:"total_days"`
}

type ProfileRequest struct{}

type ProfileResponse struct {
	Identity  *Identity `json:"identity"`
	TotalDays int       `json:"total_days"`
	IsAdmin   bool      `json:"is_admin,omitempty"`
}

type StatusRequest struct{}

type StatusResponse struct {
	Active bool `json:"active"`
}

type NotificationsRequest struct{}

type NotificationsResponse struct {
	Messages []string `json:"messages"`
}

type SetAvailabilityRequest struct {
	Active bool `json:"active"`
}

type SetAvailabilityResponse struct {
	Active bool `json:"active"`
}

type DeleteIdentityRequest struct {
	SecondaryKey string `json:"secondary_key"`
}

type DeleteIdentityResponse struct {
	Identity *Identity `json:"identity"`
}

type GenerateReportRequest struct {
	// Date is YYYY-MM-DD; empty means today.
	Date string `json:"date,omitempty"`
}

type GenerateReportResponse struct {
	Date   string         `json:"date"`
	Count  int            `json:"count"`
	Path   string         `json:"path"`
	URL    string         `json:"url,omitempty"`
	Events []CheckInEvent `json:"events"`
}
