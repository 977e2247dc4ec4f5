// Package models defines server-side data models persisted in the database.
package models

import "time"

// Identity is a registered participant. It is created once on successful
// registration and only ever removed by an administrative delete.
type Identity struct {
	// IdentityKey is the opaque external id of the participant (the chat user id).
	IdentityKey string `db:"identity_key"`
	// DisplayName is the full name given during registration.
	DisplayName string `db:"display_name"`
	// SecondaryKey is the institutional id; unique across all identities.
	SecondaryKey string `db:"secondary_key"`
	// RegisteredAt is stored in UTC.
	RegisteredAt time.Time `db:"registered_at"`
}
