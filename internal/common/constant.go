// Package common contains shared constants and sentinel errors used across
// rollcall components.
package common

// AccessTokenHeaderName is the gRPC/HTTP metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DateLayout is the layout of calendar dates in the ledger, the mirror file
// names and on the wire.
const DateLayout = "2006-01-02"

// TimeLayout is the layout of the Time column of the spreadsheet mirror.
const TimeLayout = "15:04:05"
