package client

import (
	"errors"

	"github.com/dmitrijs2005/rollcall/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// knownErrors are server outcomes restored from the status message so that
// callers can match them with errors.Is.
var knownErrors = []error{
	common.ErrValidation,
	common.ErrDuplicateSecondaryKey,
	common.ErrAlreadyRegistered,
	common.ErrAlreadyCheckedIn,
	common.ErrorNotFound,
	common.ErrServiceInactive,
	common.ErrNoDialogue,
	common.ErrForbidden,
	common.ErrTokenExpired,
	common.ErrInvalidToken,
}
