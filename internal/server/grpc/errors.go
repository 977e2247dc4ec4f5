package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/rollcall/internal/common"
)

var statusCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrValidation, codes.InvalidArgument},
	{common.ErrDuplicateSecondaryKey, codes.AlreadyExists},
	{common.ErrAlreadyRegistered, codes.AlreadyExists},
	{common.ErrAlreadyCheckedIn, codes.AlreadyExists},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrServiceInactive, codes.FailedPrecondition},
	{common.ErrNoDialogue, codes.FailedPrecondition},
	{common.ErrForbidden, codes.PermissionDenied},
}

// toStatus converts a service error to a gRPC status. Domain outcomes keep
// their message; storage and other failures become a generic Internal.
func toStatus(err error) error {
	for _, m := range statusCodes {
		if errors.Is(err, m.err) {
			return status.Error(m.code, m.err.Error())
		}
	}
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
