package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rollcall/internal/common"
)

// domainErrors pass through storageErr untouched.
var domainErrors = []error{
	common.ErrorNotFound,
	common.ErrAlreadyRegistered,
	common.ErrDuplicateSecondaryKey,
	common.ErrAlreadyCheckedIn,
	common.ErrValidation,
}

// storageErr marks anything that is not a domain outcome as a store failure.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
}
