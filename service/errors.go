package service

import (
	"errors"
	"fmt"
)

var (
	ErrFailedValidation     = errors.New("failed validation")
	ErrRecordNotFound       = errors.New("record not found")
	ErrEditConflict         = errors.New("edit conflict")
	ErrDuplicateRecord      = errors.New("duplicate record")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrContentTooLarge      = errors.New("content too large")
	ErrBadRequest           = errors.New("bad request")

	// Borrow workflow preconditions.
	ErrMemberInactive  = errors.New("member is not active")
	ErrNotAvailable    = errors.New("not enough available copies")
	ErrAlreadyReturned = errors.New("borrow record already returned")
	ErrOutstandingDebt = errors.New("borrow record has outstanding debt")

	// Deletion preconditions.
	ErrBookBorrowed     = errors.New("book has borrowed copies")
	ErrMemberHasBorrows = errors.New("member has active borrow records")
	ErrMemberHasFines   = errors.New("member has pending fines")
)

// failedValidation loops through a validation error map and
// returns an error string with the key and value of the map.
func (s *service) failedValidation(errorMap map[string]string) error {
	var err error
	for k, v := range errorMap {
		err = fmt.Errorf("%q %s", k, v)
	}
	return err
}
